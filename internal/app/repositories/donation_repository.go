package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
	"github.com/yigit/volunteerhub/internal/pkg/dberrors"
)

var donationColumns = []string{
	"d.id", "d.order_id", "d.user_id", "d.full_name", "d.email", "d.amount", "d.method",
	"d.message", "d.pdf_filename", "d.campaign_id", "d.created_at", "c.title",
}

// DonationRepository handles confirmed donations
type DonationRepository struct {
	db *pgxpool.Pool
}

// NewDonationRepository creates a new DonationRepository
func NewDonationRepository(db *pgxpool.Pool) *DonationRepository {
	return &DonationRepository{db: db}
}

func selectDonations() squirrel.SelectBuilder {
	return psql.Select(donationColumns...).
		From("donations d").
		Join("campaigns c ON c.id = d.campaign_id")
}

func scanDonation(row pgx.Row) (*models.Donation, error) {
	d := &models.Donation{}
	err := row.Scan(&d.ID, &d.OrderID, &d.UserID, &d.FullName, &d.Email, &d.Amount, &d.Method,
		&d.Message, &d.PDFFilename, &d.CampaignID, &d.CreatedAt, &d.CampaignTitle)
	return d, err
}

// CreateOnce inserts the donation unless its order id is already recorded.
// It reports whether a row was created; d.ID is set either way.
func (r *DonationRepository) CreateOnce(ctx context.Context, d *models.Donation) (bool, error) {
	now := time.Now()
	sql, args, err := psql.Insert("donations").
		Columns("order_id", "user_id", "full_name", "email", "amount", "method", "message",
			"campaign_id", "created_at").
		Values(d.OrderID, d.UserID, d.FullName, d.Email, d.Amount, d.Method, d.Message,
			d.CampaignID, now).
		Suffix("ON CONFLICT (order_id) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&d.ID)
	if err == nil {
		d.CreatedAt = now
		return true, nil
	}
	if dberrors.IsForeignKeyViolation(err) {
		return false, apperrors.ErrCampaignNotFound
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("error creating donation: %w", err)
	}

	existing, err := r.GetByOrderID(ctx, d.OrderID)
	if err != nil {
		return false, err
	}
	*d = *existing
	return false, nil
}

// GetByOrderID retrieves the donation recorded for a payment order
func (r *DonationRepository) GetByOrderID(ctx context.Context, orderID string) (*models.Donation, error) {
	sql, args, err := selectDonations().Where(squirrel.Eq{"d.order_id": orderID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	d, err := scanDonation(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDonationNotFound
		}
		return nil, fmt.Errorf("error retrieving donation: %w", err)
	}
	return d, nil
}

// SetReceipt stores the receipt file name of a donation
func (r *DonationRepository) SetReceipt(ctx context.Context, id int64, filename string) error {
	tag, err := r.db.Exec(ctx, `UPDATE donations SET pdf_filename = $1 WHERE id = $2`, filename, id)
	if err != nil {
		return fmt.Errorf("error updating receipt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDonationNotFound
	}
	return nil
}

func (r *DonationRepository) list(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Donation, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	out := []*models.Donation{}
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListByUser returns the donations made by a user, newest first
func (r *DonationRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Donation, error) {
	return r.list(ctx, selectDonations().
		Where(squirrel.Eq{"d.user_id": userID}).
		OrderBy("d.created_at DESC"))
}

// ListByAssociation returns the donations received by an association's campaigns
func (r *DonationRepository) ListByAssociation(ctx context.Context, associationID int64) ([]*models.Donation, error) {
	return r.list(ctx, selectDonations().
		Where(squirrel.Eq{"c.association_id": associationID}).
		OrderBy("d.created_at DESC"))
}
