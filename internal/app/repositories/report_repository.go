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
)

// ReportRepository handles volunteer reports
type ReportRepository struct {
	db *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{db: db}
}

func selectReports() squirrel.SelectBuilder {
	return psql.Select("r.id", "r.user_id", "u.name", "r.title", "r.description", "r.address",
		"r.latitude", "r.longitude", "r.image_filename", "r.created_at").
		From("reports r").
		Join("users u ON u.id = r.user_id")
}

func scanReport(row pgx.Row) (*models.Report, error) {
	rp := &models.Report{}
	err := row.Scan(&rp.ID, &rp.UserID, &rp.AuthorName, &rp.Title, &rp.Description, &rp.Address,
		&rp.Latitude, &rp.Longitude, &rp.ImageFilename, &rp.CreatedAt)
	return rp, err
}

func (r *ReportRepository) list(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Report, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	out := []*models.Report{}
	for rows.Next() {
		rp, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		out = append(out, rp)
	}
	return out, rows.Err()
}

// Create stores a new report and sets its ID
func (r *ReportRepository) Create(ctx context.Context, rp *models.Report) error {
	rp.CreatedAt = time.Now()
	sql, args, err := psql.Insert("reports").
		Columns("user_id", "title", "description", "address", "latitude", "longitude", "image_filename", "created_at").
		Values(rp.UserID, rp.Title, rp.Description, rp.Address, rp.Latitude, rp.Longitude, rp.ImageFilename, rp.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&rp.ID); err != nil {
		return fmt.Errorf("error creating report: %w", err)
	}
	return nil
}

// UpdateImage sets the stored image name of a report
func (r *ReportRepository) UpdateImage(ctx context.Context, id int64, filename string) error {
	tag, err := r.db.Exec(ctx, `UPDATE reports SET image_filename = $1 WHERE id = $2`, filename, id)
	if err != nil {
		return fmt.Errorf("error updating report image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrReportNotFound
	}
	return nil
}

// Delete removes a report
func (r *ReportRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrReportNotFound
	}
	return nil
}

// GetByID retrieves a report
func (r *ReportRepository) GetByID(ctx context.Context, id int64) (*models.Report, error) {
	sql, args, err := selectReports().Where(squirrel.Eq{"r.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rp, err := scanReport(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReportNotFound
		}
		return nil, fmt.Errorf("error retrieving report: %w", err)
	}
	return rp, nil
}

// ListAll returns every report, newest first
func (r *ReportRepository) ListAll(ctx context.Context) ([]*models.Report, error) {
	return r.list(ctx, selectReports().OrderBy("r.created_at DESC"))
}

// ListByUser returns the reports of a user, newest first
func (r *ReportRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Report, error) {
	return r.list(ctx, selectReports().
		Where(squirrel.Eq{"r.user_id": userID}).
		OrderBy("r.created_at DESC"))
}
