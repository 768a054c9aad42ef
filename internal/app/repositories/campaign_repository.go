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

var campaignColumns = []string{
	"c.id", "c.association_id", "u.name", "c.title", "c.description", "c.goal_amount",
	"c.duration", "c.date", "c.end_date", "c.location", "c.latitude", "c.longitude",
	"c.image_filename", "c.created_at", "c.updated_at",
}

// CampaignRepository handles database operations for campaigns
type CampaignRepository struct {
	db *pgxpool.Pool
}

// NewCampaignRepository creates a new CampaignRepository
func NewCampaignRepository(db *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{db: db}
}

func selectCampaigns() squirrel.SelectBuilder {
	return psql.Select(campaignColumns...).
		From("campaigns c").
		Join("users u ON u.id = c.association_id")
}

func scanCampaign(row pgx.Row) (*models.Campaign, error) {
	c := &models.Campaign{}
	err := row.Scan(
		&c.ID, &c.AssociationID, &c.AssociationName, &c.Title, &c.Description, &c.GoalAmount,
		&c.Duration, &c.Date, &c.EndDate, &c.Location, &c.Latitude, &c.Longitude,
		&c.ImageFilename, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *CampaignRepository) list(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Campaign, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	out := []*models.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Create stores a new campaign and sets its ID
func (r *CampaignRepository) Create(ctx context.Context, c *models.Campaign) error {
	now := time.Now()
	sql, args, err := psql.Insert("campaigns").
		Columns("association_id", "title", "description", "goal_amount", "duration", "date",
			"end_date", "location", "latitude", "longitude", "image_filename", "created_at", "updated_at").
		Values(c.AssociationID, c.Title, c.Description, c.GoalAmount, c.Duration, c.Date,
			c.EndDate, c.Location, c.Latitude, c.Longitude, c.ImageFilename, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&c.ID); err != nil {
		return fmt.Errorf("error creating campaign: %w", err)
	}
	c.CreatedAt, c.UpdatedAt = now, now
	return nil
}

// Update rewrites the editable columns of a campaign
func (r *CampaignRepository) Update(ctx context.Context, c *models.Campaign) error {
	c.UpdatedAt = time.Now()
	sql, args, err := psql.Update("campaigns").
		SetMap(map[string]interface{}{
			"title":       c.Title,
			"description": c.Description,
			"goal_amount": c.GoalAmount,
			"duration":    c.Duration,
			"date":        c.Date,
			"end_date":    c.EndDate,
			"location":    c.Location,
			"latitude":    c.Latitude,
			"longitude":   c.Longitude,
			"updated_at":  c.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating campaign: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCampaignNotFound
	}
	return nil
}

// UpdateImage sets the stored image name of a campaign
func (r *CampaignRepository) UpdateImage(ctx context.Context, id int64, filename string) error {
	tag, err := r.db.Exec(ctx, `UPDATE campaigns SET image_filename = $1, updated_at = $2 WHERE id = $3`, filename, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error updating campaign image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCampaignNotFound
	}
	return nil
}

// Delete removes a campaign
func (r *CampaignRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting campaign: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCampaignNotFound
	}
	return nil
}

// GetByID retrieves a campaign
func (r *CampaignRepository) GetByID(ctx context.Context, id int64) (*models.Campaign, error) {
	sql, args, err := selectCampaigns().Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	c, err := scanCampaign(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("error retrieving campaign: %w", err)
	}
	return c, nil
}

// ListByAssociation returns the campaigns of an association, newest first
func (r *CampaignRepository) ListByAssociation(ctx context.Context, associationID int64) ([]*models.Campaign, error) {
	return r.list(ctx, selectCampaigns().
		Where(squirrel.Eq{"c.association_id": associationID}).
		OrderBy("c.created_at DESC"))
}

// ListAll returns every campaign, newest first
func (r *CampaignRepository) ListAll(ctx context.Context) ([]*models.Campaign, error) {
	return r.list(ctx, selectCampaigns().OrderBy("c.created_at DESC", "c.id DESC"))
}

// ListGeolocated returns campaigns that carry both coordinates
func (r *CampaignRepository) ListGeolocated(ctx context.Context) ([]*models.Campaign, error) {
	return r.list(ctx, selectCampaigns().
		Where(squirrel.NotEq{"c.latitude": nil, "c.longitude": nil}).
		OrderBy("c.created_at DESC"))
}
