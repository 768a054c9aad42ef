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

var petitionColumns = []string{
	"p.id", "p.user_id", "u.name", "p.title", "p.description", "p.location",
	"p.latitude", "p.longitude", "p.image_filename",
	"(SELECT COUNT(*) FROM petition_signatures s WHERE s.petition_id = p.id) AS signature_count",
	"(SELECT COUNT(*) FROM petition_supports s WHERE s.petition_id = p.id) AS support_count",
	"p.created_at", "p.updated_at",
}

// PetitionRepository handles petitions, signatures and association supports
type PetitionRepository struct {
	db *pgxpool.Pool
}

// NewPetitionRepository creates a new PetitionRepository
func NewPetitionRepository(db *pgxpool.Pool) *PetitionRepository {
	return &PetitionRepository{db: db}
}

func selectPetitions() squirrel.SelectBuilder {
	return psql.Select(petitionColumns...).
		From("petitions p").
		Join("users u ON u.id = p.user_id")
}

func scanPetition(row pgx.Row) (*models.Petition, error) {
	p := &models.Petition{}
	err := row.Scan(&p.ID, &p.UserID, &p.AuthorName, &p.Title, &p.Description, &p.Location,
		&p.Latitude, &p.Longitude, &p.ImageFilename, &p.SignatureCount, &p.SupportCount,
		&p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PetitionRepository) list(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Petition, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	out := []*models.Petition{}
	for rows.Next() {
		p, err := scanPetition(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Create stores a new petition and sets its ID
func (r *PetitionRepository) Create(ctx context.Context, p *models.Petition) error {
	now := time.Now()
	sql, args, err := psql.Insert("petitions").
		Columns("user_id", "title", "description", "location", "latitude", "longitude",
			"image_filename", "created_at", "updated_at").
		Values(p.UserID, p.Title, p.Description, p.Location, p.Latitude, p.Longitude,
			p.ImageFilename, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&p.ID); err != nil {
		return fmt.Errorf("error creating petition: %w", err)
	}
	p.CreatedAt, p.UpdatedAt = now, now
	return nil
}

// Update rewrites the editable columns of a petition
func (r *PetitionRepository) Update(ctx context.Context, p *models.Petition) error {
	p.UpdatedAt = time.Now()
	sql, args, err := psql.Update("petitions").
		SetMap(map[string]interface{}{
			"title":       p.Title,
			"description": p.Description,
			"location":    p.Location,
			"latitude":    p.Latitude,
			"longitude":   p.Longitude,
			"updated_at":  p.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating petition: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPetitionNotFound
	}
	return nil
}

// UpdateImage sets the stored image name of a petition
func (r *PetitionRepository) UpdateImage(ctx context.Context, id int64, filename string) error {
	tag, err := r.db.Exec(ctx, `UPDATE petitions SET image_filename = $1, updated_at = $2 WHERE id = $3`, filename, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error updating petition image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPetitionNotFound
	}
	return nil
}

// GetByID retrieves a petition with its counters
func (r *PetitionRepository) GetByID(ctx context.Context, id int64) (*models.Petition, error) {
	sql, args, err := selectPetitions().Where(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	p, err := scanPetition(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPetitionNotFound
		}
		return nil, fmt.Errorf("error retrieving petition: %w", err)
	}
	return p, nil
}

// ListAll returns every petition, newest first
func (r *PetitionRepository) ListAll(ctx context.Context) ([]*models.Petition, error) {
	return r.list(ctx, selectPetitions().OrderBy("p.created_at DESC"))
}

// ListByUser returns the petitions started by a user, newest first
func (r *PetitionRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Petition, error) {
	return r.list(ctx, selectPetitions().
		Where(squirrel.Eq{"p.user_id": userID}).
		OrderBy("p.created_at DESC"))
}

// Sign records the user's signature; it reports false when already signed
func (r *PetitionRepository) Sign(ctx context.Context, petitionID, userID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO petition_signatures (petition_id, user_id, signed_at) VALUES ($1, $2, $3)
		ON CONFLICT (petition_id, user_id) DO NOTHING`, petitionID, userID, time.Now())
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return false, apperrors.ErrPetitionNotFound
		}
		return false, fmt.Errorf("error signing petition: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Support records an association's support; it reports false when already supported
func (r *PetitionRepository) Support(ctx context.Context, petitionID, associationID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO petition_supports (petition_id, association_id, supported_at) VALUES ($1, $2, $3)
		ON CONFLICT (petition_id, association_id) DO NOTHING`, petitionID, associationID, time.Now())
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return false, apperrors.ErrPetitionNotFound
		}
		return false, fmt.Errorf("error supporting petition: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
