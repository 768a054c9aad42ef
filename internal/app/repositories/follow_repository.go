package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
	"github.com/yigit/volunteerhub/internal/pkg/dberrors"
)

// FollowRepository stores volunteer -> association follows
type FollowRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFollowRepository creates a new FollowRepository
func NewFollowRepository(db *pgxpool.Pool) *FollowRepository {
	return &FollowRepository{db: db, sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}
}

// Follow records the follow; it reports false when it already existed
func (r *FollowRepository) Follow(ctx context.Context, volunteerID, associationID int64) (bool, error) {
	sql, args, err := r.sb.Insert("follows").
		Columns("volunteer_id", "association_id", "created_at").
		Values(volunteerID, associationID, time.Now()).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return false, apperrors.ErrUserNotFound
		}
		return false, fmt.Errorf("error following association: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Unfollow removes the follow; it reports false when there was none
func (r *FollowRepository) Unfollow(ctx context.Context, volunteerID, associationID int64) (bool, error) {
	sql, args, err := r.sb.Delete("follows").
		Where(squirrel.Eq{"volunteer_id": volunteerID, "association_id": associationID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("error unfollowing association: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// IsFollowing reports whether the volunteer follows the association
func (r *FollowRepository) IsFollowing(ctx context.Context, volunteerID, associationID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM follows WHERE volunteer_id = $1 AND association_id = $2)`,
		volunteerID, associationID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking follow: %w", err)
	}
	return exists, nil
}

// CountFollowers returns the number of volunteers following an association
func (r *FollowRepository) CountFollowers(ctx context.Context, associationID int64) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("follows").
		Where(squirrel.Eq{"association_id": associationID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return count, nil
}

// ListFollowed returns the associations a volunteer follows, by name
func (r *FollowRepository) ListFollowed(ctx context.Context, volunteerID int64) ([]*models.UserSummary, error) {
	sql, args, err := r.sb.Select("u.id", "u.name", "u.role_type", "u.photo_filename").
		From("follows f").
		Join("users u ON u.id = f.association_id").
		Where(squirrel.Eq{"f.volunteer_id": volunteerID}).
		OrderBy("u.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	out := []*models.UserSummary{}
	for rows.Next() {
		s := &models.UserSummary{}
		if err := rows.Scan(&s.ID, &s.Name, &s.RoleType, &s.PhotoFilename); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
