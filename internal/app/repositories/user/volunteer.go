package user

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/db"
)

// VolunteerRepository handles the volunteer_profiles table
type VolunteerRepository struct {
	sb squirrel.StatementBuilderType
}

// NewVolunteerRepository creates a new VolunteerRepository
func NewVolunteerRepository() *VolunteerRepository {
	return &VolunteerRepository{sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}
}

// Upsert stores the volunteer payload of userID
func (r *VolunteerRepository) Upsert(ctx context.Context, q db.Querier, p *models.VolunteerProfile) error {
	sql, args, err := r.sb.Insert("volunteer_profiles").
		Columns("user_id", "date_of_birth", "availability").
		Values(p.UserID, p.DateOfBirth, p.Availability).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET date_of_birth = EXCLUDED.date_of_birth, availability = EXCLUDED.availability").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error saving volunteer profile: %w", err)
	}
	return nil
}
