package repositories

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/app/repositories/user"
	"github.com/yigit/volunteerhub/internal/db"
)

// UserRepository combines all user-related repositories
type UserRepository struct {
	db          *pgxpool.Pool
	common      *user.CommonRepository
	volunteer   *user.VolunteerRepository
	association *user.AssociationRepository
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db:          db,
		common:      user.NewCommonRepository(),
		volunteer:   user.NewVolunteerRepository(),
		association: user.NewAssociationRepository(),
	}
}

// Create stores the user and its role payload in one transaction
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	return db.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if err := r.common.Insert(ctx, tx, u); err != nil {
			return err
		}
		return r.saveProfile(ctx, tx, u)
	})
}

// Update rewrites identity and role payload in one transaction
func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	return db.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if err := r.common.UpdateIdentity(ctx, tx, u); err != nil {
			return err
		}
		return r.saveProfile(ctx, tx, u)
	})
}

func (r *UserRepository) saveProfile(ctx context.Context, tx pgx.Tx, u *models.User) error {
	switch {
	case u.IsVolunteer() && u.Volunteer != nil:
		u.Volunteer.UserID = u.ID
		return r.volunteer.Upsert(ctx, tx, u.Volunteer)
	case u.IsAssociation() && u.Association != nil:
		u.Association.UserID = u.ID
		return r.association.Upsert(ctx, tx, u.Association)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.common.Get(ctx, r.db, squirrel.Eq{"u.id": id})
}

// GetByEmail retrieves a user by email, case-insensitively
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.common.Get(ctx, r.db, squirrel.Eq{"u.email": strings.ToLower(strings.TrimSpace(email))})
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.common.EmailExists(ctx, r.db, email)
}

// UpdatePhoto sets the profile photo of a user
func (r *UserRepository) UpdatePhoto(ctx context.Context, userID int64, filename *string) error {
	return r.common.UpdatePhoto(ctx, r.db, userID, filename)
}

// ListAssociations returns every association ordered by name
func (r *UserRepository) ListAssociations(ctx context.Context) ([]*models.User, error) {
	return r.common.List(ctx, r.db, squirrel.Eq{"u.role_type": models.RoleAssociation})
}

// SearchAssociations returns association cards whose name contains term
func (r *UserRepository) SearchAssociations(ctx context.Context, term string, limit uint64) ([]*models.UserSummary, error) {
	return r.association.SearchByName(ctx, r.db, term, limit)
}
