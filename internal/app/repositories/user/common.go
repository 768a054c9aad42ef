package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/db"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
	"github.com/yigit/volunteerhub/internal/pkg/dberrors"
)

const emailUniqueConstraint = "uq_users_email"

// CommonRepository handles the identity columns shared by both roles
type CommonRepository struct {
	sb squirrel.StatementBuilderType
}

// NewCommonRepository creates a new CommonRepository
func NewCommonRepository() *CommonRepository {
	return &CommonRepository{sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}
}

// userColumns lists users + both profile tables in scanUser order
var userColumns = []string{
	"u.id", "u.email", "u.password_hash", "u.name", "u.role_type",
	"u.phone", "u.bio", "u.address", "u.latitude", "u.longitude",
	"u.photo_filename", "u.consent_data", "u.accept_terms", "u.created_at", "u.updated_at",
	"vp.date_of_birth", "vp.availability",
	"ap.website", "ap.iban", "ap.tax_id", "ap.official_docs", "ap.logo_filename",
}

func (r *CommonRepository) selectUsers() squirrel.SelectBuilder {
	return r.sb.Select(userColumns...).
		From("users u").
		LeftJoin("volunteer_profiles vp ON vp.user_id = u.id").
		LeftJoin("association_profiles ap ON ap.user_id = u.id")
}

func scanUser(row pgx.Row) (*models.User, error) {
	u := &models.User{}
	vp := &models.VolunteerProfile{}
	ap := &models.AssociationProfile{}
	err := row.Scan(
		&u.ID, &u.Email, &u.Password, &u.Name, &u.RoleType,
		&u.Phone, &u.Bio, &u.Address, &u.Latitude, &u.Longitude,
		&u.PhotoFilename, &u.ConsentData, &u.AcceptTerms, &u.CreatedAt, &u.UpdatedAt,
		&vp.DateOfBirth, &vp.Availability,
		&ap.Website, &ap.IBAN, &ap.TaxID, &ap.OfficialDocs, &ap.LogoFilename,
	)
	if err != nil {
		return nil, err
	}

	switch u.RoleType {
	case models.RoleVolunteer:
		vp.UserID = u.ID
		u.Volunteer = vp
	case models.RoleAssociation:
		ap.UserID = u.ID
		u.Association = ap
	}
	return u, nil
}

// Insert stores the identity row and sets u.ID
func (r *CommonRepository) Insert(ctx context.Context, q db.Querier, u *models.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	now := time.Now()

	sql, args, err := r.sb.Insert("users").
		Columns("email", "password_hash", "name", "role_type", "phone", "bio", "address",
			"latitude", "longitude", "consent_data", "accept_terms", "created_at", "updated_at").
		Values(u.Email, u.Password, u.Name, u.RoleType, u.Phone, u.Bio, u.Address,
			u.Latitude, u.Longitude, u.ConsentData, u.AcceptTerms, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := q.QueryRow(ctx, sql, args...).Scan(&u.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, emailUniqueConstraint) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}
	u.CreatedAt, u.UpdatedAt = now, now
	return nil
}

// Get loads one user matching where, with its role payload
func (r *CommonRepository) Get(ctx context.Context, q db.Querier, where squirrel.Sqlizer) (*models.User, error) {
	sql, args, err := r.selectUsers().Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	u, err := scanUser(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return u, nil
}

// List loads users matching where ordered by name
func (r *CommonRepository) List(ctx context.Context, q db.Querier, where squirrel.Sqlizer) ([]*models.User, error) {
	sql, args, err := r.selectUsers().Where(where).OrderBy("u.name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// EmailExists checks if an email already exists
func (r *CommonRepository) EmailExists(ctx context.Context, q db.Querier, email string) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		strings.ToLower(strings.TrimSpace(email))).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}
	return exists, nil
}

// UpdateIdentity rewrites the editable identity columns
func (r *CommonRepository) UpdateIdentity(ctx context.Context, q db.Querier, u *models.User) error {
	sql, args, err := r.sb.Update("users").
		Set("name", u.Name).
		Set("phone", u.Phone).
		Set("bio", u.Bio).
		Set("address", u.Address).
		Set("latitude", u.Latitude).
		Set("longitude", u.Longitude).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": u.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdatePhoto sets the stored profile photo name
func (r *CommonRepository) UpdatePhoto(ctx context.Context, q db.Querier, userID int64, filename *string) error {
	sql, args, err := r.sb.Update("users").
		Set("photo_filename", filename).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
