package user

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/db"
	"github.com/yigit/volunteerhub/internal/pkg/helpers"
)

// AssociationRepository handles the association_profiles table
type AssociationRepository struct {
	sb squirrel.StatementBuilderType
}

// NewAssociationRepository creates a new AssociationRepository
func NewAssociationRepository() *AssociationRepository {
	return &AssociationRepository{sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}
}

// Upsert stores the association payload of userID
func (r *AssociationRepository) Upsert(ctx context.Context, q db.Querier, p *models.AssociationProfile) error {
	sql, args, err := r.sb.Insert("association_profiles").
		Columns("user_id", "website", "iban", "tax_id", "official_docs", "logo_filename").
		Values(p.UserID, p.Website, p.IBAN, p.TaxID, p.OfficialDocs, p.LogoFilename).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			website = EXCLUDED.website,
			iban = EXCLUDED.iban,
			tax_id = EXCLUDED.tax_id,
			official_docs = COALESCE(EXCLUDED.official_docs, association_profiles.official_docs),
			logo_filename = COALESCE(EXCLUDED.logo_filename, association_profiles.logo_filename)`).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error saving association profile: %w", err)
	}
	return nil
}

func (r *AssociationRepository) searchQuery(term string, limit uint64) squirrel.SelectBuilder {
	query := r.sb.Select("id", "name", "role_type", "photo_filename").
		From("users").
		Where(squirrel.Eq{"role_type": models.RoleAssociation}).
		OrderBy("name ASC")
	if term != "" {
		query = query.Where(squirrel.ILike{"name": helpers.ContainsPattern(term)})
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	return query
}

// SearchByName finds associations whose name contains term, case-insensitively.
// Wildcards in term match literally.
func (r *AssociationRepository) SearchByName(ctx context.Context, q db.Querier, term string, limit uint64) ([]*models.UserSummary, error) {
	sql, args, err := r.searchQuery(term, limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var out []*models.UserSummary
	for rows.Next() {
		s := &models.UserSummary{}
		if err := rows.Scan(&s.ID, &s.Name, &s.RoleType, &s.PhotoFilename); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
