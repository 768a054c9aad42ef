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
	"github.com/yigit/volunteerhub/internal/db"
	"github.com/yigit/volunteerhub/internal/domain"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
)

var postColumns = []string{
	"p.id", "p.association_id", "u.name", "p.title", "p.content", "p.image_filename",
	"(SELECT COUNT(*) FROM applause a WHERE a.post_id = p.id) AS applause_count",
	"p.created_at", "p.updated_at",
}

// ApplauseResult is the state after an applause toggle
type ApplauseResult struct {
	Added bool
	Count int
}

// PostRepository handles association posts and their applause
type PostRepository struct {
	db *pgxpool.Pool
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{db: db}
}

func selectPosts() squirrel.SelectBuilder {
	return psql.Select(postColumns...).
		From("posts p").
		Join("users u ON u.id = p.association_id")
}

func scanPost(row pgx.Row) (*models.Post, error) {
	p := &models.Post{}
	err := row.Scan(&p.ID, &p.AssociationID, &p.AssociationName, &p.Title, &p.Content,
		&p.ImageFilename, &p.ApplauseCount, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PostRepository) list(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Post, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	out := []*models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Create stores a new post and sets its ID
func (r *PostRepository) Create(ctx context.Context, p *models.Post) error {
	now := time.Now()
	sql, args, err := psql.Insert("posts").
		Columns("association_id", "title", "content", "image_filename", "created_at", "updated_at").
		Values(p.AssociationID, p.Title, p.Content, p.ImageFilename, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&p.ID); err != nil {
		return fmt.Errorf("error creating post: %w", err)
	}
	p.CreatedAt, p.UpdatedAt = now, now
	return nil
}

// Update rewrites title and content of a post
func (r *PostRepository) Update(ctx context.Context, p *models.Post) error {
	p.UpdatedAt = time.Now()
	tag, err := r.db.Exec(ctx, `UPDATE posts SET title = $1, content = $2, updated_at = $3 WHERE id = $4`,
		p.Title, p.Content, p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("error updating post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// UpdateImage sets the stored image name of a post
func (r *PostRepository) UpdateImage(ctx context.Context, id int64, filename string) error {
	tag, err := r.db.Exec(ctx, `UPDATE posts SET image_filename = $1, updated_at = $2 WHERE id = $3`, filename, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error updating post image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// Delete removes a post; applause cascades
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// GetByID retrieves a post with its applause count
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	sql, args, err := selectPosts().Where(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	p, err := scanPost(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("error retrieving post: %w", err)
	}
	return p, nil
}

// ListByAssociation returns the posts of an association, newest first
func (r *PostRepository) ListByAssociation(ctx context.Context, associationID int64) ([]*models.Post, error) {
	return r.list(ctx, selectPosts().
		Where(squirrel.Eq{"p.association_id": associationID}).
		OrderBy("p.created_at DESC"))
}

// ListAll returns every post, newest first
func (r *PostRepository) ListAll(ctx context.Context) ([]*models.Post, error) {
	return r.list(ctx, selectPosts().OrderBy("p.created_at DESC", "p.id DESC"))
}

// ToggleApplauseTx adds the user's applause or removes it when present.
// Adding notifies the post owner unless the owner applauds, keeping at most one
// post notification per post; removing deletes that notification.
func (r *PostRepository) ToggleApplauseTx(ctx context.Context, post *models.Post, userID int64, userName string) (*ApplauseResult, error) {
	res := &ApplauseResult{}
	err := db.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM applause WHERE post_id = $1 AND user_id = $2`, post.ID, userID)
		if err != nil {
			return fmt.Errorf("error removing applause: %w", err)
		}

		if tag.RowsAffected() > 0 {
			_, err = tx.Exec(ctx, `DELETE FROM notifications WHERE user_id = $1 AND post_id = $2 AND type = $3`,
				post.AssociationID, post.ID, domain.NotificationPost)
			if err != nil {
				return fmt.Errorf("error removing applause notification: %w", err)
			}
		} else {
			_, err = tx.Exec(ctx, `INSERT INTO applause (post_id, user_id, created_at) VALUES ($1, $2, $3)`,
				post.ID, userID, time.Now())
			if err != nil {
				return fmt.Errorf("error adding applause: %w", err)
			}
			res.Added = true

			if post.AssociationID != userID {
				var exists bool
				err = tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM notifications WHERE user_id = $1 AND post_id = $2 AND type = $3)`,
					post.AssociationID, post.ID, domain.NotificationPost).Scan(&exists)
				if err != nil {
					return fmt.Errorf("error checking applause notification: %w", err)
				}
				if !exists {
					draft := domain.PostApplauded(post.AssociationID, userName, post.ID, post.Title)
					if _, err := insertNotification(ctx, tx, draft); err != nil {
						return err
					}
				}
			}
		}

		return tx.QueryRow(ctx, `SELECT COUNT(*) FROM applause WHERE post_id = $1`, post.ID).Scan(&res.Count)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
