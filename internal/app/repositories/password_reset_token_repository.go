package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/volunteerhub/internal/db"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
)

// PasswordResetTokenRepository manages password reset tokens in the database
type PasswordResetTokenRepository struct {
	db *pgxpool.Pool
}

// NewPasswordResetTokenRepository creates a new PasswordResetTokenRepository
func NewPasswordResetTokenRepository(db *pgxpool.Pool) *PasswordResetTokenRepository {
	return &PasswordResetTokenRepository{db: db}
}

// CreateToken replaces any previous token of the user with a new one
func (r *PasswordResetTokenRepository) CreateToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	return db.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM password_reset_tokens WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("error deleting password reset tokens for user: %w", err)
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO password_reset_tokens (token, user_id, expires_at)
			VALUES ($1, $2, $3)`, token, userID, expiresAt)
		if err != nil {
			return fmt.Errorf("error creating password reset token: %w", err)
		}
		return nil
	})
}

// ResetPassword consumes a valid token and stores the new password hash in one transaction
func (r *PasswordResetTokenRepository) ResetPassword(ctx context.Context, token, passwordHash string) (int64, error) {
	var userID int64
	err := db.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		var (
			expiresAt time.Time
			used      bool
		)
		err := tx.QueryRow(ctx, `
			SELECT user_id, expires_at, used FROM password_reset_tokens
			WHERE token = $1 FOR UPDATE`, token).Scan(&userID, &expiresAt, &used)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrTokenNotFound
			}
			return fmt.Errorf("error retrieving password reset token: %w", err)
		}
		if used {
			return apperrors.ErrTokenRevoked
		}
		if expiresAt.Before(time.Now()) {
			return apperrors.ErrTokenExpired
		}

		if _, err := tx.Exec(ctx, `UPDATE password_reset_tokens SET used = TRUE WHERE token = $1`, token); err != nil {
			return fmt.Errorf("error marking token as used: %w", err)
		}
		if _, err := tx.Exec(ctx, `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
			passwordHash, time.Now(), userID); err != nil {
			return fmt.Errorf("error updating password: %w", err)
		}
		_, err = tx.Exec(ctx, `UPDATE refresh_tokens SET revoked = TRUE WHERE user_id = $1 AND revoked = FALSE`, userID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return userID, nil
}

// DeleteExpiredTokens removes all expired tokens
func (r *PasswordResetTokenRepository) DeleteExpiredTokens(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM password_reset_tokens WHERE expires_at < $1`, time.Now())
	if err != nil {
		return 0, fmt.Errorf("error deleting expired password reset tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
