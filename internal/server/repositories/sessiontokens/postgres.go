// Package sessiontokens provides a PostgreSQL-backed repository for the
// live-token set used by the authentication flow.
package sessiontokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Shikhar-srivastav/task-manager/internal/common"
	"github.com/Shikhar-srivastav/task-manager/internal/dbx"
	"github.com/Shikhar-srivastav/task-manager/internal/server/models"
)

// PostgresRepository implements the live-token set over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new live token for userID.
func (r *PostgresRepository) Create(ctx context.Context, userID string, token string) error {
	query := `
		INSERT INTO session_tokens (user_id, token)
		VALUES ($1, $2)
	`
	if _, err := r.db.ExecContext(ctx, query, userID, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Find returns the live-token row for the given token string, or
// common.ErrNotFound when the token was never issued or has been revoked.
func (r *PostgresRepository) Find(ctx context.Context, token string) (*models.SessionToken, error) {
	query := `
		SELECT id, user_id, token, created_at
		FROM session_tokens
		WHERE token = $1
	`
	st := &models.SessionToken{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(&st.ID, &st.UserID, &st.Token, &st.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return st, nil
}

// Delete removes one token from userID's live set.
func (r *PostgresRepository) Delete(ctx context.Context, userID string, token string) error {
	query := `
		DELETE FROM session_tokens
		WHERE user_id = $1 AND token = $2
	`
	if _, err := r.db.ExecContext(ctx, query, userID, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// DeleteAllForUser clears the user's entire live set.
func (r *PostgresRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	query := `
		DELETE FROM session_tokens
		WHERE user_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
