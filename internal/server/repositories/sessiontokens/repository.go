// Package sessiontokens declares the repository contract for the per-user
// live-token set.
package sessiontokens

import (
	"context"

	"github.com/Shikhar-srivastav/task-manager/internal/server/models"
)

// Repository manages live session tokens. Membership in this store is the
// sole authority for session validity.
type Repository interface {
	// Create adds a freshly issued token to userID's live set.
	Create(ctx context.Context, userID string, token string) error

	// Find looks up a token by its signed string. Absent tokens return a
	// not-found error.
	Find(ctx context.Context, token string) (*models.SessionToken, error)

	// Delete revokes a single token belonging to userID. Deleting an
	// already-revoked token is not an error.
	Delete(ctx context.Context, userID string, token string) error

	// DeleteAllForUser revokes every token of the user.
	DeleteAllForUser(ctx context.Context, userID string) error
}
