// Package users declares the repository contract for account persistence.
package users

import (
	"context"

	"github.com/Shikhar-srivastav/task-manager/internal/server/models"
)

// Repository defines account storage operations, including the avatar blob
// kept alongside the account row.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)

	// Update applies a partial update and returns the resulting row.
	// A nil-only update degenerates to a read.
	Update(ctx context.Context, id string, upd *models.UserUpdate) (*models.User, error)

	// Delete removes the account. Tasks and session tokens cascade at the
	// schema level.
	Delete(ctx context.Context, id string) error

	SetAvatar(ctx context.Context, id string, avatar []byte) error
	GetAvatar(ctx context.Context, id string) ([]byte, error)
	ClearAvatar(ctx context.Context, id string) error
}
