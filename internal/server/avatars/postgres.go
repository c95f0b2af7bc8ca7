package avatars

import (
	"context"

	"github.com/Shikhar-srivastav/task-manager/internal/server/repositories/users"
)

// PostgresStore keeps avatars in the users table alongside the profile row.
type PostgresStore struct {
	users users.Repository
}

// NewPostgresStore constructs a Store backed by the users repository.
func NewPostgresStore(users users.Repository) *PostgresStore {
	return &PostgresStore{users: users}
}

func (s *PostgresStore) Put(ctx context.Context, userID string, data []byte) error {
	return s.users.SetAvatar(ctx, userID, data)
}

func (s *PostgresStore) Get(ctx context.Context, userID string) ([]byte, error) {
	return s.users.GetAvatar(ctx, userID)
}

func (s *PostgresStore) Delete(ctx context.Context, userID string) error {
	return s.users.ClearAvatar(ctx, userID)
}
