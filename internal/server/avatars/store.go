// Package avatars stores resized profile pictures, either inline in
// PostgreSQL or in an S3-compatible object store.
package avatars

import "context"

// Store persists one avatar image per user.
type Store interface {
	Put(ctx context.Context, userID string, data []byte) error
	Get(ctx context.Context, userID string) ([]byte, error)
	Delete(ctx context.Context, userID string) error
}
