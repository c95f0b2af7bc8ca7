package services

import (
	"context"

	"github.com/Shikhar-srivastav/task-manager/internal/server/avatars"
	"github.com/Shikhar-srivastav/task-manager/internal/server/images"
)

// AvatarService normalizes uploaded avatars to a fixed-size PNG and hands
// them to the configured store.
type AvatarService struct {
	store avatars.Store
	size  int
}

// NewAvatarService constructs an AvatarService producing size x size images.
func NewAvatarService(store avatars.Store, size int) *AvatarService {
	return &AvatarService{store: store, size: size}
}

// Upload resizes the raw upload and stores it, replacing any previous avatar.
func (s *AvatarService) Upload(ctx context.Context, userID string, data []byte) error {
	resized, err := images.ResizeSquarePNG(data, s.size)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, userID, resized)
}

// Get returns the stored PNG for the given user.
func (s *AvatarService) Get(ctx context.Context, userID string) ([]byte, error) {
	return s.store.Get(ctx, userID)
}

// Delete removes the stored avatar. Deleting an absent avatar succeeds.
func (s *AvatarService) Delete(ctx context.Context, userID string) error {
	return s.store.Delete(ctx, userID)
}
