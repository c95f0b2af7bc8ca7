// Package tasks declares the repository contract for task persistence.
// Every operation takes the owner id as a mandatory first-class parameter:
// no task is ever addressable by id alone.
package tasks

import (
	"context"

	"github.com/Shikhar-srivastav/task-manager/internal/server/models"
)

// Repository defines owner-scoped task storage. An existing task that
// belongs to a different owner is reported exactly like a missing one.
type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	FindByOwner(ctx context.Context, ownerID string, f models.TaskFilter) ([]*models.Task, error)
	FindOne(ctx context.Context, ownerID string, taskID string) (*models.Task, error)
	Update(ctx context.Context, ownerID string, taskID string, upd *models.TaskUpdate) (*models.Task, error)

	// Delete removes the task if and only if it belongs to ownerID, and
	// returns the deleted row.
	Delete(ctx context.Context, ownerID string, taskID string) (*models.Task, error)
}
