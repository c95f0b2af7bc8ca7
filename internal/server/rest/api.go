// Package rest exposes the HTTP API. Handlers translate between JSON and
// the service layer and never touch storage directly.
package rest

import (
	"context"
	"encoding/json"

	"github.com/Shikhar-srivastav/task-manager/internal/server/models"
	"github.com/Shikhar-srivastav/task-manager/internal/server/services"
)

// UserAPI is the slice of the user service the HTTP layer needs.
type UserAPI interface {
	Register(ctx context.Context, name string, email string, password string, age *int64) (*services.Session, error)
	Login(ctx context.Context, email string, password string) (*services.Session, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	Logout(ctx context.Context, userID string, token string) error
	LogoutAll(ctx context.Context, userID string) error
	Get(ctx context.Context, userID string) (*models.User, error)
	Update(ctx context.Context, userID string, payload map[string]json.RawMessage) (*models.User, error)
	Delete(ctx context.Context, userID string) (*models.User, error)
}

// TaskAPI is the slice of the task service the HTTP layer needs.
type TaskAPI interface {
	Create(ctx context.Context, ownerID string, description string, completed bool) (*models.Task, error)
	List(ctx context.Context, ownerID string, opts services.TaskListOptions) ([]*models.Task, error)
	Get(ctx context.Context, ownerID string, taskID string) (*models.Task, error)
	Update(ctx context.Context, ownerID string, taskID string, payload map[string]json.RawMessage) (*models.Task, error)
	Delete(ctx context.Context, ownerID string, taskID string) (*models.Task, error)
}

// AvatarAPI is the slice of the avatar service the HTTP layer needs.
type AvatarAPI interface {
	Upload(ctx context.Context, userID string, data []byte) error
	Get(ctx context.Context, userID string) ([]byte, error)
	Delete(ctx context.Context, userID string) error
}
