package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Shikhar-srivastav/task-manager/internal/common"
	"github.com/Shikhar-srivastav/task-manager/internal/server/allowlist"
	"github.com/Shikhar-srivastav/task-manager/internal/server/models"
	"github.com/Shikhar-srivastav/task-manager/internal/server/repositories/repomanager"
)

// sortFields maps the external sort field names accepted on listings to
// their storage columns. Unknown names fall back to creation order.
var sortFields = map[string]string{
	"desc":      "description",
	"completed": "completed",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// TaskListOptions carries the listing filters as the client phrases them.
type TaskListOptions struct {
	Completed *bool
	SortBy    string
	SortAsc   bool
	Limit     int
	Skip      int
}

// TaskService provides owner-scoped task CRUD. Every operation takes the
// acting user's ID and can only ever see that user's tasks; a task owned by
// someone else behaves exactly like a missing one.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	allow       *allowlist.Registry
}

// NewTaskService constructs a TaskService.
func NewTaskService(db *sql.DB, m repomanager.RepositoryManager, allow *allowlist.Registry) *TaskService {
	return &TaskService{db: db, repomanager: m, allow: allow}
}

// Create stores a new task for ownerID. The description is required.
func (s *TaskService) Create(ctx context.Context, ownerID string, description string, completed bool) (*models.Task, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("%w: description is required", common.ErrValidation)
	}

	task := &models.Task{
		OwnerID:     ownerID,
		Description: strings.TrimSpace(description),
		Completed:   completed,
	}
	return s.repomanager.Tasks(s.db).Create(ctx, task)
}

// List returns the owner's tasks per the given options. An unknown sort
// field silently falls back to creation order.
func (s *TaskService) List(ctx context.Context, ownerID string, opts TaskListOptions) ([]*models.Task, error) {
	filter := models.TaskFilter{
		Completed: opts.Completed,
		Limit:     opts.Limit,
		Skip:      opts.Skip,
	}
	if column, ok := sortFields[opts.SortBy]; ok {
		filter.SortBy = column
		filter.SortAsc = opts.SortAsc
	}
	return s.repomanager.Tasks(s.db).FindByOwner(ctx, ownerID, filter)
}

// Get returns one of the owner's tasks.
func (s *TaskService) Get(ctx context.Context, ownerID string, taskID string) (*models.Task, error) {
	return s.repomanager.Tasks(s.db).FindOne(ctx, ownerID, taskID)
}

// Update applies a partial update to one of the owner's tasks. Every key in
// the payload must be on the tasks allowlist; an unknown key rejects the
// whole request.
func (s *TaskService) Update(ctx context.Context, ownerID string, taskID string, payload map[string]json.RawMessage) (*models.Task, error) {
	fields := make([]string, 0, len(payload))
	for k := range payload {
		fields = append(fields, k)
	}
	if err := s.allow.Validate("tasks", fields); err != nil {
		return nil, err
	}

	upd := &models.TaskUpdate{}

	if raw, ok := payload["desc"]; ok {
		var description string
		if err := json.Unmarshal(raw, &description); err != nil || strings.TrimSpace(description) == "" {
			return nil, fmt.Errorf("%w: description is invalid", common.ErrValidation)
		}
		description = strings.TrimSpace(description)
		upd.Description = &description
	}
	if raw, ok := payload["completed"]; ok {
		var completed bool
		if err := json.Unmarshal(raw, &completed); err != nil {
			return nil, fmt.Errorf("%w: completed must be a boolean", common.ErrValidation)
		}
		upd.Completed = &completed
	}

	task, err := s.repomanager.Tasks(s.db).Update(ctx, ownerID, taskID, upd)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return task, nil
}

// Delete removes one of the owner's tasks and returns the deleted row.
func (s *TaskService) Delete(ctx context.Context, ownerID string, taskID string) (*models.Task, error) {
	return s.repomanager.Tasks(s.db).Delete(ctx, ownerID, taskID)
}
