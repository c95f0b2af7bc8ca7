// Package tasks provides a PostgreSQL-backed repository for owner-scoped
// task rows.
package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Shikhar-srivastav/task-manager/internal/common"
	"github.com/Shikhar-srivastav/task-manager/internal/dbx"
	"github.com/Shikhar-srivastav/task-manager/internal/server/models"
)

// sortColumns is the declared set of sortable columns. Anything else falls
// back to insertion order so a filter can never inject SQL.
var sortColumns = map[string]struct{}{
	"description": {},
	"completed":   {},
	"created_at":  {},
	"updated_at":  {},
}

// PostgresRepository implements task storage over a dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const taskColumns = "id, user_id, description, completed, created_at, updated_at"

func scanTask(row *sql.Row) (*models.Task, error) {
	task := &models.Task{}
	err := row.Scan(&task.ID, &task.OwnerID, &task.Description, &task.Completed, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Create inserts a task stamped with its owner.
func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `
		INSERT INTO tasks (user_id, description, completed)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		task.OwnerID, task.Description, task.Completed).
		Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

// FindByOwner lists the owner's tasks, optionally filtered by completion,
// ordered by a declared sortable column (default: creation order), and
// paginated with LIMIT/OFFSET. Zero Limit/Skip mean no limit and no offset.
func (r *PostgresRepository) FindByOwner(ctx context.Context, ownerID string, f models.TaskFilter) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1`
	args := []any{ownerID}

	if f.Completed != nil {
		args = append(args, *f.Completed)
		query += fmt.Sprintf(" AND completed = $%d", len(args))
	}

	column := "created_at"
	ascending := true
	if _, ok := sortColumns[f.SortBy]; ok {
		column = f.SortBy
		ascending = f.SortAsc
	}
	direction := "ASC"
	if !ascending {
		direction = "DESC"
	}
	query += " ORDER BY " + column + " " + direction

	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Skip > 0 {
		args = append(args, f.Skip)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Task
	for rows.Next() {
		task := &models.Task{}
		if err := rows.Scan(&task.ID, &task.OwnerID, &task.Description, &task.Completed, &task.CreatedAt, &task.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// FindOne returns the task only when it belongs to ownerID; a task owned by
// someone else is common.ErrNotFound, indistinguishable from a missing one.
func (r *PostgresRepository) FindOne(ctx context.Context, ownerID string, taskID string) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $2 AND user_id = $1`

	task, err := scanTask(r.db.QueryRowContext(ctx, query, ownerID, taskID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidTextRepresentation(err) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}

// Update applies the non-nil fields in one conditional UPDATE guarded by the
// owner check, returning the resulting row. Concurrent updates serialize at
// the statement level; last write wins, but no torn rows are possible.
func (r *PostgresRepository) Update(ctx context.Context, ownerID string, taskID string, upd *models.TaskUpdate) (*models.Task, error) {
	var set []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Completed != nil {
		add("completed", *upd.Completed)
	}

	if len(set) == 0 {
		return r.FindOne(ctx, ownerID, taskID)
	}

	set = append(set, "updated_at = now()")
	args = append(args, taskID, ownerID)

	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = $%d AND user_id = $%d RETURNING %s",
		strings.Join(set, ", "), len(args)-1, len(args), taskColumns)

	task, err := scanTask(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidTextRepresentation(err) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}

// Delete removes the task if and only if it belongs to ownerID, returning
// the deleted row in the same statement.
func (r *PostgresRepository) Delete(ctx context.Context, ownerID string, taskID string) (*models.Task, error) {
	query := `DELETE FROM tasks WHERE id = $2 AND user_id = $1 RETURNING ` + taskColumns

	task, err := scanTask(r.db.QueryRowContext(ctx, query, ownerID, taskID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidTextRepresentation(err) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}
