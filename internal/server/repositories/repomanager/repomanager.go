package repomanager

import (
	"context"
	"database/sql"

	"github.com/Shikhar-srivastav/task-manager/internal/dbx"
	"github.com/Shikhar-srivastav/task-manager/internal/server/repositories/sessiontokens"
	"github.com/Shikhar-srivastav/task-manager/internal/server/repositories/tasks"
	"github.com/Shikhar-srivastav/task-manager/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	SessionTokens(db dbx.DBTX) sessiontokens.Repository
	Tasks(db dbx.DBTX) tasks.Repository
}
