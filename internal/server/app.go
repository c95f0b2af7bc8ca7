// Package server initializes and runs the application server. It opens the
// database, applies migrations, wires services onto the HTTP API, and
// handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/Shikhar-srivastav/task-manager/internal/logging"
	"github.com/Shikhar-srivastav/task-manager/internal/server/allowlist"
	"github.com/Shikhar-srivastav/task-manager/internal/server/avatars"
	"github.com/Shikhar-srivastav/task-manager/internal/server/config"
	"github.com/Shikhar-srivastav/task-manager/internal/server/mail"
	"github.com/Shikhar-srivastav/task-manager/internal/server/repositories/repomanager"
	"github.com/Shikhar-srivastav/task-manager/internal/server/rest"
	"github.com/Shikhar-srivastav/task-manager/internal/server/services"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	httpServer *rest.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	l := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(l)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	allow := allowlist.NewRegistry()
	allow.Register("users", "name", "email", "password", "age")
	allow.Register("tasks", "desc", "completed")

	var dispatcher mail.Dispatcher = mail.NoopDispatcher{}
	if cfg.SMTPHost != "" {
		dispatcher = mail.NewSMTPDispatcher(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
	}

	var avatarStore avatars.Store
	switch cfg.AvatarStorage {
	case "s3":
		avatarStore = avatars.NewS3Store(cfg)
	default:
		avatarStore = avatars.NewPostgresStore(rm.Users(db))
	}

	userService := services.NewUserService(db, rm, allow, dispatcher, logger, cfg)
	taskService := services.NewTaskService(db, rm, allow)
	avatarService := services.NewAvatarService(avatarStore, cfg.AvatarSize)

	httpServer := rest.NewServer(cfg.EndpointAddr, logger,
		userService, taskService, avatarService, cfg.AvatarMaxUploadBytes)

	return &App{config: cfg, logger: logger, db: db, httpServer: httpServer}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
