package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shikhar-srivastav/task-manager/internal/logging"
)

// Server hosts the HTTP API on a gin engine.
type Server struct {
	addr      string
	logger    logging.Logger
	users     UserAPI
	tasks     TaskAPI
	avatars   AvatarAPI
	maxUpload int64

	engine *gin.Engine
	srv    *http.Server
}

// NewServer wires the handlers and routes. maxUpload caps the accepted
// avatar upload size in bytes.
func NewServer(addr string, logger logging.Logger, users UserAPI, tasks TaskAPI, avatars AvatarAPI, maxUpload int64) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		addr:      addr,
		logger:    logger,
		users:     users,
		tasks:     tasks,
		avatars:   avatars,
		maxUpload: maxUpload,
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(s.loggingMiddleware())
	engine.MaxMultipartMemory = maxUpload

	s.engine = engine
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/health", s.health)

	s.engine.POST("/users", s.register)
	s.engine.POST("/users/login", s.login)

	authed := s.engine.Group("", s.authMiddleware())
	{
		authed.POST("/users/logout", s.logout)
		authed.POST("/users/logoutAll", s.logoutAll)
		authed.GET("/users/me", s.me)
		authed.PATCH("/users/me", s.updateMe)
		authed.DELETE("/users/me", s.deleteMe)
		authed.POST("/users/me/avatar", s.uploadAvatar)
		authed.DELETE("/users/me/avatar", s.deleteAvatar)
		authed.GET("/users/:id/avatar", s.getAvatar)

		authed.POST("/tasks", s.createTask)
		authed.GET("/tasks", s.listTasks)
		authed.GET("/tasks/:id", s.getTask)
		authed.PATCH("/tasks/:id", s.updateTask)
		authed.DELETE("/tasks/:id", s.deleteTask)
	}
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server starting", "addr", s.addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(context.Background(), "shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		s.logger.Info(c.Request.Context(), "http request",
			"method", method,
			"path", path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}
