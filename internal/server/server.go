// Package server is a reference implementation of the task service HTTP
// contract, backed by a storage.Repository.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sandeepkv93/tasksync/internal/storage"
)

type Server struct {
	repo   storage.Repository
	logger zerolog.Logger
	now    func() time.Time
	newID  func() string
}

type Option func(*Server)

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Server) { s.newID = newID }
}

func New(repo storage.Repository, logger zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router returns the gin engine serving the task routes.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(s.requestLogger())
	router.Use(gin.Recovery())
	s.registerRoutes(router)
	return router
}

func (s *Server) registerRoutes(router gin.IRouter) {
	tasks := router.Group("/tasks")
	tasks.GET("", s.handleListTasks)
	tasks.POST("", s.handleCreateTask)
	tasks.PATCH("/:id", s.handleToggleTask)
	tasks.DELETE("/:id", s.handleDeleteTask)
}

// ListenAndServe serves on addr until ctx is done, then shuts down within
// shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	httpServer := &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().
			Str("addr", addr).
			Msg("setting up http server")
		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to listen and serve http")
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		return err
	}
	s.logger.Info().Msg("shut down http server")
	return <-errCh
}
