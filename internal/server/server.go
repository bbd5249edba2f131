package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/hostel/internal/bootstrap"
	"github.com/yigit/hostel/internal/config"
)

// Server holds the state for the HTTP server.
type Server struct {
	config *config.Config
	router *gin.Engine
	deps   *bootstrap.Dependencies
	logger zerolog.Logger
	http   *http.Server
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	database := bootstrap.SetupDatabase(cfg, lgr)

	deps, err := bootstrap.BuildDependencies(cfg, database, lgr)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	router := bootstrap.SetupRouter(cfg, deps, lgr)

	return &Server{
		config: cfg,
		router: router,
		deps:   deps,
		logger: lgr,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown.
func (s *Server) Run() error {
	s.http = &http.Server{
		Addr:         s.config.ListenAddr(),
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	if s.deps.Scheduler != nil {
		s.deps.Scheduler.Start()
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			_ = s.Shutdown(context.Background())
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully stops the server and closes resources.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var errs []error

	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			errs = append(errs, err)
		}
	}

	if s.deps.Scheduler != nil {
		if err := s.deps.Scheduler.Shutdown(); err != nil {
			s.logger.Error().Err(err).Msg("Scheduler shutdown error")
			errs = append(errs, err)
		}
	}

	s.logger.Info().Msg("Closing database connection pool...")
	s.deps.Database.Close()

	s.logger.Info().Msg("Server shutdown process complete.")
	return errors.Join(errs...)
}
