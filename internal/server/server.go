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
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/yigit/learnhub/internal/bootstrap"
	"github.com/yigit/learnhub/internal/config"
	"github.com/yigit/learnhub/internal/db"
	"github.com/yigit/learnhub/internal/jobs"
	"github.com/yigit/learnhub/internal/pkg/helpers"
)

// Server holds the state for the HTTP server.
type Server struct {
	config   *config.Config
	router   *gin.Engine
	database *db.PostgresDB
	redis    *redis.Client
	jobs     *jobs.Manager
	logger   zerolog.Logger
	http     *http.Server
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	database, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	s := &Server{
		config:   cfg,
		database: database,
		logger:   lgr,
	}

	deps, err := bootstrap.BuildDependencies(cfg, database, lgr)
	if err != nil {
		s.closeResources()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}
	s.redis = deps.Redis

	s.router, err = bootstrap.SetupRouter(cfg, deps, lgr)
	if err != nil {
		s.closeResources()
		return nil, fmt.Errorf("failed to setup router: %w", err)
	}

	s.jobs, err = bootstrap.SetupJobs(cfg, deps, lgr)
	if err != nil {
		s.closeResources()
		return nil, fmt.Errorf("failed to setup jobs: %w", err)
	}

	return s, nil
}

// Run starts the HTTP server and handles graceful shutdown.
func (s *Server) Run() error {
	s.logger.Info().Str("port", s.config.Server.Port).Msg("Starting server...")

	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  helpers.ParseDuration(s.config.Server.ReadTimeout, 15*time.Second),
		WriteTimeout: helpers.ParseDuration(s.config.Server.WriteTimeout, 30*time.Second),
		IdleTimeout:  120 * time.Second,
	}

	s.jobs.Start()

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

// Shutdown stops accepting requests, waits for running jobs and then
// closes the database pool and the Redis client.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, helpers.ParseDuration(s.config.Server.ShutdownGrace, 10*time.Second))
	defer cancel()

	var shutdownErr error

	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownErr = errors.Join(shutdownErr, err)
		} else {
			s.logger.Info().Msg("HTTP server gracefully stopped.")
		}
	}

	if s.jobs != nil {
		s.logger.Info().Msg("Stopping job scheduler...")
		if err := s.jobs.Stop(ctx); err != nil {
			s.logger.Error().Err(err).Msg("Job scheduler stop error")
			shutdownErr = errors.Join(shutdownErr, err)
		}
	}

	s.closeResources()

	s.logger.Info().Msg("Server shutdown process complete.")
	return shutdownErr
}

func (s *Server) closeResources() {
	if s.database != nil {
		s.logger.Info().Msg("Closing database connection pool...")
		s.database.Close()
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("Redis client close error")
		}
	}
}
