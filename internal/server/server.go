package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	database "github.com/WUZhiyun112/travelplanner/internal/db"
	"github.com/WUZhiyun112/travelplanner/internal/pkg/config"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	dbPool *pgxpool.Pool
	router http.Handler
}

// New creates a Server. Plan history needs Postgres; when it is not
// configured the server runs with history disabled instead of failing.
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		logger: logger,
	}

	if cfg.HistoryEnabled {
		pool, err := s.setupDatabase(context.Background())
		if err != nil {
			return nil, fmt.Errorf("failed to setup database: %w", err)
		}
		s.dbPool = pool
	} else {
		logger.Warn("Plan history disabled: POSTGRES_PASSWORD not set")
	}

	return s, nil
}

func (s *Server) setupDatabase(ctx context.Context) (*pgxpool.Pool, error) {
	s.logger.Info("Setting up database connection and migrations")

	connURL := database.ConnectionURL(s.cfg.Postgres)

	pool, err := database.Init(connURL, s.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}

	database.WaitForDB(ctx, pool, s.logger)
	s.logger.Info("Connected to Postgres",
		zap.String("host", s.cfg.Postgres.Host),
		zap.String("port", s.cfg.Postgres.Port),
		zap.String("database", s.cfg.Postgres.DB),
	)

	if err := database.RunMigrations(connURL, s.logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return pool, nil
}

// HTTPServer creates and configures the HTTP server. WriteTimeout leaves
// room for the plan deadline: generation can legitimately take minutes.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         ":" + s.cfg.ServerPort,
		Handler:      s.router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: s.cfg.PlanTimeout + 10*time.Second,
	}
}

// SetRouter sets the HTTP router.
func (s *Server) SetRouter(router http.Handler) {
	s.router = router
}

// DBPool returns the history pool; nil when history is disabled.
func (s *Server) DBPool() *pgxpool.Pool {
	return s.dbPool
}

// Close releases server resources.
func (s *Server) Close() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
}
