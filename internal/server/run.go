package server

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/WUZhiyun112/travelplanner/internal/observability"
	"github.com/WUZhiyun112/travelplanner/internal/pkg/config"
	"github.com/WUZhiyun112/travelplanner/pkg/logger"
)

// Run boots the whole server process: env, config, logging,
// observability, routes. It blocks until shutdown completes.
func Run() error {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Level(cfg.Debug)); err != nil {
		return err
	}
	l := logger.Log
	defer l.Sync()

	otelShutdown, err := observability.InitProviders("travelplanner", ":"+cfg.MetricsPort, l)
	if err != nil {
		return err
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			l.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
		}
	}()

	srv, err := New(cfg, l)
	if err != nil {
		return err
	}
	defer srv.Close()

	srv.SetRouter(SetupRouter(cfg, srv.DBPool(), l))

	// pprof on a separate port, not exposed publicly.
	StartPprofServer(":" + cfg.PprofPort)

	httpServer := srv.HTTPServer()

	done := make(chan bool, 1)
	go GracefulShutdown(httpServer, l, done)

	l.Info("Server starting", zap.String("port", cfg.ServerPort))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		l.Error("Server error", zap.Error(err))
	}

	<-done
	l.Info("Graceful shutdown complete")

	return nil
}
