// @title       Pets API
// @version     1.0
// @description CRUD mínimo sobre una colección de mascotas persistida como un documento JSON.
// @BasePath    /
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pets-service/internal/config"
	"pets-service/internal/platform/logger"
	"pets-service/internal/platform/metrics"
	"pets-service/internal/router"

	"github.com/joho/godotenv"
)

const (
	readTimeout       = 5 * time.Second
	readHeaderTimeout = 5 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 15 * time.Second
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	appLog, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	var m *metrics.Manager
	if cfg.MetricsEnabled {
		m = metrics.NewManager()
	}

	repo, closeRepo, err := router.NewRepository(ctx, cfg, appLog)
	if err != nil {
		appLog.Error("storage init failed", map[string]any{"driver": cfg.StorageDriver, "err": err})
		os.Exit(1)
	}
	defer func() {
		if err := closeRepo(); err != nil {
			appLog.Warn("storage close failed", map[string]any{"err": err})
		}
	}()

	h := router.NewRouter(router.Options{
		Repo:             repo,
		Logger:           appLog,
		Metrics:          m,
		SkipIDAssignment: !cfg.AssignIDs,
		Swagger:          cfg.SwaggerEnabled,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("server is running", map[string]any{
			"port":    cfg.Port,
			"driver":  cfg.StorageDriver,
			"metrics": cfg.MetricsEnabled,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		appLog.Info("shutting down", nil)
	case err := <-errCh:
		if err != nil {
			appLog.Error("server error", map[string]any{"err": err})
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("server shutdown failed", map[string]any{"err": err})
	}
	appLog.Info("server stopped", nil)
}

func newLogger(cfg *config.Config) (logger.Logger, error) {
	lvl, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	format, err := logger.ParseFormat(cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	return logger.New(logger.Options{
		Level:  lvl,
		Format: format,
		App:    cfg.AppName,
		Output: os.Stdout,
	}), nil
}
