package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nlecomte/filegate/internal/config"
	"github.com/nlecomte/filegate/internal/db"
	"github.com/nlecomte/filegate/internal/events"
	"github.com/nlecomte/filegate/internal/handlers"
	"github.com/nlecomte/filegate/internal/httpserver"
	"github.com/nlecomte/filegate/internal/logging"
	"github.com/nlecomte/filegate/internal/metrics"
	loggingmw "github.com/nlecomte/filegate/internal/middleware/logging"
	"github.com/nlecomte/filegate/internal/repo"
	"github.com/nlecomte/filegate/internal/seed"
	"github.com/nlecomte/filegate/internal/service"
)

const listenRetries = 20

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LogLevel)

	ctx := logging.IntoContext(context.Background(), logger)

	gdb, err := db.Open(ctx, cfg.DSN())
	if err != nil {
		logger.Error("database init failed", "error", err)
		os.Exit(1)
	}

	users := &repo.UserRepo{DB: gdb}
	m := metrics.New()

	var producer *events.Producer
	if cfg.KafkaAddress != "" {
		producer = events.NewProducer(cfg.KafkaAddress, events.DefaultTopic)
	}

	if err := ensureUploadDir(cfg.UploadDir); err != nil {
		logger.Error("uploads dir init failed", "dir", cfg.UploadDir, "error", err)
		os.Exit(1)
	}

	if err := seed.Run(ctx, users, cfg.BcryptCost); err != nil {
		logger.Warn("seed check failed", "error", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), m.Middleware(), loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		AuthHandler: &handlers.AuthHandler{
			Auth: &service.AuthService{
				Users:     users,
				Metrics:   m,
				Events:    producer,
				JWTSecret: []byte(cfg.JWTSecret),
				TokenTTL:  cfg.TokenTTL,
			},
		},
		UserHandler: &handlers.UserHandler{
			Users: &service.UserService{
				Users:      users,
				Metrics:    m,
				Events:     producer,
				BcryptCost: cfg.BcryptCost,
			},
			Production: cfg.Production(),
		},
		FileHandler: &handlers.FileHandler{
			Files: &service.FileService{Root: cfg.UploadDir, Metrics: m},
		},
		Metrics:   m,
		JWTSecret: []byte(cfg.JWTSecret),
	}
	httpserver.Register(e, &deps)

	ln, port, err := listenWithRetry(cfg.Port, logger)
	if err != nil {
		logger.Error("listen failed", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server started", "port", port, "env", cfg.Env)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}

// listenWithRetry walks forward from the configured port when it is already
// taken, the way the dev setup expects.
func listenWithRetry(port int, logger *slog.Logger) (net.Listener, int, error) {
	for i := 0; ; i++ {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			return ln, port, nil
		}
		if !errors.Is(err, syscall.EADDRINUSE) || i >= listenRetries {
			return nil, 0, err
		}
		logger.Warn("port already in use, trying next", "port", port)
		port++
	}
}

// ensureUploadDir creates the downloads root with a couple of sample files so
// a fresh checkout has something to serve.
func ensureUploadDir(dir string) error {
	if _, err := os.Stat(dir); err == nil {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	samples := map[string]string{
		"photo.jpg":    "fake image content",
		"document.pdf": "fake pdf content",
	}
	for name, content := range samples {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}
