package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spacesedan/moodlens/config"
	"github.com/spacesedan/moodlens/internal/logging"
	"github.com/spacesedan/moodlens/internal/processing"
	"github.com/spacesedan/moodlens/internal/server"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	settings := config.GetSettings()
	logging.InitLogger(settings.LogLevel)

	rt, err := processing.NewRuntime(settings)
	if err != nil {
		slog.Error("[Main] Failed to build analyzer", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer rt.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt.StartHealthMonitor(ctx)

	httpServer := &http.Server{
		Addr:              settings.HTTPAddr,
		Handler:           server.New(rt.Analyzer, rt.Healthy, settings.MaxBodyBytes),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("[Main] HTTP server started",
			slog.String("addr", settings.HTTPAddr),
			slog.String("classifier_backend", settings.ClassifierBackend))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Main] HTTP server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		slog.Info("[Main] Received shutdown signal")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Main] HTTP shutdown failed", slog.String("error", err.Error()))
	}
}
