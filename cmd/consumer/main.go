package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spacesedan/moodlens/config"
	"github.com/spacesedan/moodlens/internal/clients"
	"github.com/spacesedan/moodlens/internal/clients/kafka_client"
	"github.com/spacesedan/moodlens/internal/consumers"
	"github.com/spacesedan/moodlens/internal/logging"
	"github.com/spacesedan/moodlens/internal/processing"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	settings := config.GetSettings()
	logging.InitLogger(settings.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := processing.NewRuntime(settings)
	if err != nil {
		slog.Error("[Main] Failed to build analyzer", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer rt.Close()
	rt.StartHealthMonitor(ctx)

	cfg := kafka_client.GetKafkaConfig(settings)

	var producer *kafka_client.Producer
	for {
		producer, err = kafka_client.NewProducer(cfg)
		if err == nil {
			break
		}
		slog.Warn("[Main] Kafka init failed, retrying...", slog.String("error", err.Error()))
		select {
		case <-ctx.Done():
			return
		case <-time.After(5 * time.Second):
		}
	}
	defer producer.Close()

	var dedupe consumers.Deduper
	valkeyClient, err := clients.NewValkeyClient(clients.ValkeyOptions{
		Address:  settings.ValkeyInitAddress,
		Password: settings.ValkeyPassword,
		UseTLS:   settings.ValkeyTLS,
	})
	if err != nil {
		slog.Warn("[Main] Valkey unavailable, duplicate requests across restarts will be re-analyzed",
			slog.String("error", err.Error()))
	} else {
		defer valkeyClient.Close()
		dedupe = valkeyClient
	}

	requestConsumer := consumers.NewAnalysisRequestConsumer(rt.Analyzer, producer, dedupe, cfg)
	kafka_client.RegisterConsumer(cfg.RequestTopic, requestConsumer.Start)

	if err := kafka_client.StartConsumer(ctx, cfg); err != nil {
		slog.Error("[Main] Failed to start consumer",
			slog.String("error", err.Error()))
	}
}
