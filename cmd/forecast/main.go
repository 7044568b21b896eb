package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/weather-forecast-service/internal/adapter/dwd"
	httpadapter "github.com/couchcryptid/weather-forecast-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/weather-forecast-service/internal/adapter/kafka"
	"github.com/couchcryptid/weather-forecast-service/internal/cache"
	"github.com/couchcryptid/weather-forecast-service/internal/config"
	"github.com/couchcryptid/weather-forecast-service/internal/observability"
	"github.com/couchcryptid/weather-forecast-service/internal/refresh"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	client := dwd.NewClient(cfg.DWDTimeout, logger, metrics)
	client.SetEndpoints(dwd.Endpoints(cfg.DWDEndpoints))
	provider, err := dwd.NewProvider(client, dwd.Target{
		StationID: cfg.StationID,
		CellID:    cfg.WarnCellID,
		Location:  cfg.Location,
	})
	if err != nil {
		logger.Error("failed to create provider", "error", err)
		os.Exit(1)
	}
	logger.Info("forecast provider ready", "identifier", provider.Identifier())

	store := cache.NewMemory(cfg.CacheEntries, metrics)
	svc := refresh.New(provider, store,
		refresh.WithLogger(logger),
		refresh.WithMetrics(metrics),
		refresh.WithCheckInterval(cfg.CheckInterval),
		refresh.WithLocation(cfg.ScheduleLocation),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Publish views to Kafka (feature-flagged via KAFKA_ENABLED).
	var publisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		if cfg.KafkaCreateTopic {
			if err := kafkaadapter.EnsureTopic(ctx, cfg.KafkaBrokers[0], cfg.KafkaTopic, 1); err != nil {
				logger.Error("failed to create kafka topic", "topic", cfg.KafkaTopic, "error", err)
				os.Exit(1)
			}
		}
		publisher = kafkaadapter.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger, metrics)
		svc.Subscribe(publisher)
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, logger)

	// Start HTTP server. /readyz reports not ready until a refresh completes.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Initial refresh, then the schedule loop.
	go func() {
		if err := svc.Initialize(ctx, cfg.RefreshSchedule); err != nil {
			logger.Error("refresh initialization error", "error", err)
			stop()
			return
		}
		if err := svc.Run(ctx); err != nil {
			logger.Error("refresh loop error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
