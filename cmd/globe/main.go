package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/ghg-globe/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/ghg-globe/internal/adapter/kafka"
	"github.com/couchcryptid/ghg-globe/internal/config"
	"github.com/couchcryptid/ghg-globe/internal/domain"
	"github.com/couchcryptid/ghg-globe/internal/globe"
	"github.com/couchcryptid/ghg-globe/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	initial, err := domain.NewSelection(cfg.DefaultGas, cfg.DefaultYear, cfg.DefaultOpacity)
	if err != nil {
		logger.Error("invalid default selection", "error", err)
		os.Exit(1)
	}

	policy := domain.ClampSize
	if !cfg.SizeClamp {
		policy = domain.UnclampedSize
	}
	encoder := domain.NewEncoder(policy)

	// Report publishing is feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS.
	var (
		publisher globe.ReportPublisher
		writer    *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("report publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaReportsTopic)
	} else {
		logger.Info("report publishing disabled")
	}

	svc, err := globe.New(encoder, domain.NewTableLocator(nil), publisher, initial, logger, metrics)
	if err != nil {
		logger.Error("failed to create globe service", "error", err)
		os.Exit(1)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
