package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"reviewdesk/internal/amqp"
	"reviewdesk/internal/cache"
	"reviewdesk/internal/cli"
	"reviewdesk/internal/config"
	applog "reviewdesk/internal/log"
	"reviewdesk/internal/worker"
)

const (
	summaryInterval = 5 * time.Minute
	trailTTL        = 24 * time.Hour
	cleanupInterval = 10 * time.Minute
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL")).WithComponent(applog.ComponentWorker)
	logger.Info("Starting review-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	if !cfg.AMQPEnabled() {
		logger.Error("AMQP_URL is required for the review worker",
			applog.FieldErrorType, applog.ErrorTypeConfiguration)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("Worker failed", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}

func run(cfg *config.Config, logger *applog.Logger) error {
	ctx, stop := cli.GracefulShutdown(context.Background(), logger)
	defer stop()

	client, err := amqp.NewClient(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		return fmt.Errorf("initialize AMQP client: %w", err)
	}
	defer client.Close()

	audit := worker.NewAuditWorker(logger, 0, trailTTL)
	caches := cache.NewManager()
	caches.Register(audit)
	caches.StartCleanup(cleanupInterval)
	defer caches.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := client.ConsumeReviewEvents(gctx, audit.HandleReviewEvent)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		ticker := time.NewTicker(summaryInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				audit.LogSummary(context.Background())
				return nil
			case <-ticker.C:
				audit.LogSummary(gctx)
			}
		}
	})
	return g.Wait()
}
