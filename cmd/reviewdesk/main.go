package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"reviewdesk/internal/amqp"
	"reviewdesk/internal/backend"
	"reviewdesk/internal/cli"
	"reviewdesk/internal/config"
	apphttp "reviewdesk/internal/http"
	applog "reviewdesk/internal/log"
	"reviewdesk/internal/metrics"
	"reviewdesk/internal/notify"
	"reviewdesk/internal/services"
	"reviewdesk/internal/store"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

func run(cfg *config.Config, logger *applog.Logger) error {
	ctx, stop := cli.GracefulShutdown(context.Background(), logger)
	defer stop()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return fmt.Errorf("backend config: %w", err)
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return fmt.Errorf("create %s backend: %w", backendCfg.Type, err)
	}
	if res.Cleanup != nil {
		defer func() {
			if err := res.Cleanup(); err != nil {
				logger.Warn("Backend cleanup failed", applog.FieldError, err)
			}
		}()
	}

	seed, err := res.Reader.LoadExpenses(ctx)
	if err != nil {
		return fmt.Errorf("load seed expenses: %w", err)
	}
	st, err := store.New(seed)
	if err != nil {
		return fmt.Errorf("seed store: %w", err)
	}
	logger.Info("Seeded review store",
		applog.FieldBackend, backendCfg.Type.String(),
		"expenses", st.Len())

	notifiers := notify.Multi{notify.NewLogger(logger)}
	if cfg.AMQPEnabled() {
		client, err := amqp.NewClient(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			logger.Warn("AMQP unavailable, review events disabled", applog.FieldError, err)
		} else {
			defer client.Close()
			notifiers = append(notifiers, client)
		}
	}

	m := metrics.New()
	reviews := services.NewReviewService(st, notifiers,
		services.WithStrictNotFound(cfg.StrictNotFound),
		services.WithMetrics(m),
		services.WithLogger(logger),
	)

	srv := apphttp.NewServer(cfg.Addr(), apphttp.Deps{
		Reviews:            reviews,
		Metrics:            m,
		Logger:             logger,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting reviewdesk server",
			"port", cfg.Port,
			applog.FieldBackend, backendCfg.Type.String(),
			"strict_not_found", cfg.StrictNotFound,
			"amqp", cfg.AMQPEnabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := cli.ShutdownContext(cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
