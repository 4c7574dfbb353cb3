package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/stockyard-hq/stockyard-backend/api/routes"
	internalauth "github.com/stockyard-hq/stockyard-backend/internal/auth"
	"github.com/stockyard-hq/stockyard-backend/internal/stock"
	"github.com/stockyard-hq/stockyard-backend/internal/users"
	"github.com/stockyard-hq/stockyard-backend/pkg/auth/session"
	"github.com/stockyard-hq/stockyard-backend/pkg/config"
	"github.com/stockyard-hq/stockyard-backend/pkg/db"
	"github.com/stockyard-hq/stockyard-backend/pkg/logger"
	"github.com/stockyard-hq/stockyard-backend/pkg/metrics"
	"github.com/stockyard-hq/stockyard-backend/pkg/migrate"
	"github.com/stockyard-hq/stockyard-backend/pkg/redis"
	"go.uber.org/multierr"
)

const (
	serviceName     = "stockyard-api"
	shutdownTimeout = 15 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logg := logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return multierr.Append(fmt.Errorf("auto-migrating: %w", err), dbClient.Close())
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return multierr.Append(fmt.Errorf("connecting to redis: %w", err), dbClient.Close())
	}

	closeAll := func() error {
		return multierr.Combine(redisClient.Close(), dbClient.Close())
	}

	sessions, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		return multierr.Append(fmt.Errorf("building session manager: %w", err), closeAll())
	}

	stockRepo := stock.NewRepository(dbClient.DB())
	usersRepo := users.NewRepository(dbClient.DB())

	stockSvc, err := stock.NewService(stockRepo, logg)
	if err != nil {
		return multierr.Append(fmt.Errorf("building stock service: %w", err), closeAll())
	}
	usersSvc, err := users.NewService(usersRepo, stockRepo, dbClient, logg)
	if err != nil {
		return multierr.Append(fmt.Errorf("building users service: %w", err), closeAll())
	}
	authSvc, err := internalauth.NewService(usersRepo, sessions, dbClient, cfg.JWT, cfg.Password, logg)
	if err != nil {
		return multierr.Append(fmt.Errorf("building auth service: %w", err), closeAll())
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	router := routes.NewRouter(routes.Dependencies{
		Config:   cfg,
		Logger:   logg,
		Stock:    stockSvc,
		Users:    usersSvc,
		Auth:     authSvc,
		Sessions: sessions,
		Redis:    redisClient,
		Metrics:  httpMetrics,
		Registry: registry,
		DB:       dbClient,
		Cache:    redisClient,
	})

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(logg.WithField(ctx, "port", cfg.App.Port), "http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logg.Info(context.Background(), "shutdown signal received")
	case err := <-errCh:
		return multierr.Append(fmt.Errorf("http server: %w", err), closeAll())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var closeErr error
	if err := server.Shutdown(shutdownCtx); err != nil {
		closeErr = multierr.Append(closeErr, fmt.Errorf("shutting down http server: %w", err))
	}
	closeErr = multierr.Append(closeErr, closeAll())

	if closeErr != nil {
		return closeErr
	}

	logg.Info(context.Background(), "shutdown complete")
	return nil
}
