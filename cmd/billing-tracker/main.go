package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ougirez/billing-tracker/internal/api"
	"github.com/ougirez/billing-tracker/internal/pkg/config"
	"github.com/ougirez/billing-tracker/internal/pkg/logger"
	"github.com/ougirez/billing-tracker/internal/pkg/store"
	"github.com/ougirez/billing-tracker/internal/pkg/store/xpgx"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Until the config is read, log at info level as JSON.
	_ = logger.Init("info", "json")

	cfg, err := config.Load(".env")
	if err != nil {
		logger.Fatalf(ctx, "config.Load: %s", err.Error())
	}
	if err = logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		logger.Fatalf(ctx, "logger.Init: %s", err.Error())
	}
	defer logger.Sync()

	pool, err := xpgx.Connect(ctx, xpgx.ConnectOpts{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DBMaxConns,
		Timeout:  cfg.DBConnectTimeout,
	})
	if err != nil {
		logger.Fatalf(ctx, "failed to connect to database: %s", err.Error())
	}
	defer pool.Close()

	if err = store.Bootstrap(ctx, pool); err != nil {
		logger.Fatalf(ctx, "store.Bootstrap: %s", err.Error())
	}

	svc, err := api.NewAPIService(cfg, store.NewStore(pool))
	if err != nil {
		logger.Fatalf(ctx, "api.NewAPIService: %s", err.Error())
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return svc.Serve(cfg.Addr())
	})
	eg.Go(func() error {
		<-egCtx.Done()
		logger.Info(ctx, "shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return svc.Shutdown(shutdownCtx)
	})

	if err = eg.Wait(); err != nil {
		logger.Errorf(ctx, "server stopped: %s", err.Error())
	}
}
