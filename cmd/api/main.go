package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/coffee-storefront/api/routes"
	"github.com/angelmondragon/coffee-storefront/internal/catalog"
	"github.com/angelmondragon/coffee-storefront/internal/snapshot"
	"github.com/angelmondragon/coffee-storefront/internal/storefront"
	"github.com/angelmondragon/coffee-storefront/pkg/config"
	"github.com/angelmondragon/coffee-storefront/pkg/db"
	"github.com/angelmondragon/coffee-storefront/pkg/enums"
	"github.com/angelmondragon/coffee-storefront/pkg/env"
	"github.com/angelmondragon/coffee-storefront/pkg/instance"
	"github.com/angelmondragon/coffee-storefront/pkg/logger"
	"github.com/angelmondragon/coffee-storefront/pkg/metrics"
	"github.com/angelmondragon/coffee-storefront/pkg/migrate"
	"github.com/angelmondragon/coffee-storefront/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"storage":  string(cfg.Storage.Driver),
		"instance": instance.GetID(),
	})
	ctx = logg.WithSessionKey(ctx, cfg.Shop.SessionKey)

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	cat, err := catalog.Load(cfg.Shop.CatalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	store, closeStore, err := openStore(ctx, cfg, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, closeStore())
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	storefrontMetrics := metrics.NewStorefrontMetrics(reg)

	svc, err := storefront.New(storefront.Options{
		Catalog:  cat,
		Store:    store,
		Shipping: cfg.Shop.ShippingFee,
		Logger:   logg,
		Metrics:  storefrontMetrics,
	})
	if err != nil {
		return fmt.Errorf("build storefront: %w", err)
	}
	if err := svc.Restore(ctx); err != nil {
		return fmt.Errorf("restore storefront state: %w", err)
	}

	unsubscribe := svc.Subscribe(func(ev storefront.Event) {
		evCtx := logg.WithFields(ctx, map[string]any{
			"event":      string(ev.Kind),
			"item_id":    ev.ItemID,
			"cart_lines": len(ev.Cart),
		})
		if ev.OrderID > 0 {
			evCtx = logg.WithOrderID(evCtx, ev.OrderID)
		}
		logg.Debug(evCtx, "cart.updated")
	})
	defer unsubscribe()

	addr := ":" + env.Port(cfg.App.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, svc, store, promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logg.Info(logg.WithField(ctx, "addr", addr), "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		logg.Info(ctx, "shutting down api server")
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// openStore builds the snapshot backend selected by COFFEE_STORAGE_DRIVER and
// returns a func that releases its connections.
func openStore(ctx context.Context, cfg *config.Config, logg *logger.Logger) (snapshot.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Driver {
	case enums.StorageDriverMemory:
		return snapshot.NewMemoryStore(), noop, nil

	case enums.StorageDriverRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, nil, fmt.Errorf("bootstrap redis: %w", err)
		}
		return snapshot.NewRedisStore(client, cfg.Shop.SessionKey), client.Close, nil

	case enums.StorageDriverPostgres, enums.StorageDriverSQLite:
		client, err := db.New(ctx, cfg.Storage.Driver, cfg.DB, logg)
		if err != nil {
			return nil, nil, fmt.Errorf("bootstrap database: %w", err)
		}
		if err := migrate.MaybeAutoRun(ctx, cfg, logg, client); err != nil {
			return nil, nil, multierr.Append(fmt.Errorf("auto migrate: %w", err), client.Close())
		}
		return snapshot.NewSQLStore(client, cfg.Shop.SessionKey), client.Close, nil
	}
	return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
}
