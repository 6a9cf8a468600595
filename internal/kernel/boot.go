package kernel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/shashiranjanraj/shopapp/app/services"
	"github.com/shashiranjanraj/shopapp/config"
	"github.com/shashiranjanraj/shopapp/pkg/cache"
	"github.com/shashiranjanraj/shopapp/pkg/docstore"
	"github.com/shashiranjanraj/shopapp/pkg/docstore/memstore"
	"github.com/shashiranjanraj/shopapp/pkg/docstore/mongostore"
	"github.com/shashiranjanraj/shopapp/pkg/docstore/sqlstore"
	"github.com/shashiranjanraj/shopapp/pkg/logger"
	"github.com/shashiranjanraj/shopapp/pkg/migration"
	"github.com/shashiranjanraj/shopapp/pkg/workerpool"

	// Register SQL migrations.
	_ "github.com/shashiranjanraj/shopapp/database/migrations"
)

// App is a booted kernel together with the resources it owns.
type App struct {
	*Kernel
	Store docstore.Store

	closers []func(context.Context) error
}

// Boot loads configuration, connects the configured store, cache and log
// sink, and wires the kernel. Callers must Close the returned App.
func Boot(ctx context.Context) (*App, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	app := &App{}

	if uri := config.LogMongoURI(); uri != "" {
		h, err := logger.NewMongoHandler(ctx, uri, config.LogMongoDatabase(), config.LogMongoCollection(), slog.LevelInfo)
		if err != nil {
			logger.Warn("log sink: mongo unavailable, continuing with stdout only", "error", err)
		} else {
			logger.Setup(config.AppEnv(), h)
			app.closers = append(app.closers, func(context.Context) error { h.Close(); return nil })
		}
	}

	store, err := OpenStore(ctx, config.StoreDriver())
	if err != nil {
		_ = app.Close(ctx)
		return nil, err
	}
	app.Store = store
	app.closers = append(app.closers, store.Close)

	var c cache.Store = cache.Nop{}
	if addr := config.RedisAddr(); addr != "" {
		rdb, err := cache.NewRedis(ctx, addr, config.RedisPassword())
		if err != nil {
			logger.Warn("cache: redis unavailable, caching disabled", "addr", addr, "error", err)
		} else {
			c = rdb
			app.closers = append(app.closers, func(context.Context) error { return rdb.Close() })
		}
	}

	pool := workerpool.New(config.CatalogWorkers())
	app.closers = append(app.closers, func(context.Context) error { pool.Shutdown(); return nil })

	app.Kernel = New(Options{
		Store:    store,
		Cache:    c,
		CacheTTL: config.CacheTTL(),
		Policy: services.Policy{
			CascadeGarmentDelete:  config.GarmentDeletePolicy() == config.PolicyCascade,
			DetachOnProductDelete: config.ProductDeletePolicy() == config.PolicyDetach,
		},
		EntityAwareMalformedID: config.EntityAwareMalformedID(),
		Pool:                   pool,
	})

	logger.Info("kernel: booted", "store", config.StoreDriver(), "redis", config.RedisAddr() != "")
	return app, nil
}

// OpenStore connects the document store for driver. SQL drivers run any
// pending migrations before the store is returned.
func OpenStore(ctx context.Context, driver string) (docstore.Store, error) {
	switch driver {
	case "memory":
		return memstore.New(), nil
	case "mongo":
		s, err := mongostore.Connect(ctx, config.MongoURI(), config.MongoDatabase())
		if err != nil {
			return nil, fmt.Errorf("store: %w", err)
		}
		return s, nil
	default:
		s, err := sqlstore.Open(driver, config.DatabaseDSN())
		if err != nil {
			return nil, fmt.Errorf("store: %w", err)
		}
		if err := migration.New(s.DB(), io.Discard).Run(); err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("store: %w", err)
		}
		return s, nil
	}
}

// Close releases every resource acquired by Boot, newest first.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
