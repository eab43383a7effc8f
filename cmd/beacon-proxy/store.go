package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/gabeacon/pkg/config"
	"github.com/dmitrymomot/gabeacon/pkg/httpserver"
	"github.com/dmitrymomot/gabeacon/pkg/kvstore"
	"github.com/dmitrymomot/gabeacon/pkg/logger"
	"github.com/dmitrymomot/gabeacon/pkg/mongo"
	"github.com/dmitrymomot/gabeacon/pkg/pg"
	"github.com/dmitrymomot/gabeacon/pkg/redis"
	"github.com/dmitrymomot/gabeacon/pkg/s3store"
	"github.com/dmitrymomot/gabeacon/pkg/sqlite"
)

var errUnknownDriver = errors.New("unknown store driver")

// backend is an opened store with its readiness checks and cleanup.
type backend struct {
	store  kvstore.Store
	checks []httpserver.Check
	close  func(context.Context) error
}

func newBackend(driver string, store kvstore.Store, closeFn func(context.Context) error) *backend {
	b := &backend{store: store, close: closeFn}
	if p, ok := store.(kvstore.Pinger); ok {
		b.checks = append(b.checks, httpserver.Check{Name: driver, Fn: p.Ping})
	}
	if b.close == nil {
		b.close = func(context.Context) error { return nil }
	}
	return b
}

func openStore(ctx context.Context, driver string, log *slog.Logger) (*backend, error) {
	log = log.With(logger.Component("store"), logger.Driver(driver))

	switch driver {
	case "memory":
		log.WarnContext(ctx, "using in-memory store, visitor state is lost on restart")
		return newBackend(driver, kvstore.NewMemoryStore(), nil), nil

	case "redis":
		var cfg redis.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		client, err := redis.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		store := redis.NewStore(client, cfg)
		return newBackend(driver, store, func(context.Context) error { return store.Close() }), nil

	case "postgres":
		var cfg pg.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		pool, err := pg.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(ctx, pool, cfg, log.With(logger.Component("migration"))); err != nil {
			pool.Close()
			return nil, err
		}
		return newBackend(driver, pg.NewStore(pool), func(context.Context) error {
			pool.Close()
			return nil
		}), nil

	case "mongo":
		var cfg mongo.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		db, err := mongo.ConnectDatabase(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return newBackend(driver, mongo.NewStore(db, cfg), db.Client().Disconnect), nil

	case "sqlite":
		var cfg sqlite.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		db, err := sqlite.Open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return newBackend(driver, sqlite.NewStore(db), func(context.Context) error { return db.Close() }), nil

	case "s3":
		var cfg s3store.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		store, err := s3store.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return newBackend(driver, store, nil), nil
	}

	return nil, fmt.Errorf("%w: %q", errUnknownDriver, driver)
}
