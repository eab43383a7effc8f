package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/gabeacon/pkg/collect"
	"github.com/dmitrymomot/gabeacon/pkg/config"
	"github.com/dmitrymomot/gabeacon/pkg/cookie"
	"github.com/dmitrymomot/gabeacon/pkg/dispatch"
	"github.com/dmitrymomot/gabeacon/pkg/environment"
	"github.com/dmitrymomot/gabeacon/pkg/httpserver"
	"github.com/dmitrymomot/gabeacon/pkg/logger"
	"github.com/dmitrymomot/gabeacon/pkg/ratelimiter"
	"github.com/dmitrymomot/gabeacon/pkg/tracker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg Config
	config.MustLoad(&cfg) // panic on error

	env := environment.Parse(cfg.AppEnv)
	log := logger.New(
		logger.WithEnvironment(string(env), cfg.ServiceName),
		logger.WithConfig(cfg.Log),
		logger.WithContextExtractors(collect.LoggerExtractors()...),
	)
	logger.SetAsDefault(log)

	if cfg.Tracker.AccountID == "" {
		log.Error("GA_ACCOUNT_ID is not set", logger.Component("tracker"))
		os.Exit(1)
	}

	backend, err := openStore(ctx, cfg.StoreDriver, log)
	if err != nil {
		log.Error("Failed to open store", logger.Component("store"), logger.Driver(cfg.StoreDriver), logger.Error(err))
		os.Exit(1)
	}

	dispatcher := dispatch.New(cfg.Dispatch, dispatch.WithLogger(log))
	registry := tracker.NewRegistry(backend.store, cfg.Tracker,
		tracker.WithDispatcher(dispatcher),
		tracker.WithLogger(log),
	)

	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		log.Error("Failed to create cookie manager", logger.Component("cookie"), logger.Error(err))
		os.Exit(1)
	}

	collectOpts := []collect.Option{
		collect.WithLogger(log),
		collect.WithHealthChecks(backend.checks...),
	}
	if cfg.RateLimit.Enabled() {
		limits := ratelimiter.NewMemoryStore()
		defer limits.Close()

		bucket, err := ratelimiter.NewBucket(limits, cfg.RateLimit)
		if err != nil {
			log.Error("Invalid rate limit configuration", logger.Component("ratelimiter"), logger.Error(err))
			os.Exit(1)
		}
		collectOpts = append(collectOpts, collect.WithRateLimiter(bucket))
	}

	h, err := collect.New(registry, cookies, cfg.Collect, collectOpts...)
	if err != nil {
		log.Error("Failed to create collect handler", logger.Component("collect"), logger.Error(err))
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(environment.Middleware(env))
	r.Get("/live", httpserver.HealthCheckHandler(log))
	r.Mount(cfg.MountPath, h.Handle())

	s := httpserver.New(cfg.Server,
		httpserver.WithLogger(log),
		httpserver.WithDrain(func(context.Context) error {
			registry.Close()
			return nil
		}),
		httpserver.WithDrain(dispatcher.Wait),
		httpserver.WithDrain(backend.close),
	)

	if err := s.Run(ctx, r); err != nil {
		log.Error("Failed to run server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	log.Info("Application stopped")
}
