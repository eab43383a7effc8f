package main

import (
	"github.com/dmitrymomot/gabeacon/pkg/collect"
	"github.com/dmitrymomot/gabeacon/pkg/cookie"
	"github.com/dmitrymomot/gabeacon/pkg/dispatch"
	"github.com/dmitrymomot/gabeacon/pkg/httpserver"
	"github.com/dmitrymomot/gabeacon/pkg/logger"
	"github.com/dmitrymomot/gabeacon/pkg/ratelimiter"
	"github.com/dmitrymomot/gabeacon/pkg/tracker"
)

// Config is the top-level service configuration. Backend settings are
// loaded separately for the driver in use so that unused backends never
// require their variables.
type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"beacon-proxy"`
	StoreDriver string `env:"STORE_DRIVER" envDefault:"memory"` // memory, redis, postgres, mongo, sqlite or s3
	MountPath   string `env:"COLLECT_MOUNT_PATH" envDefault:"/collect"`

	Log       logger.Config
	Tracker   tracker.Config
	Dispatch  dispatch.Config
	Collect   collect.Config
	Cookie    cookie.Config
	RateLimit ratelimiter.Config
	Server    httpserver.Config
}
