package redis

import "time"

// Config holds connection and key layout settings for the Redis store.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"` // redis://:password@host:6379/db
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`             // Pings before Connect gives up.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`            // Delay between pings.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`          // Upper bound for the whole Connect call.
	KeyPrefix      string        `env:"REDIS_KEY_PREFIX" envDefault:"gabeacon"`          // Namespace for every key, e.g. "gabeacon:mba_ga_uid".
	KeyTTL         time.Duration `env:"REDIS_KEY_TTL" envDefault:"0"`                    // Idle time before visitor state expires; reads and writes reset it. Zero keeps keys forever.
}
