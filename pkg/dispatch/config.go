package dispatch

import "time"

// Config holds beacon delivery configuration
type Config struct {
	// Timeout bounds a single beacon request.
	Timeout time.Duration `env:"BEACON_TIMEOUT" envDefault:"5s"`
	// UserAgent is sent with every beacon request.
	UserAgent string `env:"BEACON_USER_AGENT" envDefault:"gabeacon/1.0"`
	// HTTP2 negotiates HTTP/2 with TLS collectors.
	HTTP2 bool `env:"BEACON_HTTP2" envDefault:"true"`
	// DryRun logs beacon URLs instead of sending them.
	DryRun bool `env:"BEACON_DRY_RUN" envDefault:"false"`
}

// DefaultConfig returns default dispatch configuration
func DefaultConfig() Config {
	return Config{
		Timeout:   5 * time.Second,
		UserAgent: "gabeacon/1.0",
		HTTP2:     true,
	}
}
