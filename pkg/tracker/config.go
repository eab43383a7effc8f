package tracker

import "time"

// Config holds tracker configuration
type Config struct {
	// AccountID is the property id sent as utmac (e.g. "UA-XXXX-1").
	AccountID string `env:"GA_ACCOUNT_ID"`
	// Domain is the host name sent as utmhn.
	Domain string `env:"GA_DOMAIN"`
	// UseSSL selects the https collector endpoint.
	UseSSL bool `env:"GA_USE_SSL" envDefault:"false"`

	LocaleLang    string `env:"GA_LOCALE_LANG" envDefault:"en"`
	LocaleCountry string `env:"GA_LOCALE_COUNTRY" envDefault:"us"`

	// VisibilityDebounce delays visibility page views so rapid blur/focus flips coalesce.
	VisibilityDebounce time.Duration `env:"GA_VISIBILITY_DEBOUNCE" envDefault:"1s"`

	// RegistrySize caps the number of live trackers kept by a Registry.
	RegistrySize int `env:"GA_REGISTRY_SIZE" envDefault:"10000"`
}

// DefaultConfig returns default tracker configuration
func DefaultConfig() Config {
	return Config{
		LocaleLang:         "en",
		LocaleCountry:      "us",
		VisibilityDebounce: time.Second,
		RegistrySize:       10000,
	}
}

// NewFromConfig creates a Tracker from the provided Config.
// The account id is applied by Initialize, not here.
func NewFromConfig(store Store, cfg Config, opts ...Option) *Tracker {
	configOpts := []Option{
		WithConfig(cfg),
	}

	configOpts = append(configOpts, opts...)

	return New(store, configOpts...)
}
