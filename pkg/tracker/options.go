package tracker

import (
	"log/slog"
	"sync"
	"time"
)

// Option is a functional option for configuring the Tracker
type Option func(*Tracker)

// WithConfig applies domain, SSL, locale and debounce settings.
func WithConfig(cfg Config) Option {
	return func(t *Tracker) {
		t.domain = cfg.Domain
		t.useSSL = cfg.UseSSL
		t.locale = normalizeLocale(cfg.LocaleLang, cfg.LocaleCountry)
		if cfg.VisibilityDebounce > 0 {
			t.debounce = cfg.VisibilityDebounce
		}
	}
}

// WithDispatcher sets the beacon dispatcher.
func WithDispatcher(d Dispatcher) Option {
	return func(t *Tracker) {
		if d != nil {
			t.dispatcher = d
		}
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.log = l
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// WithRandom overrides the uniform [0,1) random source.
func WithRandom(random func() float64) Option {
	return func(t *Tracker) {
		if random != nil {
			t.random = random
		}
	}
}

// WithDebounce sets the visibility debounce delay.
func WithDebounce(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.debounce = d
		}
	}
}

// withMutex makes the Tracker serialize on mu instead of its own lock.
func withMutex(mu *sync.Mutex) Option {
	return func(t *Tracker) {
		if mu != nil {
			t.mu = mu
		}
	}
}
