package collect

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/gabeacon/pkg/httpserver"
	"github.com/dmitrymomot/gabeacon/pkg/ratelimiter"
)

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the handler logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// WithHealthChecks adds readiness checks served on /healthz.
func WithHealthChecks(checks ...httpserver.Check) Option {
	return func(h *Handler) {
		h.checks = append(h.checks, checks...)
	}
}

// WithClock overrides the time source used for session resets.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// WithRateLimiter limits tracking requests per client IP.
func WithRateLimiter(b *ratelimiter.Bucket) Option {
	return func(h *Handler) {
		h.limiter = b
	}
}
