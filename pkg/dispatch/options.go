package dispatch

import (
	"log/slog"
	"net/http"
)

type options struct {
	logger *slog.Logger
	client *http.Client
}

// Option configures a dispatcher.
type Option func(*options)

// WithLogger sets the logger used to report delivery failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithHTTPClient replaces the client built from Config.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.client = c
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
