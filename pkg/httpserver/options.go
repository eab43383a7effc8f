package httpserver

import (
	"context"
	"log/slog"
	"net"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for lifecycle messages. Logs are discarded by default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithListener serves on ln instead of listening on Config.Addr.
func WithListener(ln net.Listener) Option {
	return func(s *Server) { s.ln = ln }
}

// WithOnStart registers a callback invoked with the bound address once the
// listener is open.
func WithOnStart(fn func(addr net.Addr)) Option {
	return func(s *Server) {
		if fn != nil {
			s.onStart = append(s.onStart, fn)
		}
	}
}

// WithDrain registers a function that runs after the listener has stopped,
// bounded by the shutdown timeout. Drains run in registration order.
func WithDrain(fn func(context.Context) error) Option {
	return func(s *Server) {
		if fn != nil {
			s.drains = append(s.drains, fn)
		}
	}
}
