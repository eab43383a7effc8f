package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/dmitrymomot/gabeacon/pkg/logger"
)

// Server runs an http.Handler until its context ends, then shuts down and
// drains.
type Server struct {
	cfg     Config
	log     *slog.Logger
	ln      net.Listener
	onStart []func(net.Addr)
	drains  []func(context.Context) error

	mu       sync.Mutex
	srv      *http.Server
	shutdown sync.Once
	err      error
}

// New returns a Server for cfg.
func New(cfg Config, opts ...Option) *Server {
	s := &Server{
		cfg: cfg.withDefaults(),
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run serves handler and blocks until ctx is done or the listener fails.
// Cancellation triggers Shutdown; its error is returned.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
		MaxHeaderBytes:    s.cfg.MaxHeaderBytes,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}
	s.srv = srv
	ln := s.ln
	s.mu.Unlock()

	if ln == nil {
		var err error
		ln, err = new(net.ListenConfig).Listen(ctx, "tcp", s.cfg.Addr)
		if err != nil {
			return errors.Join(ErrListen, err)
		}
	}

	s.log.InfoContext(ctx, "http server listening", slog.String("addr", ln.Addr().String()))
	for _, fn := range s.onStart {
		fn(ln.Addr())
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case <-ctx.Done():
		err := s.Shutdown(context.WithoutCancel(ctx))
		<-errCh
		return err
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Join(ErrServe, err)
	}
}

// Shutdown stops accepting requests, waits for in-flight ones and then runs
// the drains, all within Config.ShutdownTimeout. Repeated calls return the
// result of the first one.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	s.shutdown.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
		defer cancel()

		var err error
		if serr := srv.Shutdown(ctx); serr != nil {
			err = serr
		}
		for _, drain := range s.drains {
			if derr := drain(ctx); derr != nil {
				s.log.WarnContext(ctx, "drain failed", logger.Error(derr))
				err = errors.Join(err, derr)
			}
		}
		if err != nil {
			s.err = errors.Join(ErrShutdown, err)
		}
		s.log.InfoContext(ctx, "http server stopped")
	})
	return s.err
}
