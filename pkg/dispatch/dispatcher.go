package dispatch

import (
	"context"
	"log/slog"
	"sync"
)

// Dispatcher is a dispatcher that can be drained on shutdown.
type Dispatcher interface {
	Dispatch(ctx context.Context, url string)
	Wait(ctx context.Context) error
}

// New returns a Log dispatcher when cfg.DryRun is set and an HTTP
// dispatcher otherwise.
func New(cfg Config, opts ...Option) Dispatcher {
	if cfg.DryRun {
		o := applyOptions(opts)
		return NewLog(o.logger)
	}
	return NewHTTP(cfg, opts...)
}

// Func adapts a function to a dispatcher.
type Func func(ctx context.Context, url string)

// Dispatch calls f(ctx, url).
func (f Func) Dispatch(ctx context.Context, url string) {
	f(ctx, url)
}

// Log writes beacon URLs to a logger at Info level.
type Log struct {
	log *slog.Logger
}

// NewLog creates a Log dispatcher. A nil logger uses slog.Default.
func NewLog(l *slog.Logger) *Log {
	if l == nil {
		l = slog.Default()
	}
	return &Log{log: l}
}

// Dispatch logs url.
func (d *Log) Dispatch(ctx context.Context, url string) {
	d.log.InfoContext(ctx, "beacon", slog.String("url", url))
}

// Wait returns immediately.
func (d *Log) Wait(context.Context) error { return nil }

// Recorder keeps every dispatched URL in memory.
type Recorder struct {
	mu   sync.Mutex
	urls []string
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Dispatch records url.
func (r *Recorder) Dispatch(_ context.Context, url string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.urls = append(r.urls, url)
}

// URLs returns a copy of the recorded URLs in dispatch order.
func (r *Recorder) URLs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.urls))
	copy(out, r.urls)
	return out
}

// Last returns the most recent URL.
func (r *Recorder) Last() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.urls) == 0 {
		return "", false
	}
	return r.urls[len(r.urls)-1], true
}

// Reset drops all recorded URLs.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.urls = nil
}

// Wait returns immediately.
func (r *Recorder) Wait(context.Context) error { return nil }
