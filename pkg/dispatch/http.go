package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/net/http2"

	"github.com/dmitrymomot/gabeacon/pkg/async"
	"github.com/dmitrymomot/gabeacon/pkg/logger"
)

// HTTP sends beacons as GET requests in background goroutines.
type HTTP struct {
	client    *http.Client
	userAgent string
	log       *slog.Logger
	inflight  async.Group
}

// NewHTTP creates an HTTP dispatcher.
func NewHTTP(cfg Config, opts ...Option) *HTTP {
	o := applyOptions(opts)

	client := o.client
	if client == nil {
		client = NewClient(cfg)
	}

	return &HTTP{
		client:    client,
		userAgent: cfg.UserAgent,
		log:       o.logger.With(logger.Component("dispatch")),
	}
}

// NewClient builds the HTTP client used for beacon delivery. With cfg.HTTP2
// the transport negotiates HTTP/2 over TLS and keeps HTTP/1.1 for plain
// http collectors.
func NewClient(cfg Config) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.HTTP2 {
		// ConfigureTransport only fails if the transport was already configured.
		_ = http2.ConfigureTransport(transport)
	}

	return &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}
}

// Dispatch sends url in the background. Failures are logged at Warn.
func (d *HTTP) Dispatch(ctx context.Context, url string) {
	d.Send(ctx, url)
}

// Send sends url in the background and returns a Future with the response
// status code. Cancellation of ctx does not abort the request.
func (d *HTTP) Send(ctx context.Context, url string) *async.Future[int] {
	return async.Track(&d.inflight, context.WithoutCancel(ctx), url, d.send)
}

// Wait blocks until every in-flight beacon completes or ctx is done.
func (d *HTTP) Wait(ctx context.Context) error {
	return d.inflight.Wait(ctx)
}

func (d *HTTP) send(ctx context.Context, url string) (int, error) {
	start := time.Now()

	status, err := d.do(ctx, url)
	if err != nil {
		err = errors.Join(ErrDispatchFailed, err)
		d.log.WarnContext(ctx, "beacon delivery failed",
			logger.URL(url),
			logger.Error(err),
			logger.Duration(time.Since(start)),
		)
		return status, err
	}

	d.log.DebugContext(ctx, "beacon delivered",
		slog.Int("status", status),
		logger.Duration(time.Since(start)),
	)
	return status, nil
}

func (d *HTTP) do(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, errors.Join(ErrUnexpectedStatus, fmt.Errorf("status %d", resp.StatusCode))
	}
	return resp.StatusCode, nil
}
