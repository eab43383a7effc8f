package tracker_test

import (
	"context"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gabeacon/pkg/kvstore"
	"github.com/dmitrymomot/gabeacon/pkg/tracker"
)

// Values produced by a constant 0.5 random source.
const (
	halfHitID  = "549999999"
	halfUserID = "54999999"
	halfSalt   = "1573741823"
)

var baseTime = time.UnixMilli(1_700_000_000_000)

type recorder struct {
	mu   sync.Mutex
	urls []string
	sent chan string
}

func newRecorder() *recorder {
	return &recorder{sent: make(chan string, 16)}
}

func (r *recorder) Dispatch(_ context.Context, u string) {
	r.mu.Lock()
	r.urls = append(r.urls, u)
	r.mu.Unlock()
	select {
	case r.sent <- u:
	default:
	}
}

func (r *recorder) last(t *testing.T) string {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.urls, "no beacon dispatched")
	return r.urls[len(r.urls)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.urls)
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func half() float64 { return 0.5 }

func newTestTracker(t *testing.T, store kvstore.Store, opts ...tracker.Option) (*tracker.Tracker, *recorder, *clock) {
	t.Helper()
	rec := newRecorder()
	clk := &clock{now: baseTime}
	base := []tracker.Option{
		tracker.WithDispatcher(rec),
		tracker.WithClock(clk.Now),
		tracker.WithRandom(half),
	}
	return tracker.New(store, append(base, opts...)...), rec, clk
}

func query(t *testing.T, raw string) url.Values {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u.Query()
}

type failingStore struct {
	kvstore.Store
	failSet bool
	err     error
}

func (f *failingStore) Set(ctx context.Context, key, value string) error {
	if f.failSet {
		return f.err
	}
	return f.Store.Set(ctx, key, value)
}
