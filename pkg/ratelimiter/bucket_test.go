package ratelimiter_test

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gabeacon/pkg/ratelimiter"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newStore(t *testing.T) (*ratelimiter.MemoryStore, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	store := ratelimiter.NewMemoryStore(
		ratelimiter.WithClock(clock.Now),
		ratelimiter.WithCleanupInterval(0),
	)
	t.Cleanup(store.Close)
	return store, clock
}

func TestNewBucket(t *testing.T) {
	t.Parallel()

	store, _ := newStore(t)

	_, err := ratelimiter.NewBucket(nil, ratelimiter.DefaultConfig())
	assert.ErrorIs(t, err, ratelimiter.ErrNoStore)

	for _, cfg := range []ratelimiter.Config{
		{Capacity: 0, RefillRate: 1, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 0, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 1, RefillInterval: 0},
	} {
		_, err := ratelimiter.NewBucket(store, cfg)
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
	}

	b, err := ratelimiter.NewBucket(store, ratelimiter.DefaultConfig())
	require.NoError(t, err)
	_, err = b.AllowN(context.Background(), "k", 0)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)
}

func TestBucketAllow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store, clock := newStore(t)
	b, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 3, RefillRate: 1, RefillInterval: time.Second})
	require.NoError(t, err)

	for want := 2; want >= 0; want-- {
		res, err := b.Allow(ctx, "203.0.113.7")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
		assert.Equal(t, want, res.Remaining)
		assert.Equal(t, 3, res.Limit)
	}

	res, err := b.Allow(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, res.Allowed())

	other, err := b.Allow(ctx, "198.51.100.2")
	require.NoError(t, err)
	assert.True(t, other.Allowed(), "keys are independent")

	clock.Advance(time.Second)
	res, err = b.Allow(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, res.Allowed())
	assert.Equal(t, 0, res.Remaining)

	clock.Advance(time.Hour)
	res, err = b.Allow(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Remaining, "refill is capped at capacity")

	require.NoError(t, b.Reset(ctx, "203.0.113.7"))
	res, err = b.Allow(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Remaining)
}

func TestResultHeaders(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store, clock := newStore(t)
	b, err := ratelimiter.NewBucket(store,
		ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute},
		ratelimiter.WithNow(clock.Now),
	)
	require.NoError(t, err)

	res, err := b.Allow(ctx, "k")
	require.NoError(t, err)
	w := httptest.NewRecorder()
	res.SetHeaders(w)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Empty(t, w.Header().Get("Retry-After"))
	assert.Zero(t, res.RetryAfter())

	res, err = b.Allow(ctx, "k")
	require.NoError(t, err)
	w = httptest.NewRecorder()
	res.SetHeaders(w)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestMemoryStoreCleanup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	store := ratelimiter.NewMemoryStore(
		ratelimiter.WithClock(clock.Now),
		ratelimiter.WithCleanupInterval(5*time.Millisecond),
		ratelimiter.WithStaleAfter(time.Minute),
	)
	t.Cleanup(store.Close)

	_, _, err := store.ConsumeTokens(ctx, "k", 1, ratelimiter.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	clock.Advance(2 * time.Minute)
	require.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)

	store.Close()
	store.Close()
}
