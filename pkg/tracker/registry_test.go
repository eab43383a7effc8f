package tracker_test

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gabeacon/pkg/kvstore"
	"github.com/dmitrymomot/gabeacon/pkg/tracker"
)

func TestRegistry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	newRegistry := func(size int) (*tracker.Registry, *kvstore.MemoryStore, *recorder) {
		store := kvstore.NewMemoryStore()
		rec := newRecorder()
		cfg := tracker.DefaultConfig()
		cfg.AccountID = "UA-REG"
		cfg.RegistrySize = size
		return tracker.NewRegistry(store, cfg, tracker.WithDispatcher(rec)), store, rec
	}

	t.Run("same visitor returns same tracker", func(t *testing.T) {
		t.Parallel()
		reg, _, _ := newRegistry(10)

		a, err := reg.Get(ctx, "visitor-a")
		require.NoError(t, err)
		again, err := reg.Get(ctx, "visitor-a")
		require.NoError(t, err)

		assert.Same(t, a, again)
		assert.Equal(t, 1, reg.Len())
	})

	t.Run("visitors are isolated", func(t *testing.T) {
		t.Parallel()
		reg, store, rec := newRegistry(10)

		a, err := reg.Get(ctx, "visitor-a")
		require.NoError(t, err)
		b, err := reg.Get(ctx, "visitor-b")
		require.NoError(t, err)

		_, ok, err := store.Get(ctx, "visitor-a:"+tracker.KeyUserID)
		require.NoError(t, err)
		assert.True(t, ok)
		_, ok, err = store.Get(ctx, "visitor-b:"+tracker.KeyUserID)
		require.NoError(t, err)
		assert.True(t, ok)

		require.NoError(t, a.TrackPageview(ctx, tracker.Pageview{Path: "/a"}))
		assert.Equal(t, "UA-REG", query(t, rec.last(t)).Get("utmac"))

		snapB, err := b.State(ctx)
		require.NoError(t, err)
		assert.Equal(t, "/", snapB.Runtime.LastTrackedPath)
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		t.Parallel()
		reg, _, _ := newRegistry(2)

		a, err := reg.Get(ctx, "a")
		require.NoError(t, err)
		_, err = reg.Get(ctx, "b")
		require.NoError(t, err)
		_, err = reg.Get(ctx, "a")
		require.NoError(t, err)
		_, err = reg.Get(ctx, "c")
		require.NoError(t, err)

		assert.Equal(t, 2, reg.Len())
		assert.False(t, reg.Remove("b"))

		again, err := reg.Get(ctx, "a")
		require.NoError(t, err)
		assert.Same(t, a, again)
	})

	t.Run("recreated tracker starts a new session", func(t *testing.T) {
		t.Parallel()
		reg, _, _ := newRegistry(10)

		_, err := reg.Get(ctx, "v")
		require.NoError(t, err)
		assert.True(t, reg.Remove("v"))

		tr, err := reg.Get(ctx, "v")
		require.NoError(t, err)
		snap, err := tr.State(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), snap.Counters.SessionCount)
	})

	t.Run("close", func(t *testing.T) {
		t.Parallel()
		reg, _, _ := newRegistry(10)

		tr, err := reg.Get(ctx, "v")
		require.NoError(t, err)
		require.NoError(t, tr.ScheduleVisibility(ctx, tracker.Hidden))

		reg.Close()
		assert.Equal(t, 0, reg.Len())
		assert.False(t, tr.HasPending())
	})
}

// gatedStore blocks reads of keys under prefix until release is closed.
// Only the first blocks reads are held; later ones pass through.
type gatedStore struct {
	kvstore.Store
	prefix  string
	blocks  atomic.Int64
	entered chan struct{}
	release chan struct{}
}

func newGatedStore(prefix string, blocks int64) *gatedStore {
	g := &gatedStore{
		Store:   kvstore.NewMemoryStore(),
		prefix:  prefix,
		entered: make(chan struct{}, 16),
		release: make(chan struct{}),
	}
	g.blocks.Store(blocks)
	return g
}

func (g *gatedStore) Get(ctx context.Context, key string) (string, bool, error) {
	if strings.HasPrefix(key, g.prefix) && g.blocks.Add(-1) >= 0 {
		select {
		case g.entered <- struct{}{}:
		default:
		}
		<-g.release
	}
	return g.Store.Get(ctx, key)
}

func (g *gatedStore) waitEntered(t *testing.T) {
	t.Helper()
	select {
	case <-g.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("store read was never reached")
	}
}

func TestRegistry_SlowStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	newRegistry := func(store tracker.Store, size int) *tracker.Registry {
		cfg := tracker.DefaultConfig()
		cfg.AccountID = "UA-REG"
		cfg.RegistrySize = size
		return tracker.NewRegistry(store, cfg, tracker.WithDispatcher(newRecorder()))
	}

	t.Run("cached visitor is served while another initializes", func(t *testing.T) {
		t.Parallel()
		store := newGatedStore("slow:", 1<<30)
		reg := newRegistry(store, 10)

		fast, err := reg.Get(ctx, "fast")
		require.NoError(t, err)

		slowDone := make(chan error, 1)
		go func() {
			_, err := reg.Get(ctx, "slow")
			slowDone <- err
		}()
		store.waitEntered(t)

		got := make(chan *tracker.Tracker, 1)
		go func() {
			tr, err := reg.Get(ctx, "fast")
			assert.NoError(t, err)
			got <- tr
		}()
		select {
		case tr := <-got:
			assert.Same(t, fast, tr)
		case <-time.After(time.Second):
			t.Fatal("cached lookup waited on another visitor's initialization")
		}

		other, err := reg.Get(ctx, "other")
		require.NoError(t, err)
		assert.NotNil(t, other)

		close(store.release)
		require.NoError(t, <-slowDone)
		assert.Equal(t, 3, reg.Len())
	})

	t.Run("concurrent first use initializes once", func(t *testing.T) {
		t.Parallel()
		store := newGatedStore("slow:", 1)
		reg := newRegistry(store, 10)

		const callers = 8
		results := make([]*tracker.Tracker, callers)
		var wg sync.WaitGroup
		for i := range callers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				tr, err := reg.Get(ctx, "slow")
				assert.NoError(t, err)
				results[i] = tr
			}()
		}
		store.waitEntered(t)
		close(store.release)
		wg.Wait()

		for _, tr := range results[1:] {
			assert.Same(t, results[0], tr)
		}
		snap, err := results[0].State(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), snap.Counters.SessionCount)
	})

	t.Run("waiter honours its context", func(t *testing.T) {
		t.Parallel()
		store := newGatedStore("slow:", 1)
		reg := newRegistry(store, 10)

		go func() { _, _ = reg.Get(ctx, "slow") }()
		store.waitEntered(t)

		waitCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()
		_, err := reg.Get(waitCtx, "slow")
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		close(store.release)
		require.Eventually(t, func() bool { return reg.Len() == 1 }, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("evicted and recreated trackers share a lock", func(t *testing.T) {
		t.Parallel()
		store := newGatedStore("v:", 0)
		reg := newRegistry(store, 1)

		old, err := reg.Get(ctx, "v")
		require.NoError(t, err)
		_, err = reg.Get(ctx, "w")
		require.NoError(t, err)
		require.Equal(t, 1, reg.Len())

		// Hold the evicted tracker inside a store read.
		store.blocks.Store(1)
		busy := make(chan error, 1)
		go func() {
			_, err := old.State(ctx)
			busy <- err
		}()
		store.waitEntered(t)

		recreated := make(chan *tracker.Tracker, 1)
		go func() {
			tr, err := reg.Get(ctx, "v")
			assert.NoError(t, err)
			recreated <- tr
		}()
		assert.Never(t, func() bool { return len(recreated) > 0 }, 150*time.Millisecond, 10*time.Millisecond)

		close(store.release)
		require.NoError(t, <-busy)
		tr := <-recreated
		assert.NotSame(t, old, tr)

		snap, err := tr.State(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), snap.Counters.SessionCount)
	})
}
