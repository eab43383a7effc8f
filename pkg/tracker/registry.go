package tracker

import (
	"container/list"
	"context"
	"runtime"
	"sync"
	"weak"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/gabeacon/pkg/kvstore"
	"github.com/dmitrymomot/gabeacon/pkg/logger"
)

type registryEntry struct {
	visitorID string
	tracker   *Tracker
}

// Registry keeps one initialized Tracker per visitor on top of a shared
// store. Each visitor's keys are namespaced with kvstore.Prefixed. When the
// registry is full the least recently used tracker is dropped and its
// pending visibility timer canceled; its durable state stays in the store.
//
// Store I/O never runs under the registry lock: concurrent first requests
// for one visitor share a single initialization, and other visitors are
// not blocked by it. Every Tracker built for a visitor shares one mutex
// with any evicted Tracker of that visitor still in use, so session
// counter updates stay serialized per visitor.
type Registry struct {
	store    Store
	cfg      Config
	opts     []Option
	capacity int
	flight   singleflight.Group

	mu       sync.Mutex
	items    map[string]*list.Element
	eviction *list.List
	locks    map[string]weak.Pointer[sync.Mutex]
}

// NewRegistry creates a registry. Capacity comes from cfg.RegistrySize.
func NewRegistry(store Store, cfg Config, opts ...Option) *Registry {
	capacity := cfg.RegistrySize
	if capacity <= 0 {
		capacity = DefaultConfig().RegistrySize
	}
	return &Registry{
		store:    store,
		cfg:      cfg,
		opts:     opts,
		capacity: capacity,
		items:    make(map[string]*list.Element),
		eviction: list.New(),
		locks:    make(map[string]weak.Pointer[sync.Mutex]),
	}
}

// Get returns the tracker for visitorID, creating and initializing it with
// the configured account id on first use. Waiting for another request's
// initialization of the same visitor stops when ctx is done.
func (r *Registry) Get(ctx context.Context, visitorID string) (*Tracker, error) {
	if t, ok := r.cached(visitorID); ok {
		return t, nil
	}

	ch := r.flight.DoChan(visitorID, func() (any, error) {
		return r.create(context.WithoutCancel(ctx), visitorID)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Tracker), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (r *Registry) cached(visitorID string) (*Tracker, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	elem, ok := r.items[visitorID]
	if !ok {
		return nil, false
	}
	r.eviction.MoveToFront(elem)
	return elem.Value.(*registryEntry).tracker, true
}

func (r *Registry) create(ctx context.Context, visitorID string) (*Tracker, error) {
	// A flight that finished between the cache miss and DoChan already
	// stored the tracker.
	if t, ok := r.cached(visitorID); ok {
		return t, nil
	}

	opts := append([]Option{WithConfig(r.cfg)}, r.opts...)
	opts = append(opts, withMutex(r.visitorLock(visitorID)))
	t := New(kvstore.Prefixed(r.store, visitorID), opts...)
	t.log = t.log.With(logger.VisitorID(visitorID))
	if err := t.Initialize(ctx, r.cfg.AccountID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.items[visitorID] = r.eviction.PushFront(&registryEntry{visitorID: visitorID, tracker: t})
	var evicted *Tracker
	if r.eviction.Len() > r.capacity {
		evicted = r.removeElement(r.eviction.Back())
	}
	r.mu.Unlock()

	if evicted != nil {
		evicted.CancelPending()
	}
	return t, nil
}

// visitorLock returns the mutex shared by all live trackers of visitorID.
// The entry is dropped once no tracker references the mutex.
func (r *Registry) visitorLock(visitorID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	if mu := r.locks[visitorID].Value(); mu != nil {
		return mu
	}
	mu := new(sync.Mutex)
	wp := weak.Make(mu)
	r.locks[visitorID] = wp
	runtime.AddCleanup(mu, func(id string) {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.locks[id] == wp {
			delete(r.locks, id)
		}
	}, visitorID)
	return mu
}

// Remove drops the tracker for visitorID from memory.
func (r *Registry) Remove(visitorID string) bool {
	r.mu.Lock()
	elem, ok := r.items[visitorID]
	var removed *Tracker
	if ok {
		removed = r.removeElement(elem)
	}
	r.mu.Unlock()

	if removed != nil {
		removed.CancelPending()
	}
	return ok
}

// Len returns the number of live trackers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.eviction.Len()
}

// Close cancels every pending visibility timer and empties the registry.
func (r *Registry) Close() {
	r.mu.Lock()
	trackers := make([]*Tracker, 0, len(r.items))
	for _, elem := range r.items {
		trackers = append(trackers, elem.Value.(*registryEntry).tracker)
	}
	r.items = make(map[string]*list.Element)
	r.eviction.Init()
	r.mu.Unlock()

	for _, t := range trackers {
		t.CancelPending()
	}
}

// removeElement unlinks elem and returns its tracker. The caller cancels
// the tracker's timer after releasing r.mu. Must be called with r.mu held.
func (r *Registry) removeElement(elem *list.Element) *Tracker {
	r.eviction.Remove(elem)
	entry := elem.Value.(*registryEntry)
	delete(r.items, entry.visitorID)
	return entry.tracker
}
