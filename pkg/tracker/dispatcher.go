package tracker

import (
	"context"

	"github.com/dmitrymomot/gabeacon/pkg/kvstore"
)

// Store is the durable key-value store identity and counters live in.
type Store = kvstore.Store

// Dispatcher emits a finished beacon URL. Implementations must not block the
// caller on network I/O and never report delivery results.
type Dispatcher interface {
	Dispatch(ctx context.Context, url string)
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(ctx context.Context, url string)

// Dispatch calls f(ctx, url).
func (f DispatcherFunc) Dispatch(ctx context.Context, url string) {
	f(ctx, url)
}

type nopDispatcher struct{}

func (nopDispatcher) Dispatch(context.Context, string) {}
