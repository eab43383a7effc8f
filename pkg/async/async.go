package async

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Await waits for the asynchronous function to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitWithTimeout waits for the asynchronous function to complete with a timeout.
// If the timeout occurs before completion, returns ErrTimeout.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-time.After(timeout):
		var zero U
		return zero, ErrTimeout
	}
}

// IsComplete checks if the asynchronous function is complete without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async executes fn asynchronously and returns a Future.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	return run(ctx, param, fn, nil)
}

// Group counts work started with Track until it completes.
// The zero value is ready to use.
type Group struct {
	wg sync.WaitGroup
}

// Track executes fn like Async and keeps it counted in g until it returns.
func Track[T any, U any](g *Group, ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	g.wg.Add(1)
	return run(ctx, param, fn, g.wg.Done)
}

// Wait blocks until all tracked work completes or ctx is done.
func (g *Group) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Join(ErrPending, ctx.Err())
	}
}

func run[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error), onDone func()) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer func() {
			close(f.done)
			if onDone != nil {
				onDone()
			}
		}()

		// Skip the call entirely when the context is already canceled.
		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}

		f.result, f.err = fn(ctx, param)
	}()

	return f
}
