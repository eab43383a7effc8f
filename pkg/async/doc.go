// Package async runs work in the background and tracks it until completion.
//
// Async starts a function in its own goroutine and returns a Future for its
// result. Track does the same while counting the work in a Group, so callers
// that fire work and forget about it can still drain everything in flight
// on shutdown with Group.Wait.
//
//	var g async.Group
//	f := async.Track(&g, ctx, url, send)
//	status, err := f.AwaitWithTimeout(time.Second)
//	...
//	_ = g.Wait(shutdownCtx)
//
// If the context passed to Async or Track is already canceled the function
// is never called and the Future completes with the context error.
package async
