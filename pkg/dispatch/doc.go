// Package dispatch delivers finished beacon URLs.
//
// Every dispatcher satisfies tracker.Dispatcher: Dispatch never blocks the
// caller on network I/O and never reports delivery results back. HTTP fires
// a GET in the background and discards the response body. Log writes the URL
// to a logger instead of sending it (dry runs). Recorder keeps URLs in
// memory. Func adapts a plain function.
//
// New picks HTTP or Log from Config:
//
//	d := dispatch.New(cfg, dispatch.WithLogger(log))
//	t := tracker.New(store, tracker.WithDispatcher(d))
//	...
//	_ = d.Wait(shutdownCtx)
package dispatch
