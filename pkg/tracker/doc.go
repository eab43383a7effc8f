// Package tracker implements the visitor identity and session state machine
// behind legacy urchin-style analytics beacons, together with the page view
// and event tracking API built on top of it.
//
// A Tracker is an explicit context object owned by the caller. It persists a
// durable anonymous identity and session counters in a kvstore.Store, keeps
// per-session runtime state in memory, encodes everything into the legacy
// utmcc cookie string and hands the finished beacon URL to a Dispatcher.
//
// # Architecture
//
//	┌──────────────┐  read/update  ┌────────────────┐
//	│ TrackPageview│ ────────────► │ identity &     │ ◄──► kvstore.Store
//	│ TrackEvent   │               │ session state  │
//	└──────────────┘               └────────────────┘
//	        │                              │
//	        ▼                              ▼
//	┌──────────────┐   utmcc       ┌────────────────┐
//	│ utm params   │ ◄──────────── │ utm.Cookie     │
//	└──────────────┘               └────────────────┘
//	        │ URL
//	        ▼
//	┌──────────────┐
//	│ Dispatcher   │ (fire-and-forget)
//	└──────────────┘
//
// # Session lifecycle
//
// Initialize (and SetAccount) bootstrap a session: the current session
// timestamp is taken from the clock, the request counter is reset and a new
// hit id is drawn. The visitor identity (user id + salt) is created only when
// missing, the session count is incremented, and the first/last session
// timestamps are written only when missing. ResetSession stamps a new last
// session timestamp without touching the counter.
//
// # Usage
//
//	t := tracker.New(kvstore.NewMemoryStore(),
//	    tracker.WithDispatcher(dispatch.NewHTTP(dispatch.DefaultConfig())),
//	)
//	if err := t.Initialize(ctx, "UA-XXXX-1"); err != nil {
//	    return err
//	}
//	t.SetDomain("example.com")
//	_ = t.TrackPageview(ctx, tracker.Pageview{Path: "/home", Title: "Home"})
//	_ = t.TrackEvent(ctx, tracker.Event{Category: "ui", Action: "click", Label: "button"})
//
// # Concurrency
//
// All operations on a Tracker are serialized by an internal mutex, so
// read-modify-write sequences on the store (such as incrementing the session
// count) are never interleaved within one Tracker. Two Trackers sharing the
// same keys in one store are not coordinated; use kvstore.Prefixed or a
// Registry to give each visitor its own namespace.
//
// # Errors
//
// Tracking never fails on bad input it can default (missing path, title,
// locale). Store failures are returned joined with kvstore.ErrStorage.
package tracker
