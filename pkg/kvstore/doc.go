// Package kvstore defines the durable key-value contract used to persist
// visitor identity and session counters, plus a small accessor that binds a
// single named key to a store.
//
// Any datastore that satisfies the Store interface can be plugged in. A
// concurrent in-memory implementation ships with the package; Redis,
// PostgreSQL, MongoDB, SQLite and S3 back-ends live in their own packages.
//
// # Absence
//
// Store.Get reports absence through its boolean result instead of a sentinel
// value. Legacy data written by string-coercing clients may still contain the
// literals "undefined", "NaN" or "null"; Key.Get treats those exactly like a
// missing key so they never leak into callers.
//
// # Usage
//
//	store := kvstore.NewMemoryStore()
//	uid, err := kvstore.NewKey(ctx, store, "mba_ga_uid", nil)
//	if err != nil {
//	    return err
//	}
//	if _, ok, _ := uid.Get(ctx); !ok {
//	    _ = uid.Set(ctx, "12345678")
//	}
//
// Multiple independent identities can share one backend through Prefixed:
//
//	visitorStore := kvstore.Prefixed(store, visitorID)
//
// # Errors
//
// Back-end failures are returned joined with ErrStorage so callers can
// detect them with errors.Is without depending on driver types.
package kvstore
