package kvstore

import "context"

// Store defines the interface for durable string key-value persistence.
type Store interface {
	// Get returns the value stored under key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Pinger is implemented by stores backed by a remote or file database. The
// beacon proxy exposes Ping as a readiness check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Sentinel values produced by clients that coerced missing values to strings.
var unsetValues = map[string]struct{}{
	"undefined": {},
	"NaN":       {},
	"null":      {},
}

// IsUnset reports whether a raw stored value should be treated as absent.
func IsUnset(value string, ok bool) bool {
	if !ok {
		return true
	}
	_, sentinel := unsetValues[value]
	return sentinel
}
