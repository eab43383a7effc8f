package kvstore

import "errors"

var (
	// ErrStorage wraps any failure reported by the underlying store.
	ErrStorage = errors.New("kvstore.storage_failure")

	// ErrEmptyKey indicates an accessor was created without a key name.
	ErrEmptyKey = errors.New("kvstore.empty_key")
)
