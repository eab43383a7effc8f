package kvstore

import (
	"context"
	"errors"
)

// Key binds a single named slot of a Store.
type Key struct {
	store Store
	name  string
}

// NewKey returns an accessor for name. When initial is non-nil and the key is
// currently absent, *initial is written before returning.
func NewKey(ctx context.Context, store Store, name string, initial *string) (*Key, error) {
	if name == "" {
		return nil, ErrEmptyKey
	}

	k := &Key{store: store, name: name}
	if initial == nil {
		return k, nil
	}

	_, ok, err := store.Get(ctx, name)
	if err != nil {
		return nil, errors.Join(ErrStorage, err)
	}
	if !ok {
		if err := k.Set(ctx, *initial); err != nil {
			return nil, err
		}
	}

	return k, nil
}

// Name returns the underlying store key.
func (k *Key) Name() string {
	return k.name
}

// Get returns the stored value. Legacy sentinel strings are reported as absent.
func (k *Key) Get(ctx context.Context) (string, bool, error) {
	value, ok, err := k.store.Get(ctx, k.name)
	if err != nil {
		return "", false, errors.Join(ErrStorage, err)
	}
	if IsUnset(value, ok) {
		return "", false, nil
	}
	return value, true, nil
}

// Set stores value under the key.
func (k *Key) Set(ctx context.Context, value string) error {
	if err := k.store.Set(ctx, k.name, value); err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}

// Remove deletes the key from the store.
func (k *Key) Remove(ctx context.Context) error {
	if err := k.store.Delete(ctx, k.name); err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}

// String returns the current value, or an empty string when the key is
// absent or the store cannot be read.
func (k *Key) String() string {
	v, _, _ := k.Get(context.Background())
	return v
}
