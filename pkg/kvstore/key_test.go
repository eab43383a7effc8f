package kvstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gabeacon/pkg/kvstore"
)

type failingStore struct{ err error }

func (f failingStore) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingStore) Set(context.Context, string, string) error         { return f.err }
func (f failingStore) Delete(context.Context, string) error              { return f.err }

func ptr(s string) *string { return &s }

func TestNewKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("writes initial value when absent", func(t *testing.T) {
		t.Parallel()
		store := kvstore.NewMemoryStore()

		key, err := kvstore.NewKey(ctx, store, "k", ptr("v1"))
		require.NoError(t, err)

		v, ok, err := key.Get(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "v1", v)
	})

	t.Run("keeps existing value", func(t *testing.T) {
		t.Parallel()
		store := kvstore.NewMemoryStore()
		require.NoError(t, store.Set(ctx, "k", "existing"))

		key, err := kvstore.NewKey(ctx, store, "k", ptr("v1"))
		require.NoError(t, err)
		assert.Equal(t, "existing", key.String())
	})

	t.Run("nil initial leaves key absent", func(t *testing.T) {
		t.Parallel()
		store := kvstore.NewMemoryStore()

		key, err := kvstore.NewKey(ctx, store, "k", nil)
		require.NoError(t, err)
		assert.Equal(t, 0, store.Len())
		assert.Equal(t, "k", key.Name())
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()
		_, err := kvstore.NewKey(ctx, kvstore.NewMemoryStore(), "", nil)
		assert.ErrorIs(t, err, kvstore.ErrEmptyKey)
	})

	t.Run("backend failure", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("quota exceeded")
		_, err := kvstore.NewKey(ctx, failingStore{err: boom}, "k", ptr("v"))
		assert.ErrorIs(t, err, kvstore.ErrStorage)
		assert.ErrorIs(t, err, boom)
	})
}

func TestKey_Get(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for _, sentinel := range []string{"undefined", "NaN", "null"} {
		t.Run(sentinel, func(t *testing.T) {
			t.Parallel()
			store := kvstore.NewMemoryStore()
			require.NoError(t, store.Set(ctx, "k", sentinel))

			key, err := kvstore.NewKey(ctx, store, "k", nil)
			require.NoError(t, err)

			v, ok, err := key.Get(ctx)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Empty(t, v)
		})
	}

	t.Run("propagates backend error", func(t *testing.T) {
		t.Parallel()
		key, err := kvstore.NewKey(ctx, failingStore{err: errors.New("down")}, "k", nil)
		require.NoError(t, err)

		_, _, err = key.Get(ctx)
		assert.ErrorIs(t, err, kvstore.ErrStorage)
		assert.ErrorIs(t, key.Set(ctx, "v"), kvstore.ErrStorage)
		assert.ErrorIs(t, key.Remove(ctx), kvstore.ErrStorage)
		assert.Empty(t, key.String())
	})
}

func TestKey_Remove(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kvstore.NewMemoryStore()

	key, err := kvstore.NewKey(ctx, store, "k", ptr("v"))
	require.NoError(t, err)
	require.NoError(t, key.Remove(ctx))

	_, ok, err := key.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPrefixed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kvstore.NewMemoryStore()

	a := kvstore.Prefixed(store, "a")
	b := kvstore.Prefixed(store, "b")

	require.NoError(t, a.Set(ctx, "uid", "1"))
	require.NoError(t, b.Set(ctx, "uid", "2"))

	v, ok, err := store.Get(ctx, "a:uid")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	v, _, _ = b.Get(ctx, "uid")
	assert.Equal(t, "2", v)

	require.NoError(t, a.Delete(ctx, "uid"))
	_, ok, _ = a.Get(ctx, "uid")
	assert.False(t, ok)

	assert.Same(t, store, kvstore.Prefixed(store, "").(*kvstore.MemoryStore))
}

func TestIsUnset(t *testing.T) {
	t.Parallel()
	assert.True(t, kvstore.IsUnset("", false))
	assert.True(t, kvstore.IsUnset("NaN", true))
	assert.False(t, kvstore.IsUnset("", true))
	assert.False(t, kvstore.IsUnset("42", true))
}
