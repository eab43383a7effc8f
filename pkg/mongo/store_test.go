package mongo_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gabeacon/pkg/kvstore"
	"github.com/dmitrymomot/gabeacon/pkg/mongo"
)

var _ kvstore.Store = (*mongo.Store)(nil)

func TestStore(t *testing.T) {
	url := os.Getenv("MONGODB_URL")
	if url == "" {
		t.Skip("MONGODB_URL not set")
	}

	ctx := context.Background()
	cfg := mongo.Config{
		ConnectionURL:   url,
		ConnectTimeout:  5 * time.Second,
		MaxPoolSize:     5,
		MinPoolSize:     1,
		MaxConnIdleTime: time.Minute,
		RetryAttempts:   1,
		RetryInterval:   time.Second,
		Database:        "gabeacon_test",
		Collection:      "beacon_kv",
	}

	db, err := mongo.ConnectDatabase(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Client().Disconnect(context.Background()) })

	store := mongo.NewStore(db, cfg)
	require.NoError(t, store.Ping(ctx))
	key := "mba_ga_uid_" + time.Now().Format("150405.000000")

	_, ok, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, key, "1"))
	require.NoError(t, store.Set(ctx, key, "2"))

	val, ok, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", val)

	require.NoError(t, store.Delete(ctx, key))
	_, ok, err = store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, store.Delete(ctx, ""), mongo.ErrEmptyKey)
}

func TestConnect_EmptyURL(t *testing.T) {
	t.Parallel()

	_, err := mongo.Connect(context.Background(), mongo.Config{})
	assert.ErrorIs(t, err, mongo.ErrEmptyURL)
}
