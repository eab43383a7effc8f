package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store keeps beacon state as plain redis strings.
// It implements kvstore.Store.
type Store struct {
	db     redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewStore wraps a connected client. Keys are stored as "prefix:key" when
// cfg.KeyPrefix is set. A positive cfg.KeyTTL expires keys that have been
// neither read nor written for that long.
func NewStore(client redis.UniversalClient, cfg Config) *Store {
	return &Store{
		db:     client,
		prefix: cfg.KeyPrefix,
		ttl:    cfg.KeyTTL,
	}
}

// Get returns ok=false for missing keys (redis.Nil). With a positive TTL the
// read also pushes the key's expiry out, so keys read together expire together.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	var cmd *redis.StringCmd
	if s.ttl > 0 {
		cmd = s.db.GetEx(ctx, s.key(key), s.ttl)
	} else {
		cmd = s.db.Get(ctx, s.key(key))
	}
	val, err := cmd.Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set stores value. A positive TTL is refreshed on every write.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return s.db.Set(ctx, s.key(key), value, s.ttl).Err()
}

// Delete removes key. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return s.db.Del(ctx, s.key(key)).Err()
}

// Close terminates the Redis connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping reports whether the server answers. It serves as the readiness check.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx).Err(); err != nil {
		return errors.Join(ErrPingFailed, err)
	}
	return nil
}

func (s *Store) key(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}
