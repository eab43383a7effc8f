package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

const (
	queryGet    = `SELECT value FROM beacon_kv WHERE key = ?`
	queryUpsert = `INSERT INTO beacon_kv (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	queryDelete = `DELETE FROM beacon_kv WHERE key = ?`

	maxRetries = 3
)

// Store keeps beacon state in the beacon_kv table created by Open.
// It implements kvstore.Store.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore wraps an opened database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Ping checks that the database file is still reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return errors.Join(ErrPingFailed, err)
	}
	return nil
}

// Get returns ok=false when the row does not exist.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}

	var value string
	err := s.db.QueryRowContext(ctx, queryGet, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set inserts or replaces the value for key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return s.exec(ctx, queryUpsert, key, value, s.now().UnixMilli())
}

// Delete removes key. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return s.exec(ctx, queryDelete, key)
}

// exec retries SQLITE_BUSY up to 3 times with 100/200/300 ms backoff.
func (s *Store) exec(ctx context.Context, query string, args ...any) error {
	var err error
	for i := range maxRetries {
		if _, err = s.db.ExecContext(ctx, query, args...); err == nil || !IsBusy(err) {
			return err
		}

		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(time.Duration(100*(i+1)) * time.Millisecond):
		}
	}
	return err
}
