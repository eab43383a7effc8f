package tracker

import (
	"context"
	"log/slog"
	"strconv"
	"time"
)

// bootstrap starts a new session. Must be called with t.mu held.
func (t *Tracker) bootstrap(ctx context.Context) error {
	if t.keys == nil {
		keys, err := newStorageKeys(ctx, t.store)
		if err != nil {
			return err
		}
		t.keys = keys
	}

	current := t.now().UnixMilli()
	t.rt.CurrentSession = current
	t.rt.RequestCount = 0
	t.rt.HitID = t.randomInRange(hitIDMin, hitIDMax)

	// Every key is read up front so stores with sliding expiry keep the
	// visitor's keys alive together.
	s, err := t.keys.load(ctx)
	if err != nil {
		return err
	}
	stamp := strconv.FormatInt(current, 10)

	if s.userID == "" {
		uid := t.randomInRange(userIDMin, userIDMax)
		salt := t.randomInRange(saltMin, saltMax)
		if err := t.keys.userID.Set(ctx, strconv.FormatInt(uid, 10)); err != nil {
			return err
		}
		if err := t.keys.salt.Set(ctx, strconv.FormatInt(salt, 10)); err != nil {
			return err
		}
		if s.sessionCount != "" || s.firstSession != "" || s.lastSession != "" {
			// Counters left behind by a lost identity belong to another visitor.
			t.log.WarnContext(ctx, "visitor identity missing, resetting session counters")
			s = stored{}
		}
		t.log.DebugContext(ctx, "visitor identity created", slog.Int64("user_id", uid))
	}

	count := int64(1)
	if n, perr := strconv.ParseInt(s.sessionCount, 10, 64); perr == nil {
		count = n + 1
	}
	if err := t.keys.sessionCount.Set(ctx, strconv.FormatInt(count, 10)); err != nil {
		return err
	}

	if s.firstSession == "" {
		if err := t.keys.firstSession.Set(ctx, stamp); err != nil {
			return err
		}
	}
	// Only written when unset; later sessions update it through ResetSession.
	if s.lastSession == "" {
		if err := t.keys.lastSession.Set(ctx, stamp); err != nil {
			return err
		}
	}

	t.initialized = true
	t.log.DebugContext(ctx, "session started",
		slog.Int64("session", current),
		slog.Int64("session_count", count),
	)
	return nil
}

// ResetSession records ts as the last session timestamp, clears the request
// counter and draws a new hit id.
func (t *Tracker) ResetSession(ctx context.Context, ts time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized {
		return ErrNotInitialized
	}

	if err := t.keys.lastSession.Set(ctx, strconv.FormatInt(ts.UnixMilli(), 10)); err != nil {
		return err
	}
	t.rt.RequestCount = 0
	t.rt.HitID = t.randomInRange(hitIDMin, hitIDMax)

	t.log.DebugContext(ctx, "session reset", slog.Int64("last_session", ts.UnixMilli()))
	return nil
}
