package tracker_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gabeacon/pkg/kvstore"
	"github.com/dmitrymomot/gabeacon/pkg/tracker"
)

func TestInitialize_FirstSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	tr, _, _ := newTestTracker(t, store)

	require.NoError(t, tr.Initialize(ctx, "UA-X"))

	snap, err := tr.State(ctx)
	require.NoError(t, err)

	uid, err := strconv.ParseInt(snap.Identity.UserID, 10, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, uid, int64(10_000_000))
	assert.Less(t, uid, int64(99_999_999))

	salt, err := strconv.ParseInt(snap.Identity.Salt, 10, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, salt, int64(1_000_000_000))
	assert.Less(t, salt, int64(2_147_483_647))

	current := baseTime.UnixMilli()
	assert.Equal(t, int64(1), snap.Counters.SessionCount)
	assert.Equal(t, current, snap.Counters.FirstSession)
	assert.Equal(t, current, snap.Counters.LastSession)
	assert.Equal(t, current, snap.Runtime.CurrentSession)
	assert.Equal(t, 0, snap.Runtime.RequestCount)
	assert.Equal(t, "UA-X", snap.Settings.AccountID)

	for _, key := range []string{tracker.KeyUserID, tracker.KeySalt, tracker.KeySessionCount, tracker.KeyFirstSession, tracker.KeyLastSession} {
		_, ok, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok, key)
	}
}

func TestInitialize_RealRandomRanges(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tr := tracker.New(kvstore.NewMemoryStore())
	require.NoError(t, tr.Initialize(ctx, "UA-X"))

	snap, err := tr.State(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, snap.Runtime.HitID, int64(100_000_000))
	assert.Less(t, snap.Runtime.HitID, int64(999_999_999))
	assert.Len(t, snap.Identity.UserID, 8)
	assert.Len(t, snap.Identity.Salt, 10)
}

func TestInitialize_SecondSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	tr, _, clk := newTestTracker(t, store)

	require.NoError(t, tr.Initialize(ctx, "UA-X"))
	first, err := tr.State(ctx)
	require.NoError(t, err)

	clk.Advance(time.Hour)
	require.NoError(t, tr.Initialize(ctx, "UA-X"))
	second, err := tr.State(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), second.Counters.SessionCount)
	assert.Equal(t, first.Counters.FirstSession, second.Counters.FirstSession)
	assert.Equal(t, first.Identity, second.Identity)
	assert.Equal(t, baseTime.Add(time.Hour).UnixMilli(), second.Runtime.CurrentSession)
	// last session is only written when unset
	assert.Equal(t, first.Counters.LastSession, second.Counters.LastSession)
}

func TestInitialize_SurvivesRestart(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kvstore.NewMemoryStore()

	a, _, _ := newTestTracker(t, store)
	require.NoError(t, a.Initialize(ctx, "UA-X"))
	require.NoError(t, a.TrackPageview(ctx, tracker.Pageview{Path: "/a"}))

	b, _, _ := newTestTracker(t, store)
	require.NoError(t, b.Initialize(ctx, "UA-X"))

	snapA, err := a.State(ctx)
	require.NoError(t, err)
	snapB, err := b.State(ctx)
	require.NoError(t, err)

	assert.Equal(t, snapA.Identity, snapB.Identity)
	assert.Equal(t, int64(2), snapB.Counters.SessionCount)
	assert.Equal(t, "/", snapB.Runtime.LastTrackedPath)
	assert.Equal(t, 0, snapB.Runtime.RequestCount)
}

func TestInitialize_LostIdentityResetsCounters(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	tr, rec, clk := newTestTracker(t, store)

	require.NoError(t, tr.Initialize(ctx, "UA-X"))
	clk.Advance(time.Hour)
	require.NoError(t, tr.Initialize(ctx, "UA-X"))

	// Identity keys expired while the counters survived.
	for _, key := range []string{tracker.KeyUserID, tracker.KeySalt, tracker.KeyFirstSession} {
		require.NoError(t, store.Delete(ctx, key))
	}

	clk.Advance(time.Hour)
	require.NoError(t, tr.Initialize(ctx, "UA-X"))

	snap, err := tr.State(ctx)
	require.NoError(t, err)
	now := baseTime.Add(2 * time.Hour).UnixMilli()
	assert.Equal(t, halfUserID, snap.Identity.UserID)
	assert.Equal(t, halfSalt, snap.Identity.Salt)
	assert.Equal(t, int64(1), snap.Counters.SessionCount)
	assert.Equal(t, now, snap.Counters.FirstSession)
	assert.Equal(t, now, snap.Counters.LastSession)

	require.NoError(t, tr.TrackPageview(ctx, tracker.Pageview{Path: "/"}))
	ts := strconv.FormatInt(now, 10)
	utmcc := query(t, rec.last(t)).Get("utmcc")
	assert.True(t, strings.HasPrefix(utmcc, "__utma="+halfUserID+"."+halfSalt+"."+ts+"."+ts+"."+ts+".1;"), utmcc)
}

func TestTrackPageview_StateExpiredMidSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	tr, rec, _ := newTestTracker(t, store)

	require.NoError(t, tr.Initialize(ctx, "UA-X"))
	require.NoError(t, tr.TrackPageview(ctx, tracker.Pageview{Path: "/a"}))
	for _, key := range []string{tracker.KeyUserID, tracker.KeySalt, tracker.KeySessionCount, tracker.KeyFirstSession, tracker.KeyLastSession} {
		require.NoError(t, store.Delete(ctx, key))
	}

	require.NoError(t, tr.TrackPageview(ctx, tracker.Pageview{Path: "/b"}))
	utmcc := query(t, rec.last(t)).Get("utmcc")
	assert.True(t, strings.HasPrefix(utmcc, "__utma="+halfUserID+"."+halfSalt+"."), utmcc)
	assert.Contains(t, utmcc, "+__utmc="+halfUserID+";")
	assert.Contains(t, utmcc, "+__utmb="+halfUserID+".2.10.")

	snap, err := tr.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap.Counters.SessionCount)
	assert.Equal(t, 2, snap.Runtime.RequestCount)
}

func TestInitialize_SentinelValues(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, tracker.KeyUserID, "undefined"))
	require.NoError(t, store.Set(ctx, tracker.KeySessionCount, "NaN"))
	require.NoError(t, store.Set(ctx, tracker.KeyFirstSession, "null"))

	tr, _, _ := newTestTracker(t, store)
	require.NoError(t, tr.Initialize(ctx, "UA-X"))

	snap, err := tr.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, halfUserID, snap.Identity.UserID)
	assert.Equal(t, halfSalt, snap.Identity.Salt)
	assert.Equal(t, int64(1), snap.Counters.SessionCount)
	assert.Equal(t, baseTime.UnixMilli(), snap.Counters.FirstSession)
}

func TestInitialize_CorruptSessionCount(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, tracker.KeySessionCount, "abc"))

	tr, _, _ := newTestTracker(t, store)
	require.NoError(t, tr.Initialize(ctx, "UA-X"))

	v, _, err := store.Get(ctx, tracker.KeySessionCount)
	require.NoError(t, err)
	assert.Equal(t, "1", v)
}

func TestInitialize_StoreFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	boom := errors.New("quota exceeded")
	store := &failingStore{Store: kvstore.NewMemoryStore(), failSet: true, err: boom}

	tr, _, _ := newTestTracker(t, store)
	err := tr.Initialize(ctx, "UA-X")
	assert.ErrorIs(t, err, kvstore.ErrStorage)
	assert.ErrorIs(t, err, boom)

	assert.ErrorIs(t, tr.TrackPageview(ctx, tracker.Pageview{}), tracker.ErrNotInitialized)
}

func TestInitialize_NoStore(t *testing.T) {
	t.Parallel()
	tr := tracker.New(nil)
	assert.ErrorIs(t, tr.Initialize(context.Background(), "UA-X"), tracker.ErrNoStore)
	assert.ErrorIs(t, tr.SetAccount(context.Background(), "UA-X"), tracker.ErrNoStore)
}

func TestSetAccount_StartsSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tr, _, _ := newTestTracker(t, kvstore.NewMemoryStore())

	require.NoError(t, tr.Initialize(ctx, "UA-1"))
	require.NoError(t, tr.TrackPageview(ctx, tracker.Pageview{Path: "/kept"}))
	require.NoError(t, tr.SetAccount(ctx, "UA-2"))

	snap, err := tr.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, "UA-2", snap.Settings.AccountID)
	assert.Equal(t, int64(2), snap.Counters.SessionCount)
	assert.Equal(t, 0, snap.Runtime.RequestCount)
	assert.Equal(t, "/kept", snap.Runtime.LastTrackedPath)
}

func TestResetSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tr, _, _ := newTestTracker(t, kvstore.NewMemoryStore())

	assert.ErrorIs(t, tr.ResetSession(ctx, baseTime), tracker.ErrNotInitialized)

	require.NoError(t, tr.Initialize(ctx, "UA-X"))
	require.NoError(t, tr.TrackPageview(ctx, tracker.Pageview{Path: "/a"}))

	next := baseTime.Add(30 * time.Minute)
	require.NoError(t, tr.ResetSession(ctx, next))

	snap, err := tr.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, next.UnixMilli(), snap.Counters.LastSession)
	assert.Equal(t, baseTime.UnixMilli(), snap.Counters.FirstSession)
	assert.Equal(t, int64(1), snap.Counters.SessionCount)
	assert.Equal(t, 0, snap.Runtime.RequestCount)
}
