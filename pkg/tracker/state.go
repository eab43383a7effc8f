package tracker

import (
	"context"
	"strconv"

	"github.com/dmitrymomot/gabeacon/pkg/kvstore"
)

// Durable storage keys.
const (
	KeyUserID       = "mba_ga_uid"
	KeySalt         = "mba_ga_uid_rand"
	KeySessionCount = "mba_ga_session_cnt"
	KeyFirstSession = "mba_ga_f_session"
	KeyLastSession  = "mba_ga_l_session"
)

// Identity is the durable anonymous visitor identity.
type Identity struct {
	UserID string
	Salt   string
}

// SessionCounters are the durable per-visitor session counters.
// Timestamps are epoch milliseconds; zero means unset.
type SessionCounters struct {
	SessionCount int64
	FirstSession int64
	LastSession  int64
}

// Runtime is the in-memory state reset on every Initialize.
type Runtime struct {
	CurrentSession    int64
	RequestCount      int
	HitID             int64
	LastTrackedPath   string
	LastTrackedTitle  string
	LastNavigatedPath string
}

// Settings mirrors the mutable tracking configuration.
type Settings struct {
	AccountID string
	Domain    string
	UseSSL    bool
	Locale    string
}

// Snapshot is a point-in-time copy of all tracker state.
type Snapshot struct {
	Settings Settings
	Identity Identity
	Counters SessionCounters
	Runtime  Runtime
}

type storageKeys struct {
	userID       *kvstore.Key
	salt         *kvstore.Key
	sessionCount *kvstore.Key
	firstSession *kvstore.Key
	lastSession  *kvstore.Key
}

func newStorageKeys(ctx context.Context, store kvstore.Store) (*storageKeys, error) {
	names := []string{KeyUserID, KeySalt, KeySessionCount, KeyFirstSession, KeyLastSession}
	keys := make([]*kvstore.Key, len(names))
	for i, name := range names {
		k, err := kvstore.NewKey(ctx, store, name, nil)
		if err != nil {
			return nil, err
		}
		keys[i] = k
	}
	return &storageKeys{
		userID:       keys[0],
		salt:         keys[1],
		sessionCount: keys[2],
		firstSession: keys[3],
		lastSession:  keys[4],
	}, nil
}

// stored holds the raw persisted values; absent keys read as "".
type stored struct {
	userID       string
	salt         string
	sessionCount string
	firstSession string
	lastSession  string
}

func (k *storageKeys) load(ctx context.Context) (stored, error) {
	var s stored
	for _, f := range []struct {
		key *kvstore.Key
		dst *string
	}{
		{k.userID, &s.userID},
		{k.salt, &s.salt},
		{k.sessionCount, &s.sessionCount},
		{k.firstSession, &s.firstSession},
		{k.lastSession, &s.lastSession},
	} {
		v, _, err := f.key.Get(ctx)
		if err != nil {
			return stored{}, err
		}
		*f.dst = v
	}
	return s, nil
}

func parseInt(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
