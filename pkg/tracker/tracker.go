package tracker

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/gabeacon/pkg/logger"
	"github.com/dmitrymomot/gabeacon/pkg/utm"
)

// Paths reserved for visibility page views. They never become the last
// navigated path.
const (
	PathHidden  = "/popup_hidden"
	PathBlurred = "/popup_blurred"
	DefaultPath = "/"
)

// Pageview describes a page view hit. Empty Path and Title fall back to
// "/" and "-".
type Pageview struct {
	Path     string
	Title    string
	Referrer utm.Referrer
}

// Event describes a custom event hit. Category and Action are required;
// Label is sent when non-empty and Value when non-zero.
type Event struct {
	Category string
	Action   string
	Label    string
	Value    int64
	Referrer utm.Referrer
}

// Tracker owns one visitor's identity, session state and tracking settings.
type Tracker struct {
	// Shared by every Tracker a Registry builds for the same visitor.
	mu *sync.Mutex

	store      Store
	keys       *storageKeys
	dispatcher Dispatcher
	log        *slog.Logger
	now        func() time.Time
	random     func() float64

	accountID string
	domain    string
	useSSL    bool
	locale    string
	defaults  Settings

	debounce time.Duration
	timer    *time.Timer

	initialized bool
	rt          Runtime
}

// New creates a Tracker persisting state in store.
func New(store Store, opts ...Option) *Tracker {
	t := &Tracker{
		mu:         new(sync.Mutex),
		store:      store,
		dispatcher: nopDispatcher{},
		log:        slog.New(slog.DiscardHandler),
		now:        time.Now,
		random:     rand.Float64,
		locale:     utm.DefaultLocale,
		debounce:   time.Second,
		rt:         defaultRuntime(),
	}

	for _, opt := range opts {
		opt(t)
	}

	t.log = t.log.With(logger.Component("tracker"))
	t.defaults = Settings{Domain: t.domain, UseSSL: t.useSSL, Locale: t.locale}
	return t
}

func defaultRuntime() Runtime {
	return Runtime{
		LastTrackedPath:   DefaultPath,
		LastTrackedTitle:  utm.DefaultTitle,
		LastNavigatedPath: DefaultPath,
	}
}

// Initialize sets the account id, restores domain, SSL and locale to the
// values the Tracker was built with, resets the in-memory runtime state and
// bootstraps a new session.
func (t *Tracker) Initialize(ctx context.Context, accountID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.store == nil {
		return ErrNoStore
	}

	t.stopTimer()
	t.rt = defaultRuntime()
	t.accountID = accountID
	t.domain, t.useSSL, t.locale = t.defaults.Domain, t.defaults.UseSSL, t.defaults.Locale
	t.log.DebugContext(ctx, "initializing tracker", logger.AccountID(accountID))

	return t.bootstrap(ctx)
}

// SetAccount changes the account id and bootstraps a new session.
func (t *Tracker) SetAccount(ctx context.Context, accountID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.store == nil {
		return ErrNoStore
	}

	t.accountID = accountID
	t.log.DebugContext(ctx, "account set", logger.AccountID(accountID))

	return t.bootstrap(ctx)
}

// EnableSSL selects the https collector endpoint.
func (t *Tracker) EnableSSL() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.useSSL = true
}

// DisableSSL selects the plain http collector endpoint.
func (t *Tracker) DisableSSL() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.useSSL = false
}

// SetDomain sets the host name reported as utmhn.
func (t *Tracker) SetDomain(domain string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.domain = domain
}

// SetLocale sets utmul to "lang-country". Anything other than two ASCII
// letters falls back to "en" and "us" respectively.
func (t *Tracker) SetLocale(lang, country string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.locale = normalizeLocale(lang, country)
}

func normalizeLocale(lang, country string) string {
	if !isAlpha2(lang) {
		lang = "en"
	}
	if !isAlpha2(country) {
		country = "us"
	}
	return strings.ToLower(lang) + "-" + strings.ToLower(country)
}

func isAlpha2(s string) bool {
	if len(s) != 2 {
		return false
	}
	for i := range 2 {
		c := s[i] | 0x20
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}

// TrackPageview records a page view and dispatches its beacon. Any pending
// visibility timer is canceled.
func (t *Tracker) TrackPageview(ctx context.Context, pv Pageview) error {
	url, err := t.pageviewURL(ctx, pv)
	if err != nil {
		return err
	}
	t.dispatcher.Dispatch(ctx, url)
	return nil
}

func (t *Tracker) pageviewURL(ctx context.Context, pv Pageview) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized {
		return "", ErrNotInitialized
	}

	t.stopTimer()
	t.rt.RequestCount++

	if pv.Path == "" {
		pv.Path = DefaultPath
	}
	if pv.Title == "" {
		pv.Title = utm.DefaultTitle
	}

	t.rt.LastTrackedPath = pv.Path
	t.rt.LastTrackedTitle = pv.Title
	if pv.Path != PathHidden && pv.Path != PathBlurred {
		t.rt.LastNavigatedPath = pv.Path
	}

	cookies, err := t.cookies(ctx, pv.Referrer)
	if err != nil {
		return "", err
	}

	params := utm.PageviewParams(t.hit(pv.Title, pv.Path, cookies))
	t.log.DebugContext(ctx, "track page view",
		logger.HitType("pageview"),
		logger.Path(pv.Path),
		slog.Int("request_count", t.rt.RequestCount),
	)
	return utm.BeaconURL(t.useSSL, params), nil
}

// TrackEvent records a custom event against the last tracked page and
// dispatches its beacon. Events never change the current page state.
func (t *Tracker) TrackEvent(ctx context.Context, ev Event) error {
	url, err := t.eventURL(ctx, ev)
	if err != nil {
		return err
	}
	t.dispatcher.Dispatch(ctx, url)
	return nil
}

func (t *Tracker) eventURL(ctx context.Context, ev Event) (string, error) {
	if ev.Category == "" {
		return "", ErrMissingCategory
	}
	if ev.Action == "" {
		return "", ErrMissingAction
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized {
		return "", ErrNotInitialized
	}

	t.rt.RequestCount++

	cookies, err := t.cookies(ctx, ev.Referrer)
	if err != nil {
		return "", err
	}

	event := utm.EncodeEvent(ev.Category, ev.Action, ev.Label, ev.Value)
	params := utm.EventParams(t.hit(t.rt.LastTrackedTitle, t.rt.LastTrackedPath, cookies), event)
	t.log.DebugContext(ctx, "track event",
		logger.HitType("event"),
		logger.Path(t.rt.LastTrackedPath),
		slog.String("event", event),
	)
	return utm.BeaconURL(t.useSSL, params), nil
}

// Cookies returns the encoded utmcc value for the current state.
func (t *Tracker) Cookies(ctx context.Context, ref utm.Referrer) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized {
		return "", ErrNotInitialized
	}
	return t.cookies(ctx, ref)
}

// cookies reads persisted state on every call. Must be called with t.mu held.
func (t *Tracker) cookies(ctx context.Context, ref utm.Referrer) (string, error) {
	s, err := t.keys.load(ctx)
	if err != nil {
		return "", err
	}
	if s.userID == "" {
		// Persisted state expired under a live session; start over as a
		// new visitor but keep the hit numbering of this session.
		requests := t.rt.RequestCount
		if err := t.bootstrap(ctx); err != nil {
			return "", err
		}
		t.rt.RequestCount = requests
		if s, err = t.keys.load(ctx); err != nil {
			return "", err
		}
	}
	c := utm.Cookie{
		UserID:         s.userID,
		Salt:           s.salt,
		FirstSession:   s.firstSession,
		LastSession:    s.lastSession,
		SessionCount:   s.sessionCount,
		CurrentSession: t.rt.CurrentSession,
		RequestCount:   t.rt.RequestCount,
	}
	return c.Encode(ref), nil
}

// hit fills the shared beacon fields. Must be called with t.mu held.
func (t *Tracker) hit(title, path, cookies string) utm.Hit {
	return utm.Hit{
		Version: utm.ProtocolVersion,
		Random:  t.randomInRange(hitIDMin, hitIDMax),
		Host:    t.domain,
		Charset: utm.Charset,
		Locale:  t.locale,
		Title:   title,
		HitID:   t.rt.HitID,
		Path:    path,
		Account: t.accountID,
		Cookies: cookies,
	}
}

// State returns a snapshot of settings, persisted identity and counters, and
// runtime state.
func (t *Tracker) State(ctx context.Context) (Snapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := Snapshot{
		Settings: Settings{
			AccountID: t.accountID,
			Domain:    t.domain,
			UseSSL:    t.useSSL,
			Locale:    t.locale,
		},
		Runtime: t.rt,
	}
	if !t.initialized {
		return snap, nil
	}

	s, err := t.keys.load(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	snap.Identity = Identity{UserID: s.userID, Salt: s.salt}
	snap.Counters = SessionCounters{
		SessionCount: parseInt(s.sessionCount),
		FirstSession: parseInt(s.firstSession),
		LastSession:  parseInt(s.lastSession),
	}
	return snap, nil
}
