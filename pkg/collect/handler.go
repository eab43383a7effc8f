package collect

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/gabeacon/pkg/cookie"
	"github.com/dmitrymomot/gabeacon/pkg/httpserver"
	"github.com/dmitrymomot/gabeacon/pkg/logger"
	"github.com/dmitrymomot/gabeacon/pkg/ratelimiter"
	"github.com/dmitrymomot/gabeacon/pkg/tracker"
	"github.com/dmitrymomot/gabeacon/pkg/utm"
)

// Handler serves the tracking endpoints.
type Handler struct {
	registry *tracker.Registry
	cookies  *cookie.Manager
	cfg      Config
	log      *slog.Logger
	checks   []httpserver.Check
	limiter  *ratelimiter.Bucket
	now      func() time.Time
}

// New creates a Handler resolving visitors through registry and cookies.
func New(registry *tracker.Registry, cookies *cookie.Manager, cfg Config, opts ...Option) (*Handler, error) {
	if registry == nil {
		return nil, ErrNoRegistry
	}
	if cookies == nil {
		return nil, ErrNoCookieManager
	}

	defaults := DefaultConfig()
	if cfg.CookieName == "" {
		cfg.CookieName = defaults.CookieName
	}
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = defaults.MaxBodySize
	}

	h := &Handler{
		registry: registry,
		cookies:  cookies,
		cfg:      cfg,
		log:      slog.New(slog.DiscardHandler),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.log = h.log.With(logger.Component("collect"))

	return h, nil
}

// Handle returns the router with all tracking endpoints mounted.
func (h *Handler) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID, ClientIP(h.cfg.TrustProxyHeaders))

	r.Get("/healthz", httpserver.HealthCheckHandler(h.log, h.checks...))

	r.Group(func(r chi.Router) {
		if h.limiter != nil {
			r.Use(h.rateLimit)
		}
		r.Use(h.visitor)
		r.Post("/pageview", h.pageview)
		r.Post("/event", h.event)
		r.Post("/visibility/{state}", h.visibility)
		r.Post("/session/reset", h.resetSession)
	})

	return r
}

type referrerRequest struct {
	Source   string `json:"source"`
	Medium   string `json:"medium"`
	Campaign string `json:"campaign"`
}

func (rr referrerRequest) referrer() utm.Referrer {
	return utm.Referrer{Source: rr.Source, Medium: rr.Medium, Campaign: rr.Campaign}
}

type pageviewRequest struct {
	Path     string          `json:"path"`
	Title    string          `json:"title"`
	Referrer referrerRequest `json:"referrer"`
}

type eventRequest struct {
	Category string          `json:"category"`
	Action   string          `json:"action"`
	Label    string          `json:"label"`
	Value    int64           `json:"value"`
	Referrer referrerRequest `json:"referrer"`
}

func (h *Handler) pageview(w http.ResponseWriter, r *http.Request) {
	var req pageviewRequest
	if err := bindJSON(w, r, h.cfg.MaxBodySize, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	t, err := h.tracker(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := t.TrackPageview(r.Context(), tracker.Pageview{
		Path:     req.Path,
		Title:    req.Title,
		Referrer: req.Referrer.referrer(),
	}); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) event(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := bindJSON(w, r, h.cfg.MaxBodySize, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	t, err := h.tracker(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := t.TrackEvent(r.Context(), tracker.Event{
		Category: req.Category,
		Action:   req.Action,
		Label:    req.Label,
		Value:    req.Value,
		Referrer: req.Referrer.referrer(),
	}); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// visibility answers 202 because the page view fires after the debounce
// delay, if at all.
func (h *Handler) visibility(w http.ResponseWriter, r *http.Request) {
	state, err := tracker.ParseVisibility(chi.URLParam(r, "state"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	t, err := h.tracker(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := t.ScheduleVisibility(r.Context(), state); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) resetSession(w http.ResponseWriter, r *http.Request) {
	t, err := h.tracker(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := t.ResetSession(r.Context(), h.now()); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) tracker(r *http.Request) (*tracker.Tracker, error) {
	t, err := h.registry.Get(r.Context(), VisitorFromContext(r.Context()))
	if err != nil {
		return nil, err
	}

	if lang, country, ok := localeFromHeader(r.Header.Get("Accept-Language")); ok {
		t.SetLocale(lang, country)
	}
	return t, nil
}
