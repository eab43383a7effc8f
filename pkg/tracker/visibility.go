package tracker

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/gabeacon/pkg/logger"
)

// Visibility is a host window visibility state.
type Visibility string

const (
	Hidden  Visibility = "hidden"
	Blurred Visibility = "blurred"
	Focused Visibility = "focused"
)

// LastNavigatedMarker is replaced with the last navigated path when a
// visibility path is resolved.
const LastNavigatedMarker = "{last_nav_url}"

// VisibilityEvent maps a visibility state to the page view it produces.
type VisibilityEvent struct {
	Path  string
	Event string
}

var visibilityEvents = map[Visibility]VisibilityEvent{
	Hidden:  {Path: PathHidden, Event: "PopupHidden"},
	Blurred: {Path: PathBlurred, Event: "PopupBlurred"},
	Focused: {Path: LastNavigatedMarker, Event: "PopupFocused"},
}

// LookupVisibility returns the table entry for state.
func LookupVisibility(state Visibility) (VisibilityEvent, bool) {
	ev, ok := visibilityEvents[state]
	return ev, ok
}

// ParseVisibility converts a case-insensitive state name.
func ParseVisibility(s string) (Visibility, error) {
	state := Visibility(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := visibilityEvents[state]; !ok {
		return "", ErrUnknownVisibility
	}
	return state, nil
}

// VisibilityPath resolves the page path for state, substituting the last
// navigated path for the marker.
func (t *Tracker) VisibilityPath(state Visibility) (string, error) {
	ev, ok := visibilityEvents[state]
	if !ok {
		return "", ErrUnknownVisibility
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return strings.ReplaceAll(ev.Path, LastNavigatedMarker, t.rt.LastNavigatedPath), nil
}

// ScheduleVisibility arms the debounce timer to track the page view for
// state. A newer schedule replaces a pending one and any TrackPageview
// cancels it.
func (t *Tracker) ScheduleVisibility(ctx context.Context, state Visibility) error {
	ev, ok := visibilityEvents[state]
	if !ok {
		return ErrUnknownVisibility
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized {
		return ErrNotInitialized
	}

	t.stopTimer()
	ctx = context.WithoutCancel(ctx)

	var timer *time.Timer
	timer = time.AfterFunc(t.debounce, func() {
		t.mu.Lock()
		if t.timer != timer {
			t.mu.Unlock()
			return
		}
		t.timer = nil
		path := strings.ReplaceAll(ev.Path, LastNavigatedMarker, t.rt.LastNavigatedPath)
		t.mu.Unlock()

		if err := t.TrackPageview(ctx, Pageview{Path: path, Title: ev.Event}); err != nil {
			t.log.WarnContext(ctx, "visibility page view failed",
				logger.Event(ev.Event),
				logger.Error(err),
			)
		}
	})
	t.timer = timer

	t.log.DebugContext(ctx, "visibility scheduled",
		logger.Event(ev.Event),
		slog.Duration("delay", t.debounce),
	)
	return nil
}

// CancelPending stops a scheduled visibility page view, if any.
func (t *Tracker) CancelPending() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopTimer()
}

// HasPending reports whether a visibility page view is scheduled.
func (t *Tracker) HasPending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}

// Must be called with t.mu held.
func (t *Tracker) stopTimer() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
