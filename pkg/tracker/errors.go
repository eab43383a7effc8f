package tracker

import "errors"

var (
	// ErrNotInitialized indicates a tracking call before Initialize.
	ErrNotInitialized = errors.New("tracker.not_initialized")

	// ErrNoStore indicates the tracker was built without a store.
	ErrNoStore = errors.New("tracker.no_store")

	// ErrMissingCategory indicates an event without a category.
	ErrMissingCategory = errors.New("tracker.event_missing_category")

	// ErrMissingAction indicates an event without an action.
	ErrMissingAction = errors.New("tracker.event_missing_action")

	// ErrUnknownVisibility indicates a visibility state outside the fixed table.
	ErrUnknownVisibility = errors.New("tracker.unknown_visibility_state")
)
