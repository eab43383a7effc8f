package dispatch

import "errors"

var (
	// ErrDispatchFailed is logged when a beacon request could not be delivered.
	ErrDispatchFailed = errors.New("dispatch.delivery_failed")

	// ErrUnexpectedStatus is joined with ErrDispatchFailed for non-2xx responses.
	ErrUnexpectedStatus = errors.New("dispatch.unexpected_status")
)
