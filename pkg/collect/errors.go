package collect

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("collect.unsupported_media_type")
	ErrMissingContentType   = errors.New("collect.missing_content_type")
	ErrInvalidJSON          = errors.New("collect.invalid_json")
	ErrBodyTooLarge         = errors.New("collect.body_too_large")
	ErrNoRegistry           = errors.New("collect.no_registry")
	ErrNoCookieManager      = errors.New("collect.no_cookie_manager")
	ErrRateLimited          = errors.New("collect.rate_limited")
)
