package cookie

import "errors"

var (
	ErrNoSecret         = errors.New("cookie.no_secret")
	ErrWeakSecret       = errors.New("cookie.weak_secret")
	ErrNotFound         = errors.New("cookie.not_found")
	ErrMalformed        = errors.New("cookie.malformed")
	ErrInvalidSignature = errors.New("cookie.invalid_signature")
)
