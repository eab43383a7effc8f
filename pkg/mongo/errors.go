package mongo

import "errors"

var (
	ErrEmptyURL   = errors.New("mongo.empty_url")
	ErrInvalidURL = errors.New("mongo.invalid_url")
	ErrNotReady   = errors.New("mongo.not_ready")
	ErrPingFailed = errors.New("mongo.ping_failed")
	ErrEmptyKey   = errors.New("mongo.empty_key")
)
