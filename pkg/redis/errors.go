package redis

import "errors"

var (
	ErrEmptyURL   = errors.New("redis.empty_url")
	ErrInvalidURL = errors.New("redis.invalid_url")
	ErrNotReady   = errors.New("redis.not_ready")
	ErrPingFailed = errors.New("redis.ping_failed")
	ErrEmptyKey   = errors.New("redis.empty_key")
)
