package config

import "errors"

var (
	ErrNilTarget = errors.New("config.nil_target")
	ErrParse     = errors.New("config.parse_failed")
	ErrEnvFile   = errors.New("config.env_file")
)
