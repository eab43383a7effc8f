package pg

import "errors"

var (
	ErrEmptyConnectionString   = errors.New("pg.empty_connection_string")
	ErrInvalidConnectionString = errors.New("pg.invalid_connection_string")
	ErrNotReady                = errors.New("pg.not_ready")
	ErrPingFailed              = errors.New("pg.ping_failed")
	ErrMigrationFailed         = errors.New("pg.migration_failed")
	ErrEmptyKey                = errors.New("pg.empty_key")
)
