package sqlite

import (
	"errors"
	"strings"
)

var (
	ErrFailedToOpen    = errors.New("sqlite: failed to open database")
	ErrFailedToMigrate = errors.New("sqlite: failed to create schema")
	ErrPingFailed      = errors.New("sqlite: ping failed")
	ErrEmptyKey        = errors.New("sqlite: empty key")
)

// IsBusy reports whether err indicates an SQLite BUSY condition.
func IsBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") ||
		strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked")
}
