package sqlite

import "time"

// Config represents the configuration for the SQLite store.
type Config struct {
	Path        string        `env:"SQLITE_PATH" envDefault:"data/beacon.db"` // Path is the database file. ":memory:" keeps everything in memory.
	BusyTimeout time.Duration `env:"SQLITE_BUSY_TIMEOUT" envDefault:"10s"`    // BusyTimeout is applied as PRAGMA busy_timeout.
	Synchronous string        `env:"SQLITE_SYNCHRONOUS" envDefault:"NORMAL"`  // Synchronous is applied as PRAGMA synchronous.
	MaxOpenConn int           `env:"SQLITE_MAX_OPEN_CONNS" envDefault:"4"`    // MaxOpenConn caps concurrent connections. Forced to 1 for ":memory:".
	MkdirAll    bool          `env:"SQLITE_MKDIR_ALL" envDefault:"true"`      // MkdirAll creates the parent directory of Path.
}
