package logger

import (
	"log/slog"
	"time"
)

// Error returns an empty Attr for nil so callers can pass errors
// unconditionally.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// AccountID records the analytics property id under "account_id".
func AccountID(id string) slog.Attr {
	return slog.String("account_id", id)
}

// VisitorID records the visitor namespace under "visitor_id".
// If id is empty, it returns an empty Attr.
func VisitorID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("visitor_id", id)
}

// HitType records "pageview" or "event" under "hit_type".
func HitType(kind string) slog.Attr {
	return slog.String("hit_type", kind)
}

// Path records a tracked page path under "path".
func Path(p string) slog.Attr {
	return slog.String("path", p)
}

// URL records a beacon URL under "url".
func URL(u string) slog.Attr {
	return slog.String("url", u)
}

// Driver records a storage driver name under "driver".
func Driver(name string) slog.Attr {
	return slog.String("driver", name)
}

// Duration records a round-trip time in milliseconds under "duration_ms".
func Duration(d time.Duration) slog.Attr {
	return slog.Int64("duration_ms", d.Milliseconds())
}

// Component names the subsystem that logged the record.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records a tracked event name such as "PopupHidden".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}
