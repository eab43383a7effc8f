package tracker

import "math"

// Ranges for generated identifiers, upper bounds exclusive.
const (
	hitIDMin  int64 = 100_000_000
	hitIDMax  int64 = 999_999_999
	userIDMin int64 = 10_000_000
	userIDMax int64 = 99_999_999
	saltMin   int64 = 1_000_000_000
	saltMax   int64 = 2_147_483_647
)

// RandomInRange maps a uniform sample r in [0,1) onto [lo, hi) as
// lo + floor(r * (hi - lo)). The formula matches the legacy client so
// generated ids fall in the ranges collectors expect.
func RandomInRange(r float64, lo, hi int64) int64 {
	return lo + int64(math.Floor(r*float64(hi-lo)))
}

func (t *Tracker) randomInRange(lo, hi int64) int64 {
	return RandomInRange(t.random(), lo, hi)
}
