// Package clock injects time into the projection and query layers so tests
// can pin it.
package clock

import "time"

// Clock provides the current time and the zone offset used to normalize
// caller-local dates to epoch seconds.
type Clock interface {
	Now() time.Time
	// ZoneOffset returns the offset east of UTC in seconds.
	ZoneOffset() int
}

// System is the wall clock in a fixed location.
type System struct {
	loc *time.Location
}

// NewSystem creates a system clock. A nil location means UTC.
func NewSystem(loc *time.Location) System {
	if loc == nil {
		loc = time.UTC
	}
	return System{loc: loc}
}

// Now returns the current time in the clock's location.
func (s System) Now() time.Time { return time.Now().In(s.loc) }

// ZoneOffset returns the current offset of the clock's location.
func (s System) ZoneOffset() int {
	_, offset := time.Now().In(s.loc).Zone()
	return offset
}

// Fixed is a frozen clock for tests.
type Fixed struct {
	T      time.Time
	Offset int
}

// Now returns the frozen time.
func (f Fixed) Now() time.Time { return f.T }

// ZoneOffset returns the frozen offset.
func (f Fixed) ZoneOffset() int { return f.Offset }
