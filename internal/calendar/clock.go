package calendar

import "time"

// Clock abstracts time.Now() so that "today" highlighting is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// OrReal returns c, or RealClock when c is nil.
func OrReal(c Clock) Clock {
	if c == nil {
		return RealClock{}
	}
	return c
}
