// Package clock abstracts time lookups so cache freshness and scan
// durations can be tested against a fixed instant instead of the wall
// clock.
package clock

import "time"

// Clock supplies the current time to code that would otherwise call
// time.Now directly.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

// Now returns the system time.
func (RealClock) Now() time.Time {
	return time.Now()
}

var _ Clock = RealClock{}
