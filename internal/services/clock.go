package services

import (
	"time"

	"daily-tracker/internal/domain"
)

// Clock supplies the current time. The rollover never reads the wall clock directly.
type Clock interface {
	Now() time.Time
}

// SystemClock reads local wall-clock time.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant.
type FixedClock struct {
	Time time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.Time
}

// Today is the local calendar date of the clock.
func Today(c Clock) domain.CalendarDate {
	return domain.DateOf(c.Now())
}
