package domain

import (
	"fmt"
	"time"
)

// DateLayout is the persisted calendar-date format. Keys are compared as strings,
// so the layout must not change.
const DateLayout = "2006-01-02"

// CalendarDate is a local calendar day in YYYY-MM-DD form.
type CalendarDate string

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) CalendarDate {
	return CalendarDate(t.Format(DateLayout))
}

// ParseCalendarDate validates s and returns it as a CalendarDate.
func ParseCalendarDate(s string) (CalendarDate, error) {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", fmt.Errorf("invalid calendar date %q: %w", s, err)
	}
	return CalendarDate(s), nil
}

// Time returns midnight UTC of the day.
func (d CalendarDate) Time() (time.Time, error) {
	return time.Parse(DateLayout, string(d))
}

// PreviousDay returns the calendar day before d.
func (d CalendarDate) PreviousDay() (CalendarDate, error) {
	t, err := d.Time()
	if err != nil {
		return "", fmt.Errorf("invalid calendar date %q: %w", d, err)
	}
	return DateOf(t.AddDate(0, 0, -1)), nil
}

// IsZero reports whether no date is set.
func (d CalendarDate) IsZero() bool {
	return d == ""
}

// String returns the date in YYYY-MM-DD form.
func (d CalendarDate) String() string {
	return string(d)
}
