package trip_models

import (
	"errors"
	"time"
)

const DateLayout = "2006-01-02"

var ErrEndBeforeStart = errors.New("end date is before start date")

// TripDates holds either a fixed calendar range or a bare day count, never both.
// DurationDays is always derived from whichever representation is set.
type TripDates struct {
	start time.Time
	end   time.Time
	days  int
}

// FixedDates builds an inclusive calendar range. Times are truncated to their calendar day.
func FixedDates(start, end time.Time) (TripDates, error) {
	s, e := CalendarDay(start), CalendarDay(end)
	if e.Before(s) {
		return TripDates{}, ErrEndBeforeStart
	}
	return TripDates{start: s, end: e}, nil
}

// FlexibleDates builds a range that only knows its length.
func FlexibleDates(days int) TripDates {
	return TripDates{days: days}
}

func (d TripDates) IsFixed() bool {
	return !d.start.IsZero()
}

func (d TripDates) Start() (time.Time, bool) {
	return d.start, d.IsFixed()
}

func (d TripDates) End() (time.Time, bool) {
	return d.end, d.IsFixed()
}

func (d TripDates) DurationDays() int {
	if d.IsFixed() {
		return DaysBetween(d.start, d.end) + 1
	}
	return d.days
}

// CalendarDay drops the clock part of t and pins it to UTC midnight of the same wall date.
func CalendarDay(t time.Time) time.Time {
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(CalendarDay(b).Sub(CalendarDay(a)).Hours() / 24)
}
