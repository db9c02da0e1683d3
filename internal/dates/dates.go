package dates

import "time"

// Reference is the timezone every calendar-day computation happens in.
// Multi-timezone users are a known limitation, not handled here.
var Reference = time.UTC

// DayKey truncates a timestamp to midnight of its calendar day in the
// reference timezone.
func DayKey(t time.Time) time.Time {
	t = t.In(Reference)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Reference)
}

// DayDiff returns the whole-day difference a-b. Negative when a is before b.
func DayDiff(a, b time.Time) int {
	return int(DayKey(a).Sub(DayKey(b)).Hours() / 24)
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DayKey(a).Equal(DayKey(b))
}

// AddDays steps a day key forward or backward by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return DayKey(t).AddDate(0, 0, n)
}

// EndOfDay returns the last representable instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return DayKey(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// WeekStart returns the Monday of the given ISO-8601 week.
func WeekStart(year, week int) time.Time {
	// January 4th is always inside ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, Reference)
	wd := int(jan4.Weekday())
	if wd == 0 {
		wd = 7
	}
	week1Monday := jan4.AddDate(0, 0, 1-wd)
	return week1Monday.AddDate(0, 0, (week-1)*7)
}

// DaysInMonth returns the number of days in the given month of the year.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, Reference).Day()
}
