package dates

import (
	"testing"
	"time"
)

func TestDayKeyTruncates(t *testing.T) {
	ts := time.Date(2024, 3, 15, 23, 59, 58, 123456, time.UTC)
	key := DayKey(ts)

	if key.Hour() != 0 || key.Minute() != 0 || key.Second() != 0 || key.Nanosecond() != 0 {
		t.Errorf("Expected midnight, got %v", key)
	}
	if key.Year() != 2024 || key.Month() != time.March || key.Day() != 15 {
		t.Errorf("Expected 2024-03-15, got %v", key)
	}
}

func TestDayDiff(t *testing.T) {
	testCases := []struct {
		name     string
		a        time.Time
		b        time.Time
		expected int
	}{
		{"same day", time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC), 0},
		{"consecutive days", time.Date(2024, 1, 2, 0, 30, 0, 0, time.UTC), time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC), 1},
		{"gap of three days", time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC), time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC), 3},
		{"negative diff", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), -9},
		{"across month boundary", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), 1},
		{"across year boundary", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := DayDiff(tc.a, tc.b)
			if got != tc.expected {
				t.Errorf("Expected diff %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestWeekStart(t *testing.T) {
	testCases := []struct {
		name     string
		year     int
		week     int
		expected time.Time
	}{
		{"2024 week 1 starts on Jan 1", 2024, 1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2021 week 1 starts on Jan 4", 2021, 1, time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC)},
		{"2026 week 1 starts in previous year", 2026, 1, time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC)},
		{"2024 week 10", 2024, 10, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := WeekStart(tc.year, tc.week)
			if !got.Equal(tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
			if got.Weekday() != time.Monday {
				t.Errorf("Expected a Monday, got %v", got.Weekday())
			}
		})
	}
}

func TestWeekStartRoundTrips(t *testing.T) {
	// Every computed week start must report the same (year, week) via ISOWeek.
	for week := 1; week <= 52; week++ {
		start := WeekStart(2024, week)
		y, w := start.ISOWeek()
		if y != 2024 || w != week {
			t.Errorf("Week %d: ISOWeek returned (%d, %d)", week, y, w)
		}
	}
}

func TestEndOfDay(t *testing.T) {
	ts := time.Date(2024, 6, 10, 9, 15, 0, 0, time.UTC)
	end := EndOfDay(ts)

	if end.Day() != 10 || end.Hour() != 23 || end.Minute() != 59 {
		t.Errorf("Expected end of 2024-06-10, got %v", end)
	}
	if !end.Before(AddDays(ts, 1)) {
		t.Error("End of day should be before the next day key")
	}
}

func TestDaysInMonth(t *testing.T) {
	if got := DaysInMonth(2024, time.February); got != 29 {
		t.Errorf("Expected 29 days in Feb 2024, got %d", got)
	}
	if got := DaysInMonth(2023, time.February); got != 28 {
		t.Errorf("Expected 28 days in Feb 2023, got %d", got)
	}
	if got := DaysInMonth(2024, time.December); got != 31 {
		t.Errorf("Expected 31 days in Dec 2024, got %d", got)
	}
}
