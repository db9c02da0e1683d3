package models

import (
	"math"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestUpsertActivityCreatesEntry(t *testing.T) {
	streak := &Streak{}

	entry := streak.UpsertActivity(time.Date(2024, 1, 1, 14, 30, 0, 0, time.UTC), 2, 1, 1.5)

	if len(streak.DailyActivities) != 1 {
		t.Fatalf("Expected 1 activity, got %d", len(streak.DailyActivities))
	}
	if !entry.Date.Equal(day(2024, 1, 1)) {
		t.Errorf("Expected date truncated to midnight, got %v", entry.Date)
	}
	if entry.LessonsCompleted != 2 || entry.CoursesCompleted != 1 || entry.StudyHours != 1.5 {
		t.Errorf("Unexpected entry: %+v", entry)
	}
}

func TestUpsertActivityAccumulatesSameDay(t *testing.T) {
	streak := &Streak{}

	// Two reports on the same calendar day at different times must merge by
	// addition into a single entry.
	streak.UpsertActivity(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), 2, 0, 0.75)
	streak.UpsertActivity(time.Date(2024, 1, 1, 21, 0, 0, 0, time.UTC), 2, 1, 0.75)

	if len(streak.DailyActivities) != 1 {
		t.Fatalf("Expected single merged entry, got %d", len(streak.DailyActivities))
	}
	entry := streak.DailyActivities[0]
	if entry.LessonsCompleted != 4 {
		t.Errorf("Expected 4 lessons, got %d", entry.LessonsCompleted)
	}
	if entry.CoursesCompleted != 1 {
		t.Errorf("Expected 1 course, got %d", entry.CoursesCompleted)
	}
	if entry.StudyHours != 1.5 {
		t.Errorf("Expected 1.5 hours, got %f", entry.StudyHours)
	}
}

func TestUpsertActivityCoercesInvalidInput(t *testing.T) {
	streak := &Streak{}

	streak.UpsertActivity(day(2024, 1, 1), -5, -1, math.NaN())
	entry := streak.DailyActivities[0]

	if entry.LessonsCompleted != 0 || entry.CoursesCompleted != 0 || entry.StudyHours != 0 {
		t.Errorf("Expected invalid input coerced to zero, got %+v", entry)
	}
}

func TestUpsertActivityRoundsHours(t *testing.T) {
	streak := &Streak{}

	streak.UpsertActivity(day(2024, 1, 1), 0, 0, 0.333)
	streak.UpsertActivity(day(2024, 1, 1), 0, 0, 0.333)

	if got := streak.DailyActivities[0].StudyHours; got != 0.66 {
		t.Errorf("Expected hours rounded to 0.66, got %f", got)
	}
}

func TestSortedActivitiesOrder(t *testing.T) {
	streak := &Streak{}
	streak.UpsertActivity(day(2024, 1, 5), 1, 0, 0)
	streak.UpsertActivity(day(2024, 1, 1), 1, 0, 0)
	streak.UpsertActivity(day(2024, 1, 3), 1, 0, 0)

	sorted := streak.SortedActivities()
	for i := 1; i < len(sorted); i++ {
		if !sorted[i-1].Date.Before(sorted[i].Date) {
			t.Fatalf("Activities not ascending: %v before %v", sorted[i-1].Date, sorted[i].Date)
		}
	}

	// Original slice order stays untouched.
	if !streak.DailyActivities[0].Date.Equal(day(2024, 1, 5)) {
		t.Error("SortedActivities must not reorder the stored array")
	}
}

func TestFindActivityMatchesByDay(t *testing.T) {
	streak := &Streak{}
	streak.UpsertActivity(day(2024, 2, 10), 3, 0, 0)

	if entry := streak.FindActivity(time.Date(2024, 2, 10, 18, 45, 0, 0, time.UTC)); entry == nil {
		t.Error("Expected lookup with a time-of-day to find the day's entry")
	}
	if entry := streak.FindActivity(day(2024, 2, 11)); entry != nil {
		t.Error("Expected no entry for an empty day")
	}
}

func TestHasAchievement(t *testing.T) {
	streak := &Streak{
		Achievements: []Achievement{{Type: AchievementSevenDayStreak, AchievedDate: day(2024, 1, 7)}},
	}

	if !streak.HasAchievement(AchievementSevenDayStreak) {
		t.Error("Expected 7DayStreak to be held")
	}
	if streak.HasAchievement(AchievementHundredStudyHours) {
		t.Error("Expected 100StudyHours to be absent")
	}
}

func TestRoundHours(t *testing.T) {
	testCases := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"two decimals kept", 1.25, 1.25},
		{"binary float rounds 1.005 down", 1.005, 1.0},
		{"truncates long fraction", 2.71828, 2.72},
		{"nan collapses to zero", math.NaN(), 0},
		{"infinity collapses to zero", math.Inf(1), 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RoundHours(tc.input); got != tc.expected {
				t.Errorf("Expected %f, got %f", tc.expected, got)
			}
		})
	}
}
