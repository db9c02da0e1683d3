package streakcalc

import (
	"testing"
	"time"

	"streak-service/internal/models"
)

func TestEvaluateThresholds(t *testing.T) {
	now := time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		totals   Totals
		expected []string
	}{
		{"below every threshold", Totals{CurrentStreak: 6, TotalLessonsCompleted: 49, TotalCoursesCompleted: 4, TotalStudyHours: 99.99}, nil},
		{"seven day streak", Totals{CurrentStreak: 7}, []string{models.AchievementSevenDayStreak}},
		{"thirty day streak includes seven", Totals{CurrentStreak: 30}, []string{models.AchievementSevenDayStreak, models.AchievementThirtyDayStreak}},
		{"fifty lessons", Totals{TotalLessonsCompleted: 50}, []string{models.AchievementFiftyLessons}},
		{"five courses", Totals{TotalCoursesCompleted: 5}, []string{models.AchievementFiveCourses}},
		{"hundred study hours", Totals{TotalStudyHours: 100}, []string{models.AchievementHundredStudyHours}},
		{
			"all at once",
			Totals{CurrentStreak: 30, TotalLessonsCompleted: 50, TotalCoursesCompleted: 5, TotalStudyHours: 100},
			[]string{
				models.AchievementSevenDayStreak,
				models.AchievementThirtyDayStreak,
				models.AchievementFiftyLessons,
				models.AchievementFiveCourses,
				models.AchievementHundredStudyHours,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			unlocked := Evaluate(tc.totals, nil, now)

			if len(unlocked) != len(tc.expected) {
				t.Fatalf("Expected %d unlocks, got %d: %+v", len(tc.expected), len(unlocked), unlocked)
			}
			got := make(map[string]bool)
			for _, a := range unlocked {
				got[a.Type] = true
				if !a.AchievedDate.Equal(now) {
					t.Errorf("Expected achieved date %v, got %v", now, a.AchievedDate)
				}
			}
			for _, want := range tc.expected {
				if !got[want] {
					t.Errorf("Expected unlock of %s", want)
				}
			}
		})
	}
}

func TestEvaluateNeverDuplicates(t *testing.T) {
	now := time.Now()
	existing := []models.Achievement{
		{Type: models.AchievementSevenDayStreak, AchievedDate: now.AddDate(0, 0, -10)},
	}
	totals := Totals{CurrentStreak: 12}

	unlocked := Evaluate(totals, existing, now)

	for _, a := range unlocked {
		if a.Type == models.AchievementSevenDayStreak {
			t.Error("Already-held achievement must not be re-emitted")
		}
	}
	if len(unlocked) != 0 {
		t.Errorf("Expected no new unlocks, got %+v", unlocked)
	}
}

func TestEvaluateIsIdempotentAcrossPasses(t *testing.T) {
	now := time.Now()
	totals := Totals{CurrentStreak: 7, TotalLessonsCompleted: 50}

	first := Evaluate(totals, nil, now)
	if len(first) != 2 {
		t.Fatalf("Expected 2 unlocks on first pass, got %d", len(first))
	}

	second := Evaluate(totals, first, now)
	if len(second) != 0 {
		t.Errorf("Expected no unlocks on second pass, got %+v", second)
	}
}
