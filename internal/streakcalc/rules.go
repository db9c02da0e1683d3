package streakcalc

import (
	"time"

	"streak-service/internal/models"
)

// rule pairs an achievement type with its unlock condition. New achievement
// types are added here, the evaluation loop never changes.
type rule struct {
	achievementType string
	satisfied       func(Totals) bool
}

var achievementRules = []rule{
	{models.AchievementSevenDayStreak, func(t Totals) bool { return t.CurrentStreak >= 7 }},
	{models.AchievementThirtyDayStreak, func(t Totals) bool { return t.CurrentStreak >= 30 }},
	{models.AchievementFiftyLessons, func(t Totals) bool { return t.TotalLessonsCompleted >= 50 }},
	{models.AchievementFiveCourses, func(t Totals) bool { return t.TotalCoursesCompleted >= 5 }},
	{models.AchievementHundredStudyHours, func(t Totals) bool { return t.TotalStudyHours >= 100 }},
}

// Evaluate returns the achievements newly unlocked by the given totals. Types
// already present in existing are never re-emitted, so an unlock happens once
// per user for its lifetime.
func Evaluate(totals Totals, existing []models.Achievement, now time.Time) []models.Achievement {
	held := make(map[string]bool, len(existing))
	for _, a := range existing {
		held[a.Type] = true
	}

	var unlocked []models.Achievement
	for _, r := range achievementRules {
		if held[r.achievementType] || !r.satisfied(totals) {
			continue
		}
		unlocked = append(unlocked, models.Achievement{
			Type:         r.achievementType,
			AchievedDate: now,
		})
	}
	return unlocked
}
