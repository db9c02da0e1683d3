package streakcalc

import (
	"time"

	"streak-service/internal/dates"
	"streak-service/internal/models"
)

// Calculate derives the current streak, longest streak and last activity day
// from a full scan of the activity log. The caller must pass activities sorted
// ascending by date; the reference day is the caller's "today".
//
// A full rescan on every report is deliberate: it keeps the result
// reproducible from the log alone and avoids incremental-update drift.
func Calculate(activities []models.DailyActivity, today time.Time) Summary {
	if len(activities) == 0 {
		return Summary{}
	}

	var (
		consecutiveDays  int
		currentStreak    int
		longestStreak    int
		lastActivityDate time.Time
	)

	for i, activity := range activities {
		if i == 0 {
			consecutiveDays = 1
			lastActivityDate = activity.Date
		} else {
			daysDiff := dates.DayDiff(activity.Date, activities[i-1].Date)
			switch {
			case daysDiff == 1:
				consecutiveDays++
			case daysDiff == 0:
				// Duplicate day. The log keeps one entry per day, but a stray
				// duplicate must not advance or break the streak.
				continue
			default:
				consecutiveDays = 1
			}
			lastActivityDate = activity.Date
		}

		currentStreak = consecutiveDays
		if currentStreak > longestStreak {
			longestStreak = currentStreak
		}
	}

	// A streak lapses once more than one day has passed since the last
	// activity. The longest streak records history and is never reduced.
	if dates.DayDiff(today, lastActivityDate) > 1 {
		currentStreak = 0
	}

	last := dates.DayKey(lastActivityDate)
	return Summary{
		CurrentStreak:    currentStreak,
		LongestStreak:    longestStreak,
		LastActivityDate: &last,
	}
}
