package streakcalc

import "time"

// Summary is the derived streak state for one user.
type Summary struct {
	CurrentStreak    int
	LongestStreak    int
	LastActivityDate *time.Time
}

// Totals carries the cumulative counters the achievement rules evaluate.
type Totals struct {
	CurrentStreak         int
	TotalLessonsCompleted int
	TotalCoursesCompleted int
	TotalStudyHours       float64
}
