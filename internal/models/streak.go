package models

import (
	"math"
	"sort"
	"time"

	"streak-service/internal/dates"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Achievement types stored on a streak document.
const (
	AchievementSevenDayStreak    = "7DayStreak"
	AchievementThirtyDayStreak   = "30DayStreak"
	AchievementFiftyLessons      = "50LessonsCompleted"
	AchievementFiveCourses       = "5CoursesCompleted"
	AchievementHundredStudyHours = "100StudyHours"
)

type DailyActivity struct {
	Date             time.Time `bson:"date" json:"date"`
	LessonsCompleted int       `bson:"lessonsCompleted" json:"lessonsCompleted"`
	CoursesCompleted int       `bson:"coursesCompleted" json:"coursesCompleted"`
	StudyHours       float64   `bson:"studyHours" json:"studyHours"`
}

type Achievement struct {
	Type         string    `bson:"type" json:"type"`
	AchievedDate time.Time `bson:"achievedDate" json:"achievedDate"`
}

// Streak is the per-user activity document. One document per user, the
// dailyActivities array holds at most one entry per calendar day.
type Streak struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID                string             `bson:"userId" json:"userId"`
	CurrentStreak         int                `bson:"currentStreak" json:"currentStreak"`
	LongestStreak         int                `bson:"longestStreak" json:"longestStreak"`
	LastActivityDate      *time.Time         `bson:"lastActivityDate" json:"lastActivityDate"`
	TotalLessonsCompleted int                `bson:"totalLessonsCompleted" json:"totalLessonsCompleted"`
	TotalCoursesCompleted int                `bson:"totalCoursesCompleted" json:"totalCoursesCompleted"`
	TotalStudyHours       float64            `bson:"totalStudyHours" json:"totalStudyHours"`
	DailyActivities       []DailyActivity    `bson:"dailyActivities" json:"dailyActivities"`
	Achievements          []Achievement      `bson:"achievements" json:"achievements"`
	CreatedAt             time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RoundHours normalizes study hours to two decimal places. Non-finite input
// collapses to zero.
func RoundHours(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}

// CoerceCount clamps an activity count to a non-negative value.
func CoerceCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// CoerceHours clamps study hours to a non-negative, two-decimal value.
func CoerceHours(v float64) float64 {
	v = RoundHours(v)
	if v < 0 {
		return 0
	}
	return v
}

// UpsertActivity merges an activity delta into the entry for the given
// calendar day, creating the entry if the day has none yet. Contributions
// accumulate, repeated same-day reports never overwrite.
func (s *Streak) UpsertActivity(date time.Time, lessonsCompleted, coursesCompleted int, studyHours float64) *DailyActivity {
	day := dates.DayKey(date)

	entry := s.FindActivity(day)
	if entry == nil {
		s.DailyActivities = append(s.DailyActivities, DailyActivity{Date: day})
		entry = &s.DailyActivities[len(s.DailyActivities)-1]
	}

	entry.LessonsCompleted += CoerceCount(lessonsCompleted)
	entry.CoursesCompleted += CoerceCount(coursesCompleted)
	entry.StudyHours = RoundHours(entry.StudyHours + CoerceHours(studyHours))
	return entry
}

// FindActivity returns the entry for the given day, or nil.
func (s *Streak) FindActivity(day time.Time) *DailyActivity {
	key := dates.DayKey(day)
	for i := range s.DailyActivities {
		if dates.DayKey(s.DailyActivities[i].Date).Equal(key) {
			return &s.DailyActivities[i]
		}
	}
	return nil
}

// SortedActivities returns the daily activities ordered by date ascending.
// The stored array is not reordered.
func (s *Streak) SortedActivities() []DailyActivity {
	sorted := make([]DailyActivity, len(s.DailyActivities))
	copy(sorted, s.DailyActivities)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

func (s *Streak) HasAchievement(achievementType string) bool {
	for _, a := range s.Achievements {
		if a.Type == achievementType {
			return true
		}
	}
	return false
}
