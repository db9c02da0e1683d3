package service

import (
	"context"
	"time"

	"streak-service/internal/dates"
	"streak-service/internal/models"
)

const dayFormat = "2006-01-02"

type DaySummary struct {
	Date             string  `json:"date"`
	HasActivity      bool    `json:"hasActivity"`
	LessonsCompleted int     `json:"lessonsCompleted"`
	CoursesCompleted int     `json:"coursesCompleted"`
	StudyHours       float64 `json:"studyHours"`
}

type MonthSummary struct {
	Month            string       `json:"month"`
	ActiveDays       int          `json:"activeDays"`
	TotalDays        int          `json:"totalDays"`
	LessonsCompleted int          `json:"lessonsCompleted"`
	CoursesCompleted int          `json:"coursesCompleted"`
	StudyHours       float64      `json:"studyHours"`
	DailyData        []DaySummary `json:"dailyData"`
}

type TwoWeekSummary struct {
	CurrentStreak         int          `json:"currentStreak"`
	LongestStreak         int          `json:"longestStreak"`
	TotalLessonsCompleted int          `json:"totalLessonsCompleted"`
	TotalCoursesCompleted int          `json:"totalCoursesCompleted"`
	TotalStudyHours       float64      `json:"totalStudyHours"`
	PeriodStart           time.Time    `json:"periodStart"`
	PeriodEnd             time.Time    `json:"periodEnd"`
	TwoWeeksData          []DaySummary `json:"twoWeeksData"`
}

type YearlyCalendar struct {
	Year                int            `json:"year"`
	HasPreviousYearData bool           `json:"hasPreviousYearData"`
	Months              []MonthSummary `json:"months"`
}

// CurrentTwoWeekPeriod returns the active 14-day reporting window. Periods
// are anchored at the record's creation day and advance in fixed 14-day
// steps, so every user keeps a stable personal cadence.
func (s *StreakService) CurrentTwoWeekPeriod(streak *models.Streak) (time.Time, time.Time) {
	periodStart := dates.DayKey(streak.CreatedAt)
	today := dates.DayKey(s.now())

	for dates.AddDays(periodStart, 14).Before(today) {
		periodStart = dates.AddDays(periodStart, 14)
	}

	periodEnd := dates.EndOfDay(dates.AddDays(periodStart, 13))
	return periodStart, periodEnd
}

// WindowData emits one summary per calendar day from start to end inclusive.
// Days without a log entry report zeros.
func (s *StreakService) WindowData(streak *models.Streak, start, end time.Time) []DaySummary {
	var days []DaySummary
	for day := dates.DayKey(start); !day.After(dates.DayKey(end)); day = dates.AddDays(day, 1) {
		days = append(days, s.daySummary(streak, day, false))
	}
	return days
}

func (s *StreakService) daySummary(streak *models.Streak, day time.Time, activityMeansPositive bool) DaySummary {
	summary := DaySummary{Date: day.Format(dayFormat)}

	if activity := streak.FindActivity(day); activity != nil {
		summary.LessonsCompleted = activity.LessonsCompleted
		summary.CoursesCompleted = activity.CoursesCompleted
		summary.StudyHours = models.RoundHours(activity.StudyHours)
		if activityMeansPositive {
			summary.HasActivity = summary.LessonsCompleted > 0 || summary.CoursesCompleted > 0 || summary.StudyHours > 0
		} else {
			summary.HasActivity = true
		}
	}
	return summary
}

// GetTwoWeekSummary bundles the streak fields, cumulative totals and the
// current two-week window into one payload.
func (s *StreakService) GetTwoWeekSummary(ctx context.Context, userID string) (*TwoWeekSummary, error) {
	streak, err := s.GetStreak(ctx, userID)
	if err != nil {
		return nil, err
	}

	start, end := s.CurrentTwoWeekPeriod(streak)
	return &TwoWeekSummary{
		CurrentStreak:         streak.CurrentStreak,
		LongestStreak:         streak.LongestStreak,
		TotalLessonsCompleted: streak.TotalLessonsCompleted,
		TotalCoursesCompleted: streak.TotalCoursesCompleted,
		TotalStudyHours:       streak.TotalStudyHours,
		PeriodStart:           start,
		PeriodEnd:             end,
		TwoWeeksData:          s.WindowData(streak, start, end),
	}, nil
}

// YearlyCalendarData builds twelve month summaries for the given year. Days
// outside [creation day, today] are omitted; a day counts as active only when
// it recorded a positive lesson, course or hour figure.
func (s *StreakService) YearlyCalendarData(streak *models.Streak, year int) []MonthSummary {
	joinDay := dates.DayKey(streak.CreatedAt)
	today := dates.DayKey(s.now())

	months := make([]MonthSummary, 0, 12)
	for month := time.January; month <= time.December; month++ {
		totalDays := dates.DaysInMonth(year, month)
		summary := MonthSummary{
			Month:     time.Date(year, month, 1, 0, 0, 0, 0, dates.Reference).Format("2006-01"),
			TotalDays: totalDays,
			DailyData: []DaySummary{},
		}

		var monthlyHours float64
		for dayNum := 1; dayNum <= totalDays; dayNum++ {
			day := time.Date(year, month, dayNum, 0, 0, 0, 0, dates.Reference)
			if day.Before(joinDay) || day.After(today) {
				continue
			}

			daily := s.daySummary(streak, day, true)
			monthlyHours += daily.StudyHours

			summary.DailyData = append(summary.DailyData, daily)
			if daily.HasActivity {
				summary.ActiveDays++
			}
			summary.LessonsCompleted += daily.LessonsCompleted
			summary.CoursesCompleted += daily.CoursesCompleted
		}

		summary.StudyHours = models.RoundHours(monthlyHours)
		months = append(months, summary)
	}
	return months
}

// HasPreviousYearData reports whether any activity falls in the year before
// the given one, so clients know to offer a back link on the calendar.
func (s *StreakService) HasPreviousYearData(streak *models.Streak, year int) bool {
	firstOfPrevious := time.Date(year-1, time.January, 1, 0, 0, 0, 0, dates.Reference)
	firstOfCurrent := time.Date(year, time.January, 1, 0, 0, 0, 0, dates.Reference)

	for _, activity := range streak.DailyActivities {
		day := dates.DayKey(activity.Date)
		if !day.Before(firstOfPrevious) && day.Before(firstOfCurrent) {
			return true
		}
	}
	return false
}

// GetYearlyCalendar loads the user's record and assembles the calendar view.
func (s *StreakService) GetYearlyCalendar(ctx context.Context, userID string, year int) (*YearlyCalendar, error) {
	streak, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &YearlyCalendar{
		Year:                year,
		HasPreviousYearData: s.HasPreviousYearData(streak, year),
		Months:              s.YearlyCalendarData(streak, year),
	}, nil
}

// WeekData returns seven day summaries for the given ISO week.
func (s *StreakService) WeekData(streak *models.Streak, year, week int) []DaySummary {
	start := dates.WeekStart(year, week)
	return s.WindowData(streak, start, dates.AddDays(start, 6))
}

// GetWeek loads the user's record and computes the week view.
func (s *StreakService) GetWeek(ctx context.Context, userID string, year, week int) ([]DaySummary, error) {
	streak, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.WeekData(streak, year, week), nil
}
