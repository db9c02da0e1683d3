package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"streak-service/internal/dates"
	"streak-service/internal/models"
	"streak-service/internal/streakcalc"

	"go.mongodb.org/mongo-driver/mongo"
)

// StreakStore is the persistence dependency, one streak document per user.
type StreakStore interface {
	FindByUser(ctx context.Context, userID string) (*models.Streak, error)
	Create(ctx context.Context, streak *models.Streak) (*models.Streak, error)
	Update(ctx context.Context, streak *models.Streak) error
}

// SnapshotCache is the optional read-side cache of streak documents.
type SnapshotCache interface {
	Get(ctx context.Context, userID string) (*models.Streak, error)
	Set(ctx context.Context, streak *models.Streak) error
	Invalidate(ctx context.Context, userID string) error
}

type StreakService struct {
	Repo  StreakStore
	Cache SnapshotCache

	now func() time.Time

	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

func NewStreakService(repo StreakStore, cache SnapshotCache) *StreakService {
	return &StreakService{
		Repo:      repo,
		Cache:     cache,
		now:       time.Now,
		userLocks: make(map[string]*sync.Mutex),
	}
}

// userLock returns the mutex serializing report cycles for one user. The
// load-mutate-persist cycle is not atomic, concurrent reports for the same
// user would otherwise lose updates. Different users never contend.
// The map holds one mutex per user seen since startup and is never evicted;
// at one entry per active user that stays small, revisit if user counts
// reach millions.
func (s *StreakService) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}

// GetOrCreate loads the user's streak record, creating a zeroed one on first
// access. Repeated calls are idempotent.
func (s *StreakService) GetOrCreate(ctx context.Context, userID string) (*models.Streak, error) {
	streak, err := s.Repo.FindByUser(ctx, userID)
	if err == nil {
		return streak, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	return s.Repo.Create(ctx, &models.Streak{UserID: userID})
}

// ReportActivity merges a day's activity into the user's log, recomputes the
// streak from the full history and unlocks any newly earned achievements.
func (s *StreakService) ReportActivity(ctx context.Context, userID string, activityDate time.Time, lessonsCompleted, coursesCompleted int, studyHours float64) (*models.Streak, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	streak, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	lessonsCompleted = models.CoerceCount(lessonsCompleted)
	coursesCompleted = models.CoerceCount(coursesCompleted)
	studyHours = models.CoerceHours(studyHours)

	streak.UpsertActivity(activityDate, lessonsCompleted, coursesCompleted, studyHours)

	streak.TotalLessonsCompleted += lessonsCompleted
	streak.TotalCoursesCompleted += coursesCompleted
	streak.TotalStudyHours = models.RoundHours(streak.TotalStudyHours + studyHours)

	summary := streakcalc.Calculate(streak.SortedActivities(), dates.DayKey(s.now()))
	streak.CurrentStreak = summary.CurrentStreak
	streak.LongestStreak = summary.LongestStreak
	streak.LastActivityDate = summary.LastActivityDate

	unlocked := streakcalc.Evaluate(streakcalc.Totals{
		CurrentStreak:         streak.CurrentStreak,
		TotalLessonsCompleted: streak.TotalLessonsCompleted,
		TotalCoursesCompleted: streak.TotalCoursesCompleted,
		TotalStudyHours:       streak.TotalStudyHours,
	}, streak.Achievements, s.now())
	streak.Achievements = append(streak.Achievements, unlocked...)

	if err := s.Repo.Update(ctx, streak); err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx, userID); err != nil {
			log.Printf("cache invalidation failed for user %s: %s", userID, err)
		}
	}
	return streak, nil
}

// GetStreak returns the user's record with staleness decay applied lazily: a
// gap longer than one day since the last activity reports a current streak of
// zero without waiting for the next report to persist it.
func (s *StreakService) GetStreak(ctx context.Context, userID string) (*models.Streak, error) {
	streak, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.applyDecay(streak)
	return streak, nil
}

func (s *StreakService) GetAchievements(ctx context.Context, userID string) ([]models.Achievement, error) {
	streak, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	if streak.Achievements == nil {
		return []models.Achievement{}, nil
	}
	return streak.Achievements, nil
}

func (s *StreakService) loadSnapshot(ctx context.Context, userID string) (*models.Streak, error) {
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, userID); err == nil {
			return cached, nil
		}
	}

	streak, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, streak); err != nil {
			log.Printf("cache write failed for user %s: %s", userID, err)
		}
	}
	return streak, nil
}

// applyDecay zeroes the current streak of a loaded snapshot once it has
// lapsed. Persisted state is corrected by the next report's recomputation.
func (s *StreakService) applyDecay(streak *models.Streak) {
	if streak.LastActivityDate == nil {
		return
	}
	if dates.DayDiff(s.now(), *streak.LastActivityDate) > 1 {
		streak.CurrentStreak = 0
	}
}
