package service

import (
	"context"
	"fmt"
	"time"

	"github.com/templui/habitkit/internal/model"
	"github.com/templui/habitkit/internal/repository"
	"github.com/templui/habitkit/internal/streak"
	"golang.org/x/sync/errgroup"
)

const overviewConcurrency = 4

type StatsService struct {
	habitRepo   repository.HabitRepository
	entryRepo   repository.HabitEntryRepository
	profileRepo repository.ProfileRepository
	now         func() time.Time
}

func NewStatsService(
	habitRepo repository.HabitRepository,
	entryRepo repository.HabitEntryRepository,
	profileRepo repository.ProfileRepository,
) *StatsService {
	return &StatsService{
		habitRepo:   habitRepo,
		entryRepo:   entryRepo,
		profileRepo: profileRepo,
		now:         time.Now,
	}
}

// completedDays loads the habit's completed days.
func completedDays(entryRepo repository.HabitEntryRepository, habitID string) ([]model.Date, error) {
	dates, err := entryRepo.CompletedDates(habitID)
	if err != nil {
		return nil, err
	}

	days := make([]model.Date, 0, len(dates))
	for _, raw := range dates {
		d, err := model.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("stored entry date: %w", err)
		}
		days = append(days, d)
	}
	return days, nil
}

func (s *StatsService) habitStats(habit *model.Habit, today model.Date, loc *time.Location) (*model.HabitStats, error) {
	days, err := completedDays(s.entryRepo, habit.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entries: %w", err)
	}

	sum := streak.Summarize(days, habit.CreatedOn(loc), today)
	return &model.HabitStats{
		HabitID:          habit.ID,
		CurrentStreak:    sum.Current,
		LongestStreak:    sum.Longest,
		TotalCompletions: sum.Total,
		CompletionRate:   sum.CompletionRate,
		LastCompleted:    sum.LastCompleted,
	}, nil
}

func (s *StatsService) HabitStats(userID, habitID string) (*model.HabitStats, error) {
	habit, err := s.habitRepo.ByID(userID, habitID)
	if err != nil {
		return nil, err
	}

	today, loc, err := userToday(s.profileRepo, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve timezone: %w", err)
	}

	return s.habitStats(habit, today, loc)
}

// Overview computes stats for every active habit concurrently.
func (s *StatsService) Overview(ctx context.Context, userID string) (*model.Overview, error) {
	habits, err := s.habitRepo.Habits(userID, repository.HabitSortOldest, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get habits: %w", err)
	}

	today, loc, err := userToday(s.profileRepo, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve timezone: %w", err)
	}

	stats := make([]model.HabitStats, len(habits))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(overviewConcurrency)
	for i, habit := range habits {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			st, err := s.habitStats(habit, today, loc)
			if err != nil {
				return err
			}
			stats[i] = *st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	overview := &model.Overview{Habits: stats, Today: today}
	for _, st := range stats {
		overview.TotalToday++
		if st.LastCompleted != nil && *st.LastCompleted == today {
			overview.CompletedToday++
		}
	}

	return overview, nil
}
