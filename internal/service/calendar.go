package service

import (
	"fmt"
	"time"

	"github.com/templui/habitkit/internal/model"
	"github.com/templui/habitkit/internal/repository"
)

type CalendarService struct {
	habitRepo   repository.HabitRepository
	entryRepo   repository.HabitEntryRepository
	profileRepo repository.ProfileRepository
	now         func() time.Time
}

func NewCalendarService(
	habitRepo repository.HabitRepository,
	entryRepo repository.HabitEntryRepository,
	profileRepo repository.ProfileRepository,
) *CalendarService {
	return &CalendarService{
		habitRepo:   habitRepo,
		entryRepo:   entryRepo,
		profileRepo: profileRepo,
		now:         time.Now,
	}
}

// resolveMonth fills a zero year or month from today and validates the rest.
func resolveMonth(year, month int, today model.Date) (int, time.Month, error) {
	if year == 0 {
		year = today.Year
	}
	if month == 0 {
		month = int(today.Month)
	}
	if year < 1 || year > 9999 {
		return 0, 0, invalidf("year must be between 1 and 9999")
	}
	if month < 1 || month > 12 {
		return 0, 0, invalidf("month must be between 1 and 12")
	}
	return year, time.Month(month), nil
}

// HabitMonth returns every day of the month with the habit's completion.
// Days without an entry are not completed.
func (s *CalendarService) HabitMonth(userID, habitID string, year, month int) (*model.HabitCalendar, error) {
	today, _, err := userToday(s.profileRepo, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve timezone: %w", err)
	}

	y, m, err := resolveMonth(year, month, today)
	if err != nil {
		return nil, err
	}

	// Verify ownership
	_, err = s.habitRepo.ByID(userID, habitID)
	if err != nil {
		return nil, err
	}

	first, last := model.MonthRange(y, m)
	entries, err := s.entryRepo.Entries(habitID, first.String(), last.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get entries: %w", err)
	}

	byDate := make(map[string]*model.HabitEntry, len(entries))
	for _, e := range entries {
		byDate[e.Date] = e
	}

	cal := &model.HabitCalendar{HabitID: habitID, Year: y, Month: m}
	for d := first; !d.After(last); d = d.AddDays(1) {
		day := model.CalendarDay{Date: d}
		if e, ok := byDate[d.String()]; ok {
			day.Completed = e.Completed
			day.Note = e.Note
		}
		cal.Days = append(cal.Days, day)
	}

	return cal, nil
}

// Month returns, for every day of the month, how many of the user's active
// habits were completed out of those that existed on that day.
func (s *CalendarService) Month(userID string, year, month int) (*model.Calendar, error) {
	today, loc, err := userToday(s.profileRepo, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve timezone: %w", err)
	}

	y, m, err := resolveMonth(year, month, today)
	if err != nil {
		return nil, err
	}

	habits, err := s.habitRepo.Habits(userID, repository.HabitSortOldest, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get habits: %w", err)
	}

	ids := make([]string, 0, len(habits))
	for _, h := range habits {
		ids = append(ids, h.ID)
	}

	first, last := model.MonthRange(y, m)
	entries, err := s.entryRepo.EntriesForHabits(ids, first.String(), last.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get entries: %w", err)
	}

	completed := make(map[string]int)
	for _, e := range entries {
		if e.Completed {
			completed[e.Date]++
		}
	}

	cal := &model.Calendar{Year: y, Month: m}
	for d := first; !d.After(last); d = d.AddDays(1) {
		total := 0
		for _, h := range habits {
			if !h.CreatedOn(loc).After(d) {
				total++
			}
		}
		cal.Days = append(cal.Days, model.CalendarSummaryDay{
			Date:      d,
			Completed: completed[d.String()],
			Total:     total,
		})
	}

	return cal, nil
}
