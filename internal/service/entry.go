package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/templui/habitkit/internal/model"
	"github.com/templui/habitkit/internal/repository"
)

const maxNoteLength = 500

var (
	ErrFutureDate          = errors.New("cannot log a habit for a future date")
	ErrBeforeHabitCreation = errors.New("cannot log a habit before the day it was created")
)

type EntryService struct {
	habitRepo   repository.HabitRepository
	entryRepo   repository.HabitEntryRepository
	profileRepo repository.ProfileRepository
	now         func() time.Time
}

func NewEntryService(
	habitRepo repository.HabitRepository,
	entryRepo repository.HabitEntryRepository,
	profileRepo repository.ProfileRepository,
) *EntryService {
	return &EntryService{
		habitRepo:   habitRepo,
		entryRepo:   entryRepo,
		profileRepo: profileRepo,
		now:         time.Now,
	}
}

func parseDate(s string) (model.Date, error) {
	d, err := model.ParseDate(s)
	if err != nil {
		return model.Date{}, invalidf("%v", err)
	}
	return d, nil
}

// loggableHabit loads the habit and checks that date can be logged for it:
// not archived, not after today and not before the creation day, both in
// the owner's timezone.
func (s *EntryService) loggableHabit(userID, habitID, date string) (*model.Habit, model.Date, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, model.Date{}, err
	}

	habit, err := s.habitRepo.ByID(userID, habitID)
	if err != nil {
		return nil, model.Date{}, err
	}

	if habit.IsArchived() {
		return nil, model.Date{}, ErrHabitArchived
	}

	today, loc, err := userToday(s.profileRepo, userID, s.now())
	if err != nil {
		return nil, model.Date{}, fmt.Errorf("failed to resolve timezone: %w", err)
	}

	if day.After(today) {
		return nil, model.Date{}, ErrFutureDate
	}
	if day.Before(habit.CreatedOn(loc)) {
		return nil, model.Date{}, ErrBeforeHabitCreation
	}

	return habit, day, nil
}

// SetEntry records completion and note for one day. Repeated calls for the
// same day update the same entry.
func (s *EntryService) SetEntry(userID, habitID, date string, completed bool, note string) (*model.HabitEntry, error) {
	note = strings.TrimSpace(note)
	if len([]rune(note)) > maxNoteLength {
		return nil, invalidf("note is too long (max %d characters)", maxNoteLength)
	}

	_, day, err := s.loggableHabit(userID, habitID, date)
	if err != nil {
		return nil, err
	}

	entry, err := s.entryRepo.GetOrCreate(habitID, day.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	entry.Completed = completed
	entry.Note = note
	entry.UpdatedAt = s.now()

	err = s.entryRepo.Update(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	return entry, nil
}

// Toggle flips the completion of one day.
func (s *EntryService) Toggle(userID, habitID, date string) (*model.HabitEntry, error) {
	_, day, err := s.loggableHabit(userID, habitID, date)
	if err != nil {
		return nil, err
	}

	entry, err := s.entryRepo.GetOrCreate(habitID, day.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	entry.Completed = !entry.Completed
	entry.UpdatedAt = s.now()

	err = s.entryRepo.Update(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	return entry, nil
}

// Entries lists entries between from and to (inclusive, both optional).
func (s *EntryService) Entries(userID, habitID, from, to string) ([]*model.HabitEntry, error) {
	if from != "" {
		if _, err := parseDate(from); err != nil {
			return nil, err
		}
	}
	if to != "" {
		if _, err := parseDate(to); err != nil {
			return nil, err
		}
	}
	if from != "" && to != "" && from > to {
		return nil, invalidf("from must not be after to")
	}

	// Verify ownership
	_, err := s.habitRepo.ByID(userID, habitID)
	if err != nil {
		return nil, err
	}

	return s.entryRepo.Entries(habitID, from, to)
}

func (s *EntryService) DeleteEntry(userID, habitID, date string) error {
	day, err := parseDate(date)
	if err != nil {
		return err
	}

	// Verify ownership
	_, err = s.habitRepo.ByID(userID, habitID)
	if err != nil {
		return err
	}

	return s.entryRepo.Delete(habitID, day.String())
}
