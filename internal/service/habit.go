package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/templui/habitkit/internal/model"
	"github.com/templui/habitkit/internal/repository"
)

const maxHabitNameLength = 100

var (
	ErrHabitArchived = errors.New("habit is archived")
)

type HabitService struct {
	habitRepo repository.HabitRepository
	now       func() time.Time
}

func NewHabitService(habitRepo repository.HabitRepository) *HabitService {
	return &HabitService{
		habitRepo: habitRepo,
		now:       time.Now,
	}
}

func normalizeHabitName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalidf("name is required")
	}
	if len([]rune(name)) > maxHabitNameLength {
		return "", invalidf("name is too long (max %d characters)", maxHabitNameLength)
	}
	return name, nil
}

func (s *HabitService) Create(userID, name, description, color string) (*model.Habit, error) {
	name, err := normalizeHabitName(name)
	if err != nil {
		return nil, err
	}

	now := s.now()
	habit := &model.Habit{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        name,
		Description: strings.TrimSpace(description),
		Color:       color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.habitRepo.Create(habit)
	if err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	return habit, nil
}

func (s *HabitService) ByID(userID, habitID string) (*model.Habit, error) {
	return s.habitRepo.ByID(userID, habitID)
}

func (s *HabitService) Habits(userID, sortBy string, includeArchived bool) ([]*model.Habit, error) {
	return s.habitRepo.Habits(userID, sortBy, includeArchived)
}

func (s *HabitService) Update(userID, habitID, name, description, color string) (*model.Habit, error) {
	name, err := normalizeHabitName(name)
	if err != nil {
		return nil, err
	}

	// Verify ownership
	habit, err := s.habitRepo.ByID(userID, habitID)
	if err != nil {
		return nil, err
	}

	habit.Name = name
	habit.Description = strings.TrimSpace(description)
	habit.Color = color
	habit.UpdatedAt = s.now()

	err = s.habitRepo.Update(habit)
	if err != nil {
		return nil, fmt.Errorf("failed to update habit: %w", err)
	}

	return habit, nil
}

func (s *HabitService) Archive(userID, habitID string) error {
	now := s.now()
	return s.habitRepo.SetArchived(userID, habitID, &now)
}

func (s *HabitService) Unarchive(userID, habitID string) error {
	return s.habitRepo.SetArchived(userID, habitID, nil)
}

// Delete removes the habit; its entries go with it.
func (s *HabitService) Delete(userID, habitID string) error {
	return s.habitRepo.Delete(userID, habitID)
}
