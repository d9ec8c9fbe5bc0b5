package dto

import (
	"time"

	"github.com/templui/habitkit/internal/model"
)

type HabitRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
}

type EntryRequest struct {
	Completed *bool  `json:"completed" validate:"required"`
	Note      string `json:"note" validate:"max=500"`
}

type HabitResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Color       string     `json:"color"`
	Archived    bool       `json:"archived"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type EntryResponse struct {
	HabitID   string    `json:"habit_id"`
	Date      string    `json:"date"`
	Completed bool      `json:"completed"`
	Note      string    `json:"note"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewHabitResponse(habit *model.Habit) (*HabitResponse, error) {
	out := &HabitResponse{}
	err := copyInto(out, habit)
	if err != nil {
		return nil, err
	}
	out.Archived = habit.IsArchived()
	return out, nil
}

func NewHabitResponses(habits []*model.Habit) ([]*HabitResponse, error) {
	out := make([]*HabitResponse, 0, len(habits))
	for _, h := range habits {
		resp, err := NewHabitResponse(h)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func NewEntryResponse(entry *model.HabitEntry) (*EntryResponse, error) {
	out := &EntryResponse{}
	err := copyInto(out, entry)
	return out, err
}

func NewEntryResponses(entries []*model.HabitEntry) ([]*EntryResponse, error) {
	out := make([]*EntryResponse, 0, len(entries))
	for _, e := range entries {
		resp, err := NewEntryResponse(e)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}
