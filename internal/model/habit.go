package model

import (
	"time"
)

type Habit struct {
	ID          string     `db:"id"`
	UserID      string     `db:"user_id"`
	Name        string     `db:"name"`
	Description string     `db:"description"`
	Color       string     `db:"color"`
	ArchivedAt  *time.Time `db:"archived_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

func (h *Habit) IsArchived() bool {
	return h.ArchivedAt != nil
}

// CreatedOn returns the calendar day the habit was created in loc.
func (h *Habit) CreatedOn(loc *time.Location) Date {
	return DateOf(h.CreatedAt.In(loc))
}
