package model

import (
	"time"
)

type HabitEntry struct {
	ID        string    `db:"id"`
	HabitID   string    `db:"habit_id"`
	Date      string    `db:"entry_date"` // YYYY-MM-DD in the owner's timezone
	Completed bool      `db:"completed"`
	Note      string    `db:"note"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
