package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/templui/habitkit/internal/model"
)

var (
	ErrHabitEntryNotFound = errors.New("habit entry not found")
)

type HabitEntryRepository interface {
	GetOrCreate(habitID, date string) (*model.HabitEntry, error)
	Entry(habitID, date string) (*model.HabitEntry, error)
	Entries(habitID, from, to string) ([]*model.HabitEntry, error)
	EntriesForHabits(habitIDs []string, from, to string) ([]*model.HabitEntry, error)
	CompletedDates(habitID string) ([]string, error)
	Update(entry *model.HabitEntry) error
	Delete(habitID, date string) error
}

type habitEntryRepository struct {
	db *sqlx.DB
}

func NewHabitEntryRepository(db *sqlx.DB) HabitEntryRepository {
	return &habitEntryRepository{db: db}
}

// GetOrCreate returns the entry for (habit, date), inserting an incomplete one
// first if none exists. The unique (habit_id, entry_date) constraint makes the
// insert a no-op when a concurrent request created the row first.
func (r *habitEntryRepository) GetOrCreate(habitID, date string) (*model.HabitEntry, error) {
	now := time.Now()
	query := `INSERT INTO habit_entries (id, habit_id, entry_date, completed, note, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          ON CONFLICT (habit_id, entry_date) DO NOTHING`

	_, err := r.db.Exec(query, uuid.New().String(), habitID, date, false, "", now, now)
	if err != nil {
		return nil, err
	}

	return r.Entry(habitID, date)
}

func (r *habitEntryRepository) Entry(habitID, date string) (*model.HabitEntry, error) {
	entry := &model.HabitEntry{}
	query := `SELECT * FROM habit_entries WHERE habit_id = $1 AND entry_date = $2`

	err := r.db.Get(entry, query, habitID, date)
	if err == sql.ErrNoRows {
		return nil, ErrHabitEntryNotFound
	}
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// Entries returns the habit's entries with from <= date <= to, oldest first.
// Empty bounds are open.
func (r *habitEntryRepository) Entries(habitID, from, to string) ([]*model.HabitEntry, error) {
	var entries []*model.HabitEntry

	query := `SELECT * FROM habit_entries WHERE habit_id = $1`
	args := []any{habitID}
	if from != "" {
		args = append(args, from)
		query += ` AND entry_date >= $2`
	}
	if to != "" {
		args = append(args, to)
		if from != "" {
			query += ` AND entry_date <= $3`
		} else {
			query += ` AND entry_date <= $2`
		}
	}
	query += ` ORDER BY entry_date ASC`

	err := r.db.Select(&entries, query, args...)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *habitEntryRepository) EntriesForHabits(habitIDs []string, from, to string) ([]*model.HabitEntry, error) {
	var entries []*model.HabitEntry
	if len(habitIDs) == 0 {
		return entries, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM habit_entries
	          WHERE habit_id IN (?) AND entry_date >= ? AND entry_date <= ?
	          ORDER BY entry_date ASC`, habitIDs, from, to)
	if err != nil {
		return nil, err
	}

	err = r.db.Select(&entries, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *habitEntryRepository) CompletedDates(habitID string) ([]string, error) {
	var dates []string
	query := `SELECT entry_date FROM habit_entries WHERE habit_id = $1 AND completed = $2 ORDER BY entry_date ASC`

	err := r.db.Select(&dates, query, habitID, true)
	if err != nil {
		return nil, err
	}

	return dates, nil
}

func (r *habitEntryRepository) Update(entry *model.HabitEntry) error {
	query := `UPDATE habit_entries
	          SET completed = $1, note = $2, updated_at = $3
	          WHERE habit_id = $4 AND entry_date = $5`

	result, err := r.db.Exec(query, entry.Completed, entry.Note, entry.UpdatedAt, entry.HabitID, entry.Date)
	if err != nil {
		return err
	}

	return expectRows(result, ErrHabitEntryNotFound)
}

func (r *habitEntryRepository) Delete(habitID, date string) error {
	query := `DELETE FROM habit_entries WHERE habit_id = $1 AND entry_date = $2`

	result, err := r.db.Exec(query, habitID, date)
	if err != nil {
		return err
	}

	return expectRows(result, ErrHabitEntryNotFound)
}
