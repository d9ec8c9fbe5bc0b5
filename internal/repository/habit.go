package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/habitkit/internal/model"
)

const (
	HabitSortRecent = "recent"
	HabitSortName   = "name"
	HabitSortOldest = "oldest"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
)

type HabitRepository interface {
	Create(habit *model.Habit) error
	ByID(userID, habitID string) (*model.Habit, error)
	Habits(userID, sortBy string, includeArchived bool) ([]*model.Habit, error)
	Update(habit *model.Habit) error
	SetArchived(userID, habitID string, archivedAt *time.Time) error
	Delete(userID, habitID string) error
}

type habitRepository struct {
	db *sqlx.DB
}

func NewHabitRepository(db *sqlx.DB) HabitRepository {
	return &habitRepository{db: db}
}

func (r *habitRepository) Create(habit *model.Habit) error {
	query := `INSERT INTO habits (id, user_id, name, description, color, archived_at, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		habit.ID,
		habit.UserID,
		habit.Name,
		habit.Description,
		habit.Color,
		habit.ArchivedAt,
		habit.CreatedAt,
		habit.UpdatedAt,
	)

	return err
}

func (r *habitRepository) ByID(userID, habitID string) (*model.Habit, error) {
	habit := &model.Habit{}
	query := `SELECT * FROM habits WHERE id = $1 AND user_id = $2`

	err := r.db.Get(habit, query, habitID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrHabitNotFound
	}
	if err != nil {
		return nil, err
	}

	return habit, nil
}

func (r *habitRepository) Habits(userID, sortBy string, includeArchived bool) ([]*model.Habit, error) {
	var habits []*model.Habit

	var orderBy string
	switch sortBy {
	case HabitSortName:
		orderBy = "ORDER BY LOWER(name) ASC"
	case HabitSortOldest:
		orderBy = "ORDER BY created_at ASC"
	default: // HabitSortRecent or empty
		orderBy = "ORDER BY updated_at DESC"
	}

	query := `SELECT * FROM habits WHERE user_id = $1 `
	if !includeArchived {
		query += `AND archived_at IS NULL `
	}
	query += orderBy

	err := r.db.Select(&habits, query, userID)
	if err != nil {
		return nil, err
	}

	return habits, nil
}

func (r *habitRepository) Update(habit *model.Habit) error {
	query := `UPDATE habits
	          SET name = $1, description = $2, color = $3, updated_at = $4
	          WHERE id = $5 AND user_id = $6`

	result, err := r.db.Exec(query,
		habit.Name,
		habit.Description,
		habit.Color,
		habit.UpdatedAt,
		habit.ID,
		habit.UserID,
	)
	if err != nil {
		return err
	}

	return expectRows(result, ErrHabitNotFound)
}

// SetArchived archives the habit when archivedAt is set and restores it when nil.
func (r *habitRepository) SetArchived(userID, habitID string, archivedAt *time.Time) error {
	query := `UPDATE habits SET archived_at = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`

	result, err := r.db.Exec(query, archivedAt, time.Now(), habitID, userID)
	if err != nil {
		return err
	}

	return expectRows(result, ErrHabitNotFound)
}

func (r *habitRepository) Delete(userID, habitID string) error {
	query := `DELETE FROM habits WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(query, habitID, userID)
	if err != nil {
		return err
	}

	return expectRows(result, ErrHabitNotFound)
}
