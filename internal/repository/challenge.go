package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/templui/habitkit/internal/model"
)

var (
	ErrChallengeNotFound = errors.New("challenge not found")
)

type ChallengeRepository interface {
	Create(challenge *model.Challenge) error
	ByID(id string) (*model.Challenge, error)
	Challenges(userID, status string) ([]*model.Challenge, error)
	Expired(today string) ([]*model.Challenge, error)
	Update(challenge *model.Challenge, fromStatus string) error
}

type challengeRepository struct {
	db *sqlx.DB
}

func NewChallengeRepository(db *sqlx.DB) ChallengeRepository {
	return &challengeRepository{db: db}
}

func (r *challengeRepository) Create(challenge *model.Challenge) error {
	query := `INSERT INTO challenges (id, challenger_id, opponent_id, challenger_habit_id, opponent_habit_id,
	          name, duration_days, status, start_date, end_date, challenger_streak, opponent_streak,
	          winner_id, created_at, updated_at, completed_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.db.Exec(query,
		challenge.ID,
		challenge.ChallengerID,
		challenge.OpponentID,
		challenge.ChallengerHabitID,
		challenge.OpponentHabitID,
		challenge.Name,
		challenge.DurationDays,
		challenge.Status,
		challenge.StartDate,
		challenge.EndDate,
		challenge.ChallengerStreak,
		challenge.OpponentStreak,
		challenge.WinnerID,
		challenge.CreatedAt,
		challenge.UpdatedAt,
		challenge.CompletedAt,
	)

	return err
}

func (r *challengeRepository) ByID(id string) (*model.Challenge, error) {
	challenge := &model.Challenge{}
	query := `SELECT * FROM challenges WHERE id = $1`

	err := r.db.Get(challenge, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrChallengeNotFound
	}
	if err != nil {
		return nil, err
	}

	return challenge, nil
}

// Challenges lists challenges the user takes part in, newest first.
// An empty status returns all of them.
func (r *challengeRepository) Challenges(userID, status string) ([]*model.Challenge, error) {
	var challenges []*model.Challenge

	query := `SELECT * FROM challenges WHERE (challenger_id = $1 OR opponent_id = $1)`
	args := []any{userID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	err := r.db.Select(&challenges, query, args...)
	if err != nil {
		return nil, err
	}

	return challenges, nil
}

// Expired returns active challenges whose last day is before today.
func (r *challengeRepository) Expired(today string) ([]*model.Challenge, error) {
	var challenges []*model.Challenge
	query := `SELECT * FROM challenges WHERE status = $1 AND end_date < $2 ORDER BY end_date ASC`

	err := r.db.Select(&challenges, query, model.ChallengeStatusActive, today)
	if err != nil {
		return nil, err
	}

	return challenges, nil
}

// Update writes the mutable challenge fields, but only while the stored row
// still has fromStatus. A concurrent transition yields ErrChallengeNotFound.
func (r *challengeRepository) Update(challenge *model.Challenge, fromStatus string) error {
	query := `UPDATE challenges
	          SET opponent_habit_id = $1, status = $2, start_date = $3, end_date = $4,
	              challenger_streak = $5, opponent_streak = $6, winner_id = $7,
	              updated_at = $8, completed_at = $9
	          WHERE id = $10 AND status = $11`

	result, err := r.db.Exec(query,
		challenge.OpponentHabitID,
		challenge.Status,
		challenge.StartDate,
		challenge.EndDate,
		challenge.ChallengerStreak,
		challenge.OpponentStreak,
		challenge.WinnerID,
		challenge.UpdatedAt,
		challenge.CompletedAt,
		challenge.ID,
		fromStatus,
	)
	if err != nil {
		return err
	}

	return expectRows(result, ErrChallengeNotFound)
}
