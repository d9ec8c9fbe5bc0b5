package model

import (
	"time"
)

const (
	ChallengeStatusPending   = "pending"
	ChallengeStatusActive    = "active"
	ChallengeStatusDeclined  = "declined"
	ChallengeStatusCancelled = "cancelled"
	ChallengeStatusCompleted = "completed"
)

type Challenge struct {
	ID                string     `db:"id"`
	ChallengerID      string     `db:"challenger_id"`
	OpponentID        string     `db:"opponent_id"`
	ChallengerHabitID *string    `db:"challenger_habit_id"`
	OpponentHabitID   *string    `db:"opponent_habit_id"`
	Name              string     `db:"name"`
	DurationDays      int        `db:"duration_days"`
	Status            string     `db:"status"`
	StartDate         *string    `db:"start_date"`
	EndDate           *string    `db:"end_date"`
	ChallengerStreak  int        `db:"challenger_streak"`
	OpponentStreak    int        `db:"opponent_streak"`
	WinnerID          *string    `db:"winner_id"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
	CompletedAt       *time.Time `db:"completed_at"`
}

func (c *Challenge) IsParticipant(userID string) bool {
	return c.ChallengerID == userID || c.OpponentID == userID
}

func (c *Challenge) IsOpen() bool {
	return c.Status == ChallengeStatusPending || c.Status == ChallengeStatusActive
}

// HabitFor returns the habit the given participant tracks for this challenge,
// or "" when there is none yet or it was deleted.
func (c *Challenge) HabitFor(userID string) string {
	var id *string
	switch userID {
	case c.ChallengerID:
		id = c.ChallengerHabitID
	case c.OpponentID:
		id = c.OpponentHabitID
	}
	if id == nil {
		return ""
	}
	return *id
}

// ChallengeProgress is a challenge with both participants' streaks as of today.
// For completed challenges the streaks are the frozen final values.
type ChallengeProgress struct {
	Challenge        *Challenge
	ChallengerStreak int
	OpponentStreak   int
	DaysLeft         int
}
