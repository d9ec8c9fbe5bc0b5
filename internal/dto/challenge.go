package dto

import (
	"time"

	"github.com/templui/habitkit/internal/model"
)

type CreateChallengeRequest struct {
	OpponentEmail string `json:"opponent_email" validate:"required,email"`
	HabitID       string `json:"habit_id" validate:"required"`
	DurationDays  int    `json:"duration_days" validate:"omitempty,gte=1,lte=365"`
}

type AcceptChallengeRequest struct {
	HabitID string `json:"habit_id"`
}

type ChallengeResponse struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Status            string     `json:"status"`
	ChallengerID      string     `json:"challenger_id"`
	OpponentID        string     `json:"opponent_id"`
	ChallengerHabitID *string    `json:"challenger_habit_id"`
	OpponentHabitID   *string    `json:"opponent_habit_id"`
	DurationDays      int        `json:"duration_days"`
	StartDate         *string    `json:"start_date"`
	EndDate           *string    `json:"end_date"`
	ChallengerStreak  int        `json:"challenger_streak"`
	OpponentStreak    int        `json:"opponent_streak"`
	DaysLeft          int        `json:"days_left"`
	WinnerID          *string    `json:"winner_id"`
	CreatedAt         time.Time  `json:"created_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

// NewChallengeResponse maps a challenge without live progress.
func NewChallengeResponse(c *model.Challenge) (*ChallengeResponse, error) {
	out := &ChallengeResponse{}
	err := copyInto(out, c)
	return out, err
}

// NewChallengeProgressResponse maps a challenge with the streaks of both participants.
func NewChallengeProgressResponse(p *model.ChallengeProgress) (*ChallengeResponse, error) {
	out, err := NewChallengeResponse(p.Challenge)
	if err != nil {
		return nil, err
	}
	out.ChallengerStreak = p.ChallengerStreak
	out.OpponentStreak = p.OpponentStreak
	out.DaysLeft = p.DaysLeft
	return out, nil
}

func NewChallengeProgressResponses(list []*model.ChallengeProgress) ([]*ChallengeResponse, error) {
	out := make([]*ChallengeResponse, 0, len(list))
	for _, p := range list {
		resp, err := NewChallengeProgressResponse(p)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}
