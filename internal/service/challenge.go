package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/templui/habitkit/internal/model"
	"github.com/templui/habitkit/internal/repository"
	"github.com/templui/habitkit/internal/streak"
)

const (
	DefaultChallengeDays = 30
	MaxChallengeDays     = 365
)

var (
	ErrChallengeSelf        = errors.New("you cannot challenge yourself")
	ErrOpponentNotFound     = errors.New("no user with that email")
	ErrChallengeNotPending  = errors.New("challenge is not pending")
	ErrChallengeNotOpen     = errors.New("challenge is already finished")
	ErrNotChallengeOpponent = errors.New("only the invited opponent can do this")
)

type ChallengeService struct {
	challengeRepo repository.ChallengeRepository
	habitRepo     repository.HabitRepository
	entryRepo     repository.HabitEntryRepository
	userRepo      repository.UserRepository
	profileRepo   repository.ProfileRepository
	emailService  *EmailService
	now           func() time.Time
}

func NewChallengeService(
	challengeRepo repository.ChallengeRepository,
	habitRepo repository.HabitRepository,
	entryRepo repository.HabitEntryRepository,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	emailService *EmailService,
) *ChallengeService {
	return &ChallengeService{
		challengeRepo: challengeRepo,
		habitRepo:     habitRepo,
		entryRepo:     entryRepo,
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		emailService:  emailService,
		now:           time.Now,
	}
}

// Create invites the user with opponentEmail to a streak challenge on habitID.
func (s *ChallengeService) Create(ctx context.Context, userID, opponentEmail, habitID string, durationDays int) (*model.Challenge, error) {
	if durationDays == 0 {
		durationDays = DefaultChallengeDays
	}
	if durationDays < 1 || durationDays > MaxChallengeDays {
		return nil, invalidf("duration must be between 1 and %d days", MaxChallengeDays)
	}

	habit, err := s.habitRepo.ByID(userID, habitID)
	if err != nil {
		return nil, err
	}
	if habit.IsArchived() {
		return nil, ErrHabitArchived
	}

	opponent, err := s.userRepo.ByEmail(strings.TrimSpace(opponentEmail))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrOpponentNotFound
		}
		return nil, fmt.Errorf("failed to get opponent: %w", err)
	}
	if opponent.ID == userID {
		return nil, ErrChallengeSelf
	}

	now := s.now()
	challenge := &model.Challenge{
		ID:                uuid.New().String(),
		ChallengerID:      userID,
		OpponentID:        opponent.ID,
		ChallengerHabitID: &habit.ID,
		Name:              habit.Name,
		DurationDays:      durationDays,
		Status:            model.ChallengeStatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = s.challengeRepo.Create(challenge)
	if err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}

	err = s.emailService.SendChallengeInvite(ctx, opponent.Email, s.displayName(opponent.ID, opponent.Email),
		s.displayName(userID, ""), challenge.Name, durationDays, challenge.ID)
	if err != nil {
		slog.Warn("failed to send challenge invite", "error", err, "challenge_id", challenge.ID)
	}

	slog.Info("challenge created", "challenge_id", challenge.ID, "challenger_id", userID, "opponent_id", opponent.ID)
	return challenge, nil
}

// participantChallenge loads a challenge the user takes part in. Other
// users' challenges are reported as not found.
func (s *ChallengeService) participantChallenge(userID, challengeID string) (*model.Challenge, error) {
	challenge, err := s.challengeRepo.ByID(challengeID)
	if err != nil {
		return nil, err
	}
	if !challenge.IsParticipant(userID) {
		return nil, repository.ErrChallengeNotFound
	}
	return challenge, nil
}

// transition persists challenge if it is still in fromStatus.
func (s *ChallengeService) transition(challenge *model.Challenge, fromStatus string, lost error) error {
	challenge.UpdatedAt = s.now()
	err := s.challengeRepo.Update(challenge, fromStatus)
	if errors.Is(err, repository.ErrChallengeNotFound) {
		return lost
	}
	return err
}

// Accept starts a pending challenge today. The opponent tracks habitID, or a
// new habit named after the challenge when habitID is empty.
func (s *ChallengeService) Accept(ctx context.Context, userID, challengeID, habitID string) (*model.Challenge, error) {
	challenge, err := s.participantChallenge(userID, challengeID)
	if err != nil {
		return nil, err
	}
	if challenge.OpponentID != userID {
		return nil, ErrNotChallengeOpponent
	}
	if challenge.Status != model.ChallengeStatusPending {
		return nil, ErrChallengeNotPending
	}

	var habit *model.Habit
	if habitID != "" {
		habit, err = s.habitRepo.ByID(userID, habitID)
		if err != nil {
			return nil, err
		}
		if habit.IsArchived() {
			return nil, ErrHabitArchived
		}
	} else {
		now := s.now()
		habit = &model.Habit{
			ID:        uuid.New().String(),
			UserID:    userID,
			Name:      challenge.Name,
			CreatedAt: now,
			UpdatedAt: now,
		}
		err = s.habitRepo.Create(habit)
		if err != nil {
			return nil, fmt.Errorf("failed to create challenge habit: %w", err)
		}
	}

	today, _, err := userToday(s.profileRepo, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve timezone: %w", err)
	}
	start := today.String()
	end := today.AddDays(challenge.DurationDays - 1).String()

	challenge.OpponentHabitID = &habit.ID
	challenge.Status = model.ChallengeStatusActive
	challenge.StartDate = &start
	challenge.EndDate = &end

	err = s.transition(challenge, model.ChallengeStatusPending, ErrChallengeNotPending)
	if err != nil {
		return nil, err
	}

	challenger, err := s.userRepo.ByID(challenge.ChallengerID)
	if err == nil {
		err = s.emailService.SendChallengeAccepted(ctx, challenger.Email, s.displayName(challenger.ID, challenger.Email),
			s.displayName(userID, ""), challenge.Name, end)
	}
	if err != nil {
		slog.Warn("failed to notify challenger", "error", err, "challenge_id", challenge.ID)
	}

	return challenge, nil
}

func (s *ChallengeService) Decline(userID, challengeID string) (*model.Challenge, error) {
	challenge, err := s.participantChallenge(userID, challengeID)
	if err != nil {
		return nil, err
	}
	if challenge.OpponentID != userID {
		return nil, ErrNotChallengeOpponent
	}
	if challenge.Status != model.ChallengeStatusPending {
		return nil, ErrChallengeNotPending
	}

	challenge.Status = model.ChallengeStatusDeclined
	err = s.transition(challenge, model.ChallengeStatusPending, ErrChallengeNotPending)
	if err != nil {
		return nil, err
	}
	return challenge, nil
}

// Cancel ends a pending or active challenge without a winner.
func (s *ChallengeService) Cancel(userID, challengeID string) (*model.Challenge, error) {
	challenge, err := s.participantChallenge(userID, challengeID)
	if err != nil {
		return nil, err
	}
	if !challenge.IsOpen() {
		return nil, ErrChallengeNotOpen
	}

	from := challenge.Status
	challenge.Status = model.ChallengeStatusCancelled
	err = s.transition(challenge, from, ErrChallengeNotOpen)
	if err != nil {
		return nil, err
	}
	return challenge, nil
}

func (s *ChallengeService) ByID(userID, challengeID string) (*model.ChallengeProgress, error) {
	challenge, err := s.participantChallenge(userID, challengeID)
	if err != nil {
		return nil, err
	}
	return s.progress(challenge)
}

func (s *ChallengeService) Challenges(userID, status string) ([]*model.ChallengeProgress, error) {
	switch status {
	case "", model.ChallengeStatusPending, model.ChallengeStatusActive, model.ChallengeStatusDeclined,
		model.ChallengeStatusCancelled, model.ChallengeStatusCompleted:
	default:
		return nil, invalidf("unknown status %q", status)
	}

	challenges, err := s.challengeRepo.Challenges(userID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to get challenges: %w", err)
	}

	out := make([]*model.ChallengeProgress, 0, len(challenges))
	for _, c := range challenges {
		p, err := s.progress(c)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// windowStreak is the current streak of habitID counted only over days in
// [start, asOf].
func (s *ChallengeService) windowStreak(habitID string, start, asOf model.Date) (int, error) {
	if habitID == "" || asOf.Before(start) {
		return 0, nil
	}
	days, err := completedDays(s.entryRepo, habitID)
	if err != nil {
		return 0, err
	}
	return streak.Current(streak.Within(days, start, asOf), asOf), nil
}

func (s *ChallengeService) challengeWindow(c *model.Challenge) (model.Date, model.Date, error) {
	if c.StartDate == nil || c.EndDate == nil {
		return model.Date{}, model.Date{}, fmt.Errorf("challenge %s has no window", c.ID)
	}
	start, err := model.ParseDate(*c.StartDate)
	if err != nil {
		return model.Date{}, model.Date{}, err
	}
	end, err := model.ParseDate(*c.EndDate)
	if err != nil {
		return model.Date{}, model.Date{}, err
	}
	return start, end, nil
}

func (s *ChallengeService) progress(c *model.Challenge) (*model.ChallengeProgress, error) {
	p := &model.ChallengeProgress{
		Challenge:        c,
		ChallengerStreak: c.ChallengerStreak,
		OpponentStreak:   c.OpponentStreak,
	}
	if c.Status != model.ChallengeStatusActive {
		return p, nil
	}

	start, end, err := s.challengeWindow(c)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for _, side := range []struct {
		userID string
		out    *int
	}{
		{c.ChallengerID, &p.ChallengerStreak},
		{c.OpponentID, &p.OpponentStreak},
	} {
		today, _, err := userToday(s.profileRepo, side.userID, now)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve timezone: %w", err)
		}
		asOf := today
		if asOf.After(end) {
			asOf = end
		}
		n, err := s.windowStreak(c.HabitFor(side.userID), start, asOf)
		if err != nil {
			return nil, fmt.Errorf("failed to compute streak: %w", err)
		}
		*side.out = n
		if side.userID == c.OpponentID {
			p.DaysLeft = max(0, today.DaysUntil(end)+1)
		}
	}

	return p, nil
}

// CompleteExpired finishes every active challenge whose last day is before
// today: both streaks are frozen as of the last day and the higher one wins.
// Equal streaks finish without a winner. It returns the number completed.
func (s *ChallengeService) CompleteExpired(ctx context.Context, today model.Date) (int, error) {
	expired, err := s.challengeRepo.Expired(today.String())
	if err != nil {
		return 0, fmt.Errorf("failed to get expired challenges: %w", err)
	}

	completed := 0
	for _, c := range expired {
		if err := ctx.Err(); err != nil {
			return completed, err
		}

		err := s.complete(ctx, c)
		if errors.Is(err, ErrChallengeNotOpen) {
			continue
		}
		if err != nil {
			return completed, fmt.Errorf("failed to complete challenge %s: %w", c.ID, err)
		}
		completed++
	}

	return completed, nil
}

func (s *ChallengeService) complete(ctx context.Context, c *model.Challenge) error {
	start, end, err := s.challengeWindow(c)
	if err != nil {
		return err
	}

	c.ChallengerStreak, err = s.windowStreak(c.HabitFor(c.ChallengerID), start, end)
	if err != nil {
		return err
	}
	c.OpponentStreak, err = s.windowStreak(c.HabitFor(c.OpponentID), start, end)
	if err != nil {
		return err
	}

	switch {
	case c.ChallengerStreak > c.OpponentStreak:
		c.WinnerID = &c.ChallengerID
	case c.OpponentStreak > c.ChallengerStreak:
		c.WinnerID = &c.OpponentID
	default:
		c.WinnerID = nil
	}

	now := s.now()
	c.Status = model.ChallengeStatusCompleted
	c.CompletedAt = &now

	err = s.transition(c, model.ChallengeStatusActive, ErrChallengeNotOpen)
	if err != nil {
		return err
	}

	slog.Info("challenge completed", "challenge_id", c.ID, "challenger_streak", c.ChallengerStreak,
		"opponent_streak", c.OpponentStreak)

	s.notifyResult(ctx, c, c.ChallengerID, c.ChallengerStreak, c.OpponentStreak)
	s.notifyResult(ctx, c, c.OpponentID, c.OpponentStreak, c.ChallengerStreak)
	return nil
}

func (s *ChallengeService) notifyResult(ctx context.Context, c *model.Challenge, userID string, own, other int) {
	user, err := s.userRepo.ByID(userID)
	if err != nil {
		slog.Warn("failed to load challenge participant", "error", err, "user_id", userID)
		return
	}

	outcome := outcomeTie
	if c.WinnerID != nil {
		outcome = outcomeLost
		if *c.WinnerID == userID {
			outcome = outcomeWon
		}
	}

	err = s.emailService.SendChallengeResult(ctx, user.Email, s.displayName(userID, user.Email), c.Name, own, other, outcome)
	if err != nil {
		slog.Warn("failed to send challenge result", "error", err, "challenge_id", c.ID, "user_id", userID)
	}
}

// displayName returns the profile name, or fallback when it is empty.
func (s *ChallengeService) displayName(userID, fallback string) string {
	profile, err := s.profileRepo.ByUserID(userID)
	if err == nil && profile.Name != "" {
		return profile.Name
	}
	if fallback == "" {
		return "Someone"
	}
	return fallback
}
