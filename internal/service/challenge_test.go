package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/habitkit/internal/model"
	"github.com/templui/habitkit/internal/repository"
	"github.com/templui/habitkit/internal/testutil"
)

type challengeFixture struct {
	*fixture
	ana, bob, carl *model.User
	anaHabit       *model.Habit
}

func newChallengeFixture(t *testing.T) *challengeFixture {
	t.Helper()

	f := newFixture(t)
	ana := testutil.CreateUser(t, f.db, "ana@example.com", "UTC")
	return &challengeFixture{
		fixture:  f,
		ana:      ana,
		bob:      testutil.CreateUser(t, f.db, "bob@example.com", "UTC"),
		carl:     testutil.CreateUser(t, f.db, "carl@example.com", "UTC"),
		anaHabit: testutil.CreateHabit(t, f.db, ana.ID, "read", day(1)),
	}
}

// startChallenge runs a three day challenge from the 15th to the 17th.
func (f *challengeFixture) startChallenge(t *testing.T) *model.Challenge {
	t.Helper()

	ctx := context.Background()
	challenge, err := f.challenges.Create(ctx, f.ana.ID, "BOB@example.com", f.anaHabit.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, model.ChallengeStatusPending, challenge.Status)

	accepted, err := f.challenges.Accept(ctx, f.bob.ID, challenge.ID, "")
	require.NoError(t, err)
	return accepted
}

func TestChallengeService_Accept(t *testing.T) {
	f := newChallengeFixture(t)
	challenge := f.startChallenge(t)

	assert.Equal(t, model.ChallengeStatusActive, challenge.Status)
	require.NotNil(t, challenge.StartDate)
	require.NotNil(t, challenge.EndDate)
	assert.Equal(t, "2024-03-15", *challenge.StartDate)
	assert.Equal(t, "2024-03-17", *challenge.EndDate)

	require.NotNil(t, challenge.OpponentHabitID)
	habit, err := f.habits.ByID(f.bob.ID, *challenge.OpponentHabitID)
	require.NoError(t, err)
	assert.Equal(t, "read", habit.Name)
}

func TestChallengeService_CreateValidation(t *testing.T) {
	f := newChallengeFixture(t)
	ctx := context.Background()

	_, err := f.challenges.Create(ctx, f.ana.ID, "ana@example.com", f.anaHabit.ID, 3)
	assert.ErrorIs(t, err, ErrChallengeSelf)

	_, err = f.challenges.Create(ctx, f.ana.ID, "nobody@example.com", f.anaHabit.ID, 3)
	assert.ErrorIs(t, err, ErrOpponentNotFound)

	_, err = f.challenges.Create(ctx, f.ana.ID, "bob@example.com", f.anaHabit.ID, MaxChallengeDays+1)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.challenges.Create(ctx, f.bob.ID, "ana@example.com", f.anaHabit.ID, 3)
	assert.ErrorIs(t, err, repository.ErrHabitNotFound)

	challenge, err := f.challenges.Create(ctx, f.ana.ID, "bob@example.com", f.anaHabit.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultChallengeDays, challenge.DurationDays)
}

func TestChallengeService_Permissions(t *testing.T) {
	f := newChallengeFixture(t)
	ctx := context.Background()

	challenge, err := f.challenges.Create(ctx, f.ana.ID, "bob@example.com", f.anaHabit.ID, 3)
	require.NoError(t, err)

	_, err = f.challenges.Accept(ctx, f.ana.ID, challenge.ID, "")
	assert.ErrorIs(t, err, ErrNotChallengeOpponent)

	_, err = f.challenges.Accept(ctx, f.carl.ID, challenge.ID, "")
	assert.ErrorIs(t, err, repository.ErrChallengeNotFound)

	_, err = f.challenges.ByID(f.carl.ID, challenge.ID)
	assert.ErrorIs(t, err, repository.ErrChallengeNotFound)

	_, err = f.challenges.Decline(f.ana.ID, challenge.ID)
	assert.ErrorIs(t, err, ErrNotChallengeOpponent)

	declined, err := f.challenges.Decline(f.bob.ID, challenge.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ChallengeStatusDeclined, declined.Status)

	_, err = f.challenges.Accept(ctx, f.bob.ID, challenge.ID, "")
	assert.ErrorIs(t, err, ErrChallengeNotPending)

	_, err = f.challenges.Cancel(f.ana.ID, challenge.ID)
	assert.ErrorIs(t, err, ErrChallengeNotOpen)
}

func TestChallengeService_CancelActive(t *testing.T) {
	f := newChallengeFixture(t)
	challenge := f.startChallenge(t)

	cancelled, err := f.challenges.Cancel(f.ana.ID, challenge.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ChallengeStatusCancelled, cancelled.Status)
	assert.Nil(t, cancelled.WinnerID)
}

func TestChallengeService_Progress(t *testing.T) {
	f := newChallengeFixture(t)
	challenge := f.startChallenge(t)

	// entries before the start do not count towards the challenge
	testutil.Complete(t, f.db, f.anaHabit.ID, "2024-03-13", "2024-03-14", "2024-03-15", "2024-03-16")
	testutil.Complete(t, f.db, *challenge.OpponentHabitID, "2024-03-15")

	f.setNow(fixedNow.Add(24 * time.Hour))
	progress, err := f.challenges.ByID(f.bob.ID, challenge.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, progress.ChallengerStreak)
	assert.Equal(t, 1, progress.OpponentStreak)
	assert.Equal(t, 2, progress.DaysLeft)

	list, err := f.challenges.Challenges(f.ana.ID, model.ChallengeStatusActive)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, challenge.ID, list[0].Challenge.ID)

	_, err = f.challenges.Challenges(f.ana.ID, "bogus")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestChallengeService_CompleteExpiredPicksWinner(t *testing.T) {
	f := newChallengeFixture(t)
	challenge := f.startChallenge(t)
	ctx := context.Background()

	testutil.Complete(t, f.db, f.anaHabit.ID, "2024-03-15", "2024-03-16", "2024-03-17")
	testutil.Complete(t, f.db, *challenge.OpponentHabitID, "2024-03-15", "2024-03-16")

	// not over until the last day has passed
	n, err := f.challenges.CompleteExpired(ctx, model.Date{Year: 2024, Month: 3, Day: 17})
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = f.challenges.CompleteExpired(ctx, model.Date{Year: 2024, Month: 3, Day: 18})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	progress, err := f.challenges.ByID(f.ana.ID, challenge.ID)
	require.NoError(t, err)
	done := progress.Challenge
	assert.Equal(t, model.ChallengeStatusCompleted, done.Status)
	assert.Equal(t, 3, done.ChallengerStreak)
	assert.Equal(t, 2, done.OpponentStreak)
	require.NotNil(t, done.WinnerID)
	assert.Equal(t, f.ana.ID, *done.WinnerID)
	assert.NotNil(t, done.CompletedAt)

	// entries logged afterwards do not change the result
	testutil.Complete(t, f.db, *challenge.OpponentHabitID, "2024-03-17")
	progress, err = f.challenges.ByID(f.bob.ID, challenge.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, progress.OpponentStreak)

	n, err = f.challenges.CompleteExpired(ctx, model.Date{Year: 2024, Month: 3, Day: 19})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestChallengeService_CompleteExpiredOpponentWins(t *testing.T) {
	f := newChallengeFixture(t)
	challenge := f.startChallenge(t)

	testutil.Complete(t, f.db, f.anaHabit.ID, "2024-03-15", "2024-03-17")
	testutil.Complete(t, f.db, *challenge.OpponentHabitID, "2024-03-16", "2024-03-17")

	n, err := f.challenges.CompleteExpired(context.Background(), model.Date{Year: 2024, Month: 3, Day: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	progress, err := f.challenges.ByID(f.ana.ID, challenge.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ChallengeStatusCompleted, progress.Challenge.Status)
	assert.Equal(t, 1, progress.ChallengerStreak)
	assert.Equal(t, 2, progress.OpponentStreak)
	require.NotNil(t, progress.Challenge.WinnerID)
	assert.Equal(t, f.bob.ID, *progress.Challenge.WinnerID)
}

func TestChallengeService_CompleteExpiredEqualStreaksHaveNoWinner(t *testing.T) {
	f := newChallengeFixture(t)
	challenge := f.startChallenge(t)

	testutil.Complete(t, f.db, f.anaHabit.ID, "2024-03-15", "2024-03-17")
	testutil.Complete(t, f.db, *challenge.OpponentHabitID, "2024-03-15", "2024-03-17")

	n, err := f.challenges.CompleteExpired(context.Background(), model.Date{Year: 2024, Month: 3, Day: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	progress, err := f.challenges.ByID(f.ana.ID, challenge.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.ChallengerStreak)
	assert.Equal(t, 1, progress.OpponentStreak)
	assert.Nil(t, progress.Challenge.WinnerID)
}

func TestChallengeService_HabitDeletionKeepsChallenge(t *testing.T) {
	f := newChallengeFixture(t)
	challenge := f.startChallenge(t)
	ctx := context.Background()

	testutil.Complete(t, f.db, f.anaHabit.ID, "2024-03-15", "2024-03-16", "2024-03-17")
	testutil.Complete(t, f.db, *challenge.OpponentHabitID, "2024-03-15")

	n, err := f.challenges.CompleteExpired(ctx, model.Date{Year: 2024, Month: 3, Day: 18})
	require.NoError(t, err)
	require.Equal(t, 1, n)

	require.NoError(t, f.habits.Delete(f.ana.ID, f.anaHabit.ID))

	list, err := f.challenges.Challenges(f.bob.ID, "")
	require.NoError(t, err)
	require.Len(t, list, 1)

	progress, err := f.challenges.ByID(f.bob.ID, challenge.ID)
	require.NoError(t, err)
	assert.Nil(t, progress.Challenge.ChallengerHabitID)
	assert.Equal(t, 3, progress.ChallengerStreak)
	require.NotNil(t, progress.Challenge.WinnerID)
	assert.Equal(t, f.ana.ID, *progress.Challenge.WinnerID)
}

func TestChallengeService_DeletedHabitScoresZero(t *testing.T) {
	f := newChallengeFixture(t)
	challenge := f.startChallenge(t)

	testutil.Complete(t, f.db, f.anaHabit.ID, "2024-03-15")
	testutil.Complete(t, f.db, *challenge.OpponentHabitID, "2024-03-15")
	require.NoError(t, f.habits.Delete(f.ana.ID, f.anaHabit.ID))

	progress, err := f.challenges.ByID(f.bob.ID, challenge.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ChallengeStatusActive, progress.Challenge.Status)
	assert.Equal(t, 0, progress.ChallengerStreak)
	assert.Equal(t, 1, progress.OpponentStreak)
}
