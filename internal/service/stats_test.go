package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/habitkit/internal/model"
	"github.com/templui/habitkit/internal/testutil"
)

func TestStatsService_HabitStats(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "ana@example.com", "UTC")
	habit := testutil.CreateHabit(t, f.db, user.ID, "read", day(6))
	// 6..8 then a gap, then 11..14; today (15th) not logged yet
	testutil.Complete(t, f.db, habit.ID,
		"2024-03-06", "2024-03-07", "2024-03-08",
		"2024-03-11", "2024-03-12", "2024-03-13", "2024-03-14")

	stats, err := f.stats.HabitStats(user.ID, habit.ID)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.CurrentStreak)
	assert.Equal(t, 4, stats.LongestStreak)
	assert.Equal(t, 7, stats.TotalCompletions)
	assert.InDelta(t, 0.7, stats.CompletionRate, 0.0001)
	require.NotNil(t, stats.LastCompleted)
	assert.Equal(t, "2024-03-14", stats.LastCompleted.String())
}

func TestStatsService_GraceEndsAfterOneDay(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "ana@example.com", "UTC")
	habit := testutil.CreateHabit(t, f.db, user.ID, "read", day(1))
	testutil.Complete(t, f.db, habit.ID, "2024-03-12", "2024-03-13")

	// 14th missed: the streak is broken on the 15th
	stats, err := f.stats.HabitStats(user.ID, habit.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.CurrentStreak)
	assert.Equal(t, 2, stats.LongestStreak)
}

func TestStatsService_ForeignHabit(t *testing.T) {
	f := newFixture(t)
	ana := testutil.CreateUser(t, f.db, "ana@example.com", "UTC")
	bob := testutil.CreateUser(t, f.db, "bob@example.com", "UTC")
	habit := testutil.CreateHabit(t, f.db, ana.ID, "read", day(1))

	_, err := f.stats.HabitStats(bob.ID, habit.ID)
	assert.Error(t, err)
}

func TestStatsService_Overview(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "ana@example.com", "UTC")
	read := testutil.CreateHabit(t, f.db, user.ID, "read", day(1))
	run := testutil.CreateHabit(t, f.db, user.ID, "run", day(2))
	archived := testutil.CreateHabit(t, f.db, user.ID, "swim", day(3))
	require.NoError(t, f.habits.Archive(user.ID, archived.ID))

	testutil.Complete(t, f.db, read.ID, "2024-03-14", "2024-03-15")
	testutil.Complete(t, f.db, run.ID, "2024-03-13")
	testutil.Complete(t, f.db, archived.ID, "2024-03-15")

	overview, err := f.stats.Overview(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, model.Date{Year: 2024, Month: 3, Day: 15}, overview.Today)
	assert.Equal(t, 2, overview.TotalToday)
	assert.Equal(t, 1, overview.CompletedToday)
	require.Len(t, overview.Habits, 2)
	assert.Equal(t, read.ID, overview.Habits[0].HabitID)
	assert.Equal(t, 2, overview.Habits[0].CurrentStreak)
	assert.Equal(t, run.ID, overview.Habits[1].HabitID)
	assert.Equal(t, 0, overview.Habits[1].CurrentStreak)
}

func TestStatsService_OverviewWithoutHabits(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "ana@example.com", "UTC")

	overview, err := f.stats.Overview(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, overview.Habits)
	assert.Zero(t, overview.TotalToday)
}
