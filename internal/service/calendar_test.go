package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/habitkit/internal/testutil"
)

func TestCalendarService_HabitMonth(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "ana@example.com", "UTC")
	habit := testutil.CreateHabit(t, f.db, user.ID, "read", time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC))
	testutil.Complete(t, f.db, habit.ID, "2024-01-31", "2024-02-01", "2024-02-29", "2024-03-01")

	cal, err := f.calendar.HabitMonth(user.ID, habit.ID, 2024, 2)
	require.NoError(t, err)

	require.Len(t, cal.Days, 29)
	assert.Equal(t, "2024-02-01", cal.Days[0].Date.String())
	assert.True(t, cal.Days[0].Completed)
	assert.False(t, cal.Days[1].Completed)
	assert.True(t, cal.Days[28].Completed)

	completed := 0
	for _, d := range cal.Days {
		if d.Completed {
			completed++
		}
	}
	assert.Equal(t, 2, completed)
}

func TestCalendarService_DefaultsToCurrentMonth(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "ana@example.com", "UTC")
	habit := testutil.CreateHabit(t, f.db, user.ID, "read", day(1))

	cal, err := f.calendar.HabitMonth(user.ID, habit.ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2024, cal.Year)
	assert.Equal(t, time.March, cal.Month)
	assert.Len(t, cal.Days, 31)
}

func TestCalendarService_InvalidMonth(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "ana@example.com", "UTC")
	habit := testutil.CreateHabit(t, f.db, user.ID, "read", day(1))

	_, err := f.calendar.HabitMonth(user.ID, habit.ID, 2024, 13)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.calendar.Month(user.ID, 2024, -1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCalendarService_Month(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "ana@example.com", "UTC")
	read := testutil.CreateHabit(t, f.db, user.ID, "read", day(1))
	run := testutil.CreateHabit(t, f.db, user.ID, "run", day(10))
	testutil.Complete(t, f.db, read.ID, "2024-03-05", "2024-03-10")
	testutil.Complete(t, f.db, run.ID, "2024-03-10")

	cal, err := f.calendar.Month(user.ID, 2024, 3)
	require.NoError(t, err)
	require.Len(t, cal.Days, 31)

	fifth := cal.Days[4]
	assert.Equal(t, 1, fifth.Completed)
	assert.Equal(t, 1, fifth.Total)

	tenth := cal.Days[9]
	assert.Equal(t, 2, tenth.Completed)
	assert.Equal(t, 2, tenth.Total)

	assert.Equal(t, 0, cal.Days[10].Completed)
	assert.Equal(t, 2, cal.Days[10].Total)
}
