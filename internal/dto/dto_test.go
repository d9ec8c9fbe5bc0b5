package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/habitkit/internal/model"
)

func TestNewHabitCalendarResponse(t *testing.T) {
	cal := &model.HabitCalendar{
		HabitID: "h1",
		Year:    2024,
		Month:   time.February,
		Days: []model.CalendarDay{
			{Date: model.Date{Year: 2024, Month: 2, Day: 1}, Completed: true, Note: "done"},
			{Date: model.Date{Year: 2024, Month: 2, Day: 2}},
		},
	}

	resp, err := NewHabitCalendarResponse(cal)
	require.NoError(t, err)
	assert.Equal(t, "h1", resp.HabitID)
	assert.Equal(t, 2, resp.Month)
	require.Len(t, resp.Days, 2)
	assert.Equal(t, CalendarDayResponse{Date: "2024-02-01", Completed: true, Note: "done"}, resp.Days[0])
	assert.Equal(t, "2024-02-02", resp.Days[1].Date)
}

func TestNewStatsResponse(t *testing.T) {
	last := model.Date{Year: 2024, Month: 3, Day: 14}
	resp, err := NewStatsResponse(&model.HabitStats{HabitID: "h1", CurrentStreak: 3, LastCompleted: &last})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.CurrentStreak)
	require.NotNil(t, resp.LastCompleted)
	assert.Equal(t, "2024-03-14", *resp.LastCompleted)

	resp, err = NewStatsResponse(&model.HabitStats{HabitID: "h2"})
	require.NoError(t, err)
	assert.Nil(t, resp.LastCompleted)
}

func TestNewHabitResponse(t *testing.T) {
	archivedAt := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	resp, err := NewHabitResponse(&model.Habit{ID: "h1", UserID: "u1", Name: "read", ArchivedAt: &archivedAt})
	require.NoError(t, err)
	assert.Equal(t, "read", resp.Name)
	assert.True(t, resp.Archived)
	assert.Equal(t, archivedAt, *resp.ArchivedAt)
}

func TestNewUserResponseOmitsSecrets(t *testing.T) {
	user := &model.User{ID: "u1", Email: "ana@example.com", PasswordHash: "hash", AvatarURL: "/uploads/a.jpg"}
	resp, err := NewUserResponse(user, &model.Profile{Name: "Ana", Timezone: "UTC"})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/a.jpg", resp.AvatarURL)
	require.NotNil(t, resp.Profile)
	assert.Equal(t, "Ana", resp.Profile.Name)

	resp, err = NewUserResponse(user, nil)
	require.NoError(t, err)
	assert.Nil(t, resp.Profile)
}

func TestNewChallengeProgressResponse(t *testing.T) {
	start, end := "2024-03-15", "2024-03-17"
	c := &model.Challenge{ID: "c1", Name: "read", Status: model.ChallengeStatusActive, StartDate: &start, EndDate: &end}

	resp, err := NewChallengeProgressResponse(&model.ChallengeProgress{Challenge: c, ChallengerStreak: 2, OpponentStreak: 1, DaysLeft: 2})
	require.NoError(t, err)
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, "2024-03-15", *resp.StartDate)
	assert.Equal(t, 2, resp.ChallengerStreak)
	assert.Equal(t, 1, resp.OpponentStreak)
	assert.Equal(t, 2, resp.DaysLeft)
}
