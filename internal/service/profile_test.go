package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/habitkit/internal/testutil"
)

func TestProfileService_Update(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "ana@example.com", "UTC")

	name := "  Ana  "
	profile, err := f.profiles.Update(user.ID, &name, nil)
	require.NoError(t, err)
	assert.Equal(t, "Ana", profile.Name)
	assert.Equal(t, "UTC", profile.Timezone)

	tz := "America/New_York"
	profile, err = f.profiles.Update(user.ID, nil, &tz)
	require.NoError(t, err)
	assert.Equal(t, "Ana", profile.Name)
	assert.Equal(t, tz, profile.Timezone)

	for _, bad := range []string{"", "Local", "Nowhere/City"} {
		_, err = f.profiles.Update(user.ID, nil, &bad)
		assert.ErrorIs(t, err, ErrValidation, bad)
	}
}

func TestProfileService_TimezoneMovesToday(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "ana@example.com", "UTC")
	habit := testutil.CreateHabit(t, f.db, user.ID, "read", day(1))

	// 12:00 UTC on the 15th is already the 16th in Auckland
	_, err := f.entries.SetEntry(user.ID, habit.ID, "2024-03-16", true, "")
	assert.ErrorIs(t, err, ErrFutureDate)

	tz := "Pacific/Auckland"
	_, err = f.profiles.Update(user.ID, nil, &tz)
	require.NoError(t, err)

	_, err = f.entries.SetEntry(user.ID, habit.ID, "2024-03-16", true, "")
	assert.NoError(t, err)
}
