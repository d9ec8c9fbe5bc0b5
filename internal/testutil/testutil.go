// Package testutil provides database fixtures for package tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/templui/habitkit/internal/db"
	"github.com/templui/habitkit/internal/model"
	"github.com/templui/habitkit/internal/repository"
)

// NewDB opens a migrated sqlite database in a temp dir that is removed after the test.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	conn, err := db.Init(db.DriverSQLite, "file:"+path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, db.Migrate(t.Context(), conn.DB, db.DriverSQLite))
	return conn
}

// CreateUser inserts a user with an empty profile in the given timezone.
func CreateUser(t *testing.T, conn *sqlx.DB, email, timezone string) *model.User {
	t.Helper()

	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: "x",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, repository.NewUserRepository(conn).Create(user))
	require.NoError(t, repository.NewProfileRepository(conn).Create(&model.Profile{
		UserID:   user.ID,
		Name:     email,
		Timezone: timezone,
	}))
	return user
}

// CreateHabit inserts an active habit created at createdAt.
func CreateHabit(t *testing.T, conn *sqlx.DB, userID, name string, createdAt time.Time) *model.Habit {
	t.Helper()

	habit := &model.Habit{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, repository.NewHabitRepository(conn).Create(habit))
	return habit
}

// Complete marks the habit completed on each of the given YYYY-MM-DD days.
func Complete(t *testing.T, conn *sqlx.DB, habitID string, days ...string) {
	t.Helper()

	entries := repository.NewHabitEntryRepository(conn)
	for _, day := range days {
		entry, err := entries.GetOrCreate(habitID, day)
		require.NoError(t, err)
		entry.Completed = true
		entry.UpdatedAt = time.Now()
		require.NoError(t, entries.Update(entry))
	}
}
