package service

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/habitkit/internal/imageproc"
	"github.com/templui/habitkit/internal/repository"
	"github.com/templui/habitkit/internal/storage"
	"github.com/templui/habitkit/internal/testutil"
	"github.com/stretchr/testify/require"
)

// fixedNow is 2024-03-15 12:00 UTC.
var fixedNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	db         *sqlx.DB
	habits     *HabitService
	entries    *EntryService
	calendar   *CalendarService
	stats      *StatsService
	challenges *ChallengeService
	auth       *AuthService
	profiles   *ProfileService
	files      *FileService
	users      *UserService
	store      *storage.LocalStorage
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn := testutil.NewDB(t)
	userRepo := repository.NewUserRepository(conn)
	profileRepo := repository.NewProfileRepository(conn)
	habitRepo := repository.NewHabitRepository(conn)
	entryRepo := repository.NewHabitEntryRepository(conn)
	challengeRepo := repository.NewChallengeRepository(conn)
	fileRepo := repository.NewFileRepository(conn)

	store, err := storage.NewLocalStorage(t.TempDir(), storage.LocalURLPrefix)
	require.NoError(t, err)

	email := NewEmailService("", "noreply@example.com", "http://localhost", "Habitkit", true)
	files := NewFileService(fileRepo, store, imageproc.Options{Size: 64, Quality: 80})

	f := &fixture{
		db:         conn,
		habits:     NewHabitService(habitRepo),
		entries:    NewEntryService(habitRepo, entryRepo, profileRepo),
		calendar:   NewCalendarService(habitRepo, entryRepo, profileRepo),
		stats:      NewStatsService(habitRepo, entryRepo, profileRepo),
		challenges: NewChallengeService(challengeRepo, habitRepo, entryRepo, userRepo, profileRepo, email),
		auth:       NewAuthService(userRepo, profileRepo, email, "test-secret", false, time.Hour),
		profiles:   NewProfileService(profileRepo),
		files:      files,
		users:      NewUserService(userRepo, profileRepo, files, email),
		store:      store,
	}
	f.setNow(fixedNow)
	return f
}

func (f *fixture) setNow(now time.Time) {
	clock := func() time.Time { return now }
	f.habits.now = clock
	f.entries.now = clock
	f.calendar.now = clock
	f.stats.now = clock
	f.challenges.now = clock
}

// day returns the given March 2024 day at noon UTC.
func day(d int) time.Time {
	return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC)
}
