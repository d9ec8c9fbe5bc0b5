package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/habitkit/internal/cache"
	"github.com/templui/habitkit/internal/config"
	"github.com/templui/habitkit/internal/db"
	"github.com/templui/habitkit/internal/imageproc"
	"github.com/templui/habitkit/internal/job"
	"github.com/templui/habitkit/internal/repository"
	"github.com/templui/habitkit/internal/service"
	"github.com/templui/habitkit/internal/storage"
)

const memoryCacheCleanup = time.Minute

type App struct {
	Cfg     *config.Config
	DB      *sqlx.DB
	Storage storage.Storage

	// Pages is nil when CACHE_ENABLED=false.
	Pages      *cache.PageCache
	cacheStore cache.Store

	Jobs *job.Manager

	AuthService      *service.AuthService
	UserService      *service.UserService
	ProfileService   *service.ProfileService
	EmailService     *service.EmailService
	FileService      *service.FileService
	HabitService     *service.HabitService
	EntryService     *service.EntryService
	CalendarService  *service.CalendarService
	StatsService     *service.StatsService
	ChallengeService *service.ChallengeService
	DocsService      *service.DocsService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.Migrate(context.Background(), database.DB, cfg.DBDriver)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	a := &App{Cfg: cfg, DB: database}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	profileRepository := repository.NewProfileRepository(database)
	fileRepository := repository.NewFileRepository(database)
	habitRepository := repository.NewHabitRepository(database)
	entryRepository := repository.NewHabitEntryRepository(database)
	challengeRepository := repository.NewChallengeRepository(database)

	// Storage
	a.Storage, err = storage.New(cfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Page cache
	if cfg.CacheEnabled {
		a.cacheStore, err = newCacheStore(cfg)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialize cache: %w", err)
		}
		a.Pages = cache.NewPageCache(a.cacheStore, cfg.CacheTTL)
	}

	// Services
	a.EmailService = service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	a.FileService = service.NewFileService(fileRepository, a.Storage, imageproc.Options{
		Size:    cfg.AvatarSize,
		Quality: cfg.AvatarQuality,
	})
	a.AuthService = service.NewAuthService(
		userRepository,
		profileRepository,
		a.EmailService,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
	)
	a.UserService = service.NewUserService(userRepository, profileRepository, a.FileService, a.EmailService)
	a.ProfileService = service.NewProfileService(profileRepository)
	a.HabitService = service.NewHabitService(habitRepository)
	a.EntryService = service.NewEntryService(habitRepository, entryRepository, profileRepository)
	a.CalendarService = service.NewCalendarService(habitRepository, entryRepository, profileRepository)
	a.StatsService = service.NewStatsService(habitRepository, entryRepository, profileRepository)
	a.ChallengeService = service.NewChallengeService(
		challengeRepository,
		habitRepository,
		entryRepository,
		userRepository,
		profileRepository,
		a.EmailService,
	)
	a.DocsService = service.NewDocsService(cfg.ContentPath)

	// Jobs
	a.Jobs = job.NewManager()
	err = a.Jobs.Register(cfg.ChallengeSweepSchedule, job.NewChallengeJob(a.ChallengeService))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to register challenge job: %w", err)
	}

	return a, nil
}

func newCacheStore(cfg *config.Config) (cache.Store, error) {
	if !cfg.UseRedis() {
		slog.Info("page cache using memory store", "ttl", cfg.CacheTTL)
		return cache.NewMemoryStore(memoryCacheCleanup), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := cache.NewRedisStore(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	slog.Info("page cache using redis", "ttl", cfg.CacheTTL)
	return store, nil
}

func (a *App) Close() error {
	var errs []error
	if a.cacheStore != nil {
		errs = append(errs, a.cacheStore.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}
