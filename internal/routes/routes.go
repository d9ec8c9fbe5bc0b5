package routes

import (
	"net/http"
	"time"

	"github.com/templui/habitkit/assets"
	"github.com/templui/habitkit/internal/app"
	"github.com/templui/habitkit/internal/handler"
	"github.com/templui/habitkit/internal/middleware"
	"github.com/templui/habitkit/internal/storage"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	docs := handler.NewDocsHandler(app.DocsService)
	auth := handler.NewAuthHandler(app.AuthService, app.ProfileService)
	account := handler.NewAccountHandler(app.AuthService, app.UserService, app.ProfileService, app.FileService)
	habit := handler.NewHabitHandler(app.HabitService)
	entry := handler.NewEntryHandler(app.EntryService)
	dashboard := handler.NewDashboardHandler(app.CalendarService, app.StatsService)
	challenge := handler.NewChallengeHandler(app.ChallengeService)

	cached := func(next http.HandlerFunc) http.HandlerFunc { return next }
	if app.Pages != nil {
		cached = middleware.PageCache(app.Pages)
	}
	protected := middleware.RequireAuth
	protectedCached := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireAuth(cached(next))
	}

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	// Static files
	mux.Handle("GET /assets/", assets.Handler("/assets/", app.Cfg.StaticMaxAge))
	if local, ok := app.Storage.(*storage.LocalStorage); ok {
		mux.Handle("GET "+storage.LocalURLPrefix, http.StripPrefix(storage.LocalURLPrefix, http.FileServer(http.Dir(local.Root()))))
	}

	// Health
	mux.HandleFunc("GET /healthz", health.Healthz)

	// Guides
	mux.HandleFunc("GET /docs", cached(docs.Tree))
	mux.HandleFunc("GET /docs/{$}", cached(docs.Tree))
	mux.HandleFunc("GET /docs/{slug...}", cached(docs.Page))

	// Auth (rate limited)
	authLimit := middleware.RateLimitAuth()
	mux.HandleFunc("POST /api/auth/register", authLimit(auth.Register))
	mux.HandleFunc("POST /api/auth/login", authLimit(auth.Login))
	mux.HandleFunc("POST /api/auth/logout", auth.Logout)

	// ============================================================================
	// PROTECTED ROUTES (/api/*)
	// ============================================================================

	// Account
	mux.HandleFunc("GET /api/me", protected(account.Me))
	mux.HandleFunc("PATCH /api/me/profile", protected(account.UpdateProfile))
	mux.HandleFunc("POST /api/me/avatar", protected(account.UploadAvatar))
	mux.HandleFunc("DELETE /api/me/avatar", protected(account.DeleteAvatar))
	mux.HandleFunc("DELETE /api/me", protected(account.DeleteAccount))

	// Habits
	mux.HandleFunc("GET /api/habits", protected(habit.List))
	mux.HandleFunc("POST /api/habits", protected(habit.Create))
	mux.HandleFunc("GET /api/habits/{id}", protected(habit.Get))
	mux.HandleFunc("PUT /api/habits/{id}", protected(habit.Update))
	mux.HandleFunc("DELETE /api/habits/{id}", protected(habit.Delete))
	mux.HandleFunc("POST /api/habits/{id}/archive", protected(habit.Archive))
	mux.HandleFunc("DELETE /api/habits/{id}/archive", protected(habit.Unarchive))

	// Entries
	mux.HandleFunc("GET /api/habits/{id}/entries", protected(entry.List))
	mux.HandleFunc("PUT /api/habits/{id}/entries/{date}", protected(entry.Set))
	mux.HandleFunc("POST /api/habits/{id}/entries/{date}/toggle", protected(entry.Toggle))
	mux.HandleFunc("DELETE /api/habits/{id}/entries/{date}", protected(entry.Delete))

	// Calendar & stats
	mux.HandleFunc("GET /api/habits/{id}/calendar", protectedCached(dashboard.HabitCalendar))
	mux.HandleFunc("GET /api/habits/{id}/stats", protectedCached(dashboard.HabitStats))
	mux.HandleFunc("GET /api/calendar", protectedCached(dashboard.Calendar))
	mux.HandleFunc("GET /api/stats", protectedCached(dashboard.Overview))

	// Challenges
	challengeLimit := middleware.RateLimit(middleware.NewRateLimiter(20, time.Hour))
	mux.HandleFunc("GET /api/challenges", protected(challenge.List))
	mux.HandleFunc("POST /api/challenges", challengeLimit(protected(challenge.Create)))
	mux.HandleFunc("GET /api/challenges/{id}", protected(challenge.Get))
	mux.HandleFunc("POST /api/challenges/{id}/accept", protected(challenge.Accept))
	mux.HandleFunc("POST /api/challenges/{id}/decline", protected(challenge.Decline))
	mux.HandleFunc("POST /api/challenges/{id}/cancel", protected(challenge.Cancel))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	mux.HandleFunc("/{path...}", handler.NotFound)

	// Global middleware - executed in order (top to bottom)
	middlewares := []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.RequestLogging,
		middleware.SecurityHeaders(app.Cfg.IsProduction()),
		middleware.Config(app.Cfg),
		middleware.AuthMiddleware(app.AuthService, app.UserService, app.ProfileService),
		middleware.CSRFProtection, // needs to know whether the request authenticated by cookie
	}
	if app.Pages != nil {
		middlewares = append(middlewares, middleware.InvalidatePages(app.Pages))
	}

	return middleware.Chain(mux, middlewares...)
}
