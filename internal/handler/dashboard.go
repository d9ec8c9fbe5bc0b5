package handler

import (
	"net/http"
	"strconv"

	"github.com/templui/habitkit/internal/ctxkeys"
	"github.com/templui/habitkit/internal/dto"
	"github.com/templui/habitkit/internal/service"
)

// DashboardHandler serves the read-only calendar and statistics views.
type DashboardHandler struct {
	calendarService *service.CalendarService
	statsService    *service.StatsService
}

func NewDashboardHandler(calendarService *service.CalendarService, statsService *service.StatsService) *DashboardHandler {
	return &DashboardHandler{
		calendarService: calendarService,
		statsService:    statsService,
	}
}

// monthQuery reads the optional year and month query parameters; 0 means current.
func monthQuery(r *http.Request) (year, month int, ok bool) {
	query := r.URL.Query()
	for _, p := range []struct {
		name string
		out  *int
	}{{"year", &year}, {"month", &month}} {
		raw := query.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, false
		}
		*p.out = n
	}
	return year, month, true
}

func (h *DashboardHandler) HabitCalendar(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	habitID := r.PathValue("id")

	year, month, ok := monthQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "year and month must be numbers")
		return
	}

	cal, err := h.calendarService.HabitMonth(user.ID, habitID, year, month)
	if err != nil {
		handleError(w, r, err, "failed to get habit calendar", "user_id", user.ID, "habit_id", habitID)
		return
	}

	resp, err := dto.NewHabitCalendarResponse(cal)
	if err != nil {
		handleError(w, r, err, "failed to map calendar", "habit_id", habitID)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *DashboardHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	year, month, ok := monthQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "year and month must be numbers")
		return
	}

	cal, err := h.calendarService.Month(user.ID, year, month)
	if err != nil {
		handleError(w, r, err, "failed to get calendar", "user_id", user.ID)
		return
	}

	resp, err := dto.NewCalendarResponse(cal)
	if err != nil {
		handleError(w, r, err, "failed to map calendar", "user_id", user.ID)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *DashboardHandler) HabitStats(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	habitID := r.PathValue("id")

	stats, err := h.statsService.HabitStats(user.ID, habitID)
	if err != nil {
		handleError(w, r, err, "failed to get habit stats", "user_id", user.ID, "habit_id", habitID)
		return
	}

	resp, err := dto.NewStatsResponse(stats)
	if err != nil {
		handleError(w, r, err, "failed to map stats", "habit_id", habitID)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	overview, err := h.statsService.Overview(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err, "failed to get overview", "user_id", user.ID)
		return
	}

	resp, err := dto.NewOverviewResponse(overview)
	if err != nil {
		handleError(w, r, err, "failed to map overview", "user_id", user.ID)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
