package handler

import (
	"net/http"

	"github.com/templui/habitkit/internal/ctxkeys"
	"github.com/templui/habitkit/internal/dto"
	"github.com/templui/habitkit/internal/repository"
	"github.com/templui/habitkit/internal/service"
)

type HabitHandler struct {
	habitService *service.HabitService
}

func NewHabitHandler(habitService *service.HabitService) *HabitHandler {
	return &HabitHandler{
		habitService: habitService,
	}
}

func (h *HabitHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	sortBy := r.URL.Query().Get("sort")
	if sortBy == "" {
		sortBy = repository.HabitSortRecent
	}
	switch sortBy {
	case repository.HabitSortRecent, repository.HabitSortName, repository.HabitSortOldest:
	default:
		writeError(w, http.StatusBadRequest, "sort must be one of: recent, name, oldest")
		return
	}
	includeArchived := r.URL.Query().Get("archived") == "true"

	habits, err := h.habitService.Habits(user.ID, sortBy, includeArchived)
	if err != nil {
		handleError(w, r, err, "failed to get habits", "user_id", user.ID)
		return
	}

	resp, err := dto.NewHabitResponses(habits)
	if err != nil {
		handleError(w, r, err, "failed to map habits", "user_id", user.ID)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *HabitHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req dto.HabitRequest
	err := decode(w, r, &req, false)
	if err != nil {
		handleError(w, r, err, "invalid habit request", "user_id", user.ID)
		return
	}

	habit, err := h.habitService.Create(user.ID, req.Name, req.Description, req.Color)
	if err != nil {
		handleError(w, r, err, "failed to create habit", "user_id", user.ID)
		return
	}

	resp, err := dto.NewHabitResponse(habit)
	if err != nil {
		handleError(w, r, err, "failed to map habit", "habit_id", habit.ID)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *HabitHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	habitID := r.PathValue("id")

	habit, err := h.habitService.ByID(user.ID, habitID)
	if err != nil {
		handleError(w, r, err, "failed to get habit", "user_id", user.ID, "habit_id", habitID)
		return
	}

	resp, err := dto.NewHabitResponse(habit)
	if err != nil {
		handleError(w, r, err, "failed to map habit", "habit_id", habitID)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *HabitHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	habitID := r.PathValue("id")

	var req dto.HabitRequest
	err := decode(w, r, &req, false)
	if err != nil {
		handleError(w, r, err, "invalid habit request", "user_id", user.ID)
		return
	}

	habit, err := h.habitService.Update(user.ID, habitID, req.Name, req.Description, req.Color)
	if err != nil {
		handleError(w, r, err, "failed to update habit", "user_id", user.ID, "habit_id", habitID)
		return
	}

	resp, err := dto.NewHabitResponse(habit)
	if err != nil {
		handleError(w, r, err, "failed to map habit", "habit_id", habitID)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *HabitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	habitID := r.PathValue("id")

	err := h.habitService.Delete(user.ID, habitID)
	if err != nil {
		handleError(w, r, err, "failed to delete habit", "user_id", user.ID, "habit_id", habitID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HabitHandler) Archive(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, true)
}

func (h *HabitHandler) Unarchive(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, false)
}

func (h *HabitHandler) setArchived(w http.ResponseWriter, r *http.Request, archived bool) {
	user := ctxkeys.User(r.Context())
	habitID := r.PathValue("id")

	var err error
	if archived {
		err = h.habitService.Archive(user.ID, habitID)
	} else {
		err = h.habitService.Unarchive(user.ID, habitID)
	}
	if err != nil {
		handleError(w, r, err, "failed to archive habit", "user_id", user.ID, "habit_id", habitID, "archived", archived)
		return
	}

	h.Get(w, r)
}
