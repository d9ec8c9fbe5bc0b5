package handler

import (
	"net/http"

	"github.com/templui/habitkit/internal/ctxkeys"
	"github.com/templui/habitkit/internal/dto"
	"github.com/templui/habitkit/internal/model"
	"github.com/templui/habitkit/internal/service"
)

type EntryHandler struct {
	entryService *service.EntryService
}

func NewEntryHandler(entryService *service.EntryService) *EntryHandler {
	return &EntryHandler{
		entryService: entryService,
	}
}

func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	habitID := r.PathValue("id")
	query := r.URL.Query()

	entries, err := h.entryService.Entries(user.ID, habitID, query.Get("from"), query.Get("to"))
	if err != nil {
		handleError(w, r, err, "failed to get entries", "user_id", user.ID, "habit_id", habitID)
		return
	}

	resp, err := dto.NewEntryResponses(entries)
	if err != nil {
		handleError(w, r, err, "failed to map entries", "habit_id", habitID)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *EntryHandler) Set(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	habitID := r.PathValue("id")
	date := r.PathValue("date")

	var req dto.EntryRequest
	err := decode(w, r, &req, false)
	if err != nil {
		handleError(w, r, err, "invalid entry request", "user_id", user.ID)
		return
	}

	entry, err := h.entryService.SetEntry(user.ID, habitID, date, *req.Completed, req.Note)
	if err != nil {
		handleError(w, r, err, "failed to set entry", "user_id", user.ID, "habit_id", habitID, "date", date)
		return
	}

	h.writeEntry(w, r, entry)
}

func (h *EntryHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	habitID := r.PathValue("id")
	date := r.PathValue("date")

	entry, err := h.entryService.Toggle(user.ID, habitID, date)
	if err != nil {
		handleError(w, r, err, "failed to toggle entry", "user_id", user.ID, "habit_id", habitID, "date", date)
		return
	}

	h.writeEntry(w, r, entry)
}

func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	habitID := r.PathValue("id")
	date := r.PathValue("date")

	err := h.entryService.DeleteEntry(user.ID, habitID, date)
	if err != nil {
		handleError(w, r, err, "failed to delete entry", "user_id", user.ID, "habit_id", habitID, "date", date)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EntryHandler) writeEntry(w http.ResponseWriter, r *http.Request, entry *model.HabitEntry) {
	resp, err := dto.NewEntryResponse(entry)
	if err != nil {
		handleError(w, r, err, "failed to map entry", "habit_id", entry.HabitID)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
