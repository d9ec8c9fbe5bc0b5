package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/templui/habitkit/internal/dto"
	"github.com/templui/habitkit/internal/repository"
	"github.com/templui/habitkit/internal/service"
	"github.com/templui/habitkit/internal/validation"
)

const maxBodyBytes = 1 << 20

var errEmptyBody = errors.New("request body is required")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, dto.ErrorResponse{Error: msg})
}

// decode reads a JSON body into dst and validates it. An empty body is
// accepted when optional is set.
func decode(w http.ResponseWriter, r *http.Request, dst any, optional bool) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	var maxBytesErr *http.MaxBytesError
	err := dec.Decode(dst)
	switch {
	case errors.Is(err, io.EOF):
		if !optional {
			return errEmptyBody
		}
	case errors.As(err, &maxBytesErr):
		return err
	case err != nil:
		return fmt.Errorf("%w: malformed JSON: %v", service.ErrValidation, err)
	}

	return validation.Struct(dst)
}

// statusFor maps service and repository errors to HTTP statuses.
func statusFor(err error) int {
	var fieldErr *validation.FieldError
	switch {
	case errors.As(err, &fieldErr),
		errors.Is(err, errEmptyBody),
		errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrFutureDate),
		errors.Is(err, service.ErrBeforeHabitCreation),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrChallengeSelf):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotChallengeOpponent):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrHabitNotFound),
		errors.Is(err, repository.ErrHabitEntryNotFound),
		errors.Is(err, repository.ErrChallengeNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrProfileNotFound),
		errors.Is(err, repository.ErrFileNotFound),
		errors.Is(err, service.ErrOpponentNotFound),
		errors.Is(err, service.ErrDocNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrHabitArchived),
		errors.Is(err, service.ErrChallengeNotPending),
		errors.Is(err, service.ErrChallengeNotOpen),
		errors.Is(err, service.ErrEmailAlreadyExists):
		return http.StatusConflict
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

// handleError answers with the mapped status. Unexpected errors are logged
// with args and hidden from the client.
func handleError(w http.ResponseWriter, r *http.Request, err error, msg string, args ...any) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error(msg, append([]any{"error", err, "method", r.Method, "path", r.URL.Path}, args...)...)
		writeError(w, status, "internal server error")
		return
	}

	var fieldErr *validation.FieldError
	if errors.As(err, &fieldErr) {
		writeJSON(w, status, dto.ErrorResponse{Error: fieldErr.Error(), Field: fieldErr.Field})
		return
	}
	writeError(w, status, err.Error())
}

// NotFound answers requests no route matched.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "not found")
}
