package middleware

import (
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"
)

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(map[string]string{"error": msg})
	if err != nil {
		slog.Warn("failed to encode error response", "error", err)
	}
}
