package middleware

import (
	"net/http"

	"github.com/templui/habitkit/internal/config"
	"github.com/templui/habitkit/internal/ctxkeys"
)

// Config puts the sanitized configuration (no secrets, no DSNs) in the request context.
func Config(cfg *config.Config) func(http.Handler) http.Handler {
	sanitized := cfg.Sanitized()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(ctxkeys.WithConfig(r.Context(), sanitized)))
		})
	}
}
