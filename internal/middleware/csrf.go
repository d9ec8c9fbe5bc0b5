package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"log/slog"
	"net/http"
	"time"

	"github.com/templui/habitkit/internal/ctxkeys"
	"github.com/templui/habitkit/internal/service"
)

const (
	csrfCookieName = "csrf_token"
	csrfHeader     = "X-CSRF-Token"
	csrfTokenBytes = 32
	csrfTokenTTL   = 7 * 24 * time.Hour
)

var csrfTokenLen = base64.RawURLEncoding.EncodedLen(csrfTokenBytes)

// CSRFProtection implements double-submit tokens for cookie sessions. Every
// response carries the token in X-CSRF-Token, and unsafe requests that
// authenticated with the auth cookie must send it back in the same header.
// Bearer and anonymous requests are not checked. It runs after AuthMiddleware.
func CSRFProtection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := csrfCookie(r)
		if !ok {
			token = newCSRFToken()
			setCSRFCookie(w, r, token)
		}
		w.Header().Set(csrfHeader, token)

		if needsCSRFCheck(r) && !tokensMatch(token, r.Header.Get(csrfHeader)) {
			slog.Warn("csrf validation failed", "method", r.Method, "path", r.URL.Path, "ip", getClientIP(r))
			writeError(w, http.StatusForbidden, "invalid CSRF token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// needsCSRFCheck reports whether r is an unsafe request that AuthMiddleware
// authenticated from the auth cookie. Stale cookies leave the request
// anonymous and are not checked.
func needsCSRFCheck(r *http.Request) bool {
	if isSafeMethod(r.Method) || bearerToken(r) != "" || ctxkeys.User(r.Context()) == nil {
		return false
	}
	c, err := r.Cookie(service.AuthCookieName)
	return err == nil && c.Value != ""
}

func csrfCookie(r *http.Request) (string, bool) {
	c, err := r.Cookie(csrfCookieName)
	if err != nil || len(c.Value) != csrfTokenLen {
		return "", false
	}
	return c.Value, true
}

func setCSRFCookie(w http.ResponseWriter, r *http.Request, token string) {
	cfg := ctxkeys.Config(r.Context())
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		// TLS terminates at the proxy, so r.TLS is not reliable here.
		Secure:   cfg != nil && cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(csrfTokenTTL.Seconds()),
	})
}

func newCSRFToken() string {
	b := make([]byte, csrfTokenBytes)
	// crypto/rand.Read never returns an error since Go 1.24.
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

func tokensMatch(expected, actual string) bool {
	return actual != "" && subtle.ConstantTimeCompare([]byte(expected), []byte(actual)) == 1
}
