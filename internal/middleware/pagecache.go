package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/templui/habitkit/internal/cache"
	"github.com/templui/habitkit/internal/ctxkeys"
	"github.com/templui/habitkit/internal/model"
)

const (
	cacheHeader   = "X-Cache"
	anonymousUser = "anonymous"
)

// recorder passes the response through and keeps a copy of the body.
type recorder struct {
	*statusWriter
	body bytes.Buffer
}

func (r *recorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.statusWriter.Write(b)
}

// cacheNow is the clock used for the per-day part of page keys.
var cacheNow = time.Now

func cacheUser(ctx context.Context) string {
	if user := ctxkeys.User(ctx); user != nil {
		return user.ID
	}
	return anonymousUser
}

// cachePath prefixes uri with the requester's local date, so pages that
// depend on "today" expire at the user's midnight.
func cachePath(ctx context.Context, uri string) string {
	loc := time.UTC
	if profile := ctxkeys.Profile(ctx); profile != nil {
		loc = profile.Location()
	}
	return model.Today(cacheNow(), loc).String() + ":" + uri
}

// PageCache serves GET responses from pages, keyed by the requesting user,
// their local date and the full request URI. Only 200 responses are stored. A failing cache
// never fails the request.
func PageCache(pages *cache.PageCache) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next(w, r)
				return
			}

			ctx := r.Context()
			w.Header().Set("Cache-Control", "private, no-cache")
			w.Header().Add("Vary", "Authorization, Cookie")

			key, err := pages.Key(ctx, cacheUser(ctx), cachePath(ctx, r.URL.RequestURI()))
			if err != nil {
				slog.Warn("page cache unavailable", "error", err, "path", r.URL.Path)
				w.Header().Set(cacheHeader, "MISS")
				next(w, r)
				return
			}

			page, err := pages.Get(ctx, key)
			if err == nil {
				w.Header().Set(cacheHeader, "HIT")
				w.Header().Set("Content-Type", page.ContentType)
				w.WriteHeader(page.Status)
				_, _ = w.Write(page.Body)
				return
			}
			if !errors.Is(err, cache.ErrMiss) {
				slog.Warn("failed to read page cache", "error", err, "path", r.URL.Path)
			}

			w.Header().Set(cacheHeader, "MISS")
			rec := &recorder{statusWriter: &statusWriter{ResponseWriter: w}}
			next(rec, r)

			if rec.Status() != http.StatusOK {
				return
			}
			err = pages.Set(ctx, key, &cache.Page{
				Status:      http.StatusOK,
				ContentType: rec.Header().Get("Content-Type"),
				Body:        rec.body.Bytes(),
			})
			if err != nil {
				slog.Warn("failed to store page", "error", err, "path", r.URL.Path)
			}
		}
	}
}

// invalidatingWriter calls before with the status right before the
// response header goes out.
type invalidatingWriter struct {
	http.ResponseWriter
	before func(status int)
	done   bool
}

func (w *invalidatingWriter) WriteHeader(code int) {
	if !w.done {
		w.done = true
		w.before(code)
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *invalidatingWriter) Write(b []byte) (int, error) {
	if !w.done {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *invalidatingWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// InvalidatePages drops the cached pages of a signed-in user when a
// state-changing request succeeds, before the client sees the response.
func InvalidatePages(pages *cache.PageCache) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := ctxkeys.User(r.Context())
			if user == nil || isSafeMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			iw := &invalidatingWriter{
				ResponseWriter: w,
				before: func(status int) {
					if status >= http.StatusBadRequest {
						return
					}
					// the client may be gone already; the bump must still land
					err := pages.Invalidate(context.WithoutCancel(r.Context()), user.ID)
					if err != nil {
						slog.Error("failed to invalidate page cache", "error", err, "user_id", user.ID)
					}
				},
			}
			next.ServeHTTP(iw, r)

			if !iw.done {
				iw.WriteHeader(http.StatusOK)
			}
		})
	}
}
