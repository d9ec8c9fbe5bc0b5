// Package assets holds the static files served under /assets/.
package assets

import (
	"embed"
	"fmt"
	"net/http"
	"time"
)

//go:embed favicon.svg robots.txt
var AssetsFS embed.FS

// Handler serves AssetsFS below prefix with a public Cache-Control max-age.
func Handler(prefix string, maxAge time.Duration) http.Handler {
	files := http.StripPrefix(prefix, http.FileServer(http.FS(AssetsFS)))
	cacheControl := fmt.Sprintf("public, max-age=%d", int(maxAge.Seconds()))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", cacheControl)
		files.ServeHTTP(w, r)
	})
}
