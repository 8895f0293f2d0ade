// Package static embeds the site's stylesheet and script.
package static

import (
	"embed"
	"net/http"
	"strings"
)

// FS holds the embedded assets.
//
//go:embed site.css site.js
var FS embed.FS

// cacheControl lets browsers reuse assets for a day between deploys.
const cacheControl = "public, max-age=86400"

// Handler serves FS below prefix. Directory paths are not listed.
func Handler(prefix string) http.Handler {
	files := http.StripPrefix(prefix, http.FileServerFS(FS))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", cacheControl)
		files.ServeHTTP(w, r)
	})
}
