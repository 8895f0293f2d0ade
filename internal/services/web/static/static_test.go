package static

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandlerServesEmbeddedAssets(t *testing.T) {
	t.Parallel()

	h := Handler("/static/")
	for path, contentType := range map[string]string{
		"/static/site.css": "text/css",
		"/static/site.js":  "javascript",
	} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d, want %d", path, rr.Code, http.StatusOK)
		}
		if got := rr.Header().Get("Content-Type"); !strings.Contains(got, contentType) {
			t.Fatalf("GET %s content-type = %q, want %s", path, got, contentType)
		}
		if got := rr.Header().Get("Cache-Control"); got != cacheControl {
			t.Fatalf("GET %s cache-control = %q, want %q", path, got, cacheControl)
		}
	}
}

func TestHandlerHidesDirectoriesAndUnknownFiles(t *testing.T) {
	t.Parallel()

	h := Handler("/static/")
	for _, path := range []string{"/static/", "/static/static.go", "/static/missing.css"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusNotFound {
			t.Fatalf("GET %s status = %d, want %d", path, rr.Code, http.StatusNotFound)
		}
	}
}
