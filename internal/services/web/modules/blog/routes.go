package blog

import (
	"net/http"

	"github.com/educonsult/site/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Blog, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.BlogPrefix+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.BlogPostPattern, h.handlePost)
	mux.HandleFunc(http.MethodGet+" "+routepath.BlogPostPattern+"/{rest...}", h.WriteNotFound)
}
