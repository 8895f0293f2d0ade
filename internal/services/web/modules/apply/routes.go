package apply

import (
	"net/http"

	"github.com/educonsult/site/internal/services/web/platform/httpx"
	"github.com/educonsult/site/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Apply, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.ApplyPrefix+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodPost+" "+routepath.ApplyNext, h.handleNext)
	mux.HandleFunc(http.MethodPost+" "+routepath.ApplyBack, h.handleBack)
	mux.HandleFunc(http.MethodPost+" "+routepath.ApplySubmit, h.handleSubmit)
	mux.HandleFunc(http.MethodPost+" "+routepath.ApplyReset, h.handleReset)
	for _, path := range []string{routepath.ApplyNext, routepath.ApplyBack, routepath.ApplySubmit, routepath.ApplyReset} {
		mux.HandleFunc(http.MethodGet+" "+path, httpx.MethodNotAllowed(http.MethodPost))
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.ApplyPrefix+"{rest...}", h.WriteNotFound)
}
