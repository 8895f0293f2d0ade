// Package publichandler provides a shared base for site module handlers.
// It centralizes page construction, rendering and error handling that
// would otherwise be duplicated across modules.
package publichandler

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	module "github.com/educonsult/site/internal/services/web/module"
	"github.com/educonsult/site/internal/services/web/platform/pagerender"
	"github.com/educonsult/site/internal/services/web/platform/weberror"
	webtemplates "github.com/educonsult/site/internal/services/web/templates"
)

// Base provides page rendering and error handling for module handlers.
// Embed it in handler structs.
type Base struct {
	deps module.Dependencies
}

// NewBase builds a handler base over the shared dependencies.
func NewBase(deps module.Dependencies) Base {
	return Base{deps: deps}
}

// Dependencies returns the shared dependencies.
func (b Base) Dependencies() module.Dependencies {
	return b.deps
}

// Logger returns the module logger.
func (b Base) Logger() *slog.Logger {
	return b.deps.LoggerOrDefault()
}

// Page resolves the page state for r.
func (b Base) Page(r *http.Request, title string) webtemplates.Page {
	return pagerender.NewPage(r, b.deps, title)
}

// WritePage renders body inside the site layout. Rendering failures fall
// back to the error page.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, page webtemplates.Page, statusCode int, body templ.Component) {
	if err := pagerender.WritePage(w, r, page, statusCode, body); err != nil {
		b.WriteError(w, r, err)
	}
}

// WriteNotFound renders the localized 404 page.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, b.deps)
}

// WriteError renders a user-safe error response: error pages for not-found
// and server errors, plain status messages for everything else.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteModuleError(w, r, err, b.deps)
}
