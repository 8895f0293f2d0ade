// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"

	platformi18n "github.com/educonsult/site/internal/platform/i18n"
	"github.com/educonsult/site/internal/services/shared/i18nhttp"
	module "github.com/educonsult/site/internal/services/web/module"
	"github.com/educonsult/site/internal/services/web/platform/httpx"
	webtemplates "github.com/educonsult/site/internal/services/web/templates"
)

// NewPage resolves the per-request page state: the request language, the
// current URL for the language toggle and the site-wide contact details.
func NewPage(r *http.Request, deps module.Dependencies, title string) webtemplates.Page {
	page := webtemplates.Page{
		Printer:        platformi18n.NewPrinter(i18nhttp.FromRequest(r)),
		Title:          title,
		WhatsAppNumber: deps.WhatsAppNumber,
		Site:           deps.Site,
	}
	if r != nil && r.URL != nil {
		page.Path = r.URL.Path
		page.RawQuery = r.URL.RawQuery
	}
	return page
}

// WritePage renders body inside the site layout and writes it with
// statusCode and the page language. Nothing is written when rendering
// fails.
func WritePage(w http.ResponseWriter, r *http.Request, page webtemplates.Page, statusCode int, body templ.Component) error {
	if w == nil {
		return nil
	}
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	if body == nil {
		body = templ.NopComponent
	}

	var buf bytes.Buffer
	ctx := templ.WithChildren(httpx.RequestContext(r), body)
	if err := webtemplates.Layout(page).Render(ctx, &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Language", page.Locale())
	w.WriteHeader(statusCode)
	if r != nil && r.Method == http.MethodHead {
		return nil
	}
	_, _ = w.Write(buf.Bytes())
	return nil
}
