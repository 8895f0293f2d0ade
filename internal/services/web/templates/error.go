package templates

import (
	"context"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/educonsult/site/internal/services/web/routepath"
)

// ErrorCopyKeys returns the catalog keys of the title and message shown
// for statusCode.
func ErrorCopyKeys(statusCode int) (title string, message string) {
	switch {
	case statusCode == http.StatusNotFound:
		return "error.not_found.title", "error.not_found.message"
	case statusCode >= http.StatusInternalServerError:
		return "error.unavailable.title", "error.unavailable.message"
	default:
		return "error.invalid.title", "error.invalid.message"
	}
}

// ErrorPageTitle returns the localized title for statusCode.
func ErrorPageTitle(p Page, statusCode int) string {
	title, _ := ErrorCopyKeys(statusCode)
	return p.T(title)
}

// ErrorState renders an error page body. A non-empty messageKey replaces
// the status default.
func ErrorState(p Page, statusCode int, messageKey string) templ.Component {
	titleKey, defaultMessage := ErrorCopyKeys(statusCode)
	if messageKey == "" {
		messageKey = defaultMessage
	}
	return Component(func(context.Context) g.Node {
		return h.Section(
			h.Class("error-page"),
			g.Attr("data-status", strconv.Itoa(statusCode)),
			h.Div(
				h.Class("container card"),
				h.H1(g.Text(p.T(titleKey))),
				h.P(g.Text(p.T(messageKey))),
				h.A(h.Class("btn btn-primary"), h.Href(p.Href(routepath.Root)), g.Text(p.T("error.back_home"))),
			),
		)
	})
}
