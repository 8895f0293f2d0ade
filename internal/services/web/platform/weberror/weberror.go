// Package weberror renders localized error responses for web modules.
package weberror

import (
	"net/http"
	"strings"

	module "github.com/educonsult/site/internal/services/web/module"
	apperrors "github.com/educonsult/site/internal/services/web/platform/errors"
	"github.com/educonsult/site/internal/services/web/platform/pagerender"
	webtemplates "github.com/educonsult/site/internal/services/web/templates"
)

// ShouldRenderPage reports whether statusCode gets a full error page.
func ShouldRenderPage(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(page webtemplates.Page, err error) string {
	if err == nil {
		return ""
	}
	if key := apperrors.LocalizationKey(err); key != "" {
		if localized := strings.TrimSpace(page.T(key)); localized != "" && localized != key {
			return localized
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	_, message := webtemplates.ErrorCopyKeys(statusCode)
	return page.T(message)
}

// WriteAppError writes a localized error page for statusCode. Statuses
// without a page are reported as 500.
func WriteAppError(w http.ResponseWriter, r *http.Request, statusCode int, deps module.Dependencies) {
	writeErrorPage(w, r, statusCode, "", deps)
}

func writeErrorPage(w http.ResponseWriter, r *http.Request, statusCode int, messageKey string, deps module.Dependencies) {
	if w == nil {
		return
	}
	if !ShouldRenderPage(statusCode) {
		statusCode = http.StatusInternalServerError
	}
	page := pagerender.NewPage(r, deps, "")
	page.Title = webtemplates.ErrorPageTitle(page, statusCode)
	if err := pagerender.WritePage(w, r, page, statusCode, webtemplates.ErrorState(page, statusCode, messageKey)); err != nil {
		deps.LoggerOrDefault().ErrorContext(r.Context(), "render error page", "status", statusCode, "error", err)
		http.Error(w, http.StatusText(statusCode), statusCode)
	}
}

// WriteModuleError writes err as a localized response. Not-found and
// server failures get a full page; other failures a plain message that
// never carries the internal error text.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, deps module.Dependencies) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode >= http.StatusInternalServerError {
		deps.LoggerOrDefault().ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	if ShouldRenderPage(statusCode) {
		writeErrorPage(w, r, statusCode, apperrors.LocalizationKey(err), deps)
		return
	}
	http.Error(w, PublicMessage(pagerender.NewPage(r, deps, ""), err), statusCode)
}
