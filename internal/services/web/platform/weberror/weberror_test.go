package weberror

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	module "github.com/educonsult/site/internal/services/web/module"
	apperrors "github.com/educonsult/site/internal/services/web/platform/errors"
	"github.com/educonsult/site/internal/services/web/platform/pagerender"
)

func TestWriteModuleErrorRendersPageForNotFound(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/blog/missing?lang=ar", nil)
	rr := httptest.NewRecorder()
	WriteModuleError(rr, req, apperrors.E(apperrors.KindNotFound, "missing"), module.Dependencies{})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	body := rr.Body.String()
	for _, marker := range []string{`data-status="404"`, `dir="rtl"`, "الصفحة غير موجودة"} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q: %q", marker, body)
		}
	}
}

func TestWriteModuleErrorUsesLocalizedKeyOnPage(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	deps := module.Dependencies{Logger: slog.New(slog.NewTextHandler(&logs, nil))}
	req := httptest.NewRequest(http.MethodGet, "/apply?lang=en", nil)
	rr := httptest.NewRecorder()
	err := apperrors.Wrap(apperrors.KindUnavailable, "form.error.submit_failed", errors.New("redis: connection refused"))
	WriteModuleError(rr, req, err, deps)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "We couldn&#39;t send your application.") {
		t.Fatalf("body missing localized message: %q", body)
	}
	if strings.Contains(body, "connection refused") {
		t.Fatalf("body leaked internal error text: %q", body)
	}
	if !strings.Contains(logs.String(), "connection refused") {
		t.Fatalf("server failure should be logged, got %q", logs.String())
	}
}

func TestWriteModuleErrorWritesPlainTextForBadRequest(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/apply/next?lang=en", nil)
	rr := httptest.NewRecorder()
	WriteModuleError(rr, req, apperrors.E(apperrors.KindInvalidInput, "bad form"), module.Dependencies{})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "The request could not be processed.") {
		t.Fatalf("body = %q, want localized bad-request message", body)
	}
	if strings.Contains(body, "bad form") {
		t.Fatalf("body leaked internal error text: %q", body)
	}
}

func TestWriteAppErrorCoercesStatusesWithoutPage(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	WriteAppError(rr, req, http.StatusTeapot, module.Dependencies{})
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}

func TestPublicMessage(t *testing.T) {
	t.Parallel()

	page := pagerender.NewPage(httptest.NewRequest(http.MethodGet, "/?lang=en", nil), module.Dependencies{}, "")
	if got := PublicMessage(page, nil); got != "" {
		t.Fatalf("PublicMessage(nil) = %q, want empty", got)
	}
	keyed := apperrors.EK(apperrors.KindUnprocessable, "form.error.incomplete", "step 1 incomplete")
	if got := PublicMessage(page, keyed); got != "Please fill in all required fields to continue." {
		t.Fatalf("PublicMessage(keyed) = %q", got)
	}
	unknownKey := apperrors.EK(apperrors.KindNotFound, "no.such.key", "missing")
	if got := PublicMessage(page, unknownKey); got != "The page you are looking for does not exist." {
		t.Fatalf("PublicMessage(unknown key) = %q", got)
	}
	if got := PublicMessage(page, errors.New("boom")); got != "Something went wrong on our side. Please try again shortly." {
		t.Fatalf("PublicMessage(untyped) = %q", got)
	}
}
