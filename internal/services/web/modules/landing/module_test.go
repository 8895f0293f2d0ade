package landing

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	module "github.com/educonsult/site/internal/services/web/module"
	"github.com/educonsult/site/internal/services/web/routepath"
)

func TestModuleIDReturnsLanding(t *testing.T) {
	t.Parallel()

	if got := New(module.Dependencies{}).ID(); got != "landing" {
		t.Fatalf("ID() = %q, want %q", got, "landing")
	}
}

func TestMountServesLandingPage(t *testing.T) {
	t.Parallel()

	mount, err := New(module.Dependencies{WhatsAppNumber: "+905391357686"}).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != routepath.Root {
		t.Fatalf("Prefix = %q, want %q", mount.Prefix, routepath.Root)
	}

	req := httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("content-type = %q, want %q", got, "text/html; charset=utf-8")
	}
	body := rr.Body.String()
	for _, marker := range []string{`id="hero"`, `id="faq"`, ">Most Important<", `id="whatsapp-widget"`, `href="/blog?lang=en"`} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q", marker)
		}
	}
	if got := strings.Count(body, `class="card post-card"`); got != 3 {
		t.Fatalf("featured posts = %d, want 3", got)
	}
}

func TestMountServesArabicLanding(t *testing.T) {
	t.Parallel()

	mount, _ := New(module.Dependencies{}).Mount()
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/?lang=ar", nil))
	body := rr.Body.String()
	for _, marker := range []string{`<html lang="ar" dir="rtl">`, `class="site arabic"`, ">English</a>"} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q", marker)
		}
	}
	if strings.Contains(body, `id="whatsapp-widget"`) {
		t.Fatalf("widget should be hidden without a number")
	}
}
