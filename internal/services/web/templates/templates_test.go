package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"

	platformi18n "github.com/educonsult/site/internal/platform/i18n"
)

const testWhatsApp = "+905391357686"

func testPage(t *testing.T, locale string, path string, rawQuery string) Page {
	t.Helper()
	tag, ok := platformi18n.ParseTag(locale)
	if !ok {
		t.Fatalf("ParseTag(%q) failed", locale)
	}
	return Page{
		Printer:        platformi18n.NewPrinter(tag),
		Path:           path,
		RawQuery:       rawQuery,
		WhatsAppNumber: testWhatsApp,
	}
}

func renderComponent(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func renderNode(t *testing.T, n g.Node) string {
	t.Helper()
	if n == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := n.Render(&buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func assertContains(t *testing.T, got string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Fatalf("output missing %q\n%s", w, got)
		}
	}
}

func assertNotContains(t *testing.T, got string, unwanted ...string) {
	t.Helper()
	for _, w := range unwanted {
		if strings.Contains(got, w) {
			t.Fatalf("output unexpectedly contains %q\n%s", w, got)
		}
	}
}

func TestComponentRendersNodeTree(t *testing.T) {
	t.Parallel()

	text := Component(func(context.Context) g.Node { return g.Text("a < b") })
	if got := renderComponent(t, context.Background(), text); got != "a &lt; b" {
		t.Fatalf("Component(text) = %q, want %q", got, "a &lt; b")
	}
	if got := renderComponent(t, context.Background(), Component(nil)); got != "" {
		t.Fatalf("Component(nil) = %q, want empty", got)
	}
}

func TestLayoutEmbedsChildren(t *testing.T) {
	t.Parallel()

	p := testPage(t, "en", "/", "lang=en")
	body := Component(func(context.Context) g.Node { return g.Text("BODY-MARKER") })
	ctx := templ.WithChildren(context.Background(), body)
	got := renderComponent(t, ctx, Layout(p))

	if !strings.HasPrefix(strings.ToLower(got), "<!doctype html>") {
		t.Fatalf("layout should start with a doctype: %q", got[:min(len(got), 40)])
	}
	assertContains(t, got,
		`<main id="main">BODY-MARKER</main>`,
		`href="/static/site.css"`,
		`src="/static/site.js"`,
		`<title>EduConsult | Study in North Cyprus</title>`,
	)
}

func TestLayoutDirection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		locale    string
		html      string
		bodyClass string
	}{
		{locale: "en", html: `<html lang="en" dir="ltr">`, bodyClass: `<body class="site">`},
		{locale: "ar", html: `<html lang="ar" dir="rtl">`, bodyClass: `<body class="site arabic">`},
	}
	for _, tc := range tests {
		t.Run(tc.locale, func(t *testing.T) {
			t.Parallel()
			got := renderComponent(t, context.Background(), Layout(testPage(t, tc.locale, "/", "lang="+tc.locale)))
			assertContains(t, got, tc.html, tc.bodyClass)
		})
	}
}

func TestNavigationSectionLinks(t *testing.T) {
	t.Parallel()

	landing := renderNode(t, Navigation(testPage(t, "en", "/", "lang=en")))
	assertContains(t, landing,
		`href="#services"`,
		`href="#universities"`,
		`href="#about"`,
		`href="#faq"`,
		`href="/blog?lang=en"`,
		`href="/apply?lang=en"`,
	)

	elsewhere := renderNode(t, Navigation(testPage(t, "ar", "/blog", "lang=ar")))
	assertContains(t, elsewhere,
		`href="/?lang=ar#services"`,
		`href="/?lang=ar#faq"`,
		`href="/blog?lang=ar"`,
	)
	assertNotContains(t, elsewhere, `href="#services"`)
}

func TestNavigationLanguageToggle(t *testing.T) {
	t.Parallel()

	en := renderNode(t, Navigation(testPage(t, "en", "/blog", "lang=en&q=visa")))
	assertContains(t, en, `href="/blog?lang=ar&amp;q=visa"`, ">العربية</a>")

	ar := renderNode(t, Navigation(testPage(t, "ar", "/apply", "lang=ar")))
	assertContains(t, ar, `href="/apply?lang=en"`, ">English</a>")
}

func TestPageHeadTitle(t *testing.T) {
	t.Parallel()

	p := testPage(t, "en", "/blog", "lang=en")
	if got := p.HeadTitle(); got != "EduConsult | Study in North Cyprus" {
		t.Fatalf("HeadTitle() = %q", got)
	}
	p.Title = "Latest Blog Posts"
	if got := p.HeadTitle(); got != "Latest Blog Posts | EduConsult | Study in North Cyprus" {
		t.Fatalf("HeadTitle() = %q", got)
	}
	if got := p.HeadDescription(); got != p.T("page.description") {
		t.Fatalf("HeadDescription() = %q", got)
	}
}

func TestPageWithoutPrinterUsesDefaultLocale(t *testing.T) {
	t.Parallel()

	var p Page
	if got := p.Locale(); got != "en" {
		t.Fatalf("Locale() = %q, want %q", got, "en")
	}
	if got := p.T("missing.key"); got != "missing.key" {
		t.Fatalf("T(missing) = %q, want key", got)
	}
	if got := p.SectionHref("faq"); got != "#faq" {
		t.Fatalf("SectionHref = %q, want %q", got, "#faq")
	}
}

func TestWhatsAppWidget(t *testing.T) {
	t.Parallel()

	p := testPage(t, "en", "/", "lang=en")
	if got, want := WhatsAppHref(p), "https://wa.me/905391357686?text=Hello!%20I'm%20interested%20in%20studying%20in%20North%20Cyprus.%20Can%20you%20help%20me%20with%20more%20information%3F"; got != want {
		t.Fatalf("WhatsAppHref = %q, want %q", got, want)
	}
	if got := PhoneHref(p); got != "tel:+905391357686" {
		t.Fatalf("PhoneHref = %q", got)
	}

	got := renderNode(t, WhatsAppWidget(p))
	assertContains(t, got,
		`href="https://wa.me/905391357686?text=Hello!%20I&#39;m%20interested`,
		`target="_blank"`,
		`rel="noopener noreferrer"`,
		`href="tel:+905391357686"`,
		`data-reveal-after="2000"`,
		"Chat with us on WhatsApp!",
		"widget-right",
	)

	rtl := renderNode(t, WhatsAppWidget(testPage(t, "ar", "/", "lang=ar")))
	assertContains(t, rtl, "widget-left")

	p.WhatsAppNumber = ""
	if got := renderNode(t, WhatsAppWidget(p)); got != "" {
		t.Fatalf("widget without number = %q, want empty", got)
	}
}

func TestScrollButtons(t *testing.T) {
	t.Parallel()

	ltr := ScrollButtons(false)
	if ltr[0].Side != "left" || ltr[0].Offset != -300 || ltr[0].Icon != "chevron-left" {
		t.Fatalf("ltr left = %+v", ltr[0])
	}
	if ltr[1].Side != "right" || ltr[1].Offset != 300 || ltr[1].Icon != "chevron-right" {
		t.Fatalf("ltr right = %+v", ltr[1])
	}

	rtl := ScrollButtons(true)
	if rtl[0].Side != "left" || rtl[0].Offset != 300 || rtl[0].Icon != "chevron-right" {
		t.Fatalf("rtl left = %+v", rtl[0])
	}
	if rtl[1].Side != "right" || rtl[1].Offset != -300 || rtl[1].Icon != "chevron-left" {
		t.Fatalf("rtl right = %+v", rtl[1])
	}
	if rtl[0].LabelKey != "blog.scroll_back" || rtl[1].LabelKey != "blog.scroll_forward" {
		t.Fatalf("labels = %q, %q", rtl[0].LabelKey, rtl[1].LabelKey)
	}
}

func TestSplitHeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "Latest Blog Posts", want: `Latest <span class="highlight">Blog Posts</span>`},
		{in: "FAQ", want: "FAQ"},
		{in: "  About Us ", want: `About <span class="highlight">Us</span>`},
	}
	for _, tc := range tests {
		if got := renderNode(t, SplitHeading(tc.in)); got != tc.want {
			t.Fatalf("SplitHeading(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIcon(t *testing.T) {
	t.Parallel()

	if Icon("no-such-icon", "icon") != nil {
		t.Fatalf("unknown icon should render nothing")
	}
	got := renderNode(t, Icon("check", "icon"))
	assertContains(t, got, "<svg", `data-icon="check"`, `class="icon"`, `aria-hidden="true"`, "<path")

	if !strings.Contains(renderNode(t, ForwardIcon(true, "")), `data-icon="chevron-left"`) {
		t.Fatalf("forward icon in rtl should point left")
	}
	if !strings.Contains(renderNode(t, BackArrow(false, "")), `data-icon="arrow-left"`) {
		t.Fatalf("back arrow in ltr should point left")
	}
}

func TestErrorState(t *testing.T) {
	t.Parallel()

	p := testPage(t, "ar", "/blog/999", "lang=ar")
	got := renderComponent(t, context.Background(), ErrorState(p, 404, ""))
	assertContains(t, got, "الصفحة غير موجودة", `data-status="404"`, `href="/?lang=ar"`)

	if got := ErrorPageTitle(testPage(t, "en", "/", ""), 503); got != "Temporarily unavailable" {
		t.Fatalf("ErrorPageTitle(503) = %q", got)
	}
	title, message := ErrorCopyKeys(400)
	if title != "error.invalid.title" || message != "error.invalid.message" {
		t.Fatalf("ErrorCopyKeys(400) = %q, %q", title, message)
	}
}
