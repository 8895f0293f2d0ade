package templates

import (
	"strings"

	"golang.org/x/text/language"

	platformi18n "github.com/educonsult/site/internal/platform/i18n"
	"github.com/educonsult/site/internal/services/shared/i18nhttp"
	"github.com/educonsult/site/internal/services/web/routepath"
	"github.com/educonsult/site/internal/site"
)

// Page carries the per-request state shared by the layout and every page
// body.
type Page struct {
	Printer        *platformi18n.Printer
	Path           string
	RawQuery       string
	Title          string
	Description    string
	WhatsAppNumber string
	Site           *site.Content
}

func (p Page) printer() *platformi18n.Printer {
	if p.Printer == nil {
		return platformi18n.NewPrinter(platformi18n.DefaultTag())
	}
	return p.Printer
}

// T translates key for the page's locale.
func (p Page) T(key string) string {
	return p.printer().T(key)
}

// Tf translates and formats key for the page's locale.
func (p Page) Tf(key string, args ...any) string {
	return p.printer().Tf(key, args...)
}

// Tag returns the page's language.
func (p Page) Tag() language.Tag {
	return p.printer().Tag()
}

// Locale returns the short locale identifier.
func (p Page) Locale() string {
	return p.printer().Locale()
}

// RTL reports whether the page reads right to left.
func (p Page) RTL() bool {
	return p.printer().RTL()
}

// Dir returns the value of the document's dir attribute.
func (p Page) Dir() string {
	return string(p.printer().Dir())
}

func (p Page) content() *site.Content {
	if p.Site == nil {
		return site.Default()
	}
	return p.Site
}

// OnLanding reports whether the page is the landing page, where section
// links stay in-page anchors.
func (p Page) OnLanding() bool {
	path := strings.TrimSpace(p.Path)
	return path == "" || path == routepath.Root
}

// SectionHref links a landing page section.
func (p Page) SectionHref(section string) string {
	if p.OnLanding() {
		return "#" + section
	}
	return i18nhttp.LocalizedPath(routepath.Root, p.Tag(), section)
}

// Href links path in the page's language.
func (p Page) Href(path string) string {
	return i18nhttp.LocalizedPath(path, p.Tag(), "")
}

// ToggleURL links the current page in the other language.
func (p Page) ToggleURL() string {
	other := platformi18n.LocaleString(platformi18n.OtherTag(p.Tag()))
	return i18nhttp.LanguageURL(p.Path, p.RawQuery, other)
}

// HeadTitle returns the document title.
func (p Page) HeadTitle() string {
	brand := p.T("page.title")
	title := strings.TrimSpace(p.Title)
	if title == "" || title == brand {
		return brand
	}
	return title + " | " + brand
}

// HeadDescription returns the meta description.
func (p Page) HeadDescription() string {
	if description := strings.TrimSpace(p.Description); description != "" {
		return description
	}
	return p.T("page.description")
}
