package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/educonsult/site/internal/platform/i18n/catalog"
)

// Printer renders copy for one locale.
type Printer struct {
	tag      language.Tag
	locale   string
	messages map[string]string
	numbers  *message.Printer
}

// NewPrinter returns a printer over the embedded catalogs.
func NewPrinter(tag language.Tag) *Printer {
	return NewPrinterFromBundle(catalog.Default(), tag)
}

// NewPrinterFromBundle returns a printer over bundle.
func NewPrinterFromBundle(bundle *catalog.Bundle, tag language.Tag) *Printer {
	locale := LocaleString(tag)
	return &Printer{
		tag:      tag,
		locale:   locale,
		messages: bundle.LocaleMessages(locale),
		numbers:  message.NewPrinter(tag),
	}
}

// Tag returns the printer's locale.
func (p *Printer) Tag() language.Tag { return p.tag }

// Locale returns the short locale identifier.
func (p *Printer) Locale() string { return p.locale }

// Dir returns the locale's text direction.
func (p *Printer) Dir() Direction { return DirectionFor(p.tag) }

// RTL reports whether the locale is right to left.
func (p *Printer) RTL() bool { return p.Dir() == RTL }

// T returns the translation of key, or key itself when the locale has no
// entry for it.
func (p *Printer) T(key string) string {
	if value, ok := p.messages[key]; ok {
		return value
	}
	return key
}

// Tf formats the translation of key with args.
func (p *Printer) Tf(key string, args ...any) string {
	return fmt.Sprintf(p.T(key), args...)
}

// Number formats n with the locale's digits and grouping.
func (p *Printer) Number(n int) string {
	return p.numbers.Sprintf("%d", n)
}
