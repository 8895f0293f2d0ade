// Package i18n defines the site's supported locales, their text direction,
// and the printer used to look up translated copy.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Direction is the base text direction of a locale.
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

var supportedTags = []language.Tag{language.English, language.Arabic}

// rtlScripts lists the scripts written right to left.
var rtlScripts = map[string]bool{
	"Arab": true,
	"Hebr": true,
	"Syrc": true,
	"Thaa": true,
	"Nkoo": true,
	"Adlm": true,
}

// SupportedTags returns the locales the site is translated into.
func SupportedTags() []language.Tag {
	return append([]language.Tag(nil), supportedTags...)
}

// DefaultTag is the locale used when nothing else selects one.
func DefaultTag() language.Tag {
	return language.English
}

// ParseTag accepts a supported locale identifier. Region or script
// qualified forms collapse to their base language ("ar-EG" is "ar").
func ParseTag(raw string) (language.Tag, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return language.Und, false
	}
	parsed, err := language.Parse(raw)
	if err != nil {
		return language.Und, false
	}
	base, confidence := parsed.Base()
	if confidence == language.No {
		return language.Und, false
	}
	for _, tag := range supportedTags {
		if tagBase, _ := tag.Base(); tagBase == base {
			return tag, true
		}
	}
	return language.Und, false
}

// LocaleString returns the short identifier used in URLs, cookies and
// catalog paths: "en" or "ar".
func LocaleString(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}

// DirectionFor returns rtl for locales written in a right-to-left script.
func DirectionFor(tag language.Tag) Direction {
	script, _ := tag.Script()
	if rtlScripts[script.String()] {
		return RTL
	}
	return LTR
}

// OtherTag returns the locale the language toggle switches to.
func OtherTag(tag language.Tag) language.Tag {
	if LocaleString(tag) == LocaleString(language.Arabic) {
		return language.English
	}
	return language.Arabic
}
