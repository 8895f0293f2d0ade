package i18n

import "golang.org/x/text/language"

// Text carries one string per supported locale, as written in content
// files.
type Text struct {
	En string `yaml:"en"`
	Ar string `yaml:"ar"`
}

// In returns the value for tag's locale.
func (t Text) In(tag language.Tag) string {
	if LocaleString(tag) == "ar" {
		return t.Ar
	}
	return t.En
}
