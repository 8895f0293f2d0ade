// Package contact builds the outbound WhatsApp and phone links.
package contact

import (
	"strings"
)

const whatsAppBase = "https://wa.me/"

// Digits returns number with everything but ASCII digits removed.
func Digits(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WhatsAppURL returns the deep link that opens a chat with number,
// pre-filled with message. An empty message omits the text parameter.
func WhatsAppURL(number, message string) string {
	link := whatsAppBase + Digits(number)
	if message == "" {
		return link
	}
	return link + "?text=" + EncodeComponent(message)
}

// TelURL returns a tel: link for number with whitespace removed.
func TelURL(number string) string {
	return "tel:" + strings.Join(strings.Fields(number), "")
}

// EncodeComponent percent-encodes s as UTF-8, leaving only letters,
// digits and -_.!~*'() unescaped. Spaces become %20.
func EncodeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreservedComponent(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func unreservedComponent(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
