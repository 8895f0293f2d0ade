// Package flash carries a one-time notice across a post/redirect/get
// round trip.
//
// The cookie value is "<kind>.<catalog key>", for example
// "warning.form.error.expired". Values that are not catalog-shaped keys
// are discarded.
package flash

import (
	"net/http"
	"strings"

	"github.com/educonsult/site/internal/services/web/platform/requestmeta"
)

// CookieName is the cookie holding the pending notice.
const CookieName = "educonsult_flash"

// lifetimeSeconds bounds how long an unread notice survives.
const lifetimeSeconds = 60

// Kind selects the notice style.
type Kind string

const (
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// Notice references one catalog message.
type Notice struct {
	Kind Kind
	Key  string
}

// NoticeWarning creates a warning notice for key.
func NoticeWarning(key string) Notice {
	return Notice{Kind: KindWarning, Key: key}
}

// NoticeInfo creates an informational notice for key.
func NoticeInfo(key string) Notice {
	return Notice{Kind: KindInfo, Key: key}
}

// Write stores notice for the next page render. Invalid notices are
// dropped.
func Write(w http.ResponseWriter, r *http.Request, notice Notice, policy requestmeta.SchemePolicy) {
	value, ok := encode(notice)
	if w == nil || !ok {
		return
	}
	http.SetCookie(w, cookie(r, value, lifetimeSeconds, policy))
}

// ReadAndClear returns the pending notice and expires its cookie, even
// when the stored value is unreadable.
func ReadAndClear(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) (Notice, bool) {
	if r == nil {
		return Notice{}, false
	}
	stored, err := r.Cookie(CookieName)
	if err != nil {
		return Notice{}, false
	}
	if w != nil {
		http.SetCookie(w, cookie(r, "", -1, policy))
	}
	return decode(stored.Value)
}

func cookie(r *http.Request, value string, maxAge int, policy requestmeta.SchemePolicy) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(r, policy),
		SameSite: http.SameSiteLaxMode,
	}
}

func encode(notice Notice) (string, bool) {
	if !validKind(notice.Kind) || !validKey(notice.Key) {
		return "", false
	}
	return string(notice.Kind) + "." + notice.Key, true
}

func decode(value string) (Notice, bool) {
	kind, key, found := strings.Cut(strings.TrimSpace(value), ".")
	notice := Notice{Kind: Kind(kind), Key: key}
	if !found || !validKind(notice.Kind) || !validKey(notice.Key) {
		return Notice{}, false
	}
	return notice, true
}

func validKind(kind Kind) bool {
	return kind == KindInfo || kind == KindWarning
}

// validKey accepts dotted lowercase catalog keys such as
// "form.error.expired".
func validKey(key string) bool {
	if key == "" || strings.HasPrefix(key, ".") || strings.HasSuffix(key, ".") {
		return false
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_':
		default:
			return false
		}
	}
	return true
}
