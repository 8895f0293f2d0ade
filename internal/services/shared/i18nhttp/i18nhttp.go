// Package i18nhttp selects the request locale and keeps the lang query
// parameter and the language cookie in agreement.
package i18nhttp

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"

	platformi18n "github.com/educonsult/site/internal/platform/i18n"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "language"
)

const cookieMaxAge = 365 * 24 * time.Hour

type contextKey struct{}

// ResolveTag determines the language for the request: a valid lang query
// parameter, then the language cookie, then the default. The bool reports
// whether the tag came from the query and should be persisted.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return platformi18n.DefaultTag(), false
	}
	if tag, ok := QueryTag(r); ok {
		return tag, true
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := platformi18n.ParseTag(cookie.Value); ok {
			return tag, false
		}
	}
	return platformi18n.DefaultTag(), false
}

// QueryTag returns the tag named by a valid lang query parameter.
func QueryTag(r *http.Request) (language.Tag, bool) {
	if r == nil || r.URL == nil {
		return language.Und, false
	}
	return platformi18n.ParseTag(r.URL.Query().Get(LangParam))
}

// SetLanguageCookie persists the selected language on the response. The
// cookie stays readable by scripts like the local-storage preference it
// stands in for.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    platformi18n.LocaleString(tag),
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// WithTag stores the resolved tag on ctx.
func WithTag(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, contextKey{}, tag)
}

// TagFromContext returns the tag stored by the middleware, or the default.
func TagFromContext(ctx context.Context) language.Tag {
	if ctx != nil {
		if tag, ok := ctx.Value(contextKey{}).(language.Tag); ok {
			return tag
		}
	}
	return platformi18n.DefaultTag()
}

// FromRequest returns the tag attached to r, resolving it when the
// middleware did not run.
func FromRequest(r *http.Request) language.Tag {
	if r == nil {
		return platformi18n.DefaultTag()
	}
	if tag, ok := r.Context().Value(contextKey{}).(language.Tag); ok {
		return tag
	}
	tag, _ := ResolveTag(r)
	return tag
}

// Middleware resolves the request language and stores it on the context.
// A language chosen through the URL is written to the cookie. Page reads
// (GET and HEAD) whose URL lacks a valid lang are redirected to the same
// URL carrying the active language, so the address bar always mirrors the
// preference. Paths for which skip returns true pass through untouched.
func Middleware(skip func(path string) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skip != nil && skip(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			tag, fromQuery := ResolveTag(r)
			if fromQuery {
				SetLanguageCookie(w, tag)
			}
			if !fromQuery && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
				http.Redirect(w, r, LanguageURL(r.URL.Path, r.URL.RawQuery, platformi18n.LocaleString(tag)), http.StatusFound)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithTag(r.Context(), tag)))
		})
	}
}

// LanguageURL returns path with the lang parameter set to locale, keeping
// the other query parameters.
func LanguageURL(path string, rawQuery string, locale string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	query.Set(LangParam, locale)
	return (&url.URL{Path: path, RawQuery: query.Encode()}).String()
}

// LocalizedPath returns path with only the lang parameter and an optional
// fragment, as used by navigation links.
func LocalizedPath(path string, tag language.Tag, fragment string) string {
	u := url.URL{Path: path, RawQuery: url.Values{LangParam: {platformi18n.LocaleString(tag)}}.Encode()}
	if u.Path == "" {
		u.Path = "/"
	}
	u.Fragment = strings.TrimPrefix(fragment, "#")
	return u.String()
}

// ToggleURL links the current page in the other supported language.
func ToggleURL(r *http.Request, active language.Tag) string {
	path, rawQuery := "/", ""
	if r != nil && r.URL != nil {
		path, rawQuery = r.URL.Path, r.URL.RawQuery
	}
	return LanguageURL(path, rawQuery, platformi18n.LocaleString(platformi18n.OtherTag(active)))
}
