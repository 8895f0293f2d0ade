// Package errors classifies handler failures so they can be answered with
// the right status and a localized, user-safe message.
package errors

import (
	stderrors "errors"
	"net/http"
	"strings"
)

// Kind classifies a failure.
type Kind string

const (
	KindUnknown       Kind = "unknown"
	KindInvalidInput  Kind = "invalid_input"
	KindUnprocessable Kind = "unprocessable"
	KindNotFound      Kind = "not_found"
	KindUnavailable   Kind = "unavailable"
)

var statusByKind = map[Kind]int{
	KindInvalidInput:  http.StatusBadRequest,
	KindUnprocessable: http.StatusUnprocessableEntity,
	KindNotFound:      http.StatusNotFound,
	KindUnavailable:   http.StatusServiceUnavailable,
}

// Error is a classified failure. Key names a catalog message shown to the
// visitor; Message and Err stay in logs.
type Error struct {
	Kind    Kind
	Key     string
	Message string
	Err     error
}

func (e Error) Error() string {
	parts := make([]string, 0, 2)
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	if len(parts) == 0 {
		return string(e.Kind)
	}
	return strings.Join(parts, ": ")
}

func (e Error) Unwrap() error {
	return e.Err
}

// E builds an Error without a catalog key.
func E(kind Kind, message string) error {
	return Error{Kind: kind, Message: message}
}

// EK builds an Error that shows the catalog message key.
func EK(kind Kind, key string, message string) error {
	return Error{Kind: kind, Key: strings.TrimSpace(key), Message: message}
}

// Wrap classifies cause. A nil cause stays nil.
func Wrap(kind Kind, key string, cause error) error {
	if cause == nil {
		return nil
	}
	return Error{Kind: kind, Key: strings.TrimSpace(key), Err: cause}
}

func as(err error) (Error, bool) {
	var appErr Error
	ok := err != nil && stderrors.As(err, &appErr)
	return appErr, ok
}

// KindOf returns the kind of err, or KindUnknown for unclassified errors.
func KindOf(err error) Kind {
	if appErr, ok := as(err); ok {
		return appErr.Kind
	}
	return KindUnknown
}

// LocalizationKey returns the catalog key carried by err, if any.
func LocalizationKey(err error) string {
	appErr, _ := as(err)
	return appErr.Key
}

// HTTPStatus maps err to a response status. Unclassified errors are 500.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if status, ok := statusByKind[KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}
