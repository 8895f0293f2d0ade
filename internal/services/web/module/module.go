// Package module defines the feature contract used by web composition.
package module

import (
	"log/slog"
	"net/http"

	"github.com/educonsult/site/internal/site"
)

// Dependencies carries the site-wide state shared by every module.
type Dependencies struct {
	// WhatsAppNumber is the agency contact number; empty hides the contact
	// widget.
	WhatsAppNumber string
	Site           *site.Content
	Logger         *slog.Logger
}

// LoggerOrDefault returns the configured logger or slog.Default.
func (d Dependencies) LoggerOrDefault() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}
