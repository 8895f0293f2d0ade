// Package apply serves the multi-step lead form.
package apply

import (
	"errors"
	"net/http"
	"time"

	"github.com/educonsult/site/internal/lead"
	"github.com/educonsult/site/internal/platform/id"
	module "github.com/educonsult/site/internal/services/web/module"
	"github.com/educonsult/site/internal/services/web/platform/requestmeta"
	"github.com/educonsult/site/internal/services/web/routepath"
	"github.com/educonsult/site/internal/services/web/storage"
)

// DefaultDraftTTL is how long an untouched draft is kept.
const DefaultDraftTTL = 24 * time.Hour

// Config tunes the form's persistence and uploads.
type Config struct {
	// DraftTTL bounds how long an untouched draft is kept.
	DraftTTL time.Duration
	// MaxUploadBytes caps one uploaded document.
	MaxUploadBytes int64
	RequestMeta    requestmeta.SchemePolicy

	Now          func() time.Time
	NewDraftID   func() (string, error)
	NewReference func() string
}

func (c Config) withDefaults() Config {
	if c.DraftTTL <= 0 {
		c.DraftTTL = DefaultDraftTTL
	}
	if c.MaxUploadBytes <= 0 || c.MaxUploadBytes > lead.MaxDocumentBytes {
		c.MaxUploadBytes = lead.MaxDocumentBytes
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.NewDraftID == nil {
		c.NewDraftID = id.NewID
	}
	if c.NewReference == nil {
		c.NewReference = id.NewReference
	}
	return c
}

// Module provides the lead form routes.
type Module struct {
	deps   module.Dependencies
	store  storage.DraftStore
	sink   lead.Sink
	config Config
}

// New returns a lead form module keeping drafts in store and delivering
// finished forms to sink.
func New(deps module.Dependencies, store storage.DraftStore, sink lead.Sink, config Config) Module {
	return Module{deps: deps, store: store, sink: sink, config: config}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "apply" }

// Mount wires lead form routes under the apply prefix.
func (m Module) Mount() (module.Mount, error) {
	if m.store == nil {
		return module.Mount{}, errors.New("draft store is required")
	}
	sink := m.sink
	if sink == nil {
		sink = lead.LogSink{Logger: m.deps.Logger}
	}
	config := m.config.withDefaults()
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(m.store, sink, config), m.deps, config))
	return module.Mount{Prefix: routepath.ApplyPrefix, Handler: mux}, nil
}
