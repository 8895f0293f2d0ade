// Package landing serves the home page and the health check.
package landing

import (
	"net/http"

	"github.com/educonsult/site/internal/blog"
	module "github.com/educonsult/site/internal/services/web/module"
	"github.com/educonsult/site/internal/services/web/routepath"
)

// Module provides the root routes.
type Module struct {
	deps    module.Dependencies
	catalog *blog.Catalog
}

// New returns a landing module over the embedded blog catalog.
func New(deps module.Dependencies) Module {
	return NewWithCatalog(deps, blog.Default())
}

// NewWithCatalog returns a landing module featuring posts from catalog.
func NewWithCatalog(deps module.Dependencies, catalog *blog.Catalog) Module {
	return Module{deps: deps, catalog: catalog}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "landing" }

// Mount wires the landing routes at the root.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(m.catalog), m.deps))
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
