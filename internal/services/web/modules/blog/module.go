// Package blog serves the post listing and post detail pages.
package blog

import (
	"net/http"

	blogcatalog "github.com/educonsult/site/internal/blog"
	module "github.com/educonsult/site/internal/services/web/module"
	"github.com/educonsult/site/internal/services/web/routepath"
)

// Module provides the blog routes.
type Module struct {
	deps    module.Dependencies
	catalog *blogcatalog.Catalog
}

// New returns a blog module over the embedded catalog.
func New(deps module.Dependencies) Module {
	return NewWithCatalog(deps, blogcatalog.Default())
}

// NewWithCatalog returns a blog module serving catalog.
func NewWithCatalog(deps module.Dependencies, catalog *blogcatalog.Catalog) Module {
	return Module{deps: deps, catalog: catalog}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "blog" }

// Mount wires blog routes under the blog prefix.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(m.catalog, blogcatalog.NewRenderer()), m.deps))
	return module.Mount{Prefix: routepath.BlogPrefix, Handler: mux}, nil
}
