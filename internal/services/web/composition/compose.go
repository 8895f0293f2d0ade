// Package composition wires the site's modules into the application mux.
package composition

import (
	"net/http"

	webapp "github.com/educonsult/site/internal/services/web/app"
	module "github.com/educonsult/site/internal/services/web/module"
	"github.com/educonsult/site/internal/services/web/modules"
	"github.com/educonsult/site/internal/services/web/platform/requestmeta"
)

// ModuleRegistry builds the module set from composition input.
type ModuleRegistry func(modules.Dependencies) []module.Module

// ComposeInput describes the contracts needed to compose the application mux.
type ComposeInput struct {
	ModuleDependencies  modules.Dependencies
	RequestSchemePolicy requestmeta.SchemePolicy

	// Registry defaults to modules.DefaultModules.
	Registry ModuleRegistry
}

// ComposeAppHandler builds the application handler from the registered
// modules.
func ComposeAppHandler(input ComposeInput) (http.Handler, error) {
	registry := input.Registry
	if registry == nil {
		registry = modules.DefaultModules
	}
	deps := input.ModuleDependencies
	deps.Apply.RequestMeta = input.RequestSchemePolicy
	return webapp.BuildRootHandler(webapp.Config{
		Modules:             registry(deps),
		RequestSchemePolicy: input.RequestSchemePolicy,
	})
}
