package modules

import (
	"github.com/educonsult/site/internal/services/web/modules/apply"
	"github.com/educonsult/site/internal/services/web/modules/blog"
	"github.com/educonsult/site/internal/services/web/modules/landing"
)

// DefaultModules returns the site modules in mount order.
func DefaultModules(deps Dependencies) []Module {
	return []Module{
		landing.New(deps.Shared),
		blog.New(deps.Shared),
		apply.New(deps.Shared, deps.Drafts, deps.Leads, deps.Apply),
	}
}
