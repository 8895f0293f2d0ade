// Package modules assembles the site's feature modules.
package modules

import (
	"github.com/educonsult/site/internal/lead"
	module "github.com/educonsult/site/internal/services/web/module"
	"github.com/educonsult/site/internal/services/web/modules/apply"
	"github.com/educonsult/site/internal/services/web/storage"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// Dependencies carries what the registry hands to each module. Shared page
// dependencies go to every module; the draft store and lead sink only reach
// the form.
type Dependencies struct {
	Shared module.Dependencies

	Drafts storage.DraftStore
	Leads  lead.Sink
	Apply  apply.Config
}
