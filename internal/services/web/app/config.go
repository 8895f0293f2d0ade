package app

import (
	module "github.com/educonsult/site/internal/services/web/module"
	"github.com/educonsult/site/internal/services/web/platform/requestmeta"
)

// Config captures the composition inputs for the web root handler.
type Config struct {
	Modules             []module.Module
	RequestSchemePolicy requestmeta.SchemePolicy
}
