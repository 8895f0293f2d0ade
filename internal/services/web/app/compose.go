package app

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	module "github.com/educonsult/site/internal/services/web/module"
	"github.com/educonsult/site/internal/services/web/platform/httpx"
	"github.com/educonsult/site/internal/services/web/platform/requestmeta"
)

// ComposeInput carries the modules and shared composition contracts.
type ComposeInput struct {
	Modules             []module.Module
	RequestSchemePolicy requestmeta.SchemePolicy
}

// Compose builds a root HTTP handler from modules. Module handlers see the
// full request path; prefixes only select the owning module.
func Compose(input ComposeInput) (http.Handler, error) {
	c := composer{
		mux:    http.NewServeMux(),
		owners: make(map[string]string, 2*len(input.Modules)),
		guard:  sameOriginForms(input.RequestSchemePolicy),
	}
	for _, feature := range input.Modules {
		if err := c.add(feature); err != nil {
			return nil, err
		}
	}
	return c.mux, nil
}

// composer tracks which module owns each mounted pattern.
type composer struct {
	mux    *http.ServeMux
	owners map[string]string
	guard  httpx.Middleware
}

func (c composer) add(feature module.Module) error {
	if feature == nil {
		return errors.New("module is nil")
	}
	mount, err := feature.Mount()
	if err != nil {
		return fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	if err := checkPrefix(mount.Prefix); err != nil {
		return fmt.Errorf("mount module %q has invalid prefix %q: %w", feature.ID(), mount.Prefix, err)
	}
	if mount.Handler == nil {
		return fmt.Errorf("mount module %q: handler is required", feature.ID())
	}

	handler := c.guard(mount.Handler)
	for _, pattern := range mountPatterns(mount.Prefix) {
		if owner, taken := c.owners[pattern]; taken {
			return fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), pattern, owner)
		}
		c.owners[pattern] = feature.ID()
		c.mux.Handle(pattern, handler)
	}
	return nil
}

func checkPrefix(prefix string) error {
	switch {
	case prefix == "":
		return errors.New("prefix is required")
	case strings.TrimSpace(prefix) != prefix:
		return errors.New("prefix must not include surrounding whitespace")
	case !strings.HasPrefix(prefix, "/"):
		return errors.New("prefix must begin with /")
	case !strings.HasSuffix(prefix, "/"):
		return errors.New("prefix must end with /")
	}
	return nil
}

// mountPatterns returns the mux patterns for a prefix. "/blog/" also
// claims "/blog" so the bare path reaches its module instead of the root
// fallback.
func mountPatterns(prefix string) []string {
	if prefix == "/" {
		return []string{prefix}
	}
	return []string{prefix, strings.TrimSuffix(prefix, "/")}
}

// sameOriginForms rejects form posts whose Origin or Referer names another
// site. Requests that carry neither header pass.
func sameOriginForms(policy requestmeta.SchemePolicy) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if changesState(r.Method) && requestmeta.ClassifyOrigin(r, policy) == requestmeta.OriginCross {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func changesState(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	default:
		return true
	}
}
