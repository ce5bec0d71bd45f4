// Package login serves the localized sign-in page and its simulated
// one-time-code flow.
package login

import (
	"fmt"
	"net/http"

	module "github.com/louisbranch/authshell/internal/services/web/module"
	"github.com/louisbranch/authshell/internal/services/web/routepath"
)

// Module provides the locale-scoped routes.
type Module struct{}

// New returns the login module.
func New() Module {
	return Module{}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string {
	return "login"
}

// Mount wires login routes under /{locale}/.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if deps.Flow == nil {
		return module.Mount{}, fmt.Errorf("flow store is required")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(deps))
	return module.Mount{Prefix: routepath.LocalePrefix, Handler: mux}, nil
}
