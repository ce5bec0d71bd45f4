// Package shell serves the unprefixed entry points: the root redirect,
// health, and locale redirects. Everything else it sees is a 404.
package shell

import (
	"net/http"

	module "github.com/louisbranch/authshell/internal/services/web/module"
	"github.com/louisbranch/authshell/internal/services/web/routepath"
)

// Module provides the root route tree.
type Module struct{}

// New returns the shell module.
func New() Module {
	return Module{}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string {
	return "shell"
}

// Mount wires shell routes under the root prefix.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(deps))
	return module.Mount{
		Prefix:  routepath.Root,
		Exact:   []string{routepath.LocaleRootPattern},
		Handler: mux,
	}, nil
}
