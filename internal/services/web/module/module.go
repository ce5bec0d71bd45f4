// Package module defines the feature contract used by web composition.
package module

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/louisbranch/authshell/internal/services/web/flow"
	"github.com/louisbranch/authshell/internal/services/web/localeroute"
	"github.com/louisbranch/authshell/internal/services/web/platform/pagerender"
	"github.com/louisbranch/authshell/internal/services/web/platform/ratelimit"
	"github.com/louisbranch/authshell/internal/services/web/platform/requestmeta"
)

// Dependencies is the shared runtime state handed to every module.
type Dependencies struct {
	Routing localeroute.Routing
	Pages   pagerender.Renderer
	Request requestmeta.Policy
	Flow    *flow.Store
	// SendCodeLimiter throttles the identify step per client address.
	SendCodeLimiter *ratelimit.Limiter
	SimulatedDelay  time.Duration
	Logger          *slog.Logger
}

// Mount describes a module route mount.
type Mount struct {
	Prefix string
	// Exact lists slash-less paths the handler also owns, such as /{locale},
	// so the root mux never answers them with its own trailing-slash redirect.
	Exact   []string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount(Dependencies) (Mount, error)
}
