package shell

import (
	"io"
	"net/http"

	module "github.com/louisbranch/authshell/internal/services/web/module"
	"github.com/louisbranch/authshell/internal/services/web/platform/httpx"
	"github.com/louisbranch/authshell/internal/services/web/routepath"
)

type handlers struct {
	deps module.Dependencies
}

func newHandlers(deps module.Dependencies) handlers {
	return handlers{deps: deps}
}

// handleRoot sends visitors to the login page of their locale.
func (h handlers) handleRoot(w http.ResponseWriter, r *http.Request) {
	h.redirectToLogin(w, r)
}

func (h handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	h.redirectToLogin(w, r)
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "ok")
}

func (h handlers) handleLocaleRoot(w http.ResponseWriter, r *http.Request) {
	tag, ok := h.deps.Routing.Locale(r.PathValue(routepath.LocaleParam))
	if !ok {
		h.handleNotFound(w, r)
		return
	}
	httpx.WriteRedirect(w, r, h.deps.Routing.LoginPath(tag))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.deps.Pages.NotFound(w, r, h.deps.Routing.Detect(r))
}

func (h handlers) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	httpx.WriteRedirect(w, r, h.deps.Routing.LoginPath(h.deps.Routing.Detect(r)))
}
