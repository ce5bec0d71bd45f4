// Package assets serves the embedded stylesheet and script.
package assets

import (
	"io/fs"
	"net/http"
	"strings"

	module "github.com/louisbranch/authshell/internal/services/web/module"
	"github.com/louisbranch/authshell/internal/services/web/routepath"
	"github.com/louisbranch/authshell/internal/services/web/static"
)

const cacheControl = "public, max-age=3600"

// Module serves files under /static/.
type Module struct {
	files fs.FS
}

// New returns the assets module backed by the embedded files.
func New() Module {
	return Module{files: static.FS}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string {
	return "assets"
}

// Mount wires the file server. Directory listings render the 404 page.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	files := m.files
	if files == nil {
		files = static.FS
	}
	fileServer := http.StripPrefix(strings.TrimSuffix(routepath.StaticPrefix, "/"), http.FileServerFS(files))
	notFound := deps.Pages.NotFoundHandler()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		name := strings.TrimPrefix(r.URL.Path, routepath.StaticPrefix)
		if name == "" || strings.HasSuffix(name, "/") {
			notFound.ServeHTTP(w, r)
			return
		}
		if _, err := fs.Stat(files, name); err != nil {
			notFound.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Cache-Control", cacheControl)
		fileServer.ServeHTTP(w, r)
	})
	return module.Mount{Prefix: routepath.StaticPrefix, Handler: handler}, nil
}
