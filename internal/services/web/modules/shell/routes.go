package shell

import (
	"net/http"

	"github.com/louisbranch/authshell/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleRoot)
	mux.HandleFunc(http.MethodGet+" "+routepath.Health, h.handleHealth)
	mux.HandleFunc(http.MethodGet+" "+routepath.Login, h.handleLogin)
	mux.HandleFunc(http.MethodGet+" "+routepath.LocaleRootPattern, h.handleLocaleRoot)
	mux.HandleFunc(routepath.Root, h.handleNotFound)
}
