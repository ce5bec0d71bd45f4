package login

import (
	"net/http"

	"github.com/louisbranch/authshell/internal/services/web/platform/httpx"
	"github.com/louisbranch/authshell/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	mux.HandleFunc(http.MethodGet+" "+routepath.LocaleIndexPattern, h.handleLocaleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.LocaleLoginPattern, h.handleLoginPage)
	mux.HandleFunc(http.MethodPost+" "+routepath.LocaleLoginPattern, h.handleLoginSubmit)
	mux.Handle(routepath.LocaleLoginPattern, httpx.MethodNotAllowed("GET, HEAD, POST"))
	mux.HandleFunc(routepath.LocalePrefix, h.handleLocaleNotFound)
}
