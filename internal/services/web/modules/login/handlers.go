package login

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/louisbranch/authshell/internal/services/shared/i18nhttp"
	"github.com/louisbranch/authshell/internal/services/web/flow"
	module "github.com/louisbranch/authshell/internal/services/web/module"
	"github.com/louisbranch/authshell/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/authshell/internal/services/web/platform/i18n"
	"github.com/louisbranch/authshell/internal/services/web/platform/pagerender"
	"github.com/louisbranch/authshell/internal/services/web/platform/theme"
	"github.com/louisbranch/authshell/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/authshell/internal/services/web/templates"
	"golang.org/x/text/language"
)

const maxFormBytes = 16 << 10

type handlers struct {
	deps    module.Dependencies
	service service
	logger  *slog.Logger
}

func newHandlers(deps module.Dependencies) handlers {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return handlers{
		deps:    deps,
		service: newService(deps.SimulatedDelay, deps.SendCodeLimiter, logger),
		logger:  logger,
	}
}

func (h handlers) handleLocaleIndex(w http.ResponseWriter, r *http.Request) {
	tag, ok := h.locale(w, r)
	if !ok {
		return
	}
	httpx.WriteRedirect(w, r, h.deps.Routing.LoginPath(tag))
}

func (h handlers) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	tag, ok := h.locale(w, r)
	if !ok {
		return
	}
	i18nhttp.EnsureLanguageCookie(w, r, tag, h.deps.Routing.CookiePath())
	state := h.deps.Flow.Load(r)
	h.writeLogin(w, r, tag, outcome{State: state, Status: http.StatusOK})
}

func (h handlers) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	tag, ok := h.locale(w, r)
	if !ok {
		return
	}
	if !h.deps.Request.SameOrigin(r) {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	state := h.deps.Flow.Load(r)
	out, err := h.service.submit(httpx.RequestContext(r), state, submission{
		Action:     r.PostForm.Get("action"),
		Method:     r.PostForm.Get("method"),
		Identifier: r.PostForm.Get("identifier"),
		Code:       r.PostForm.Get("code"),
		Provider:   r.PostForm.Get("provider"),
		ClientKey:  h.deps.Request.ClientIP(r),
	})
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.logger.Info("login submit abandoned", "request_id", httpx.RequestIDFrom(r), "error", err)
		return
	case errors.Is(err, errUnknownAction), errors.Is(err, errUnknownProvider), errors.Is(err, flow.ErrUnknownMethod):
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	case err != nil:
		h.logger.Error("login submit", "request_id", httpx.RequestIDFrom(r), "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	secure := h.deps.Request.IsHTTPS(r)
	if out.Finished {
		h.deps.Flow.Clear(w, secure)
	} else if err := h.deps.Flow.Save(w, out.State, secure); err != nil {
		h.logger.Error("save login flow", "request_id", httpx.RequestIDFrom(r), "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if out.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(out.RetryAfter.Seconds()))))
	}
	h.writeLogin(w, r, tag, out)
}

func (h handlers) handleLocaleNotFound(w http.ResponseWriter, r *http.Request) {
	tag, ok := h.locale(w, r)
	if !ok {
		return
	}
	h.deps.Pages.NotFound(w, r, tag)
}

// locale resolves the {locale} segment and renders the 404 page for
// anything outside the supported set.
func (h handlers) locale(w http.ResponseWriter, r *http.Request) (language.Tag, bool) {
	tag, ok := h.deps.Routing.Locale(r.PathValue(routepath.LocaleParam))
	if !ok {
		h.deps.Pages.NotFound(w, r, h.deps.Routing.Detect(r))
		return language.Und, false
	}
	return tag, true
}

func (h handlers) writeLogin(w http.ResponseWriter, r *http.Request, tag language.Tag, out outcome) {
	loc := i18nhttp.Printer(tag)
	th := h.deps.Pages.Theme(w, r)
	layout := webtemplates.LayoutFor(tag)
	authCopy := webi18n.Auth(loc)

	view := webtemplates.LoginView{
		Copy:       authCopy,
		Action:     h.deps.Routing.LoginPath(tag),
		RTL:        layout.RTL(),
		TextAlign:  layout.TextAlign(),
		Method:     string(out.State.Method),
		Identifier: out.State.Identifier,
		Verifying:  out.State.Verifying(),
		Code:       out.Code,
		CodeLength: flow.CodeLength,
		Providers:  providerViews(),
		Languages: i18nhttp.BuildLanguageOptions(h.deps.Routing.SupportedLocales(), tag,
			func(t language.Tag) string { return webi18n.T(loc, i18nhttp.LanguageKeyLabel(t)) },
			func(t language.Tag) string { return h.deps.Routing.SwitchPath(r.URL.Path, t) },
		),
		ThemeTarget:    string(th.Toggle()),
		ThemeToggleURL: h.deps.Routing.Href(r.URL.Path) + "?" + theme.QueryParam + "=" + string(th.Toggle()),
	}
	view.ThemeToggleLabel = authCopy.ThemeDark
	if th.Toggle() == theme.Light {
		view.ThemeToggleLabel = authCopy.ThemeLight
	}
	if out.ErrorKey != "" {
		view.Error = webi18n.T(loc, out.ErrorKey)
	}
	if out.NoticeKey != "" {
		view.Notice = webi18n.T(loc, out.NoticeKey, out.NoticeArgs...)
	}

	err := h.deps.Pages.Write(w, r, pagerender.Page{
		Locale:     tag,
		StatusCode: out.Status,
		Theme:      th,
		Body:       webtemplates.LoginPage(view),
	})
	if err != nil {
		h.logger.Error("render login page", "request_id", httpx.RequestIDFrom(r), "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func providerViews() []webtemplates.Provider {
	views := make([]webtemplates.Provider, 0, len(socialProviders))
	for _, p := range socialProviders {
		views = append(views, webtemplates.Provider{Name: p.name, Icon: p.icon, Class: p.class})
	}
	return views
}
