// Package pagerender wraps page bodies in the locale document and writes
// them with the right status.
package pagerender

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/authshell/internal/services/shared/i18nhttp"
	"github.com/louisbranch/authshell/internal/services/web/localeroute"
	"github.com/louisbranch/authshell/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/authshell/internal/services/web/platform/i18n"
	"github.com/louisbranch/authshell/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/authshell/internal/services/web/platform/theme"
	"github.com/louisbranch/authshell/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/authshell/internal/services/web/templates"
	"golang.org/x/text/language"
)

// Page is one full-document response.
type Page struct {
	Locale     language.Tag
	StatusCode int
	// Theme is resolved from the request when empty.
	Theme theme.Theme
	Body  templ.Component
}

// Renderer owns the document-level settings shared by every page.
type Renderer struct {
	Routing localeroute.Routing
	Request requestmeta.Policy
	Enamad  string
	// ExposeErrors shows recovered panic text on the error page.
	ExposeErrors bool
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// Document builds the shell settings for tag and th.
func (rd Renderer) Document(tag language.Tag, th theme.Theme) webtemplates.Document {
	return webtemplates.Document{
		Layout:        webtemplates.LayoutFor(tag),
		Theme:         string(th),
		Meta:          webi18n.Meta(i18nhttp.Printer(tag)),
		Enamad:        strings.TrimSpace(rd.Enamad),
		StylesheetURL: rd.Routing.Href(routepath.StaticPrefix + "app.css"),
		ScriptURL:     rd.Routing.Href(routepath.StaticPrefix + "app.js"),
	}
}

// Theme resolves the request theme, persisting ?theme= under the base path.
func (rd Renderer) Theme(w http.ResponseWriter, r *http.Request) theme.Theme {
	return theme.Resolve(w, r, rd.Routing.CookiePath(), rd.Request.IsHTTPS(r))
}

// Write renders page into a buffer first so a failed render never leaves a
// half-written 200.
func (rd Renderer) Write(w http.ResponseWriter, r *http.Request, page Page) error {
	if w == nil {
		return nil
	}
	status := page.StatusCode
	if status <= 0 {
		status = http.StatusOK
	}
	body := page.Body
	if body == nil {
		body = emptyComponent{}
	}
	th := page.Theme
	if th == "" {
		th = rd.Theme(w, r)
	}
	ctx := templ.WithChildren(httpx.RequestContext(r), body)
	var buf bytes.Buffer
	if err := webtemplates.Shell(rd.Document(page.Locale, th)).Render(ctx, &buf); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
	return nil
}

// NotFound writes the localized 404 page.
func (rd Renderer) NotFound(w http.ResponseWriter, r *http.Request, tag language.Tag) {
	body := webtemplates.NotFoundPage(webtemplates.NotFoundView{
		Copy:    webi18n.NotFound(i18nhttp.Printer(tag)),
		HomeURL: rd.Routing.Path(tag, ""),
	})
	if err := rd.Write(w, r, Page{Locale: tag, StatusCode: http.StatusNotFound, Body: body}); err != nil {
		http.NotFound(w, r)
	}
}

// NotFoundHandler renders 404s in the locale named by the first path
// segment, or the default locale.
func (rd Renderer) NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rd.NotFound(w, r, rd.LocaleFromPath(r))
	})
}

// Error writes the error boundary page with status 500.
func (rd Renderer) Error(w http.ResponseWriter, r *http.Request, recovered any) {
	detail := ""
	if rd.ExposeErrors && recovered != nil {
		detail = fmt.Sprint(recovered)
	}
	tag := rd.LocaleFromPath(r)
	retry := rd.Routing.Href("/")
	if r != nil && r.URL != nil {
		retry = rd.Routing.Href(r.URL.RequestURI())
	}
	body := webtemplates.ErrorPage(webtemplates.ErrorView{
		Copy:     webi18n.Errors(i18nhttp.Printer(tag), detail),
		RetryURL: retry,
	})
	if err := rd.Write(w, r, Page{Locale: tag, StatusCode: http.StatusInternalServerError, Body: body}); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// LocaleFromPath reads the locale segment of a base-stripped path.
func (rd Renderer) LocaleFromPath(r *http.Request) language.Tag {
	if r == nil || r.URL == nil {
		return rd.Routing.Detect(r)
	}
	first, _, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	if tag, ok := rd.Routing.Locale(first); ok {
		return tag
	}
	return rd.Routing.Detect(r)
}
