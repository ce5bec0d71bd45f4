// Package templates renders the shell document and its pages as templ
// components backed by embedded html/template files.
package templates

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/authshell/internal/services/shared/i18nhttp"
	webi18n "github.com/louisbranch/authshell/internal/services/web/platform/i18n"
)

//go:embed html/*.html
var htmlFS embed.FS

var pages = template.Must(template.ParseFS(htmlFS, "html/*.html"))

// Document is everything the outer <html> needs.
type Document struct {
	Layout        Layout
	Theme         string
	Meta          webi18n.MetaCopy
	Enamad        string
	StylesheetURL string
	ScriptURL     string
}

type documentData struct {
	Document
	Body template.HTML
}

// Shell wraps the children passed through templ.WithChildren in the
// document template.
func Shell(doc Document) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var body bytes.Buffer
		if children := templ.GetChildren(ctx); children != nil {
			if err := children.Render(templ.ClearChildren(ctx), &body); err != nil {
				return fmt.Errorf("render document body: %w", err)
			}
		}
		return pages.ExecuteTemplate(w, "document", documentData{
			Document: doc,
			Body:     template.HTML(body.String()),
		})
	})
}

// Provider is one social login button.
type Provider struct {
	Name  string
	Icon  string
	Class string
}

// LoginView is the data behind the login page.
type LoginView struct {
	Copy             webi18n.AuthCopy
	Action           string
	RTL              bool
	TextAlign        string
	Method           string
	Identifier       string
	Verifying        bool
	Code             string
	CodeLength       int
	Error            string
	Notice           string
	Providers        []Provider
	Languages        []i18nhttp.LanguageOption
	ThemeToggleURL   string
	ThemeToggleLabel string
	ThemeTarget      string
}

// LoginPage renders the sign-in card.
func LoginPage(view LoginView) templ.Component {
	return templ.FromGoHTML(pages.Lookup("login"), view)
}

// NotFoundView is the data behind the 404 page.
type NotFoundView struct {
	Copy    webi18n.NotFoundCopy
	HomeURL string
}

// NotFoundPage renders the localized 404 body.
func NotFoundPage(view NotFoundView) templ.Component {
	return templ.FromGoHTML(pages.Lookup("notfound"), view)
}

// ErrorView is the data behind the error boundary page.
type ErrorView struct {
	Copy     webi18n.ErrorCopy
	RetryURL string
}

// ErrorPage renders the error boundary body.
func ErrorPage(view ErrorView) templ.Component {
	return templ.FromGoHTML(pages.Lookup("error"), view)
}
