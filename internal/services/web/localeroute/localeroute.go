// Package localeroute maps URL locale segments to supported locales and
// builds base-path-aware links.
package localeroute

import (
	"fmt"
	"net/http"
	"strings"

	platformi18n "github.com/louisbranch/authshell/internal/platform/i18n"
	"github.com/louisbranch/authshell/internal/services/shared/i18nhttp"
	"github.com/louisbranch/authshell/internal/services/web/platform/httpx"
	"github.com/louisbranch/authshell/internal/services/web/routepath"
	"golang.org/x/text/language"
)

// Routing describes how locales appear in URLs.
type Routing struct {
	Locales   []language.Tag
	Default   language.Tag
	Detection bool
	BasePath  string
}

// New validates the default locale and normalizes the base path.
func New(basePath string, defaultLocale string, detection bool) (Routing, error) {
	routing := Routing{
		Locales:   platformi18n.SupportedTags(),
		Default:   platformi18n.DefaultTag(),
		Detection: detection,
	}
	if strings.TrimSpace(defaultLocale) != "" {
		tag, ok := routing.Locale(strings.TrimSpace(defaultLocale))
		if !ok {
			return Routing{}, fmt.Errorf("default locale %q is not supported", defaultLocale)
		}
		routing.Default = tag
	}
	base, err := NormalizeBasePath(basePath)
	if err != nil {
		return Routing{}, err
	}
	routing.BasePath = base
	return routing, nil
}

// NormalizeBasePath returns "" or a path like /next-auth with no trailing slash.
func NormalizeBasePath(raw string) (string, error) {
	base := strings.TrimSpace(raw)
	base = strings.TrimRight(base, "/")
	if base == "" {
		return "", nil
	}
	if !strings.HasPrefix(base, "/") {
		return "", fmt.Errorf("base path %q must start with /", raw)
	}
	if strings.ContainsAny(base, "?#{}") {
		return "", fmt.Errorf("base path %q contains reserved characters", raw)
	}
	return base, nil
}

// Locale resolves a URL segment. Only exact codes such as "fa" match.
func (rt Routing) Locale(segment string) (language.Tag, bool) {
	for _, tag := range rt.locales() {
		if segment == tag.String() {
			return tag, true
		}
	}
	return language.Und, false
}

// Detect picks the locale for unprefixed requests.
func (rt Routing) Detect(r *http.Request) language.Tag {
	if !rt.Detection {
		return rt.defaultTag()
	}
	tag, found := i18nhttp.ResolveTag(r)
	if !found {
		return rt.defaultTag()
	}
	if _, ok := rt.Locale(tag.String()); !ok {
		return rt.defaultTag()
	}
	return tag
}

// Href prefixes p with the base path.
func (rt Routing) Href(p string) string {
	if p == "" || p == "/" {
		if rt.BasePath == "" {
			return "/"
		}
		return rt.BasePath
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return rt.BasePath + p
}

// Path returns the base-path-aware link to rest under tag.
func (rt Routing) Path(tag language.Tag, rest string) string {
	return rt.Href(routepath.Localized(tag.String(), rest))
}

// LoginPath returns the localized login link.
func (rt Routing) LoginPath(tag language.Tag) string {
	return rt.Path(tag, routepath.Login)
}

// SwitchPath returns the link to the same page under target. path is the
// request path with the base path already removed.
func (rt Routing) SwitchPath(path string, target language.Tag) string {
	return rt.Href(i18nhttp.SwitchLocalePath(path, target))
}

// CookiePath scopes cookies to the base path.
func (rt Routing) CookiePath() string {
	return rt.Href("/")
}

// StripBasePath serves only requests under the base path and removes it
// before routing. Other paths get notFound.
func (rt Routing) StripBasePath(notFound http.Handler) httpx.Middleware {
	base := rt.BasePath
	if notFound == nil {
		notFound = http.NotFoundHandler()
	}
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		if base == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rest, ok := strings.CutPrefix(r.URL.Path, base)
			if !ok || (rest != "" && !strings.HasPrefix(rest, "/")) {
				notFound.ServeHTTP(w, r)
				return
			}
			if rest == "" {
				rest = "/"
			}
			r2 := r.Clone(r.Context())
			r2.URL.Path = rest
			r2.URL.RawPath = ""
			next.ServeHTTP(w, r2)
		})
	}
}

// SupportedLocales returns the locales in switcher order.
func (rt Routing) SupportedLocales() []language.Tag {
	locales := rt.locales()
	out := make([]language.Tag, len(locales))
	copy(out, locales)
	return out
}

func (rt Routing) locales() []language.Tag {
	if len(rt.Locales) == 0 {
		return platformi18n.SupportedTags()
	}
	return rt.Locales
}

func (rt Routing) defaultTag() language.Tag {
	if rt.Default == language.Und {
		return platformi18n.DefaultTag()
	}
	return rt.Default
}
