// Package routepath stores canonical HTTP paths for the login shell.
//
// Paths here are relative to the configured base path; localeroute adds the
// base path and the locale segment when building links.
package routepath

import "strings"

const (
	Root         = "/"
	Login        = "/login"
	Health       = "/up"
	StaticPrefix = "/static/"

	// LocalePrefix mounts every locale-scoped route.
	LocalePrefix = "/{locale}/"
	// LocaleRootPattern matches a bare locale segment such as /fa.
	LocaleRootPattern = "/{locale}"
	// LocaleIndexPattern matches /fa/.
	LocaleIndexPattern = "/{locale}/{$}"
	// LocaleLoginPattern matches /fa/login.
	LocaleLoginPattern = "/{locale}/login"
	// LocaleParam names the locale path wildcard.
	LocaleParam = "locale"
)

// Localized returns /<locale><rest> without any base path.
func Localized(locale string, rest string) string {
	locale = strings.Trim(strings.TrimSpace(locale), "/")
	rest = strings.TrimSpace(rest)
	if rest != "" && !strings.HasPrefix(rest, "/") {
		rest = "/" + rest
	}
	return "/" + locale + rest
}

// LocalizedLogin returns /<locale>/login.
func LocalizedLogin(locale string) string {
	return Localized(locale, Login)
}
