// Package theme resolves and persists the light/dark preference.
package theme

import (
	"net/http"
	"strings"
	"time"
)

// Theme is a color scheme name rendered on the document root.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"

	// CookieName stores the visitor's last choice.
	CookieName = "authshell_theme"
	// QueryParam switches the theme for the current and later requests.
	QueryParam = "theme"

	cookieMaxAge = 365 * 24 * time.Hour
)

// Parse accepts "light" or "dark" in any case.
func Parse(raw string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(raw))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	}
	return "", false
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Resolve reads ?theme= first and persists it, then falls back to the cookie.
// Light is the default.
func Resolve(w http.ResponseWriter, r *http.Request, cookiePath string, secure bool) Theme {
	if r == nil {
		return Light
	}
	if chosen, ok := Parse(r.URL.Query().Get(QueryParam)); ok {
		if w != nil {
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    string(chosen),
				Path:     cookiePathOrRoot(cookiePath),
				MaxAge:   int(cookieMaxAge.Seconds()),
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})
		}
		return chosen
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		if stored, ok := Parse(cookie.Value); ok {
			return stored
		}
	}
	return Light
}

func cookiePathOrRoot(path string) string {
	if strings.TrimSpace(path) == "" {
		return "/"
	}
	return path
}
