// Package i18nhttp resolves the request language and builds language
// switcher options for HTML surfaces.
package i18nhttp

import (
	"net/http"
	"strings"
	"time"

	platformi18n "github.com/louisbranch/authshell/internal/platform/i18n"
	"github.com/louisbranch/authshell/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "authshell_locale"
)

// LanguageOption represents one entry of a language switcher.
type LanguageOption struct {
	Tag    string
	Label  string
	Flag   string
	URL    string
	Active bool
}

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	return platformi18n.SupportedTags()
}

// Default returns the default language tag.
func Default() language.Tag {
	return platformi18n.DefaultTag()
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return catalog.Printer(tag)
}

// ResolveTag determines the best language tag for the request from the lang
// query param, the language cookie, then Accept-Language.
// The bool reports whether a usable preference was found at all.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return Default(), false
	}
	if value := strings.TrimSpace(r.URL.Query().Get(LangParam)); value != "" {
		if tag, ok := platformi18n.ParseTag(value); ok {
			return tag, true
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := platformi18n.ParseTag(cookie.Value); ok {
			return tag, true
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			return platformi18n.MatchTags(tags), true
		}
	}
	return Default(), false
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag, path string) {
	if w == nil {
		return
	}
	if strings.TrimSpace(path) == "" {
		path = "/"
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     path,
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// EnsureLanguageCookie writes the language cookie only when it differs.
func EnsureLanguageCookie(w http.ResponseWriter, r *http.Request, tag language.Tag, path string) {
	expected := tag.String()
	if r != nil {
		if cookie, err := r.Cookie(LangCookieName); err == nil && strings.TrimSpace(cookie.Value) == expected {
			return
		}
	}
	SetLanguageCookie(w, tag, path)
}

// BuildLanguageOptions returns switcher options with the active selection.
func BuildLanguageOptions(supported []language.Tag, active language.Tag, labelForTag func(language.Tag) string, urlForTag func(language.Tag) string) []LanguageOption {
	options := make([]LanguageOption, 0, len(supported))
	for _, tag := range supported {
		label := tag.String()
		if labelForTag != nil {
			if resolved := strings.TrimSpace(labelForTag(tag)); resolved != "" {
				label = resolved
			}
		}
		option := LanguageOption{
			Tag:    tag.String(),
			Label:  label,
			Flag:   LanguageFlag(tag),
			Active: tag == active,
		}
		if urlForTag != nil {
			option.URL = urlForTag(tag)
		}
		options = append(options, option)
	}
	return options
}

// LanguageKeyLabel maps a language tag to its catalog label key.
func LanguageKeyLabel(tag language.Tag) string {
	base, _ := tag.Base()
	switch base.String() {
	case "fa", "en", "ar":
		return "core.lang_" + base.String()
	default:
		return tag.String()
	}
}

// LanguageFlag returns the flag shown next to a language label.
func LanguageFlag(tag language.Tag) string {
	base, _ := tag.Base()
	switch base.String() {
	case "fa":
		return "🇮🇷"
	case "en":
		return "🇬🇧"
	case "ar":
		return "🇸🇦"
	default:
		return ""
	}
}

// SwitchLocalePath rewrites the leading locale segment of path to tag.
// Paths without a supported locale segment get one prepended.
func SwitchLocalePath(path string, tag language.Tag) string {
	code := tag.String()
	trimmed := strings.TrimPrefix(strings.TrimSpace(path), "/")
	if trimmed == "" {
		return "/" + code
	}
	first, rest, hasRest := strings.Cut(trimmed, "/")
	if !isLocaleSegment(first) {
		return "/" + code + "/" + trimmed
	}
	if !hasRest {
		return "/" + code
	}
	return "/" + code + "/" + rest
}

func isLocaleSegment(segment string) bool {
	for _, tag := range Supported() {
		if segment == tag.String() {
			return true
		}
	}
	return false
}
