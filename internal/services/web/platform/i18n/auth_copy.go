// Package i18n turns catalog keys into the copy structs pages render.
package i18n

import (
	"strings"

	"github.com/louisbranch/authshell/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Localizer resolves catalog keys. *message.Printer satisfies it.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

var basePrinter = catalog.Printer(language.Make(catalog.BaseLocale))

// T returns the translation for key. A key loc cannot resolve renders the
// base-locale text, or the key itself when no catalog defines it. A nil loc
// prints in the base locale.
func T(loc Localizer, key string, args ...any) string {
	if loc == nil {
		loc = basePrinter
	}
	fallback, ok := catalog.Default().Message(catalog.BaseLocale, key)
	if !ok {
		fallback = key
	}
	return loc.Sprintf(message.Key(key, fallback), args...)
}

// AuthCopy holds the login page strings.
type AuthCopy struct {
	Welcome             string
	Subtitle            string
	LoginWithGoogle     string
	OtherOptions        string
	OrLoginWith         string
	Email               string
	Phone               string
	PhoneCode           string
	PhoneNumber         string
	EmailAddress        string
	VerificationCode    string
	CheckInbox          string
	Continue            string
	Loading             string
	ContinueAsGuest     string
	UseDifferentAccount string
	TermsText           string
	TermsOfService      string
	And                 string
	Privacy             string
	ThemeLabel          string
	ThemeLight          string
	ThemeDark           string
}

// Auth returns localized login copy.
func Auth(loc Localizer) AuthCopy {
	return AuthCopy{
		Welcome:             T(loc, "auth.welcome"),
		Subtitle:            T(loc, "auth.subtitle"),
		LoginWithGoogle:     T(loc, "auth.login_with_google"),
		OtherOptions:        T(loc, "auth.other_options"),
		OrLoginWith:         T(loc, "auth.or_login_with"),
		Email:               T(loc, "auth.email"),
		Phone:               T(loc, "auth.phone"),
		PhoneCode:           T(loc, "auth.phone_code"),
		PhoneNumber:         T(loc, "auth.phone_number"),
		EmailAddress:        T(loc, "auth.email_address"),
		VerificationCode:    T(loc, "auth.verification_code"),
		CheckInbox:          T(loc, "auth.check_inbox"),
		Continue:            T(loc, "auth.continue"),
		Loading:             T(loc, "auth.loading"),
		ContinueAsGuest:     T(loc, "auth.continue_as_guest"),
		UseDifferentAccount: T(loc, "auth.use_different_account"),
		TermsText:           T(loc, "auth.terms_text"),
		TermsOfService:      T(loc, "auth.terms_of_service"),
		And:                 T(loc, "auth.and"),
		Privacy:             T(loc, "auth.privacy"),
		ThemeLabel:          T(loc, "core.theme_label"),
		ThemeLight:          T(loc, "core.theme_light"),
		ThemeDark:           T(loc, "core.theme_dark"),
	}
}

// NotFoundCopy holds the 404 page strings.
type NotFoundCopy struct {
	Title       string
	Subtitle    string
	Description string
	HomeButton  string
	HelpText    string
}

// NotFound returns localized 404 copy.
func NotFound(loc Localizer) NotFoundCopy {
	return NotFoundCopy{
		Title:       T(loc, "notfound.title"),
		Subtitle:    T(loc, "notfound.subtitle"),
		Description: T(loc, "notfound.description"),
		HomeButton:  T(loc, "notfound.home_button"),
		HelpText:    T(loc, "notfound.help_text"),
	}
}

// ErrorCopy holds the error boundary strings. Message is the recovered
// error text or the fallback.
type ErrorCopy struct {
	Title    string
	Message  string
	TryAgain string
}

// Errors returns error boundary copy for detail.
func Errors(loc Localizer, detail string) ErrorCopy {
	text := strings.TrimSpace(detail)
	if text == "" {
		text = T(loc, "errors.fallback_message")
	}
	return ErrorCopy{
		Title:    T(loc, "errors.title"),
		Message:  text,
		TryAgain: T(loc, "errors.try_again"),
	}
}

// MetaCopy is the document title and description.
type MetaCopy struct {
	Title       string
	Description string
}

// Meta returns per-locale document metadata.
func Meta(loc Localizer) MetaCopy {
	return MetaCopy{
		Title:       T(loc, "meta.title"),
		Description: T(loc, "meta.description"),
	}
}
