package i18n

import (
	"testing"

	"github.com/louisbranch/authshell/internal/services/shared/i18nhttp"
	"golang.org/x/text/language"
)

func TestAuthCopyUsesLocaleStrings(t *testing.T) {
	t.Parallel()

	fa := Auth(i18nhttp.Printer(language.Persian))
	if fa.Welcome != "خوش آمدید" {
		t.Fatalf("fa Welcome = %q", fa.Welcome)
	}
	en := Auth(i18nhttp.Printer(language.English))
	if en.Continue != "Continue" {
		t.Fatalf("en Continue = %q", en.Continue)
	}
	if en.ThemeDark != "Dark" {
		t.Fatalf("en ThemeDark = %q", en.ThemeDark)
	}
}

func TestNotFoundCopy(t *testing.T) {
	t.Parallel()

	en := NotFound(i18nhttp.Printer(language.English))
	if en.Title != "Page Not Found" || en.Subtitle != "404 Error" {
		t.Fatalf("en NotFound = %+v", en)
	}
	ar := NotFound(i18nhttp.Printer(language.Arabic))
	if ar.Title == "" || ar.Title == en.Title {
		t.Fatalf("ar NotFound title = %q", ar.Title)
	}
}

func TestErrorsCopyFallsBackToDefaultMessage(t *testing.T) {
	t.Parallel()

	loc := i18nhttp.Printer(language.Persian)
	got := Errors(loc, "  ")
	if got.Title != "Oops! Something Went Wrong" {
		t.Fatalf("Title = %q", got.Title)
	}
	if got.Message != "An unexpected error occurred." {
		t.Fatalf("Message = %q", got.Message)
	}
	if got.TryAgain != "Try Again" {
		t.Fatalf("TryAgain = %q", got.TryAgain)
	}
	if withDetail := Errors(loc, "db down"); withDetail.Message != "db down" {
		t.Fatalf("Message = %q, want detail", withDetail.Message)
	}
}

func TestMetaFallsBackToEnglish(t *testing.T) {
	t.Parallel()

	en := Meta(i18nhttp.Printer(language.English))
	if en.Title != "next.js" {
		t.Fatalf("en title = %q", en.Title)
	}
	ar := Meta(i18nhttp.Printer(language.Arabic))
	if ar != en {
		t.Fatalf("ar meta = %+v, want en fallback %+v", ar, en)
	}
	fa := Meta(i18nhttp.Printer(language.Persian))
	if fa.Title != "نکست جی اس" {
		t.Fatalf("fa title = %q", fa.Title)
	}
}

func TestT(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		loc  Localizer
		key  string
		args []any
		want string
	}{
		{name: "nil prints base locale", key: "auth.welcome", want: "Welcome"},
		{name: "nil with args", key: "auth.login_with", args: []any{"Github"}, want: "Signing in with Github"},
		{name: "unknown key echoes key", loc: i18nhttp.Printer(language.Persian), key: "auth.missing", want: "auth.missing"},
		{name: "locale text", loc: i18nhttp.Printer(language.Persian), key: "auth.login_success", want: "ورود موفق!"},
		{name: "base fallback", loc: i18nhttp.Printer(language.Arabic), key: "errors.try_again", want: "Try Again"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := T(tc.loc, tc.key, tc.args...); got != tc.want {
				t.Fatalf("T(%q) = %q, want %q", tc.key, got, tc.want)
			}
		})
	}
}

func TestTIdentifierTooLongIsLocalized(t *testing.T) {
	t.Parallel()

	for _, tag := range []language.Tag{language.English, language.Persian, language.Arabic} {
		loc := i18nhttp.Printer(tag)
		if got := T(loc, "auth.identifier_too_long"); got == "auth.identifier_too_long" {
			t.Fatalf("%s has no identifier_too_long text", tag)
		}
	}
}
