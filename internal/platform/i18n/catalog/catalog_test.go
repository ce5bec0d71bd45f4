package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"testing/fstest"

	"golang.org/x/text/language"
)

func TestLoadEmbeddedHasConfiguredLocales(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	if got, want := bundle.Locales(), []string{"ar", "en", "fa"}; !slices.Equal(got, want) {
		t.Fatalf("Locales() = %v, want %v", got, want)
	}
}

func TestLocalesShareAuthKeys(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	for key := range bundle.messages[BaseLocale] {
		if !strings.HasPrefix(key, "auth.") {
			continue
		}
		for _, locale := range []string{"fa", "ar"} {
			if _, ok := bundle.messages[locale][key]; !ok {
				t.Errorf("%s missing auth key %q", locale, key)
			}
		}
	}
}

func TestMessage(t *testing.T) {
	bundle := Default()

	tests := []struct {
		name   string
		locale string
		key    string
		want   string
		wantOK bool
	}{
		{name: "own text", locale: "fa", key: "auth.login_success", want: "ورود موفق!", wantOK: true},
		{name: "base fallback", locale: "ar", key: "meta.title", want: "next.js", wantOK: true},
		{name: "unknown locale uses base", locale: "de", key: "errors.try_again", want: "Try Again", wantOK: true},
		{name: "unknown key", locale: "en", key: "auth.nope"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := bundle.Message(tc.locale, tc.key)
			if ok != tc.wantOK || got != tc.want {
				t.Fatalf("Message(%q, %q) = %q, %v; want %q, %v", tc.locale, tc.key, got, ok, tc.want, tc.wantOK)
			}
		})
	}

	var nilBundle *Bundle
	if _, ok := nilBundle.Message("en", "auth.welcome"); ok {
		t.Fatal("nil bundle resolved a message")
	}
}

func TestDefaultRegistersPrinters(t *testing.T) {
	_ = Default()

	if got := Printer(language.Persian).Sprintf("auth.login_success"); got != "ورود موفق!" {
		t.Fatalf("fa auth.login_success = %q", got)
	}
	if got := Printer(language.English).Sprintf("auth.login_with", "Github"); got != "Signing in with Github" {
		t.Fatalf("en auth.login_with = %q", got)
	}
	if got := Printer(language.Arabic).Sprintf("errors.try_again"); got != "Try Again" {
		t.Fatalf("ar errors.try_again = %q, want base fallback", got)
	}
}

func TestLoadFromFSRejects(t *testing.T) {
	en := func(namespace, body string) *fstest.MapFile {
		return &fstest.MapFile{Data: []byte("locale: \"en\"\nnamespace: \"" + namespace + "\"\nmessages:\n" + body)}
	}

	tests := []struct {
		name string
		fsys fstest.MapFS
		want string
	}{
		{
			name: "core key outside core",
			fsys: fstest.MapFS{"locales/en/auth.yaml": en("auth", "  \"core.bad\": \"nope\"\n")},
			want: "locales/en/auth.yaml:4:",
		},
		{
			name: "duplicate key across namespaces",
			fsys: fstest.MapFS{
				"locales/en/core.yaml": en("core", "  \"a.key\": \"a\"\n"),
				"locales/en/auth.yaml": en("auth", "  \"a.key\": \"b\"\n"),
			},
			want: "already defined",
		},
		{
			name: "locale mismatch",
			fsys: fstest.MapFS{
				"locales/en/auth.yaml": en("auth", "  \"auth.x\": \"y\"\n"),
				"locales/fa/auth.yaml": en("auth", "  \"auth.x\": \"y\"\n"),
			},
			want: "does not match directory",
		},
		{
			name: "namespace mismatch",
			fsys: fstest.MapFS{"locales/en/auth.yaml": en("core", "  \"core.x\": \"y\"\n")},
			want: "does not match file name",
		},
		{
			name: "missing base locale",
			fsys: fstest.MapFS{"locales/fa/auth.yaml": &fstest.MapFile{Data: []byte("locale: \"fa\"\nnamespace: \"auth\"\nmessages:\n  \"auth.x\": \"y\"\n")}},
			want: "base locale",
		},
		{
			name: "no files",
			fsys: fstest.MapFS{},
			want: "no catalog files",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFromFS(tc.fsys)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("LoadFromFS() error = %v, want %q", err, tc.want)
			}
		})
	}
}

func TestLoadFromFSReadsDirectory(t *testing.T) {
	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "locales/en/auth.yaml"), `# login copy
locale: "en"
namespace: "auth"
messages:
  "auth.colon": "a: b"
  "auth.escaped": "say \"hi\""
`)

	bundle, err := LoadFromFS(os.DirFS(dir))
	if err != nil {
		t.Fatalf("LoadFromFS() error = %v", err)
	}
	if got, _ := bundle.Message("en", "auth.colon"); got != "a: b" {
		t.Fatalf("auth.colon = %q", got)
	}
	if got, _ := bundle.Message("en", "auth.escaped"); got != `say "hi"` {
		t.Fatalf("auth.escaped = %q", got)
	}
}

func TestParseFileErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{name: "unquoted value", data: "locale: \"en\"\nnamespace: \"auth\"\nmessages:\n  \"auth.x\": y\n", want: "a.yaml:4: value of \"auth.x\""},
		{name: "unquoted key", data: "locale: \"en\"\nnamespace: \"auth\"\nmessages:\n  auth.x: \"y\"\n", want: "a.yaml:4: key must be double-quoted"},
		{name: "blank key", data: "locale: \"en\"\nnamespace: \"auth\"\nmessages:\n  \" \": \"y\"\n", want: "key is blank"},
		{name: "missing separator", data: "locale: \"en\"\nnamespace: \"auth\"\nmessages:\n  \"auth.x\" \"y\"\n", want: "missing ':'"},
		{name: "unknown field", data: "locale: \"en\"\nlang: \"en\"\n", want: "a.yaml:2: unknown field"},
		{name: "inline messages", data: "locale: \"en\"\nmessages: {}\n", want: "messages must start a block"},
		{name: "missing locale", data: "namespace: \"auth\"\nmessages:\n  \"auth.x\": \"y\"\n", want: "locale is required"},
		{name: "missing namespace", data: "locale: \"en\"\nmessages:\n  \"auth.x\": \"y\"\n", want: "namespace is required"},
		{name: "no messages", data: "locale: \"en\"\nnamespace: \"auth\"\nmessages:\n", want: "no messages"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseFile("a.yaml", strings.NewReader(tc.data))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("parseFile() error = %v, want %q", err, tc.want)
			}
		})
	}
}

func TestLineErrorUnwraps(t *testing.T) {
	sentinel := errors.New("bad")
	err := error(&lineError{file: "x.yaml", line: 3, err: sentinel})
	if !errors.Is(err, sentinel) {
		t.Fatal("lineError does not unwrap")
	}
	if err.Error() != "x.yaml:3: bad" {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func mustWriteFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
