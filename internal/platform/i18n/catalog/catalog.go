// Package catalog loads the embedded translation tables and registers them
// with golang.org/x/text/message so printers can resolve message keys.
//
// Catalog files live at locales/<locale>/<namespace>.yaml and use a flat
// YAML subset:
//
//	locale: "fa"
//	namespace: "auth"
//	messages:
//	  "auth.welcome": "خوش آمدید"
package catalog

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// BaseLocale is the locale every other catalog falls back to.
const BaseLocale = "en"

// coreNamespace is the only namespace allowed to define core.* keys.
const coreNamespace = "core"

//go:embed locales/*/*.yaml
var embedded embed.FS

var defaultBundle = mustRegister(LoadEmbedded())

// Bundle maps each locale to its merged key/text table.
type Bundle struct {
	messages map[string]map[string]string
}

// Default returns the embedded bundle. It is registered with x/text at
// package init.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded loads the catalogs compiled into this package.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embedded)
}

// LoadFromFS loads every locales/<locale>/<namespace>.yaml file in fsys.
// Keys must be unique per locale, and the base locale must be present.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, errors.New("no catalog files found")
	}
	slices.Sort(paths)

	b := &Bundle{messages: map[string]map[string]string{}}
	for _, p := range paths {
		if err := b.load(fsys, p); err != nil {
			return nil, err
		}
	}
	if _, ok := b.messages[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %q has no catalog", BaseLocale)
	}
	return b, nil
}

func (b *Bundle) load(fsys fs.FS, p string) error {
	fh, err := fsys.Open(p)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer fh.Close()

	f, err := parseFile(p, fh)
	if err != nil {
		return err
	}
	if want := path.Base(path.Dir(p)); f.locale != want {
		return fmt.Errorf("%s: locale %q does not match directory %q", p, f.locale, want)
	}
	if want := strings.TrimSuffix(path.Base(p), ".yaml"); f.namespace != want {
		return fmt.Errorf("%s: namespace %q does not match file name %q", p, f.namespace, want)
	}

	table := b.messages[f.locale]
	if table == nil {
		table = map[string]string{}
		b.messages[f.locale] = table
	}
	for _, e := range f.entries {
		if strings.HasPrefix(e.key, coreNamespace+".") && f.namespace != coreNamespace {
			return &lineError{file: p, line: e.line, err: fmt.Errorf("key %q belongs in the %s namespace", e.key, coreNamespace)}
		}
		if _, dup := table[e.key]; dup {
			return &lineError{file: p, line: e.line, err: fmt.Errorf("key %q already defined for %q", e.key, f.locale)}
		}
		table[e.key] = e.text
	}
	return nil
}

// Register installs every message with x/text/message. A locale that lacks
// a key gets the base locale's text for it, so printers never show a raw key.
func (b *Bundle) Register() error {
	if b == nil {
		return nil
	}
	base := b.messages[BaseLocale]
	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale %q: %w", locale, err)
		}
		merged := make(map[string]string, len(base))
		maps.Copy(merged, base)
		maps.Copy(merged, b.messages[locale])
		for _, key := range slices.Sorted(maps.Keys(merged)) {
			if err := message.SetString(tag, key, merged[key]); err != nil {
				return fmt.Errorf("register %s %s: %w", locale, key, err)
			}
		}
	}
	return nil
}

// Locales lists the loaded locales in sorted order.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(b.messages))
}

// Message returns the text for key in locale, falling back to the base
// locale. ok is false when neither defines it.
func (b *Bundle) Message(locale, key string) (text string, ok bool) {
	if b == nil {
		return "", false
	}
	if text, ok = b.messages[strings.TrimSpace(locale)][key]; ok {
		return text, true
	}
	text, ok = b.messages[BaseLocale][key]
	return text, ok
}

// Printer returns a printer backed by the registered catalog.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

func mustRegister(b *Bundle, err error) *Bundle {
	if err == nil {
		err = b.Register()
	}
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return b
}

type entry struct {
	key  string
	text string
	line int
}

type file struct {
	locale    string
	namespace string
	entries   []entry
}

// lineError pins a catalog problem to its source line.
type lineError struct {
	file string
	line int
	err  error
}

func (e *lineError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.file, e.line, e.err)
}

func (e *lineError) Unwrap() error {
	return e.err
}

func parseFile(name string, r io.Reader) (file, error) {
	var f file
	inMessages := false
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if inMessages {
			key, text, err := parseEntry(line)
			if err != nil {
				return file{}, &lineError{file: name, line: n, err: err}
			}
			f.entries = append(f.entries, entry{key: key, text: text, line: n})
			continue
		}
		if err := f.setHeader(line, &inMessages); err != nil {
			return file{}, &lineError{file: name, line: n, err: err}
		}
	}
	if err := sc.Err(); err != nil {
		return file{}, fmt.Errorf("%s: %w", name, err)
	}

	switch {
	case f.locale == "":
		return file{}, fmt.Errorf("%s: locale is required", name)
	case f.namespace == "":
		return file{}, fmt.Errorf("%s: namespace is required", name)
	case len(f.entries) == 0:
		return file{}, fmt.Errorf("%s: no messages", name)
	}
	return f, nil
}

func (f *file) setHeader(line string, inMessages *bool) error {
	field, value, ok := strings.Cut(line, ":")
	if !ok {
		return fmt.Errorf("expected a field, got %q", line)
	}
	var err error
	switch field {
	case "locale":
		f.locale, err = unquote(value)
	case "namespace":
		f.namespace, err = unquote(value)
	case "messages":
		if strings.TrimSpace(value) != "" {
			return errors.New("messages must start a block")
		}
		*inMessages = true
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	return nil
}

// parseEntry reads `"key": "text"`.
func parseEntry(line string) (key, text string, err error) {
	if !strings.HasPrefix(line, `"`) {
		return "", "", errors.New("key must be double-quoted")
	}
	quoted, err := strconv.QuotedPrefix(line)
	if err != nil {
		return "", "", fmt.Errorf("key: %w", err)
	}
	key, err = strconv.Unquote(quoted)
	if err != nil {
		return "", "", fmt.Errorf("key: %w", err)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", errors.New("key is blank")
	}
	rest, ok := strings.CutPrefix(strings.TrimSpace(line[len(quoted):]), ":")
	if !ok {
		return "", "", fmt.Errorf("missing ':' after %q", key)
	}
	text, err = unquote(rest)
	if err != nil {
		return "", "", fmt.Errorf("value of %q: %w", key, err)
	}
	return key, text, nil
}

func unquote(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, `"`) {
		return "", errors.New("value must be double-quoted")
	}
	return strconv.Unquote(raw)
}
