// Package app composes feature modules into the root route tree.
package app

import (
	"fmt"
	"net/http"
	"strings"

	module "github.com/louisbranch/authshell/internal/services/web/module"
)

// ComposeInput carries modules and the dependencies they mount with.
type ComposeInput struct {
	Dependencies module.Dependencies
	Modules      []module.Module
}

// Compose builds a root HTTP handler from modules. Each module owns exactly
// one prefix; duplicates are rejected.
func Compose(input ComposeInput) (http.Handler, error) {
	root := http.NewServeMux()
	seen := make(map[string]string, len(input.Modules))
	for _, feature := range input.Modules {
		if feature == nil {
			return nil, fmt.Errorf("module is nil")
		}
		mount, err := feature.Mount(input.Dependencies)
		if err != nil {
			return nil, fmt.Errorf("mount module %q: %w", feature.ID(), err)
		}
		prefix, err := validatePrefix(mount.Prefix)
		if err != nil {
			return nil, fmt.Errorf("mount module %q: %w", feature.ID(), err)
		}
		if mount.Handler == nil {
			return nil, fmt.Errorf("mount module %q: handler is required", feature.ID())
		}
		if previous, ok := seen[prefix]; ok {
			return nil, fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, previous)
		}
		seen[prefix] = feature.ID()
		root.Handle(prefix, mount.Handler)
		for _, raw := range mount.Exact {
			exact, err := validateExact(raw)
			if err != nil {
				return nil, fmt.Errorf("mount module %q: %w", feature.ID(), err)
			}
			if previous, ok := seen[exact]; ok {
				return nil, fmt.Errorf("module %q duplicates path %q owned by module %q", feature.ID(), exact, previous)
			}
			seen[exact] = feature.ID()
			root.Handle(exact, mount.Handler)
		}
	}
	return root, nil
}

func validatePrefix(prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("prefix is required")
	}
	if prefix != strings.TrimSpace(prefix) {
		return "", fmt.Errorf("prefix %q has surrounding whitespace", prefix)
	}
	if !strings.HasPrefix(prefix, "/") || !strings.HasSuffix(prefix, "/") {
		return "", fmt.Errorf("prefix %q must start and end with /", prefix)
	}
	return prefix, nil
}

func validateExact(p string) (string, error) {
	if p != strings.TrimSpace(p) {
		return "", fmt.Errorf("path %q has surrounding whitespace", p)
	}
	if !strings.HasPrefix(p, "/") || p == "/" || strings.HasSuffix(p, "/") {
		return "", fmt.Errorf("path %q must start with / and not end with /", p)
	}
	return p, nil
}
