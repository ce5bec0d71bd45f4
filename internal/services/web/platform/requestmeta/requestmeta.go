// Package requestmeta resolves request scheme, client address, and origin.
package requestmeta

import (
	"net"
	"net/http"
	"net/url"
	"strings"
)

// Policy controls which proxy headers are honored.
//
// Forwarded headers are ignored unless TrustProxy is set.
type Policy struct {
	TrustProxy bool
}

// IsHTTPS reports whether the request arrived over TLS.
func (p Policy) IsHTTPS(r *http.Request) bool {
	return p.scheme(r) == "https"
}

// ClientIP returns the caller address used for rate limiting.
func (p Policy) ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if p.TrustProxy {
		if fwd := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); fwd != "" {
			first, _, _ := strings.Cut(fwd, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
		if real := strings.TrimSpace(r.Header.Get("X-Real-IP")); real != "" {
			return real
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}

// SameOrigin reports whether Origin, or Referer when Origin is absent,
// names the host that served the request. Requests carrying neither header
// are accepted since plain form posts from older clients omit both.
func (p Policy) SameOrigin(r *http.Request) bool {
	if r == nil {
		return false
	}
	raw := strings.TrimSpace(r.Header.Get("Origin"))
	if raw == "" {
		raw = strings.TrimSpace(r.Header.Get("Referer"))
	}
	if raw == "" {
		return true
	}
	origin, err := url.Parse(raw)
	if err != nil || origin.Host == "" {
		return false
	}
	scheme := p.scheme(r)
	if !strings.EqualFold(origin.Scheme, scheme) {
		return false
	}
	reqHost, reqPort := splitHost(r.Host, scheme)
	origHost, origPort := splitHost(origin.Host, origin.Scheme)
	return reqHost != "" && reqHost == origHost && reqPort == origPort
}

func (p Policy) scheme(r *http.Request) string {
	if r == nil {
		return ""
	}
	if p.TrustProxy {
		switch proto := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); proto {
		case "http", "https":
			return proto
		}
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

func splitHost(raw string, scheme string) (string, string) {
	parsed, err := url.Parse("//" + strings.TrimSpace(raw))
	if err != nil {
		return "", ""
	}
	port := parsed.Port()
	if port == "" {
		switch strings.ToLower(scheme) {
		case "https":
			port = "443"
		case "http":
			port = "80"
		}
	}
	return strings.ToLower(parsed.Hostname()), port
}
