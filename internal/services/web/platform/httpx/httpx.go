// Package httpx provides HTTP middleware helpers used by web modules.
package httpx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation id in both directions.
const RequestIDHeader = "X-Request-ID"

// Middleware wraps an HTTP handler.
type Middleware func(http.Handler) http.Handler

// PanicHandler renders the response for a recovered panic.
type PanicHandler func(w http.ResponseWriter, r *http.Request, recovered any)

// Chain applies middleware in declaration order.
func Chain(handler http.Handler, middleware ...Middleware) http.Handler {
	if handler == nil {
		handler = http.NotFoundHandler()
	}
	wrapped := handler
	for idx := len(middleware) - 1; idx >= 0; idx-- {
		if middleware[idx] == nil {
			continue
		}
		wrapped = middleware[idx](wrapped)
	}
	return wrapped
}

// MethodNotAllowed writes a 405 response with an Allow header.
func MethodNotAllowed(allow string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if w == nil {
			return
		}
		w.Header().Set("Allow", strings.TrimSpace(allow))
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// RequestID injects and echoes a request id for correlation.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := strings.TrimSpace(r.Header.Get(RequestIDHeader))
			if requestID == "" {
				requestID = uuid.NewString()
				r.Header.Set(RequestIDHeader, requestID)
			}
			w.Header().Set(RequestIDHeader, requestID)
			next.ServeHTTP(w, r)
		})
	}
}

// RequestIDFrom returns the correlation id or "-" when none is set.
func RequestIDFrom(r *http.Request) string {
	if r == nil {
		return "-"
	}
	if rid := strings.TrimSpace(r.Header.Get(RequestIDHeader)); rid != "" {
		return rid
	}
	return "-"
}

// RecoverPanic logs panics and hands the response to render.
// A nil render writes a bare 500.
func RecoverPanic(logger *slog.Logger, render PanicHandler) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}
				method, path := "-", "-"
				if r != nil {
					method = strings.TrimSpace(r.Method)
					path = strings.TrimSpace(r.URL.Path)
				}
				logger.Error("panic recovered",
					"method", method,
					"path", path,
					"request_id", RequestIDFrom(r),
					"panic", fmt.Sprint(recovered),
					"stack", strings.TrimSpace(string(debug.Stack())),
				)
				if render == nil {
					w.WriteHeader(http.StatusInternalServerError)
					return
				}
				render(w, r, recovered)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(p []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(p)
	s.bytes += n
	return n, err
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// RequestLogger logs one line per request.
func RequestLogger(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)
			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"request_id", RequestIDFrom(r),
				"bytes", rec.bytes,
				"latency", time.Since(start),
			)
		})
	}
}

// RequestContext returns r.Context() with a nil-safe fallback to context.Background().
func RequestContext(r *http.Request) context.Context {
	if r == nil {
		return context.Background()
	}
	return r.Context()
}

// WriteHTML writes an HTML payload with the provided status code.
func WriteHTML(w http.ResponseWriter, status int, payload string) error {
	if w == nil {
		return fmt.Errorf("response writer is required")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := io.WriteString(w, payload)
	return err
}

// WriteRedirect writes a 302 to location.
func WriteRedirect(w http.ResponseWriter, r *http.Request, location string) {
	if w == nil {
		return
	}
	if r == nil {
		w.Header().Set("Location", location)
		w.WriteHeader(http.StatusFound)
		return
	}
	http.Redirect(w, r, location, http.StatusFound)
}
