// Package web hosts the localized login shell.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/authshell/internal/platform/timeouts"
	"github.com/louisbranch/authshell/internal/services/web/app"
	"github.com/louisbranch/authshell/internal/services/web/flow"
	"github.com/louisbranch/authshell/internal/services/web/localeroute"
	module "github.com/louisbranch/authshell/internal/services/web/module"
	"github.com/louisbranch/authshell/internal/services/web/modules"
	"github.com/louisbranch/authshell/internal/services/web/platform/httpx"
	"github.com/louisbranch/authshell/internal/services/web/platform/pagerender"
	"github.com/louisbranch/authshell/internal/services/web/platform/ratelimit"
	"github.com/louisbranch/authshell/internal/services/web/platform/requestmeta"
)

const tracerName = "github.com/louisbranch/authshell/internal/services/web"

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr        string
	BasePath        string
	DefaultLocale   string
	LocaleDetection bool
	SimulatedDelay  time.Duration
	// CookieHashKey signs the flow cookie (32 or 64 bytes).
	CookieHashKey []byte
	// CookieBlockKey encrypts the flow cookie (16, 24 or 32 bytes).
	CookieBlockKey   []byte
	SendCodeInterval time.Duration
	SendCodeBurst    int
	Enamad           string
	TrustProxy       bool
	ExposeErrors     bool
	Logger           *slog.Logger

	// SendCodeLimiter overrides the limiter built from SendCodeInterval.
	SendCodeLimiter *ratelimit.Limiter
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	limiter    *ratelimit.Limiter
	logger     *slog.Logger
}

// NewHandler builds the root handler: middleware around the composed
// module tree.
func NewHandler(cfg Config) (http.Handler, error) {
	return newHandler(cfg, modules.Default())
}

func newHandler(cfg Config, features []module.Module) (http.Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	routing, err := localeroute.New(cfg.BasePath, cfg.DefaultLocale, cfg.LocaleDetection)
	if err != nil {
		return nil, fmt.Errorf("locale routing: %w", err)
	}
	store, err := flow.NewStore(cfg.CookieHashKey, cfg.CookieBlockKey, routing.CookiePath())
	if err != nil {
		return nil, fmt.Errorf("flow store: %w", err)
	}
	policy := requestmeta.Policy{TrustProxy: cfg.TrustProxy}
	pages := pagerender.Renderer{
		Routing:      routing,
		Request:      policy,
		Enamad:       cfg.Enamad,
		ExposeErrors: cfg.ExposeErrors,
	}
	deps := module.Dependencies{
		Routing:         routing,
		Pages:           pages,
		Request:         policy,
		Flow:            store,
		SendCodeLimiter: cfg.SendCodeLimiter,
		SimulatedDelay:  cfg.SimulatedDelay,
		Logger:          logger,
	}
	root, err := app.Compose(app.ComposeInput{
		Dependencies: deps,
		Modules:      features,
	})
	if err != nil {
		return nil, err
	}
	return httpx.Chain(root,
		httpx.RequestID(),
		httpx.RequestLogger(logger),
		httpx.Trace(tracerName),
		routing.StripBasePath(pages.NotFoundHandler()),
		httpx.RecoverPanic(logger, pages.Error),
	), nil
}

// NewServer validates config and constructs a web server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	var owned *ratelimit.Limiter
	if cfg.SendCodeLimiter == nil && cfg.SendCodeInterval > 0 {
		owned = ratelimit.New(cfg.SendCodeInterval, cfg.SendCodeBurst)
		cfg.SendCodeLimiter = owned
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		owned.Close()
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
		limiter: owned,
		logger:  logger,
	}, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("web listening", "addr", s.httpAddr)
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	s.limiter.Close()
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
}
