// Package web parses the login shell's startup configuration and runs it.
package web

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	entrypoint "github.com/louisbranch/authshell/internal/platform/cmd"
	"github.com/louisbranch/authshell/internal/platform/config"
	"github.com/louisbranch/authshell/internal/services/web"
)

const (
	envProduction         = "production"
	productionBasePath    = "/next-auth"
	generatedHashKeySize  = 32
	generatedBlockKeySize = 32
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr         string        `env:"AUTHSHELL_WEB_HTTP_ADDR" envDefault:"localhost:3000"`
	Env              string        `env:"AUTHSHELL_ENV" envDefault:"development"`
	BasePath         string        `env:"AUTHSHELL_WEB_BASE_PATH"`
	DefaultLocale    string        `env:"AUTHSHELL_WEB_DEFAULT_LOCALE" envDefault:"fa"`
	LocaleDetection  bool          `env:"AUTHSHELL_WEB_LOCALE_DETECTION" envDefault:"true"`
	SimulatedDelay   time.Duration `env:"AUTHSHELL_WEB_SIMULATED_DELAY" envDefault:"1s"`
	CookieHashKey    string        `env:"AUTHSHELL_WEB_COOKIE_HASH_KEY"`
	CookieBlockKey   string        `env:"AUTHSHELL_WEB_COOKIE_BLOCK_KEY"`
	SendCodeInterval time.Duration `env:"AUTHSHELL_WEB_SEND_CODE_INTERVAL" envDefault:"10s"`
	SendCodeBurst    int           `env:"AUTHSHELL_WEB_SEND_CODE_BURST" envDefault:"3"`
	Enamad           string        `env:"AUTHSHELL_WEB_ENAMAD" envDefault:"64790285"`
	TrustProxy       bool          `env:"AUTHSHELL_WEB_TRUST_PROXY" envDefault:"false"`
}

// Production reports whether the shell runs with production defaults.
func (c Config) Production() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), envProduction)
}

// ResolvedBasePath is the configured base path, or the production mount
// point when none was set.
func (c Config) ResolvedBasePath() string {
	if base := strings.TrimSpace(c.BasePath); base != "" {
		return base
	}
	if c.Production() {
		return productionBasePath
	}
	return ""
}

// ParseConfig loads .env, then environment defaults, then flags.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.BasePath, "base-path", cfg.BasePath, "Path prefix the shell is mounted under")
	fs.StringVar(&cfg.DefaultLocale, "default-locale", cfg.DefaultLocale, "Locale used when detection finds no match")
	fs.BoolVar(&cfg.LocaleDetection, "locale-detection", cfg.LocaleDetection, "Pick the root redirect locale from cookie and Accept-Language")
	fs.DurationVar(&cfg.SimulatedDelay, "simulated-delay", cfg.SimulatedDelay, "Artificial latency applied to login submits")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// cookieKey decodes a hex key, or generates one when the value is empty.
func cookieKey(name, value string, size int, logger *slog.Logger) ([]byte, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		key := securecookie.GenerateRandomKey(size)
		if key == nil {
			return nil, fmt.Errorf("generate %s", name)
		}
		logger.Warn("cookie key not configured; flow cookies will not survive a restart", "key", name)
		return key, nil
	}
	key, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return key, nil
}

// ServerConfig maps the command configuration onto the service.
func (c Config) ServerConfig(logger *slog.Logger) (web.Config, error) {
	if logger == nil {
		logger = slog.Default()
	}
	hashKey, err := cookieKey("cookie hash key", c.CookieHashKey, generatedHashKeySize, logger)
	if err != nil {
		return web.Config{}, err
	}
	blockKey, err := cookieKey("cookie block key", c.CookieBlockKey, generatedBlockKeySize, logger)
	if err != nil {
		return web.Config{}, err
	}
	return web.Config{
		HTTPAddr:         c.HTTPAddr,
		BasePath:         c.ResolvedBasePath(),
		DefaultLocale:    c.DefaultLocale,
		LocaleDetection:  c.LocaleDetection,
		SimulatedDelay:   c.SimulatedDelay,
		CookieHashKey:    hashKey,
		CookieBlockKey:   blockKey,
		SendCodeInterval: c.SendCodeInterval,
		SendCodeBurst:    c.SendCodeBurst,
		Enamad:           c.Enamad,
		TrustProxy:       c.TrustProxy,
		ExposeErrors:     !c.Production(),
		Logger:           logger,
	}, nil
}

// Run starts the login shell and blocks until ctx is done.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(context.Context) error {
		serverCfg, err := cfg.ServerConfig(slog.Default())
		if err != nil {
			return fmt.Errorf("web config: %w", err)
		}
		server, err := web.NewServer(ctx, serverCfg)
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		return server.ListenAndServe(ctx)
	})
}
