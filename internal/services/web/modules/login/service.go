package login

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/authshell/internal/services/web/flow"
	"github.com/louisbranch/authshell/internal/services/web/platform/ratelimit"
	"github.com/louisbranch/authshell/internal/services/web/platform/simulate"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/authshell/internal/services/web/modules/login"

// Form actions.
const (
	actionMethod   = "method"
	actionContinue = "continue"
	actionGoogle   = "google"
	actionSocial   = "social"
	actionGuest    = "guest"
	actionReset    = "reset"
)

// Catalog keys for messages shown after a submission.
const (
	keyEnterIdentifier = "auth.enter_email_or_phone"
	keyIdentifierLong  = "auth.identifier_too_long"
	keyInvalidCode     = "auth.invalid_code"
	keyTooMany         = "auth.too_many_requests"
	keyLoginWith       = "auth.login_with"
	keyGuestLogin      = "auth.guest_login"
	keyLoginSuccess    = "auth.login_success"
)

var (
	errUnknownAction   = errors.New("unknown login action")
	errUnknownProvider = errors.New("unknown login provider")
)

// googleProvider is the name announced for the dedicated Google button.
const googleProvider = "Google"

// socialProviders lists the grid buttons in display order.
var socialProviders = []provider{
	{name: "Microsoft", icon: "🪟", class: "microsoft"},
	{name: "Facebook", icon: "👤", class: "facebook"},
	{name: "Github", icon: "⚫", class: "github"},
	{name: "Gitlab", icon: "🦊", class: "gitlab"},
	{name: "Discord", icon: "🎮", class: "discord"},
}

type provider struct {
	name  string
	icon  string
	class string
}

func lookupProvider(name string) (provider, bool) {
	name = strings.TrimSpace(name)
	for _, p := range socialProviders {
		if p.name == name {
			return p, true
		}
	}
	return provider{}, false
}

// submission is one POSTed form.
type submission struct {
	Action     string
	Method     string
	Identifier string
	Code       string
	Provider   string
	// ClientKey identifies the caller for send-code throttling.
	ClientKey string
}

// outcome is what the page renders after a submission.
type outcome struct {
	State      flow.State
	Code       string
	ErrorKey   string
	NoticeKey  string
	NoticeArgs []any
	Status     int
	RetryAfter time.Duration
	// Finished means the flow cookie should be dropped.
	Finished bool
}

type service struct {
	delay   time.Duration
	limiter *ratelimit.Limiter
	tracer  trace.Tracer
	logger  *slog.Logger
}

func newService(delay time.Duration, limiter *ratelimit.Limiter, logger *slog.Logger) service {
	if logger == nil {
		logger = slog.Default()
	}
	return service{
		delay:   delay,
		limiter: limiter,
		tracer:  otel.Tracer(tracerName),
		logger:  logger,
	}
}

// submit applies one form action to state. Validation failures come back
// as an outcome with an error key; the returned error is reserved for
// malformed requests and cancellation.
func (s service) submit(ctx context.Context, state flow.State, sub submission) (out outcome, err error) {
	ctx, span := s.tracer.Start(ctx, "login.submit", trace.WithAttributes(
		attribute.String("login.action", sub.Action),
		attribute.String("login.step", string(state.Step)),
		attribute.String("login.method", string(state.Method)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else if out.ErrorKey != "" {
			span.SetAttributes(attribute.String("login.error", out.ErrorKey))
		}
		span.End()
	}()

	out = outcome{State: state, Status: http.StatusOK}
	switch strings.TrimSpace(sub.Action) {
	case actionMethod:
		next, err := state.WithMethod(sub.Method)
		switch {
		case errors.Is(err, flow.ErrLockedMethod):
			return out, nil
		case err != nil:
			return out, err
		}
		out.State = next
		return out, nil
	case actionContinue:
		if state.Verifying() {
			return s.verify(ctx, state, sub)
		}
		return s.identify(ctx, state, sub)
	case actionGoogle:
		out.NoticeKey = keyLoginWith
		out.NoticeArgs = []any{googleProvider}
		return out, nil
	case actionSocial:
		p, ok := lookupProvider(sub.Provider)
		if !ok {
			return out, fmt.Errorf("%w: %q", errUnknownProvider, sub.Provider)
		}
		out.NoticeKey = keyLoginWith
		out.NoticeArgs = []any{p.name}
		return out, nil
	case actionGuest:
		out.NoticeKey = keyGuestLogin
		return out, nil
	case actionReset:
		out.State = state.Reset()
		return out, nil
	default:
		return out, fmt.Errorf("%w: %q", errUnknownAction, sub.Action)
	}
}

func (s service) identify(ctx context.Context, state flow.State, sub submission) (outcome, error) {
	next, err := state.Identify(sub.Identifier)
	out := outcome{State: next, Status: http.StatusOK}
	switch {
	case errors.Is(err, flow.ErrIdentifierRequired):
		out.ErrorKey = keyEnterIdentifier
		out.Status = http.StatusUnprocessableEntity
		return out, nil
	case errors.Is(err, flow.ErrIdentifierTooLong):
		out.ErrorKey = keyIdentifierLong
		out.Status = http.StatusUnprocessableEntity
		return out, nil
	}
	if err != nil {
		return out, err
	}
	if allowed, wait := s.limiter.Allow(sub.ClientKey); !allowed {
		out.State = next.Reset()
		out.ErrorKey = keyTooMany
		out.Status = http.StatusTooManyRequests
		out.RetryAfter = wait
		s.logger.Warn("send code throttled", "client", sub.ClientKey, "retry_after", wait)
		return out, nil
	}
	if err := simulate.Delay(ctx, s.delay); err != nil {
		return outcome{State: state, Status: http.StatusOK}, fmt.Errorf("send code: %w", err)
	}
	return out, nil
}

func (s service) verify(ctx context.Context, state flow.State, sub submission) (outcome, error) {
	code, err := state.Verify(sub.Code)
	out := outcome{State: state, Code: code, Status: http.StatusOK}
	if errors.Is(err, flow.ErrInvalidCode) {
		out.ErrorKey = keyInvalidCode
		out.Status = http.StatusUnprocessableEntity
		return out, nil
	}
	if err != nil {
		return out, err
	}
	if err := simulate.Delay(ctx, s.delay); err != nil {
		return out, fmt.Errorf("verify code: %w", err)
	}
	return outcome{
		State:     flow.Initial(),
		NoticeKey: keyLoginSuccess,
		Status:    http.StatusOK,
		Finished:  true,
	}, nil
}
