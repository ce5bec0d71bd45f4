// Package flow holds the login form state carried between requests.
//
// Only the chosen method, the identifier and the current step survive a
// request. Typed codes and messages are never stored.
package flow

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Method is the identifier kind the visitor picked.
type Method string

const (
	MethodEmail Method = "email"
	MethodPhone Method = "phone"
)

// Step is the position inside the sign-in flow.
type Step string

const (
	StepIdentify Step = "identify"
	StepVerify   Step = "verify"
)

// CodeLength is the number of digits in a verification code.
const CodeLength = 6

// MaxIdentifierLength bounds an email or phone identifier, in characters.
const MaxIdentifierLength = 254

var (
	// ErrIdentifierRequired means the identify step got a blank identifier.
	ErrIdentifierRequired = errors.New("identifier is required")
	// ErrIdentifierTooLong means the identifier exceeds MaxIdentifierLength.
	ErrIdentifierTooLong = errors.New("identifier is too long")
	// ErrInvalidCode means the verify step did not get exactly six digits.
	ErrInvalidCode = errors.New("verification code must be six digits")
	// ErrLockedMethod means the method changed after a code was sent.
	ErrLockedMethod = errors.New("method cannot change while verifying")
	// ErrUnknownMethod means the method is neither email nor phone.
	ErrUnknownMethod = errors.New("unknown login method")
)

// State is the persisted part of the login form.
type State struct {
	Method     Method `json:"m" validate:"oneof=email phone"`
	Identifier string `json:"i" validate:"max=254"`
	Step       Step   `json:"s" validate:"oneof=identify verify"`
}

type identifyInput struct {
	Identifier string `validate:"required,max=254"`
}

type verifyInput struct {
	Code string `validate:"len=6,numeric"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Initial is the state of a fresh visit: email, identify step.
func Initial() State {
	return State{Method: MethodEmail, Step: StepIdentify}
}

// Valid reports whether s could have been produced by this package.
func (s State) Valid() bool {
	return validate.Struct(s) == nil
}

// Verifying reports whether a code has been "sent".
func (s State) Verifying() bool {
	return s.Step == StepVerify
}

// WithMethod switches the identifier kind and clears the identifier.
func (s State) WithMethod(raw string) (State, error) {
	if s.Verifying() {
		return s, ErrLockedMethod
	}
	method := Method(strings.TrimSpace(raw))
	if method != MethodEmail && method != MethodPhone {
		return s, ErrUnknownMethod
	}
	s.Method = method
	s.Identifier = ""
	return s, nil
}

// Identify checks the submitted identifier and advances to the verify step.
// Phone identifiers are reduced to digits first.
func (s State) Identify(raw string) (State, error) {
	identifier := strings.TrimSpace(raw)
	if s.Method == MethodPhone {
		identifier = Digits(identifier)
	}
	if err := validate.Struct(identifyInput{Identifier: identifier}); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 && fieldErrs[0].Tag() == "max" {
			return s, ErrIdentifierTooLong
		}
		s.Identifier = identifier
		return s, ErrIdentifierRequired
	}
	s.Identifier = identifier
	s.Step = StepVerify
	return s, nil
}

// Verify checks a submitted code. It returns the sanitized code so the form
// can echo it back on failure.
func (s State) Verify(raw string) (string, error) {
	code := SanitizeCode(raw)
	if err := validate.Struct(verifyInput{Code: code}); err != nil {
		return code, ErrInvalidCode
	}
	return code, nil
}

// Reset goes back to the identify step, keeping method and identifier.
func (s State) Reset() State {
	s.Step = StepIdentify
	return s
}

// Digits keeps decimal digits, mapping Persian and Arabic-Indic digits to
// ASCII.
func Digits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= '۰' && r <= '۹':
			b.WriteRune('0' + (r - '۰'))
		case r >= '٠' && r <= '٩':
			b.WriteRune('0' + (r - '٠'))
		}
	}
	return b.String()
}

// SanitizeCode keeps at most CodeLength digits.
func SanitizeCode(raw string) string {
	digits := Digits(raw)
	if len(digits) > CodeLength {
		digits = digits[:CodeLength]
	}
	return digits
}
