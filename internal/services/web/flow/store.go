package flow

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

// CookieName holds the encoded State.
const CookieName = "authshell_flow"

const cookieMaxAge = 30 * time.Minute

var errInvalidState = errors.New("flow state is invalid")

// Store signs and encrypts State into a cookie.
type Store struct {
	codec *securecookie.SecureCookie
	path  string
}

// NewStore builds a cookie store. hashKey must be 32 or 64 bytes; blockKey
// must be 16, 24 or 32 bytes.
func NewStore(hashKey, blockKey []byte, cookiePath string) (*Store, error) {
	if len(hashKey) != 32 && len(hashKey) != 64 {
		return nil, fmt.Errorf("flow hash key must be 32 or 64 bytes, got %d", len(hashKey))
	}
	switch len(blockKey) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("flow block key must be 16, 24 or 32 bytes, got %d", len(blockKey))
	}
	if cookiePath == "" {
		cookiePath = "/"
	}
	codec := securecookie.New(hashKey, blockKey)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(int(cookieMaxAge.Seconds()))
	return &Store{codec: codec, path: cookiePath}, nil
}

// Load returns the stored state, or Initial when the cookie is missing,
// tampered with, expired, or holds an impossible state.
func (s *Store) Load(r *http.Request) State {
	if s == nil || r == nil {
		return Initial()
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Initial()
	}
	var state State
	if err := s.codec.Decode(CookieName, cookie.Value, &state); err != nil {
		return Initial()
	}
	if !state.Valid() {
		return Initial()
	}
	return state
}

// Save writes state to the response.
func (s *Store) Save(w http.ResponseWriter, state State, secure bool) error {
	if !state.Valid() {
		return errInvalidState
	}
	encoded, err := s.codec.Encode(CookieName, state)
	if err != nil {
		return fmt.Errorf("encode flow cookie: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    encoded,
		Path:     s.path,
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the flow cookie.
func (s *Store) Clear(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     s.path,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
