package client

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

// Session wraps a token store and answers whether the stored access
// token is still usable. It never refreshes on its own: once the access
// token expires the session is invalid until the caller logs in again
// or explicitly refreshes.
type Session struct {
	store TokenStore
	now   func() time.Time
}

// NewSession creates a session over the given token store.
func NewSession(store TokenStore) *Session {
	return &Session{store: store, now: time.Now}
}

// Valid reports whether a non-expired access token is stored. Any
// missing or undecodable token counts as invalid.
func (s *Session) Valid() bool {
	token := s.store.AccessToken()
	if token == "" {
		return false
	}

	exp, ok := tokenExpiry(token)
	if !ok {
		return false
	}

	return s.now().Before(exp)
}

// tokenExpiry extracts the exp claim from a JWT without verifying the
// signature. Verification belongs to the server; the client only needs
// to know whether sending the token is worthwhile.
func tokenExpiry(token string) (time.Time, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return time.Time{}, false
	}

	var claims struct {
		Exp int64 `json:"exp"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil || claims.Exp == 0 {
		return time.Time{}, false
	}

	return time.Unix(claims.Exp, 0), true
}
