package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// authPayload is the persisted shape of a login response. It mirrors the
// API envelope so a saved file can be round-tripped from the raw auth
// response.
type authPayload struct {
	Success bool       `json:"success"`
	Data    authTokens `json:"data"`
}

type authTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenStore persists the tokens issued at login so admin sessions
// survive restarts.
type TokenStore interface {
	// SetTokens stores a new token pair, replacing any previous one.
	SetTokens(accessToken, refreshToken string) error

	// AccessToken returns the stored access token, or "" when absent.
	AccessToken() string

	// RefreshToken returns the stored refresh token, or "" when absent.
	RefreshToken() string

	// Clear removes any stored tokens.
	Clear() error
}

// fileTokenStore keeps the auth payload in a JSON file.
type fileTokenStore struct {
	mu      sync.RWMutex
	path    string
	payload authPayload
}

// NewFileTokenStore creates a token store backed by the given file,
// loading any tokens a previous session left behind.
func NewFileTokenStore(path string) (TokenStore, error) {
	s := &fileTokenStore{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	// A corrupt token file means a fresh login, not a hard failure. A
	// payload not marked successful carries no usable tokens either,
	// whatever else it contains.
	if err := json.Unmarshal(data, &s.payload); err != nil || !s.payload.Success {
		s.payload = authPayload{}
	}

	return s, nil
}

func (s *fileTokenStore) SetTokens(accessToken, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.payload = authPayload{
		Success: true,
		Data: authTokens{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}

	data, err := json.Marshal(s.payload)
	if err != nil {
		return fmt.Errorf("failed to encode tokens: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

func (s *fileTokenStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.payload.Data.AccessToken
}

func (s *fileTokenStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.payload.Data.RefreshToken
}

func (s *fileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.payload = authPayload{}

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

// memoryTokenStore keeps tokens in process memory only.
type memoryTokenStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

// NewMemoryTokenStore creates a non-persistent token store, useful for
// tests and one-shot commands.
func NewMemoryTokenStore() TokenStore {
	return &memoryTokenStore{}
}

func (s *memoryTokenStore) SetTokens(accessToken, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = accessToken
	s.refresh = refreshToken
	return nil
}

func (s *memoryTokenStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

func (s *memoryTokenStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

func (s *memoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
	return nil
}
