package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nagabalm/internal/model"
)

// fakeJWT builds an unsigned but structurally valid JWT with the given
// expiry.
func fakeJWT(exp time.Time) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, _ := json.Marshal(map[string]interface{}{
		"userId": "user-1",
		"exp":    exp.Unix(),
	})
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req["password"] != "secret-pass" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(model.Fail("Invalid email or password"))
			return
		}

		json.NewEncoder(w).Encode(model.OK(model.TokenPair{
			AccessToken:  "access-token",
			RefreshToken: "refresh-token",
		}))
	}))
	defer server.Close()

	t.Run("Successful login stores tokens", func(t *testing.T) {
		store := NewMemoryTokenStore()
		c := New(server.URL, store, zerolog.Nop())

		err := c.Login(context.Background(), "admin@nagabalm.com", "secret-pass")
		require.NoError(t, err)
		assert.Equal(t, "access-token", store.AccessToken())
		assert.Equal(t, "refresh-token", store.RefreshToken())
	})

	t.Run("Rejected login surfaces envelope error", func(t *testing.T) {
		store := NewMemoryTokenStore()
		c := New(server.URL, store, zerolog.Nop())

		err := c.Login(context.Background(), "admin@nagabalm.com", "wrong")
		require.Error(t, err)
		assert.Equal(t, "Invalid email or password", err.Error())
		assert.Empty(t, store.AccessToken())
	})
}

func TestClient_BearerHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			gotAuth = r.Header.Get("Authorization")
		} else {
			assert.Empty(t, r.Header.Get("Authorization"))
		}
		json.NewEncoder(w).Encode(model.OK(model.Product{ID: "prod-1"}))
	}))
	defer server.Close()

	store := NewMemoryTokenStore()
	require.NoError(t, store.SetTokens("access-token", "refresh-token"))
	c := New(server.URL, store, zerolog.Nop())

	_, err := c.Product(context.Background(), "prod-1")
	require.NoError(t, err)

	_, err = c.CreateProduct(context.Background(), &model.Product{ID: "prod-1"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer access-token", gotAuth)
}

func TestClient_Products(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.OKList([]model.Product{
			{ID: "prod-1", Slug: "fire-balm"},
			{ID: "prod-2", Slug: "ice-balm"},
		}, 2))
	}))
	defer server.Close()

	c := New(server.URL, NewMemoryTokenStore(), zerolog.Nop())

	products, err := c.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "fire-balm", products[0].Slug)
}

func TestClient_ErrorFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Non-JSON body forces the status fallback message.
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	c := New(server.URL, NewMemoryTokenStore(), zerolog.Nop())

	_, err := c.Products(context.Background())
	require.Error(t, err)
	assert.Equal(t, "request failed: 502", err.Error())
}

func TestClient_Refresh(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "refresh-token", req["token"])
		json.NewEncoder(w).Encode(model.OK(model.TokenPair{AccessToken: "new-access"}))
	}))
	defer server.Close()

	store := NewMemoryTokenStore()
	require.NoError(t, store.SetTokens("old-access", "refresh-token"))
	c := New(server.URL, store, zerolog.Nop())

	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, "new-access", store.AccessToken())
	assert.Equal(t, "refresh-token", store.RefreshToken())
}

func TestClient_Refresh_NoToken(t *testing.T) {
	c := New("http://unused", NewMemoryTokenStore(), zerolog.Nop())
	err := c.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no refresh token")
}

func TestClient_UploadImages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		files := r.MultipartForm.File["images"]
		require.Len(t, files, 2)
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))

		json.NewEncoder(w).Encode(model.OK(uploadResult{
			URLs: []string{"/uploads/a.png", "/uploads/b.png"},
		}))
	}))
	defer server.Close()

	c := New(server.URL, NewMemoryTokenStore(), zerolog.Nop())

	urls, err := c.UploadImages(context.Background(), []UploadFile{
		{Name: "a.png", Content: strings.NewReader("aaa")},
		{Name: "b.png", Content: strings.NewReader("bbb")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/a.png", "/uploads/b.png"}, urls)
}

func TestFileTokenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")

	store, err := NewFileTokenStore(path)
	require.NoError(t, err)
	assert.Empty(t, store.AccessToken())

	require.NoError(t, store.SetTokens("access", "refresh"))

	// A fresh store over the same file sees the persisted payload.
	reloaded, err := NewFileTokenStore(path)
	require.NoError(t, err)
	assert.Equal(t, "access", reloaded.AccessToken())
	assert.Equal(t, "refresh", reloaded.RefreshToken())

	require.NoError(t, reloaded.Clear())
	assert.Empty(t, reloaded.AccessToken())

	cleared, err := NewFileTokenStore(path)
	require.NoError(t, err)
	assert.Empty(t, cleared.AccessToken())
}

func TestFileTokenStore_UnsuccessfulPayloadIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")

	token := fakeJWT(time.Now().Add(10 * time.Minute))
	payload := fmt.Sprintf(`{"success":false,"data":{"accessToken":%q,"refreshToken":"refresh"}}`, token)
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	store, err := NewFileTokenStore(path)
	require.NoError(t, err)
	assert.Empty(t, store.AccessToken())
	assert.Empty(t, store.RefreshToken())

	// Even with an unexpired token in the file, the session fails closed.
	assert.False(t, NewSession(store).Valid())
}

func TestSession_Valid(t *testing.T) {
	tests := []struct {
		name  string
		token string
		valid bool
	}{
		{
			name:  "Unexpired token",
			token: fakeJWT(time.Now().Add(10 * time.Minute)),
			valid: true,
		},
		{
			name:  "Expired token",
			token: fakeJWT(time.Now().Add(-time.Minute)),
			valid: false,
		},
		{
			name:  "No token",
			token: "",
			valid: false,
		},
		{
			name:  "Malformed token",
			token: "not-a-jwt",
			valid: false,
		},
		{
			name:  "Token without exp claim",
			token: "aGVhZGVy.e30.c2ln",
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryTokenStore()
			if tt.token != "" {
				require.NoError(t, store.SetTokens(tt.token, "refresh"))
			}

			session := NewSession(store)
			assert.Equal(t, tt.valid, session.Valid())
		})
	}
}
