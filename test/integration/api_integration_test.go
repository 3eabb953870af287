package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nagabalm/internal/config"
	"nagabalm/internal/handler"
	"nagabalm/internal/model"
	"nagabalm/internal/repository"
	"nagabalm/internal/router"
	"nagabalm/internal/service"
	"nagabalm/internal/storage"
)

const testJWTSecret = "integration-test-jwt-secret"

func setupTestServer(t *testing.T, testDB *TestDB) http.Handler {
	t.Helper()

	logger := zerolog.Nop()

	// Initialize repositories
	productRepo := repository.NewProductRepository(testDB.Pool, logger)
	categoryRepo := repository.NewCategoryRepository(testDB.Pool, logger)
	userRepo := repository.NewUserRepository(testDB.Pool, logger)

	// Initialize services
	authCfg := config.AuthConfig{
		JWTSecret:      testJWTSecret,
		RefreshSecret:  "integration-test-refresh-secret",
		AccessTokenTTL: 15 * time.Minute,
		RefreshTTL:     24 * time.Hour,
	}
	productService := service.NewProductService(productRepo, logger)
	categoryService := service.NewCategoryService(categoryRepo, logger)
	authService := service.NewAuthService(userRepo, authCfg, logger)

	// Image storage on a temp dir
	imageStore, err := storage.NewLocalStorage(t.TempDir(), "/uploads", logger)
	require.NoError(t, err)

	// Initialize handlers
	productHandler := handler.NewProductHandler(productService, logger)
	categoryHandler := handler.NewCategoryHandler(categoryService, logger)
	authHandler := handler.NewAuthHandler(authService, logger)
	uploadHandler := handler.NewUploadHandler(imageStore, 1<<20, logger)
	contentHandler := handler.NewContentHandler(logger)

	// Create router
	return router.New(
		productHandler,
		categoryHandler,
		authHandler,
		uploadHandler,
		contentHandler,
		testJWTSecret,
		logger,
	)
}

// loginToken creates an admin user and logs in, returning the access
// token for authenticated requests.
func loginToken(t *testing.T, testDB *TestDB, server http.Handler) string {
	t.Helper()

	authService := service.NewAuthService(
		repository.NewUserRepository(testDB.Pool, zerolog.Nop()),
		config.AuthConfig{
			JWTSecret:      testJWTSecret,
			RefreshSecret:  "integration-test-refresh-secret",
			AccessTokenTTL: 15 * time.Minute,
			RefreshTTL:     24 * time.Hour,
		},
		zerolog.Nop(),
	)
	_, err := authService.CreateUser(context.Background(), "admin@nagabalm.com", "securepassword123", "Admin", "admin")
	require.NoError(t, err)

	body := `{"email": "admin@nagabalm.com", "password": "securepassword123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Success bool            `json:"success"`
		Data    model.TokenPair `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.True(t, env.Success)
	require.NotEmpty(t, env.Data.AccessToken)
	return env.Data.AccessToken
}

func TestProductAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)
	token := loginToken(t, testDB, server)

	t.Run("Create then fetch round-trips", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		payload := map[string]interface{}{
			"slug":       "balm-oil",
			"images":     []string{"/uploads/balm-oil.png"},
			"price":      4.99,
			"isTopSell":  true,
			"categoryId": "cat-1",
			"translations": map[string]interface{}{
				"en": map[string]string{"name": "Balm Oil", "description": "A relaxing balm"},
				"km": map[string]string{"name": "ប្រេងបាល់ម៍", "description": "ប្រេងសម្រាប់ផ្តល់ការធូរស្បើយ"},
			},
		}
		body, err := json.Marshal(payload)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var createEnv struct {
			Success bool          `json:"success"`
			Data    model.Product `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &createEnv))
		require.True(t, createEnv.Success)
		created := createEnv.Data
		assert.NotEmpty(t, created.ID)

		// Public fetch without a token
		req = httptest.NewRequest(http.MethodGet, "/api/products/"+created.ID, nil)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var fetchEnv struct {
			Success bool          `json:"success"`
			Data    model.Product `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetchEnv))
		fetched := fetchEnv.Data

		assert.Equal(t, created.ID, fetched.ID)
		assert.Equal(t, "balm-oil", fetched.Slug)
		assert.Equal(t, 4.99, fetched.Price)
		assert.True(t, fetched.IsTopSell)
		assert.Equal(t, "Balm Oil", fetched.Translations.EN.Name)
		assert.Equal(t, "ប្រេងបាល់ម៍", fetched.Translations.KM.Name)
	})

	t.Run("List reports count", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var env struct {
			Success bool            `json:"success"`
			Data    []model.Product `json:"data"`
			Count   int             `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.True(t, env.Success)
		assert.Equal(t, 2, env.Count)
		assert.Len(t, env.Data, 2)
	})

	t.Run("Unknown product is a 404 envelope", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products/00000000-0000-0000-0000-000000000000", nil)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)

		var env model.Envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.False(t, env.Success)
		assert.Equal(t, "Product not found", env.Error)
	})

	t.Run("Malformed product id is a 404 envelope", func(t *testing.T) {
		// Not a valid uuid: must 404 rather than surface a database error.
		req := httptest.NewRequest(http.MethodGet, "/api/products/not-a-uuid", nil)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)

		var env model.Envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.False(t, env.Success)
		assert.Equal(t, "Product not found", env.Error)
	})

	t.Run("Mutation without token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Duplicate slug conflicts", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB.Pool)

		payload := map[string]interface{}{
			"slug":   "balm-oil",
			"images": []string{"/uploads/balm-oil.png"},
			"price":  4.99,
			"translations": map[string]interface{}{
				"en": map[string]string{"name": "Balm Oil", "description": "A relaxing balm"},
				"km": map[string]string{"name": "ប្រេងបាល់ម៍", "description": "ការធូរស្បើយ"},
			},
		}
		body, err := json.Marshal(payload)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Delete removes and subsequent fetch is 404", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		_, productIDs := SeedCatalog(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodDelete, "/api/products/"+productIDs[0], nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		req = httptest.NewRequest(http.MethodGet, "/api/products/"+productIDs[0], nil)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCategoryAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)
	token := loginToken(t, testDB, server)

	t.Run("Create then list", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		payload := map[string]interface{}{
			"slug": "health",
			"translations": map[string]interface{}{
				"en": map[string]string{"name": "Health"},
				"km": map[string]string{"name": "សុខភាព"},
			},
		}
		body, err := json.Marshal(payload)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/categories", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		req = httptest.NewRequest(http.MethodGet, "/api/categories", nil)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var env struct {
			Success bool             `json:"success"`
			Data    []model.Category `json:"data"`
			Count   int              `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, 1, env.Count)
		require.Len(t, env.Data, 1)
		assert.Equal(t, "health", env.Data[0].Slug)
		assert.Equal(t, "សុខភាព", env.Data[0].Translations.KM.Name)
	})
}

func TestAuthAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	CleanupDB(t, testDB.Pool)
	token := loginToken(t, testDB, server)
	require.NotEmpty(t, token)

	t.Run("Wrong password is rejected", func(t *testing.T) {
		body := `{"email": "admin@nagabalm.com", "password": "not-the-password"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var env model.Envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.False(t, env.Success)
	})

	t.Run("Refresh issues a new access token", func(t *testing.T) {
		body := `{"email": "admin@nagabalm.com", "password": "securepassword123"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var loginEnv struct {
			Data model.TokenPair `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginEnv))
		require.NotEmpty(t, loginEnv.Data.RefreshToken)

		refreshBody, err := json.Marshal(map[string]string{"token": loginEnv.Data.RefreshToken})
		require.NoError(t, err)
		req = httptest.NewRequest(http.MethodPost, "/api/auth/refresh", bytes.NewReader(refreshBody))
		req.Header.Set("Content-Type", "application/json")
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var refreshEnv struct {
			Success bool            `json:"success"`
			Data    model.TokenPair `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &refreshEnv))
		assert.True(t, refreshEnv.Success)
		assert.NotEmpty(t, refreshEnv.Data.AccessToken)
	})
}
