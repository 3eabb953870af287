// Package client is the typed HTTP client the admin tooling and
// storefront processes use to talk to the API. It attaches the stored
// bearer token to mutating requests and unwraps the response envelope.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"nagabalm/internal/model"
)

// Client calls the storefront API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
	logger  zerolog.Logger
}

// New creates an API client rooted at baseURL.
func New(baseURL string, tokens TokenStore, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
		logger:  logger.With().Str("component", "api-client").Logger(),
	}
}

// envelope mirrors the API response shape with the data left raw so
// each wrapper can decode its own payload type.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Count   *int            `json:"count"`
}

// request performs an API call and returns the decoded envelope. The
// body, when non-nil, is sent as JSON unless contentType says
// otherwise. Non-GET requests carry the stored access token.
func (c *Client) request(ctx context.Context, method, path string, body io.Reader, contentType string) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	if body != nil {
		if contentType == "" {
			contentType = "application/json"
		}
		req.Header.Set("Content-Type", contentType)
	}

	if method != http.MethodGet {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decodeErr == nil && env.Error != "" {
			return nil, fmt.Errorf("%s", env.Error)
		}
		return nil, fmt.Errorf("request failed: %d", resp.StatusCode)
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode response: %w", decodeErr)
	}

	return &env, nil
}

// requestJSON marshals payload and performs the call.
func (c *Client) requestJSON(ctx context.Context, method, path string, payload interface{}) (*envelope, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	return c.request(ctx, method, path, body, "")
}

// Login authenticates and stores the issued token pair.
func (c *Client) Login(ctx context.Context, email, password string) error {
	env, err := c.requestJSON(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}

	var pair model.TokenPair
	if err := json.Unmarshal(env.Data, &pair); err != nil {
		return fmt.Errorf("failed to decode token pair: %w", err)
	}

	if err := c.tokens.SetTokens(pair.AccessToken, pair.RefreshToken); err != nil {
		return err
	}

	c.logger.Info().Str("email", email).Msg("logged in")
	return nil
}

// Refresh exchanges the stored refresh token for a new access token.
func (c *Client) Refresh(ctx context.Context) error {
	refresh := c.tokens.RefreshToken()
	if refresh == "" {
		return fmt.Errorf("no refresh token stored")
	}

	env, err := c.requestJSON(ctx, http.MethodPost, "/api/auth/refresh", map[string]string{
		"token": refresh,
	})
	if err != nil {
		return err
	}

	var pair model.TokenPair
	if err := json.Unmarshal(env.Data, &pair); err != nil {
		return fmt.Errorf("failed to decode token pair: %w", err)
	}

	return c.tokens.SetTokens(pair.AccessToken, refresh)
}

// Logout discards the stored tokens.
func (c *Client) Logout() error {
	return c.tokens.Clear()
}

// Products retrieves the full product list.
func (c *Client) Products(ctx context.Context) ([]model.Product, error) {
	env, err := c.request(ctx, http.MethodGet, "/api/products", nil, "")
	if err != nil {
		return nil, err
	}

	var products []model.Product
	if err := json.Unmarshal(env.Data, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// Product retrieves a single product by ID.
func (c *Client) Product(ctx context.Context, id string) (*model.Product, error) {
	env, err := c.request(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, "")
	if err != nil {
		return nil, err
	}

	var product model.Product
	if err := json.Unmarshal(env.Data, &product); err != nil {
		return nil, fmt.Errorf("failed to decode product: %w", err)
	}
	return &product, nil
}

// CreateProduct creates a new product.
func (c *Client) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	env, err := c.requestJSON(ctx, http.MethodPost, "/api/products", product)
	if err != nil {
		return nil, err
	}

	var created model.Product
	if err := json.Unmarshal(env.Data, &created); err != nil {
		return nil, fmt.Errorf("failed to decode product: %w", err)
	}
	return &created, nil
}

// UpdateProduct updates an existing product.
func (c *Client) UpdateProduct(ctx context.Context, id string, product *model.Product) (*model.Product, error) {
	env, err := c.requestJSON(ctx, http.MethodPut, "/api/products/"+url.PathEscape(id), product)
	if err != nil {
		return nil, err
	}

	var updated model.Product
	if err := json.Unmarshal(env.Data, &updated); err != nil {
		return nil, fmt.Errorf("failed to decode product: %w", err)
	}
	return &updated, nil
}

// DeleteProduct deletes a product by ID.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.request(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), nil, "")
	return err
}

// Categories retrieves the full category list.
func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	env, err := c.request(ctx, http.MethodGet, "/api/categories", nil, "")
	if err != nil {
		return nil, err
	}

	var categories []model.Category
	if err := json.Unmarshal(env.Data, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

// CreateCategory creates a new category.
func (c *Client) CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	env, err := c.requestJSON(ctx, http.MethodPost, "/api/categories", category)
	if err != nil {
		return nil, err
	}

	var created model.Category
	if err := json.Unmarshal(env.Data, &created); err != nil {
		return nil, fmt.Errorf("failed to decode category: %w", err)
	}
	return &created, nil
}

// UpdateCategory updates an existing category.
func (c *Client) UpdateCategory(ctx context.Context, id string, category *model.Category) (*model.Category, error) {
	env, err := c.requestJSON(ctx, http.MethodPut, "/api/categories/"+url.PathEscape(id), category)
	if err != nil {
		return nil, err
	}

	var updated model.Category
	if err := json.Unmarshal(env.Data, &updated); err != nil {
		return nil, fmt.Errorf("failed to decode category: %w", err)
	}
	return &updated, nil
}

// DeleteCategory deletes a category by ID.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	_, err := c.request(ctx, http.MethodDelete, "/api/categories/"+url.PathEscape(id), nil, "")
	return err
}

type uploadResult struct {
	URLs []string `json:"urls"`
}

// UploadImages sends the files as a multipart request and returns their
// public URLs in the order sent.
func (c *Client) UploadImages(ctx context.Context, files []UploadFile) ([]string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, f := range files {
		part, err := writer.CreateFormFile("images", filepath.Base(f.Name))
		if err != nil {
			return nil, fmt.Errorf("failed to build multipart form: %w", err)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart form: %w", err)
	}

	env, err := c.request(ctx, http.MethodPost, "/api/upload", body, writer.FormDataContentType())
	if err != nil {
		return nil, err
	}

	var result uploadResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	return result.URLs, nil
}

// UploadFile is one file in a multipart upload.
type UploadFile struct {
	Name    string
	Content io.Reader
}
