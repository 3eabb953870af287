package service

import (
	"context"

	"nagabalm/internal/model"
)

// ProductService defines operations for catalogue product management.
type ProductService interface {
	// List retrieves all products.
	List(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Create validates and persists a new product.
	Create(ctx context.Context, product *model.Product) (*model.Product, error)

	// Update validates and persists changes to an existing product.
	Update(ctx context.Context, id string, product *model.Product) (*model.Product, error)

	// Delete removes a product by ID.
	Delete(ctx context.Context, id string) error
}

// CategoryService defines operations for category management.
type CategoryService interface {
	// List retrieves all categories.
	List(ctx context.Context) ([]model.Category, error)

	// Create validates and persists a new category.
	Create(ctx context.Context, category *model.Category) (*model.Category, error)

	// Update validates and persists changes to an existing category.
	Update(ctx context.Context, id string, category *model.Category) (*model.Category, error)

	// Delete removes a category by ID.
	Delete(ctx context.Context, id string) error
}

// AuthService defines authentication operations for the admin dashboard.
type AuthService interface {
	// Login verifies credentials and issues an access/refresh token pair.
	Login(ctx context.Context, email, password string) (*model.TokenPair, error)

	// Refresh verifies a refresh token and issues a new access token.
	Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error)

	// CreateUser registers a new admin user with a bcrypt-hashed password.
	CreateUser(ctx context.Context, email, password, name, role string) (*model.User, error)
}
