package repository

import (
	"context"

	"nagabalm/internal/model"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves all products ordered by creation time, newest first.
	List(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	// Returns (nil, nil) when no product exists with that ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetBySlug retrieves a single product by its unique slug.
	// Returns (nil, nil) when no product exists with that slug.
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, product *model.Product) error

	// Update replaces the stored product with the given ID.
	// Returns model.ErrProductNotFound when the ID does not exist.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes the product with the given ID.
	// Returns model.ErrProductNotFound when the ID does not exist.
	Delete(ctx context.Context, id string) error
}

// CategoryRepository defines the interface for category data access operations.
type CategoryRepository interface {
	// List retrieves all categories ordered by slug.
	List(ctx context.Context) ([]model.Category, error)

	// GetByID retrieves a single category by its ID.
	// Returns (nil, nil) when no category exists with that ID.
	GetByID(ctx context.Context, id string) (*model.Category, error)

	// GetBySlug retrieves a single category by its unique slug.
	// Returns (nil, nil) when no category exists with that slug.
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)

	// Create inserts a new category.
	Create(ctx context.Context, category *model.Category) error

	// Update replaces the stored category with the given ID.
	// Returns model.ErrCategoryNotFound when the ID does not exist.
	Update(ctx context.Context, category *model.Category) error

	// Delete removes the category with the given ID.
	// Returns model.ErrCategoryNotFound when the ID does not exist.
	Delete(ctx context.Context, id string) error
}

// UserRepository defines the interface for admin user data access operations.
type UserRepository interface {
	// GetByEmail retrieves a user by email.
	// Returns (nil, nil) when no user exists with that email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetByID retrieves a user by ID.
	// Returns (nil, nil) when no user exists with that ID.
	GetByID(ctx context.Context, id string) (*model.User, error)

	// Create inserts a new user.
	Create(ctx context.Context, user *model.User) error

	// UpdateRefreshToken stores the user's current refresh token.
	UpdateRefreshToken(ctx context.Context, id, refreshToken string) error
}
