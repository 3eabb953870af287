// Package admin drives the dashboard CRUD flows: form state machines
// for products and categories that validate input, call the API, and
// broadcast changed events so catalog caches refresh.
package admin

import (
	"context"

	"nagabalm/internal/model"
)

// FormState is the lifecycle position of a CRUD form.
type FormState int

const (
	// StateClosed means no form is showing.
	StateClosed FormState = iota
	// StateCreate means the form is open for a new record.
	StateCreate
	// StateEdit means the form is open with an existing record loaded.
	StateEdit
)

// ProductAPI is the slice of the API client the product form needs.
type ProductAPI interface {
	Product(ctx context.Context, id string) (*model.Product, error)
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, id string, product *model.Product) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// CategoryAPI is the slice of the API client the category form needs.
type CategoryAPI interface {
	CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error)
	UpdateCategory(ctx context.Context, id string, category *model.Category) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// Notifier receives the changed events the forms publish after a
// successful mutation.
type Notifier interface {
	ProductsChanged()
	CategoriesChanged()
}
