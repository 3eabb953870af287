package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nagabalm/internal/model"
	"nagabalm/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves all products.
func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if products == nil {
		products = []model.Product{}
	}

	s.logger.Debug().Int("count", len(products)).Msg("retrieved products")
	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	// A malformed id can never match a row; reject it before it reaches
	// the uuid-typed column, where it would fail as a database error.
	if uuid.Validate(id) != nil {
		s.logger.Debug().Str("product_id", id).Msg("malformed product ID")
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Create validates and persists a new product.
func (s *productService) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	product.Slug = strings.TrimSpace(product.Slug)

	if err := product.Validate(); err != nil {
		s.logger.Debug().Err(err).Str("slug", product.Slug).Msg("product validation failed")
		return nil, err
	}

	existing, err := s.productRepo.GetBySlug(ctx, product.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check product slug: %w", err)
	}
	if existing != nil {
		return nil, model.ErrDuplicateSlug
	}

	now := time.Now().UTC()
	product.ID = uuid.NewString()
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("slug", product.Slug).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Str("product_id", product.ID).Str("slug", product.Slug).Msg("product created")
	return product, nil
}

// Update validates and persists changes to an existing product.
func (s *productService) Update(ctx context.Context, id string, product *model.Product) (*model.Product, error) {
	if uuid.Validate(id) != nil {
		return nil, model.ErrProductNotFound
	}

	product.Slug = strings.TrimSpace(product.Slug)

	if err := product.Validate(); err != nil {
		s.logger.Debug().Err(err).Str("product_id", id).Msg("product validation failed")
		return nil, err
	}

	current, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if current == nil {
		return nil, model.ErrProductNotFound
	}

	// Slug may change, but never into one held by another product.
	if product.Slug != current.Slug {
		existing, err := s.productRepo.GetBySlug(ctx, product.Slug)
		if err != nil {
			return nil, fmt.Errorf("failed to check product slug: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, model.ErrDuplicateSlug
		}
	}

	product.ID = id
	product.CreatedAt = current.CreatedAt
	product.UpdatedAt = time.Now().UTC()

	if err := s.productRepo.Update(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return nil, err
	}

	s.logger.Info().Str("product_id", id).Msg("product updated")
	return product, nil
}

// Delete removes a product by ID.
func (s *productService) Delete(ctx context.Context, id string) error {
	if uuid.Validate(id) != nil {
		return model.ErrProductNotFound
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return err
	}

	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}
