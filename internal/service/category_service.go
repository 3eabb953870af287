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

// categoryService implements CategoryService.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository, logger zerolog.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "category").Logger(),
	}
}

// List retrieves all categories.
func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	if categories == nil {
		categories = []model.Category{}
	}

	return categories, nil
}

// Create validates and persists a new category.
func (s *categoryService) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	category.Slug = strings.TrimSpace(category.Slug)

	if err := category.Validate(); err != nil {
		s.logger.Debug().Err(err).Str("slug", category.Slug).Msg("category validation failed")
		return nil, err
	}

	existing, err := s.categoryRepo.GetBySlug(ctx, category.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check category slug: %w", err)
	}
	if existing != nil {
		return nil, model.ErrDuplicateSlug
	}

	now := time.Now().UTC()
	category.ID = uuid.NewString()
	category.CreatedAt = now
	category.UpdatedAt = now

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		s.logger.Error().Err(err).Str("slug", category.Slug).Msg("failed to create category")
		return nil, err
	}

	s.logger.Info().Str("category_id", category.ID).Str("slug", category.Slug).Msg("category created")
	return category, nil
}

// Update validates and persists changes to an existing category.
func (s *categoryService) Update(ctx context.Context, id string, category *model.Category) (*model.Category, error) {
	// A malformed id can never match a row; reject it before it reaches
	// the uuid-typed column, where it would fail as a database error.
	if uuid.Validate(id) != nil {
		return nil, model.ErrCategoryNotFound
	}

	category.Slug = strings.TrimSpace(category.Slug)

	if err := category.Validate(); err != nil {
		return nil, err
	}

	current, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	if current == nil {
		return nil, model.ErrCategoryNotFound
	}

	if category.Slug != current.Slug {
		existing, err := s.categoryRepo.GetBySlug(ctx, category.Slug)
		if err != nil {
			return nil, fmt.Errorf("failed to check category slug: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, model.ErrDuplicateSlug
		}
	}

	category.ID = id
	category.CreatedAt = current.CreatedAt
	category.UpdatedAt = time.Now().UTC()

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		s.logger.Error().Err(err).Str("category_id", id).Msg("failed to update category")
		return nil, err
	}

	s.logger.Info().Str("category_id", id).Msg("category updated")
	return category, nil
}

// Delete removes a category by ID.
func (s *categoryService) Delete(ctx context.Context, id string) error {
	if uuid.Validate(id) != nil {
		return model.ErrCategoryNotFound
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("category_id", id).Msg("failed to delete category")
		return err
	}

	s.logger.Info().Str("category_id", id).Msg("category deleted")
	return nil
}
