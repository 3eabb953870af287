package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"nagabalm/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// categoryRepository implements the CategoryRepository interface using PostgreSQL.
type categoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "category").Logger(),
	}
}

const categoryColumns = `id, slug, translations, created_at, updated_at`

func scanCategory(row pgx.Row) (*model.Category, error) {
	var c model.Category
	var translations []byte
	err := row.Scan(&c.ID, &c.Slug, &translations, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(translations, &c.Translations); err != nil {
		return nil, fmt.Errorf("failed to decode category translations: %w", err)
	}
	return &c, nil
}

// List retrieves all categories ordered by slug.
func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		ORDER BY slug
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		if de := Classify(err); de != nil {
			return nil, de
		}
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan category row")
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, *c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating category rows")
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// GetByID retrieves a single category by its ID.
func (r *categoryRepository) GetByID(ctx context.Context, id string) (*model.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE id = $1
	`

	c, err := scanCategory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("category_id", id).Msg("category not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("category_id", id).Msg("failed to query category")
		if de := Classify(err); de != nil {
			return nil, de
		}
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return c, nil
}

// GetBySlug retrieves a single category by its unique slug.
func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE slug = $1
	`

	c, err := scanCategory(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("slug", slug).Msg("failed to query category by slug")
		if de := Classify(err); de != nil {
			return nil, de
		}
		return nil, fmt.Errorf("failed to query category by slug: %w", err)
	}

	return c, nil
}

// Create inserts a new category.
func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	query := `
		INSERT INTO categories (id, slug, translations, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	translations, err := json.Marshal(category.Translations)
	if err != nil {
		return fmt.Errorf("failed to encode category translations: %w", err)
	}

	_, err = r.pool.Exec(ctx, query,
		category.ID, category.Slug, translations,
		category.CreatedAt, category.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("slug", category.Slug).Msg("failed to insert category")
		if de := wrapUnique(err, model.ErrDuplicateSlug); de != nil {
			return de
		}
		return fmt.Errorf("failed to insert category: %w", err)
	}

	return nil
}

// Update replaces the stored category with the given ID.
func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	query := `
		UPDATE categories
		SET slug = $2, translations = $3, updated_at = $4
		WHERE id = $1
	`

	translations, err := json.Marshal(category.Translations)
	if err != nil {
		return fmt.Errorf("failed to encode category translations: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query,
		category.ID, category.Slug, translations, category.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("category_id", category.ID).Msg("failed to update category")
		if de := wrapUnique(err, model.ErrDuplicateSlug); de != nil {
			return de
		}
		return fmt.Errorf("failed to update category: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}

	return nil
}

// Delete removes the category with the given ID.
func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("category_id", id).Msg("failed to delete category")
		if de := Classify(err); de != nil {
			return de
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}

	return nil
}
