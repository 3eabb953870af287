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

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = `id, slug, images, price, is_top_sell, category_id, translations, created_at, updated_at`

// scanProduct reads one product row, decoding the jsonb translations column.
func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	var translations []byte
	err := row.Scan(&p.ID, &p.Slug, &p.Images, &p.Price, &p.IsTopSell,
		&p.CategoryID, &translations, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(translations, &p.Translations); err != nil {
		return nil, fmt.Errorf("failed to decode product translations: %w", err)
	}
	return &p, nil
}

// List retrieves all products ordered by creation time, newest first.
func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		if de := Classify(err); de != nil {
			return nil, de
		}
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		if de := Classify(err); de != nil {
			return nil, de
		}
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return p, nil
}

// GetBySlug retrieves a single product by its unique slug.
func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE slug = $1
	`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("slug", slug).Msg("failed to query product by slug")
		if de := Classify(err); de != nil {
			return nil, de
		}
		return nil, fmt.Errorf("failed to query product by slug: %w", err)
	}

	return p, nil
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (id, slug, images, price, is_top_sell, category_id, translations, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	translations, err := json.Marshal(product.Translations)
	if err != nil {
		return fmt.Errorf("failed to encode product translations: %w", err)
	}

	_, err = r.pool.Exec(ctx, query,
		product.ID, product.Slug, product.Images, product.Price,
		product.IsTopSell, product.CategoryID, translations,
		product.CreatedAt, product.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("slug", product.Slug).Msg("failed to insert product")
		if de := wrapUnique(err, model.ErrDuplicateSlug); de != nil {
			return de
		}
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

// Update replaces the stored product with the given ID.
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	query := `
		UPDATE products
		SET slug = $2, images = $3, price = $4, is_top_sell = $5,
		    category_id = $6, translations = $7, updated_at = $8
		WHERE id = $1
	`

	translations, err := json.Marshal(product.Translations)
	if err != nil {
		return fmt.Errorf("failed to encode product translations: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query,
		product.ID, product.Slug, product.Images, product.Price,
		product.IsTopSell, product.CategoryID, translations, product.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to update product")
		if de := wrapUnique(err, model.ErrDuplicateSlug); de != nil {
			return de
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// Delete removes the product with the given ID.
func (r *productRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		if de := Classify(err); de != nil {
			return de
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Str("product_id", id).Msg("product not found for delete")
		return model.ErrProductNotFound
	}

	return nil
}
