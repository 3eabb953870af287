package catalog

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"nagabalm/internal/events"
	"nagabalm/internal/model"
)

// Store caches the product and category lists between reads. Each
// cache slot carries a generation counter: invalidation bumps it, and a
// fetch that started under an older generation is discarded when it
// resolves, so a slow response can never clobber fresher data.
type Store struct {
	mu sync.Mutex

	products       []model.Product
	productsLoaded bool
	productsGen    uint64

	categories       []model.Category
	categoriesLoaded bool
	categoriesGen    uint64

	fetchProducts   ProductFetcher
	fetchCategories CategoryFetcher
	logger          zerolog.Logger
}

// NewStore creates a catalog store over the given fetchers.
func NewStore(fetchProducts ProductFetcher, fetchCategories CategoryFetcher, logger zerolog.Logger) *Store {
	return &Store{
		fetchProducts:   fetchProducts,
		fetchCategories: fetchCategories,
		logger:          logger.With().Str("component", "catalog-store").Logger(),
	}
}

// Products returns the cached product list, fetching it first when the
// cache is cold or was invalidated.
func (s *Store) Products(ctx context.Context) ([]model.Product, error) {
	for {
		s.mu.Lock()
		if s.productsLoaded {
			products := s.products
			s.mu.Unlock()
			return products, nil
		}
		gen := s.productsGen
		s.mu.Unlock()

		products, err := s.fetchProducts(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		if s.productsGen != gen {
			// Invalidated while the fetch was in flight; try again.
			s.mu.Unlock()
			s.logger.Debug().Msg("discarding stale product fetch")
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			continue
		}
		s.products = products
		s.productsLoaded = true
		s.mu.Unlock()
		return products, nil
	}
}

// Categories returns the cached category list, fetching it first when
// the cache is cold or was invalidated.
func (s *Store) Categories(ctx context.Context) ([]model.Category, error) {
	for {
		s.mu.Lock()
		if s.categoriesLoaded {
			categories := s.categories
			s.mu.Unlock()
			return categories, nil
		}
		gen := s.categoriesGen
		s.mu.Unlock()

		categories, err := s.fetchCategories(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		if s.categoriesGen != gen {
			s.mu.Unlock()
			s.logger.Debug().Msg("discarding stale category fetch")
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			continue
		}
		s.categories = categories
		s.categoriesLoaded = true
		s.mu.Unlock()
		return categories, nil
	}
}

// InvalidateProducts drops the cached product list. The next read
// fetches fresh data.
func (s *Store) InvalidateProducts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.productsLoaded = false
	s.productsGen++
}

// InvalidateCategories drops the cached category list.
func (s *Store) InvalidateCategories() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categoriesLoaded = false
	s.categoriesGen++
}

// Filtered returns the products matching the category and search
// filters, fetching the list first if needed.
func (s *Store) Filtered(ctx context.Context, categoryID, search string) ([]model.Product, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}
	return FilterProducts(products, categoryID, search), nil
}

// BindBus subscribes the store to the changed events so admin
// mutations invalidate the caches. Returns an unsubscribe function.
func (s *Store) BindBus(bus *events.Bus) func() {
	return bus.Subscribe(func(e events.Event) {
		switch e.Type {
		case events.ProductsChanged:
			s.logger.Debug().Msg("products changed, invalidating cache")
			s.InvalidateProducts()
		case events.CategoriesChanged:
			s.logger.Debug().Msg("categories changed, invalidating cache")
			s.InvalidateCategories()
		}
	})
}
