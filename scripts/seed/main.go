// Seeds the database with an admin user and a starter catalogue.
// Intended for local development:
//
//	go run ./scripts/seed
package main

import (
	"context"
	"fmt"
	"os"

	"nagabalm/internal/config"
	"nagabalm/internal/database"
	"nagabalm/internal/model"
	"nagabalm/internal/repository"
	"nagabalm/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Seed error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Seed completed")
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool, logger)
	categoryRepo := repository.NewCategoryRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)

	authService := service.NewAuthService(userRepo, cfg.Auth, logger)
	categoryService := service.NewCategoryService(categoryRepo, logger)
	productService := service.NewProductService(productRepo, logger)

	adminEmail := getEnv("SEED_ADMIN_EMAIL", "admin@example.com")
	adminPassword := getEnv("SEED_ADMIN_PASSWORD", "securepassword123")

	if _, err := authService.CreateUser(ctx, adminEmail, adminPassword, "Admin", "admin"); err != nil {
		if model.KindOf(err) == model.KindConflict {
			fmt.Printf("admin user %s already exists, skipping\n", adminEmail)
		} else {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
	}

	category, err := categoryService.Create(ctx, &model.Category{
		Slug: "health",
		Translations: model.CategoryTranslations{
			EN: model.CategoryTranslation{Name: "Health"},
			KM: model.CategoryTranslation{Name: "សុខភាព"},
		},
	})
	if err != nil {
		if model.KindOf(err) == model.KindConflict {
			fmt.Println("category health already exists, skipping")
		} else {
			return fmt.Errorf("failed to create category: %w", err)
		}
	}

	categoryID := ""
	if category != nil {
		categoryID = category.ID
	}

	_, err = productService.Create(ctx, &model.Product{
		Slug:       "balm-oil",
		Images:     []string{"https://example.com/image.jpg"},
		Price:      4.99,
		IsTopSell:  true,
		CategoryID: categoryID,
		Translations: model.ProductTranslations{
			EN: model.ProductTranslation{
				Name:        "Balm Oil",
				Description: "A relaxing balm",
			},
			KM: model.ProductTranslation{
				Name:        "ប្រេងបាល់ម៍",
				Description: "ប្រេងសម្រាប់ផ្តល់ការធូរស្បើយ",
			},
		},
	})
	if err != nil {
		if model.KindOf(err) == model.KindConflict {
			fmt.Println("product balm-oil already exists, skipping")
		} else {
			return fmt.Errorf("failed to create product: %w", err)
		}
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
