// Package catalog is the read side of the storefront: a small cache
// over the API product and category lists, invalidated by changed
// events, plus the pure filtering and display mapping the product
// pages use.
package catalog

import (
	"context"
	"strings"

	"nagabalm/internal/model"
)

// CategoryAll matches every category when passed as a filter.
const CategoryAll = "all"

// placeholderImage is shown for products without images.
const placeholderImage = "/placeholder-logo.png"

// topSellLabels holds the badge text per locale.
var topSellLabels = map[model.Locale]string{
	model.LocaleEN: "TOP",
	model.LocaleKM: "លក់ដាច់",
}

// FilterProducts narrows the list to the given category and search
// term. An empty or "all" category matches everything; the search term
// is matched case-insensitively against the slug and both locales'
// names. Order is preserved and the input is never mutated.
func FilterProducts(products []model.Product, categoryID, search string) []model.Product {
	filtered := make([]model.Product, 0, len(products))

	term := strings.ToLower(strings.TrimSpace(search))
	for _, p := range products {
		if categoryID != "" && categoryID != CategoryAll && p.CategoryID != categoryID {
			continue
		}
		if term != "" && !matchesSearch(p, term) {
			continue
		}
		filtered = append(filtered, p)
	}

	return filtered
}

func matchesSearch(p model.Product, term string) bool {
	return strings.Contains(strings.ToLower(p.Slug), term) ||
		strings.Contains(strings.ToLower(p.Translations.EN.Name), term) ||
		strings.Contains(strings.ToLower(p.Translations.KM.Name), term)
}

// DisplayProduct is the view model a product card renders.
type DisplayProduct struct {
	ID          string
	Slug        string
	Name        string
	Description string
	Image       string
	Weight      string
	Price       float64
	Label       string
}

// ToDisplay maps a product to its card view for the given locale. A
// missing translated name falls back to the slug so the card is never
// blank.
func ToDisplay(p model.Product, locale model.Locale) DisplayProduct {
	tr := p.Translations.ForLocale(locale)

	name := tr.Name
	if name == "" {
		name = p.Slug
	}

	image := placeholderImage
	if len(p.Images) > 0 {
		image = p.Images[0]
	}

	label := ""
	if p.IsTopSell {
		label = topSellLabels[model.LocaleEN]
		if l, ok := topSellLabels[locale]; ok {
			label = l
		}
	}

	return DisplayProduct{
		ID:          p.ID,
		Slug:        p.Slug,
		Name:        name,
		Description: tr.Description,
		Image:       image,
		Weight:      tr.Size,
		Price:       p.Price,
		Label:       label,
	}
}

// ToDisplayList maps a product list for the given locale, preserving
// order.
func ToDisplayList(products []model.Product, locale model.Locale) []DisplayProduct {
	out := make([]DisplayProduct, 0, len(products))
	for _, p := range products {
		out = append(out, ToDisplay(p, locale))
	}
	return out
}

// ProductFetcher loads the product list from the API.
type ProductFetcher func(ctx context.Context) ([]model.Product, error)

// CategoryFetcher loads the category list from the API.
type CategoryFetcher func(ctx context.Context) ([]model.Category, error)
