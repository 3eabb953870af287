package model

import (
	"strings"
	"time"
)

// Locale identifies one of the supported content languages.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleKM Locale = "km"
)

// ProductTranslation holds the localised fields of a product for one locale.
type ProductTranslation struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Size             string   `json:"size,omitempty"`
	ActiveIngredient string   `json:"activeIngredient,omitempty"`
	Usage            []string `json:"usage,omitempty"`
	BestForTags      []string `json:"bestForTags,omitempty"`
}

// ProductTranslations carries one required entry per supported locale.
// A product without both locales is invalid and must not be persisted.
type ProductTranslations struct {
	EN ProductTranslation `json:"en"`
	KM ProductTranslation `json:"km"`
}

// ForLocale returns the translation for the given locale, defaulting to English.
func (t ProductTranslations) ForLocale(locale Locale) ProductTranslation {
	if locale == LocaleKM {
		return t.KM
	}
	return t.EN
}

// Product represents a catalogue item with bilingual content.
type Product struct {
	ID           string              `json:"id" db:"id"`
	Slug         string              `json:"slug" db:"slug"`
	Images       []string            `json:"images" db:"images"`
	Price        float64             `json:"price" db:"price"`
	IsTopSell    bool                `json:"isTopSell" db:"is_top_sell"`
	CategoryID   string              `json:"categoryId" db:"category_id"`
	Translations ProductTranslations `json:"translations" db:"translations"`
	CreatedAt    time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time           `json:"updatedAt" db:"updated_at"`
}

// Validate checks the invariants a product must satisfy before persistence:
// non-empty slug, at least one image, a non-negative price, and a complete
// translation (name and description) for every supported locale.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Slug) == "" {
		return NewDomainError(KindValidation, ErrCodeMissingField, "Slug is required")
	}
	if len(p.Images) == 0 {
		return NewDomainError(KindValidation, ErrCodeMissingField, "At least one image is required")
	}
	if p.Price < 0 {
		return NewDomainError(KindValidation, ErrCodeInvalidPrice, "Price must be non-negative")
	}
	if err := validateProductTranslation(p.Translations.EN, LocaleEN); err != nil {
		return err
	}
	if err := validateProductTranslation(p.Translations.KM, LocaleKM); err != nil {
		return err
	}
	return nil
}

func validateProductTranslation(tr ProductTranslation, locale Locale) error {
	if strings.TrimSpace(tr.Name) == "" {
		return NewDomainError(KindValidation, ErrCodeMissingTranslation,
			"Translation name is required for locale "+string(locale))
	}
	if strings.TrimSpace(tr.Description) == "" {
		return NewDomainError(KindValidation, ErrCodeMissingTranslation,
			"Translation description is required for locale "+string(locale))
	}
	return nil
}
