package model

import (
	"strings"
	"time"
)

// CategoryTranslation holds the localised display name of a category.
type CategoryTranslation struct {
	Name string `json:"name"`
}

// CategoryTranslations carries one required entry per supported locale.
type CategoryTranslations struct {
	EN CategoryTranslation `json:"en"`
	KM CategoryTranslation `json:"km"`
}

// ForLocale returns the translation for the given locale, defaulting to English.
func (t CategoryTranslations) ForLocale(locale Locale) CategoryTranslation {
	if locale == LocaleKM {
		return t.KM
	}
	return t.EN
}

// Category groups products for filtering on the storefront.
type Category struct {
	ID           string               `json:"id" db:"id"`
	Slug         string               `json:"slug" db:"slug"`
	Translations CategoryTranslations `json:"translations" db:"translations"`
	CreatedAt    time.Time            `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time            `json:"updatedAt" db:"updated_at"`
}

// Validate checks slug presence and completeness of both locale names.
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Slug) == "" {
		return NewDomainError(KindValidation, ErrCodeMissingField, "Slug is required")
	}
	if strings.TrimSpace(c.Translations.EN.Name) == "" {
		return NewDomainError(KindValidation, ErrCodeMissingTranslation,
			"Translation name is required for locale en")
	}
	if strings.TrimSpace(c.Translations.KM.Name) == "" {
		return NewDomainError(KindValidation, ErrCodeMissingTranslation,
			"Translation name is required for locale km")
	}
	return nil
}
