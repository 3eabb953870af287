package admin

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"nagabalm/internal/model"
)

// CategoryFormValues holds the raw category form input.
type CategoryFormValues struct {
	Slug   string
	NameEN string
	NameKM string
}

// CategoryForm is the create/edit form for categories.
type CategoryForm struct {
	api      CategoryAPI
	notifier Notifier
	logger   zerolog.Logger

	state     FormState
	editingID string
	values    CategoryFormValues
	err       string
}

// NewCategoryForm creates a closed category form.
func NewCategoryForm(api CategoryAPI, notifier Notifier, logger zerolog.Logger) *CategoryForm {
	return &CategoryForm{
		api:      api,
		notifier: notifier,
		logger:   logger.With().Str("component", "category-form").Logger(),
	}
}

// State returns the current form state.
func (f *CategoryForm) State() FormState { return f.state }

// Values returns the current form input.
func (f *CategoryForm) Values() CategoryFormValues { return f.values }

// Err returns the message from the last failed submit, or "".
func (f *CategoryForm) Err() string { return f.err }

// Open resets the form for a new category.
func (f *CategoryForm) Open() {
	f.state = StateCreate
	f.editingID = ""
	f.values = CategoryFormValues{}
	f.err = ""
}

// OpenForEdit loads an existing category into the form.
func (f *CategoryForm) OpenForEdit(category *model.Category) {
	f.state = StateEdit
	f.editingID = category.ID
	f.values = CategoryFormValues{
		Slug:   category.Slug,
		NameEN: category.Translations.EN.Name,
		NameKM: category.Translations.KM.Name,
	}
	f.err = ""
}

// SetValues replaces the form input.
func (f *CategoryForm) SetValues(values CategoryFormValues) {
	f.values = values
}

// Cancel closes the form without saving.
func (f *CategoryForm) Cancel() {
	f.state = StateClosed
	f.editingID = ""
	f.values = CategoryFormValues{}
	f.err = ""
}

// Submit validates the input and creates or updates the category.
func (f *CategoryForm) Submit(ctx context.Context) error {
	if f.state == StateClosed {
		return nil
	}

	category, err := f.toCategory()
	if err != nil {
		f.err = err.Error()
		return err
	}

	if f.state == StateEdit {
		_, err = f.api.UpdateCategory(ctx, f.editingID, category)
	} else {
		_, err = f.api.CreateCategory(ctx, category)
	}
	if err != nil {
		f.err = err.Error()
		f.logger.Warn().Err(err).Str("slug", category.Slug).Msg("category submit failed")
		return err
	}

	f.logger.Info().Str("slug", category.Slug).Msg("category saved")
	f.notifier.CategoriesChanged()
	f.Cancel()
	return nil
}

// Delete removes a category after confirmation.
func (f *CategoryForm) Delete(ctx context.Context, id string, confirm func() bool) error {
	if confirm != nil && !confirm() {
		return nil
	}

	if err := f.api.DeleteCategory(ctx, id); err != nil {
		f.logger.Warn().Err(err).Str("id", id).Msg("category delete failed")
		return err
	}

	f.logger.Info().Str("id", id).Msg("category deleted")
	f.notifier.CategoriesChanged()
	return nil
}

func (f *CategoryForm) toCategory() (*model.Category, error) {
	v := f.values

	if strings.TrimSpace(v.Slug) == "" {
		return nil, model.NewDomainError(model.KindValidation, model.ErrCodeMissingField, "slug is required")
	}
	if strings.TrimSpace(v.NameEN) == "" || strings.TrimSpace(v.NameKM) == "" {
		return nil, model.NewDomainError(model.KindValidation, model.ErrCodeMissingTranslation, "name is required in both languages")
	}

	return &model.Category{
		Slug: strings.TrimSpace(v.Slug),
		Translations: model.CategoryTranslations{
			EN: model.CategoryTranslation{Name: strings.TrimSpace(v.NameEN)},
			KM: model.CategoryTranslation{Name: strings.TrimSpace(v.NameKM)},
		},
	}, nil
}
