package admin

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"nagabalm/internal/model"
)

// ProductFormValues holds the raw form input. Price arrives as text the
// way a form field delivers it and is parsed on submit.
type ProductFormValues struct {
	Slug          string
	Price         string
	CategoryID    string
	Images        []string
	IsTopSell     bool
	NameEN        string
	DescriptionEN string
	SizeEN        string
	NameKM        string
	DescriptionKM string
	SizeKM        string
}

// ProductForm is the create/edit form for products. Submit only closes
// the form when the API call succeeds; on failure the form stays open
// with the error so the operator can correct and retry.
type ProductForm struct {
	api      ProductAPI
	notifier Notifier
	logger   zerolog.Logger

	state     FormState
	editingID string
	values    ProductFormValues
	err       string
}

// NewProductForm creates a closed product form.
func NewProductForm(api ProductAPI, notifier Notifier, logger zerolog.Logger) *ProductForm {
	return &ProductForm{
		api:      api,
		notifier: notifier,
		logger:   logger.With().Str("component", "product-form").Logger(),
	}
}

// State returns the current form state.
func (f *ProductForm) State() FormState { return f.state }

// EditingID returns the ID of the record being edited, or "" when the
// form is closed or creating.
func (f *ProductForm) EditingID() string { return f.editingID }

// Values returns the current form input.
func (f *ProductForm) Values() ProductFormValues { return f.values }

// Err returns the message from the last failed submit, or "".
func (f *ProductForm) Err() string { return f.err }

// Open resets the form for a new product.
func (f *ProductForm) Open() {
	f.state = StateCreate
	f.editingID = ""
	f.values = ProductFormValues{}
	f.err = ""
}

// OpenForEdit loads an existing product into the form.
func (f *ProductForm) OpenForEdit(ctx context.Context, id string) error {
	product, err := f.api.Product(ctx, id)
	if err != nil {
		return err
	}

	f.state = StateEdit
	f.editingID = id
	f.values = ProductFormValues{
		Slug:          product.Slug,
		Price:         strconv.FormatFloat(product.Price, 'f', -1, 64),
		CategoryID:    product.CategoryID,
		Images:        product.Images,
		IsTopSell:     product.IsTopSell,
		NameEN:        product.Translations.EN.Name,
		DescriptionEN: product.Translations.EN.Description,
		SizeEN:        product.Translations.EN.Size,
		NameKM:        product.Translations.KM.Name,
		DescriptionKM: product.Translations.KM.Description,
		SizeKM:        product.Translations.KM.Size,
	}
	f.err = ""
	return nil
}

// SetValues replaces the form input.
func (f *ProductForm) SetValues(values ProductFormValues) {
	f.values = values
}

// Cancel closes the form without saving.
func (f *ProductForm) Cancel() {
	f.state = StateClosed
	f.editingID = ""
	f.values = ProductFormValues{}
	f.err = ""
}

// Submit validates the input and creates or updates the product. On
// success the form closes and a products changed event is published.
func (f *ProductForm) Submit(ctx context.Context) error {
	if f.state == StateClosed {
		return nil
	}

	product, err := f.toProduct()
	if err != nil {
		f.err = err.Error()
		return err
	}

	if f.state == StateEdit {
		_, err = f.api.UpdateProduct(ctx, f.editingID, product)
	} else {
		_, err = f.api.CreateProduct(ctx, product)
	}
	if err != nil {
		f.err = err.Error()
		f.logger.Warn().Err(err).Str("slug", product.Slug).Msg("product submit failed")
		return err
	}

	f.logger.Info().Str("slug", product.Slug).Msg("product saved")
	f.notifier.ProductsChanged()
	f.Cancel()
	return nil
}

// Delete removes a product after confirmation. The changed event is
// published only when the API call succeeds.
func (f *ProductForm) Delete(ctx context.Context, id string, confirm func() bool) error {
	if confirm != nil && !confirm() {
		return nil
	}

	if err := f.api.DeleteProduct(ctx, id); err != nil {
		f.logger.Warn().Err(err).Str("id", id).Msg("product delete failed")
		return err
	}

	f.logger.Info().Str("id", id).Msg("product deleted")
	f.notifier.ProductsChanged()
	return nil
}

// toProduct validates the raw input and builds the API payload.
func (f *ProductForm) toProduct() (*model.Product, error) {
	v := f.values

	if strings.TrimSpace(v.Slug) == "" {
		return nil, model.NewDomainError(model.KindValidation, model.ErrCodeMissingField, "slug is required")
	}
	if strings.TrimSpace(v.NameEN) == "" || strings.TrimSpace(v.NameKM) == "" {
		return nil, model.NewDomainError(model.KindValidation, model.ErrCodeMissingTranslation, "name is required in both languages")
	}
	if strings.TrimSpace(v.DescriptionEN) == "" || strings.TrimSpace(v.DescriptionKM) == "" {
		return nil, model.NewDomainError(model.KindValidation, model.ErrCodeMissingTranslation, "description is required in both languages")
	}
	if len(v.Images) == 0 {
		return nil, model.NewDomainError(model.KindValidation, model.ErrCodeMissingField, "at least one image is required")
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(v.Price), 64)
	if err != nil || price < 0 {
		return nil, model.NewDomainError(model.KindValidation, model.ErrCodeInvalidPrice, "price must be a non-negative number")
	}

	return &model.Product{
		Slug:       strings.TrimSpace(v.Slug),
		Price:      price,
		CategoryID: v.CategoryID,
		Images:     v.Images,
		IsTopSell:  v.IsTopSell,
		Translations: model.ProductTranslations{
			EN: model.ProductTranslation{
				Name:        strings.TrimSpace(v.NameEN),
				Description: strings.TrimSpace(v.DescriptionEN),
				Size:        strings.TrimSpace(v.SizeEN),
			},
			KM: model.ProductTranslation{
				Name:        strings.TrimSpace(v.NameKM),
				Description: strings.TrimSpace(v.DescriptionKM),
				Size:        strings.TrimSpace(v.SizeKM),
			},
		},
	}, nil
}
