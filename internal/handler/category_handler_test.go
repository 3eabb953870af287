package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"nagabalm/internal/model"
)

func sampleCategory() *model.Category {
	return &model.Category{
		ID:   "cat-1",
		Slug: "balms",
		Translations: model.CategoryTranslations{
			EN: model.CategoryTranslation{Name: "Balms"},
			KM: model.CategoryTranslation{Name: "បាម"},
		},
	}
}

func TestCategoryHandler_List(t *testing.T) {
	mockService := new(MockCategoryService)
	mockService.On("List", mock.Anything).Return([]model.Category{*sampleCategory()}, nil)

	h := NewCategoryHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	w := httptest.NewRecorder()

	h.List(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	require.NotNil(t, env.Count)
	assert.Equal(t, 1, *env.Count)
	mockService.AssertExpectations(t)
}

func TestCategoryHandler_Create(t *testing.T) {
	t.Run("Valid category", func(t *testing.T) {
		mockService := new(MockCategoryService)
		mockService.On("Create", mock.Anything, mock.AnythingOfType("*model.Category")).
			Return(sampleCategory(), nil)

		h := NewCategoryHandler(mockService, zerolog.Nop())

		req := httptest.NewRequest(http.MethodPost, "/api/categories", bytes.NewBufferString(mustMarshal(sampleCategory())))
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Duplicate slug", func(t *testing.T) {
		mockService := new(MockCategoryService)
		mockService.On("Create", mock.Anything, mock.AnythingOfType("*model.Category")).
			Return(nil, model.ErrDuplicateSlug)

		h := NewCategoryHandler(mockService, zerolog.Nop())

		req := httptest.NewRequest(http.MethodPost, "/api/categories", bytes.NewBufferString(mustMarshal(sampleCategory())))
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestCategoryHandler_Delete(t *testing.T) {
	t.Run("Successful delete", func(t *testing.T) {
		mockService := new(MockCategoryService)
		mockService.On("Delete", mock.Anything, "cat-1").Return(nil)

		h := NewCategoryHandler(mockService, zerolog.Nop())

		req := httptest.NewRequest(http.MethodDelete, "/api/categories/cat-1", nil)
		w := httptest.NewRecorder()

		h.Delete(w, req, "cat-1")

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		assert.True(t, env.Success)
		assert.Equal(t, "Category deleted", env.Message)
	})

	t.Run("Unknown category", func(t *testing.T) {
		mockService := new(MockCategoryService)
		mockService.On("Delete", mock.Anything, "missing").Return(model.ErrCategoryNotFound)

		h := NewCategoryHandler(mockService, zerolog.Nop())

		req := httptest.NewRequest(http.MethodDelete, "/api/categories/missing", nil)
		w := httptest.NewRecorder()

		h.Delete(w, req, "missing")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
