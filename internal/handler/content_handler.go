package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"nagabalm/internal/content"
	"nagabalm/internal/model"
)

// ContentHandler serves the static bilingual marketing content.
type ContentHandler struct {
	logger zerolog.Logger
}

// NewContentHandler creates a new content handler.
func NewContentHandler(logger zerolog.Logger) *ContentHandler {
	return &ContentHandler{
		logger: logger.With().Str("handler", "content").Logger(),
	}
}

// FAQ handles GET /api/content/faq.
func (h *ContentHandler) FAQ(w http.ResponseWriter, r *http.Request) {
	entries := content.FAQ(requestLocale(r))
	writeJSON(w, http.StatusOK, model.OK(entries))
}

// Locations handles GET /api/content/locations.
func (h *ContentHandler) Locations(w http.ResponseWriter, r *http.Request) {
	groups := content.Locations(requestLocale(r))
	writeJSON(w, http.StatusOK, model.OK(groups))
}

// requestLocale reads the locale query parameter, defaulting to English.
func requestLocale(r *http.Request) model.Locale {
	if r.URL.Query().Get("locale") == string(model.LocaleKM) {
		return model.LocaleKM
	}
	return model.LocaleEN
}
