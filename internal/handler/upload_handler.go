package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"nagabalm/internal/model"
	"nagabalm/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// allowedImageExtensions lists the image types accepted for upload.
var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

// UploadHandler handles multipart image uploads.
type UploadHandler struct {
	storage     storage.Storage
	maxFileSize int64
	logger      zerolog.Logger
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(storage storage.Storage, maxFileSize int64, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		storage:     storage,
		maxFileSize: maxFileSize,
		logger:      logger.With().Str("handler", "upload").Logger(),
	}
}

type uploadResponse struct {
	URLs []string `json:"urls"`
}

// Upload handles POST /api/upload requests. It accepts one or more files in
// the "images" multipart field and responds with their public URLs, in the
// order the files were sent.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Bound the whole request body; individual files are checked below.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize*16)

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form", h.logger)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "at least one image is required", h.logger)
		return
	}

	urls := make([]string, 0, len(files))
	for _, header := range files {
		if header.Size > h.maxFileSize {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("file %s exceeds the maximum size", header.Filename), h.logger)
			return
		}

		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !allowedImageExtensions[ext] {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("file type %s is not allowed", ext), h.logger)
			return
		}

		file, err := header.Open()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to read uploaded file", h.logger)
			return
		}

		filename := uuid.NewString() + ext
		url, err := h.storage.Save(r.Context(), filename, file)
		file.Close()
		if err != nil {
			h.logger.Error().Err(err).Str("file", header.Filename).Msg("failed to store image")
			writeError(w, http.StatusInternalServerError, "failed to store image", h.logger)
			return
		}

		urls = append(urls, url)
	}

	h.logger.Info().Int("count", len(urls)).Msg("images uploaded")
	writeJSON(w, http.StatusOK, model.OK(uploadResponse{URLs: urls}))
}
