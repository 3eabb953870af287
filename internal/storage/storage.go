package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Storage persists uploaded images and returns publicly addressable URLs.
type Storage interface {
	// Save writes the content under the given filename and returns the URL
	// at which the image will be served.
	Save(ctx context.Context, filename string, content io.Reader) (string, error)
}

// localStorage implements Storage on the local file system. Files are
// written under Dir and served at BaseURL/<filename>.
type localStorage struct {
	dir     string
	baseURL string
	logger  zerolog.Logger
}

// NewLocalStorage creates a file-system storage backend, creating the
// target directory if needed.
func NewLocalStorage(dir, baseURL string, logger zerolog.Logger) (Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}

	return &localStorage{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger.With().Str("component", "local-storage").Logger(),
	}, nil
}

// Save writes the content to disk and returns its public URL.
func (s *localStorage) Save(ctx context.Context, filename string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// Uploaded names are generated server-side, but guard against path
	// escapes anyway.
	filename = filepath.Base(filename)
	path := filepath.Join(s.dir, filename)

	file, err := os.Create(path)
	if err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("failed to create upload file")
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer file.Close()

	written, err := io.Copy(file, content)
	if err != nil {
		os.Remove(path)
		s.logger.Error().Err(err).Str("path", path).Msg("failed to write upload file")
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	s.logger.Info().
		Str("file", filename).
		Int64("bytes", written).
		Msg("image stored")

	return s.baseURL + "/" + filename, nil
}
