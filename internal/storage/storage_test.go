package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_Save(t *testing.T) {
	dir := t.TempDir()
	logger := zerolog.Nop()

	store, err := NewLocalStorage(dir, "/uploads/", logger)
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "balm-oil.jpg", strings.NewReader("image-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/balm-oil.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "balm-oil.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))
}

func TestLocalStorage_SaveStripsPath(t *testing.T) {
	dir := t.TempDir()

	store, err := NewLocalStorage(dir, "/uploads", zerolog.Nop())
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "../../etc/evil.jpg", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/evil.jpg", url)

	_, err = os.Stat(filepath.Join(dir, "evil.jpg"))
	assert.NoError(t, err)
}

func TestLocalStorage_SaveCancelledContext(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "/uploads", zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Save(ctx, "late.jpg", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestNewLocalStorage_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	_, err := NewLocalStorage(dir, "/uploads", zerolog.Nop())
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
