package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cfg "github.com/templui/habitkit/internal/config"
)

func TestLocalStorage_SaveDelete(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store, err := NewLocalStorage(root, LocalURLPrefix)
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "public/avatars/a.jpg", "image/jpeg", strings.NewReader("jpeg")))

	data, err := os.ReadFile(filepath.Join(root, "public", "avatars", "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))
	assert.Equal(t, "/uploads/public/avatars/a.jpg", store.URL("public/avatars/a.jpg"))

	require.NoError(t, store.Delete(ctx, "public/avatars/a.jpg"))
	_, err = os.Stat(filepath.Join(root, "public", "avatars", "a.jpg"))
	assert.True(t, os.IsNotExist(err))

	// deleting a missing file is not an error
	assert.NoError(t, store.Delete(ctx, "public/avatars/a.jpg"))
}

func TestLocalStorage_RejectsEscapingPaths(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), LocalURLPrefix)
	require.NoError(t, err)

	err = store.Save(context.Background(), "", "text/plain", strings.NewReader("x"))
	assert.Error(t, err)

	full, err := store.resolve("../../etc/passwd")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(full, store.Root()))
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New(&cfg.Config{StorageDriver: "ftp"})
	assert.Error(t, err)
}

func TestNew_Local(t *testing.T) {
	s, err := New(&cfg.Config{StorageDriver: cfg.StorageLocal, StoragePath: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, s)
}
