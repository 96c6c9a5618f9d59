package storage

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngDataURL(t *testing.T) string {
	t.Helper()
	buf := bytes.NewBuffer(nil)
	require.NoError(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestSaveImageFromDataURL(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "uploads")
	store := NewPosterStore(dir)

	publicPath, err := store.SaveImageFromDataURL(pngDataURL(t))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(publicPath, "/uploads/"))
	assert.True(t, strings.HasSuffix(publicPath, ".png"))

	onDisk := filepath.Join(dir, strings.TrimPrefix(publicPath, "/uploads/"))
	_, statErr := os.Stat(onDisk)
	require.NoError(t, statErr)
}

func TestSaveImageFromDataURL_Rejects(t *testing.T) {
	t.Parallel()

	store := NewPosterStore(filepath.Join(t.TempDir(), "uploads"))

	cases := []struct {
		name    string
		dataURL string
	}{
		{"not a data url", "https://example.com/poster.png"},
		{"missing base64 marker", "data:image/png,deadbeef"},
		{"invalid base64", "data:image/png;base64,!!!"},
		{"non-image payload", "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("just text, not an image at all"))},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := store.SaveImageFromDataURL(tc.dataURL)
			require.Error(t, err)
		})
	}
}

func TestDeleteUploadedFile(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "uploads")
	store := NewPosterStore(dir)

	publicPath, err := store.SaveImageFromDataURL(pngDataURL(t))
	require.NoError(t, err)

	store.DeleteUploadedFile(publicPath)
	onDisk := filepath.Join(dir, strings.TrimPrefix(publicPath, "/uploads/"))
	_, statErr := os.Stat(onDisk)
	assert.True(t, os.IsNotExist(statErr))

	// Deleting again and deleting nonsense paths must not panic or escape the dir.
	store.DeleteUploadedFile(publicPath)
	store.DeleteUploadedFile("/uploads/../posters.go")
	store.DeleteUploadedFile("/elsewhere/file.png")
}
