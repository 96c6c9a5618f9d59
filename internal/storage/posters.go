// Package storage persists uploaded poster images on the local filesystem.
package storage

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"cineverse/internal/middleware"
	"cineverse/internal/models"

	"github.com/google/uuid"
)

const (
	DefaultUploadDir      = "uploads"
	DefaultMaxPosterBytes = 10 * 1024 * 1024
)

// PosterStore writes and removes poster files under a single upload directory.
type PosterStore struct {
	uploadDir string
	maxBytes  int64
}

func NewPosterStore(uploadDir string) *PosterStore {
	if strings.TrimSpace(uploadDir) == "" {
		uploadDir = DefaultUploadDir
	}
	return &PosterStore{uploadDir: uploadDir, maxBytes: DefaultMaxPosterBytes}
}

func (s *PosterStore) UploadDir() string {
	return s.uploadDir
}

// SaveImageFromDataURL decodes a "data:image/...;base64," payload, validates
// it and writes it under the upload directory with a random filename.
// It returns the public path ("/uploads/<name>") of the stored file.
func (s *PosterStore) SaveImageFromDataURL(dataURL string) (string, error) {
	payload, declaredType, ok := splitDataURL(dataURL)
	if !ok {
		return "", models.NewValidationError("Invalid image data URL")
	}

	content, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", models.NewValidationError("Invalid base64 image data")
	}
	if len(content) == 0 {
		return "", models.NewValidationError("Empty image data")
	}
	if int64(len(content)) > s.maxBytes {
		return "", models.NewValidationError(fmt.Sprintf("Image too large (max %dMB)", s.maxBytes/(1024*1024)))
	}

	detected := http.DetectContentType(content)
	if !isAllowedPosterMIME(detected) {
		return "", models.NewValidationError("Invalid image type")
	}
	if declaredType != "" && !strings.EqualFold(declaredType, detected) && !jpegAlias(declaredType, detected) {
		return "", models.NewValidationError("Image content type mismatch")
	}

	name := uuid.NewString() + extensionForMIME(detected)
	absPath := filepath.Join(s.uploadDir, name)
	if err := os.MkdirAll(s.uploadDir, 0o750); err != nil {
		return "", models.NewInternalError(err)
	}
	if err := os.WriteFile(absPath, content, 0o600); err != nil {
		return "", models.NewInternalError(err)
	}

	return "/" + filepath.ToSlash(filepath.Join(filepath.Base(s.uploadDir), name)), nil
}

// DeleteUploadedFile removes a previously stored poster given its public
// path. Removal is best effort: a missing file is fine and other failures
// are logged rather than surfaced, since the owning record is already gone.
func (s *PosterStore) DeleteUploadedFile(publicPath string) {
	name, ok := s.localName(publicPath)
	if !ok {
		return
	}
	if err := os.Remove(filepath.Join(s.uploadDir, name)); err != nil && !os.IsNotExist(err) {
		middleware.Logger.Warn("failed to remove uploaded file",
			"path", publicPath,
			"error", err.Error(),
		)
	}
}

// localName maps a public "/uploads/<name>" path back onto a bare filename,
// rejecting anything that would escape the upload directory.
func (s *PosterStore) localName(publicPath string) (string, bool) {
	trimmed := strings.TrimPrefix(publicPath, "/")
	base := filepath.Base(s.uploadDir)
	if !strings.HasPrefix(trimmed, base+"/") {
		return "", false
	}
	name := strings.TrimPrefix(trimmed, base+"/")
	if name == "" || name != filepath.Base(name) {
		return "", false
	}
	return name, true
}

func splitDataURL(dataURL string) (payload, mediaType string, ok bool) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", "", false
	}
	rest := strings.TrimPrefix(dataURL, "data:")
	header, payload, found := strings.Cut(rest, ",")
	if !found || payload == "" {
		return "", "", false
	}
	if !strings.HasSuffix(header, ";base64") {
		return "", "", false
	}
	mediaType = strings.ToLower(strings.TrimSpace(strings.TrimSuffix(header, ";base64")))
	return payload, mediaType, true
}

func isAllowedPosterMIME(contentType string) bool {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func jpegAlias(a, b string) bool {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	return (a == "image/jpg" && b == "image/jpeg") || (a == "image/jpeg" && b == "image/jpg")
}

func extensionForMIME(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
