package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// Local stores images on disk under a fixed directory. Paths it returns are
// relative (e.g. "uploads/images/<name>") so they double as the public URL
// the static file route serves.
type Local struct {
	dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Local{dir: dir}, nil
}

func (l *Local) Save(ctx context.Context, file multipart.File, name string) (string, error) {
	path := filepath.Join(l.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	return filepath.ToSlash(path), nil
}

func (l *Local) Remove(ctx context.Context, path string) error {
	// Refuse anything outside the upload directory.
	clean := filepath.Clean(filepath.FromSlash(path))
	if !strings.HasPrefix(clean, filepath.Clean(l.dir)+string(os.PathSeparator)) {
		return fmt.Errorf("path %q is outside the upload directory", path)
	}
	return os.Remove(clean)
}
