package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cpwcao/recipe-app-api/internal/logger"
)

// fileImageStorage stores uploaded images on the local filesystem under a
// configured root directory. The storage path passed by callers becomes a
// path relative to that root.
type fileImageStorage struct {
	logger *logger.Logger
	root   string
}

// NewFileImageStorage constructs an [ImageStorage] writing under root.
// The root directory is created on first use, not here.
func NewFileImageStorage(root string, logger *logger.Logger) ImageStorage {
	logger.Debug().Str("root", root).Msg("creating filesystem image storage")
	return &fileImageStorage{
		root:   root,
		logger: logger,
	}
}

// Save writes data to root/path, creating intermediate directories as needed.
// The write goes to a temporary file that is renamed into place, so a failed
// upload never leaves a truncated image behind.
func (s *fileImageStorage) Save(ctx context.Context, path string, _ string, data io.Reader) error {
	log := logger.FromContext(ctx)

	target, err := s.resolve(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		log.Err(err).Str("func", "*fileImageStorage.Save").Msg("failed to create image directory")
		return fmt.Errorf("creating image directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		log.Err(err).Str("func", "*fileImageStorage.Save").Msg("failed to create temporary file")
		return fmt.Errorf("creating temporary image file: %w", err)
	}

	if _, err := io.Copy(tmp, data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		log.Err(err).Str("func", "*fileImageStorage.Save").Msg("failed to write image data")
		return fmt.Errorf("writing image data: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing image file: %w", err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		log.Err(err).Str("func", "*fileImageStorage.Save").Msg("failed to move image into place")
		return fmt.Errorf("moving image into place: %w", err)
	}

	return nil
}

// Delete removes root/path. A missing file is not an error: the image may
// have been replaced or cleaned up already.
func (s *fileImageStorage) Delete(ctx context.Context, path string) error {
	log := logger.FromContext(ctx)

	target, err := s.resolve(path)
	if err != nil {
		return err
	}

	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Err(err).Str("func", "*fileImageStorage.Delete").Msg("failed to delete image file")
		return fmt.Errorf("deleting image file: %w", err)
	}

	return nil
}

// resolve joins path under the root and rejects traversal outside of it.
func (s *fileImageStorage) resolve(path string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(path))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid image path %q", path)
	}

	return filepath.Join(s.root, cleaned), nil
}
