package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpwcao/recipe-app-api/internal/logger"
)

func TestFileImageStorage_SaveAndDelete(t *testing.T) {
	root := t.TempDir()
	storage := NewFileImageStorage(root, logger.Nop())
	ctx := context.Background()

	path := "uploads/recipe/test.png"
	payload := "fake image bytes"

	if err := storage.Save(ctx, path, "image/png", strings.NewReader(payload)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	written, err := os.ReadFile(filepath.Join(root, "uploads", "recipe", "test.png"))
	if err != nil {
		t.Fatalf("stored file not readable: %v", err)
	}
	if string(written) != payload {
		t.Errorf("unexpected file content: %s", written)
	}

	if err := storage.Delete(ctx, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "uploads", "recipe", "test.png")); !os.IsNotExist(err) {
		t.Error("expected file to be removed")
	}
}

func TestFileImageStorage_DeleteMissingIsNoError(t *testing.T) {
	storage := NewFileImageStorage(t.TempDir(), logger.Nop())

	if err := storage.Delete(context.Background(), "uploads/recipe/absent.png"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFileImageStorage_RejectsTraversal(t *testing.T) {
	storage := NewFileImageStorage(t.TempDir(), logger.Nop())
	ctx := context.Background()

	for _, path := range []string{"../escape.png", "/etc/passwd", "."} {
		if err := storage.Save(ctx, path, "image/png", strings.NewReader("x")); err == nil {
			t.Errorf("expected error for path %q", path)
		}
	}
}
