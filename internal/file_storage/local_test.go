package filestorage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	outDir := t.TempDir()
	store, err := NewLocalStorage(outDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	src := filepath.Join(t.TempDir(), "artifact.pdf")
	if err := os.WriteFile(src, []byte("%PDF-1.7 payload"), 0644); err != nil {
		t.Fatal(err)
	}

	publicPath, err := store.Store(context.Background(), src, "123_artifact.pdf")
	if err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if publicPath != "/api/v1/files/123_artifact.pdf" {
		t.Errorf("publicPath = %q", publicPath)
	}

	rc, info, err := store.Open(context.Background(), "123_artifact.pdf")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "%PDF-1.7 payload" {
		t.Errorf("stored content mismatch: %q", data)
	}
	if info.Size != int64(len(data)) {
		t.Errorf("size = %d, want %d", info.Size, len(data))
	}
	if info.ContentType != "application/pdf" {
		t.Errorf("contentType = %q", info.ContentType)
	}
}

func TestLocalStorageStripsPathSegments(t *testing.T) {
	outDir := t.TempDir()
	store, err := NewLocalStorage(outDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	src := filepath.Join(t.TempDir(), "artifact.pdf")
	if err := os.WriteFile(src, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Store(context.Background(), src, "../escape.pdf"); err != nil {
		t.Fatalf("store failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(outDir, "escape.pdf")); err != nil {
		t.Errorf("object not stored inside the output directory: %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(outDir), "escape.pdf")); err == nil {
		t.Error("object escaped the output directory")
	}
}

func TestLocalStorageOpenMissing(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, _, err := store.Open(context.Background(), "nope.pdf"); err == nil {
		t.Error("expected an error for a missing object")
	}
}
