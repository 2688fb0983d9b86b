package filestorage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage keeps artifacts on disk under a single served output
// directory. Artifacts persist until externally garbage-collected.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return &LocalStorage{dir: dir}, nil
}

func (s *LocalStorage) Store(_ context.Context, localPath, objectName string) (string, error) {
	src, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, filepath.Base(objectName)))
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", objectName, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to store %s: %w", objectName, err)
	}

	return PublicPath(objectName), nil
}

func (s *LocalStorage) Open(_ context.Context, objectName string) (io.ReadCloser, ObjectInfo, error) {
	path := filepath.Join(s.dir, filepath.Base(objectName))

	f, err := os.Open(path)
	if err != nil {
		return nil, ObjectInfo{}, fmt.Errorf("failed to open %s: %w", objectName, err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ObjectInfo{}, fmt.Errorf("failed to stat %s: %w", objectName, err)
	}

	return f, ObjectInfo{Size: stat.Size(), ContentType: "application/pdf"}, nil
}
