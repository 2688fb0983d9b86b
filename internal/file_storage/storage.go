package filestorage

import (
	"context"
	"io"

	"github.com/sovanara/cropbox/internal/config"
)

// ObjectInfo describes a stored artifact for the serving layer.
type ObjectInfo struct {
	Size        int64
	ContentType string
}

// Storage persists cropped PDF artifacts and streams them back out. The
// Store half satisfies cropbox.Storage, so the conversion pipeline only
// ever sees that narrower interface.
type Storage interface {
	Store(ctx context.Context, localPath, objectName string) (publicPath string, err error)
	Open(ctx context.Context, objectName string) (io.ReadCloser, ObjectInfo, error)
}

// PublicPath is the route a stored object is served from.
func PublicPath(objectName string) string {
	return "/api/v1/files/" + objectName
}

// New picks the backend configured by STORAGE_DRIVER.
func New(cfg *config.Config) (Storage, error) {
	if cfg.Storage.Driver == "minio" {
		return NewMinioStorage(&cfg.Minio)
	}
	return NewLocalStorage(cfg.Storage.OutputDir)
}
