package appcontext

import (
	"github.com/sovanara/cropbox/internal/config"
	filestorage "github.com/sovanara/cropbox/internal/file_storage"
	"github.com/sovanara/cropbox/pkg/cropbox"
	"go.uber.org/zap"
)

// Application contains core dependencies for the app.
type Application struct {
	// Config holds application settings provided from .env file.
	Config *config.Config

	Logger *zap.SugaredLogger

	// Analyzer measures uploaded documents.
	Analyzer *cropbox.Analyzer

	// Pipeline converts uploads into canonical cropped PDFs.
	Pipeline *cropbox.Pipeline

	// Storage serves and persists finished artifacts.
	Storage filestorage.Storage
}
