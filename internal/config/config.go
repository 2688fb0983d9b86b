package config

import (
	"strings"
	"time"

	"github.com/sovanara/cropbox/internal/env"
	"github.com/sovanara/cropbox/pkg/cropbox"
)

type Config struct {
	Port        string
	ENV         string
	RateLimiter RateLimiterConfig
	Storage     StorageConfig
	Tools       ToolsConfig
	Minio       MinioConfig
}

type RateLimiterConfig struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

// StorageConfig controls where intermediates and finished artifacts live.
// Driver is "local" or "minio".
type StorageConfig struct {
	Driver    string
	WorkDir   string
	OutputDir string
	// MaxUploadMB bounds a single uploaded document.
	MaxUploadMB int64
}

// ToolsConfig configures the external tool layer. The ghostscript binary
// name is resolved once here, never re-derived per call.
type ToolsConfig struct {
	GhostscriptBin string
	RsvgBin        string
	// SvgConverter selects "canvas" (in-process, default) or "rsvg".
	SvgConverter string
	// Timeout bounds every external process invocation.
	Timeout time.Duration
	// BoxRewrite enables the defensive second page-box mutation pass.
	BoxRewrite bool
}

type MinioConfig struct {
	ENDPOINT   string
	ACCESS_KEY string
	SECRET_KEY string
	BUCKET     string
	USE_SSL    bool
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.ENV, "production")
}

func GetConfig() Config {
	rateLimitTimeFrame, err := time.ParseDuration(env.GetString("RATE_LIMIT_TIME_FRAME", "1m"))
	if err != nil {
		rateLimitTimeFrame = 60 * time.Second
	}

	toolTimeout, err := time.ParseDuration(env.GetString("TOOLS_TIMEOUT", "60s"))
	if err != nil {
		toolTimeout = 60 * time.Second
	}

	return Config{
		Port: env.GetString("PORT", "8080"),
		ENV:  env.GetString("ENV", "development"),
		// By default if not specified, we allow 5000 requests per minute on all routes
		RateLimiter: RateLimiterConfig{
			RequestsPerTimeFrame: env.GetInt("RATE_LIMIT_REQUESTS_PER_TIME_FRAME", 5000),
			TimeFrame:            rateLimitTimeFrame,
			Enabled:              env.GetBool("RATE_LIMIT_ENABLED", true),
		},
		Storage: StorageConfig{
			Driver:      env.GetString("STORAGE_DRIVER", "local"),
			WorkDir:     env.GetString("STORAGE_WORK_DIR", ""),
			OutputDir:   env.GetString("STORAGE_OUTPUT_DIR", "cropbox_output"),
			MaxUploadMB: int64(env.GetInt("STORAGE_MAX_UPLOAD_MB", 50)),
		},
		Tools: ToolsConfig{
			GhostscriptBin: env.GetString("TOOLS_GS_BIN", cropbox.DefaultGhostscriptBin()),
			RsvgBin:        env.GetString("TOOLS_RSVG_BIN", "rsvg-convert"),
			SvgConverter:   env.GetString("TOOLS_SVG_CONVERTER", "canvas"),
			Timeout:        toolTimeout,
			BoxRewrite:     env.GetBool("TOOLS_BOX_REWRITE", true),
		},
		Minio: MinioConfig{
			ENDPOINT:   env.GetString("MINIO_ENDPOINT", "127.0.0.1:9000"),
			ACCESS_KEY: env.GetString("MINIO_ACCESS_KEY", ""),
			SECRET_KEY: env.GetString("MINIO_SECRET_KEY", ""),
			BUCKET:     env.GetString("MINIO_BUCKET", "cropbox"),
			USE_SSL:    env.GetBool("MINIO_USE_SSL", false),
		},
	}
}
