package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	appcontext "github.com/sovanara/cropbox/internal/app_context"
	"github.com/sovanara/cropbox/internal/config"
	"github.com/sovanara/cropbox/internal/controller"
	"github.com/sovanara/cropbox/internal/env"
	filestorage "github.com/sovanara/cropbox/internal/file_storage"
	"github.com/sovanara/cropbox/internal/middleware"
	ratelimiter "github.com/sovanara/cropbox/internal/rate_limiter"
	"github.com/sovanara/cropbox/internal/route"
	"github.com/sovanara/cropbox/internal/util"
	"github.com/sovanara/cropbox/pkg/cropbox"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

func main() {
	cfg := config.GetConfig()

	logger := util.NewLogger(cfg.ENV)
	logger.Debugf("Configuration: %+v \n", cfg)

	storage, err := filestorage.New(&cfg)
	if err != nil {
		logger.Error("Error setting up artifact storage")
		logger.Panic(err)
	}

	gs := cropbox.NewGhostscript(cfg.Tools.GhostscriptBin, cfg.Tools.Timeout, logger)

	var converter cropbox.MarkupConverter
	switch cfg.Tools.SvgConverter {
	case "rsvg":
		converter = cropbox.NewRsvgConverter(cfg.Tools.RsvgBin, cfg.Tools.Timeout)
	default:
		converter = cropbox.CanvasConverter{}
	}

	normalizer := cropbox.NewNormalizer(gs, cfg.Tools.BoxRewrite, logger)
	analyzer := cropbox.NewAnalyzer(gs, converter, logger)
	pipeline := cropbox.NewPipeline(gs, converter, normalizer, storage, logger)

	rateLimiter := ratelimiter.NewRateLimiter(cfg.RateLimiter, logger)
	app := appcontext.Application{
		Config:   &cfg,
		Logger:   logger,
		Analyzer: analyzer,
		Pipeline: pipeline,
		Storage:  storage,
	}

	_middleware := middleware.NewMiddleware(&app, rateLimiter)

	if cfg.ENV == "production" {
		logger.Info("Running in production mode")
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	if cfg.Storage.MaxUploadMB > 0 {
		r.MaxMultipartMemory = cfg.Storage.MaxUploadMB << 20
	}

	// docs: https://github.com/gin-contrib/cors?tab=readme-ov-file#using-defaultconfig-as-start-point
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Requested-With", "Accept"}
	r.Use(cors.New(corsConfig))
	r.Use(_middleware.RequestIDMiddleware)
	r.Use(_middleware.RateLimiterMiddleware)

	_controller := controller.NewController(&app)

	r.GET("/", _controller.Index.Index)

	rApi := r.Group("/api")

	route.V1_Documents(rApi, _controller.Document)
	route.V1_File(rApi, _controller.File)

	if err := r.Run("0.0.0.0:" + app.Config.Port); err != nil {
		logger.Panic("Error running server: %v \n", err)
	}
}
