package controller

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sovanara/cropbox/internal/middleware"
	"github.com/sovanara/cropbox/internal/util"
	"github.com/sovanara/cropbox/pkg/cropbox"
)

type DocumentController struct {
	*baseController
}

const (
	ErrFileRequired = "file is required"
)

var errFileTooLarge = errors.New("file exceeds the upload size limit")

// saveUpload writes the multipart upload into a fresh per-request work
// directory. The returned cleanup removes the whole directory, upload and
// intermediates alike; cleanup failure is logged, never surfaced.
func (dc DocumentController) saveUpload(ctx *gin.Context) (path string, originalName string, cleanup func(), err error) {
	file, err := ctx.FormFile("file")
	if err != nil {
		return "", "", nil, cropbox.ErrNoFileProvided
	}
	if limit := dc.app.Config.Storage.MaxUploadMB; limit > 0 && file.Size > limit<<20 {
		return "", "", nil, errFileTooLarge
	}

	workDir, err := util.CreateWorkDir(dc.app.Config.Storage.WorkDir)
	if err != nil {
		return "", "", nil, err
	}
	cleanup = func() {
		if err := os.RemoveAll(workDir); err != nil {
			dc.app.Logger.Warnf("failed to clean up work directory %s: %v", workDir, err)
		}
	}

	// The upload gets a generated name; the original name is only ever
	// used to derive the extension and the sanitized artifact name.
	id, err := gonanoid.New()
	if err != nil {
		cleanup()
		return "", "", nil, err
	}
	path = filepath.Join(workDir, id+strings.ToLower(filepath.Ext(file.Filename)))

	if err := ctx.SaveUploadedFile(file, path); err != nil {
		cleanup()
		return "", "", nil, err
	}

	return path, file.Filename, cleanup, nil
}

func (dc DocumentController) Analyze(ctx *gin.Context) {
	path, originalName, cleanup, err := dc.saveUpload(ctx)
	if err != nil {
		dc.app.Logger.Errorf("request %s: %v", middleware.GetRequestID(ctx), err)
		dc.respondFailed(ctx, err)
		return
	}
	defer cleanup()

	report, err := dc.app.Analyzer.Analyze(ctx, path, originalName)
	if err != nil {
		dc.app.Logger.Errorf("request %s: %v", middleware.GetRequestID(ctx), err)
		dc.respondFailed(ctx, err)
		return
	}

	util.ResponseSuccess(ctx, report)
}

func (dc DocumentController) Convert(ctx *gin.Context) {
	path, originalName, cleanup, err := dc.saveUpload(ctx)
	if err != nil {
		dc.app.Logger.Errorf("request %s: %v", middleware.GetRequestID(ctx), err)
		dc.respondFailed(ctx, err)
		return
	}
	defer cleanup()

	result, err := dc.app.Pipeline.ConvertToPdf(ctx, path, originalName)
	if err != nil {
		dc.app.Logger.Errorf("request %s: %v", middleware.GetRequestID(ctx), err)
		dc.respondFailed(ctx, err)
		return
	}

	util.ResponseSuccess(ctx, result)
}

// respondFailed maps the pipeline error taxonomy onto HTTP statuses. No
// partial, successful-looking response ever leaves a failed request.
func (dc DocumentController) respondFailed(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, cropbox.ErrNoFileProvided):
		util.ResponseFailed(ctx, http.StatusBadRequest, "No file uploaded", util.GenerateErrorMessages(errors.New(ErrFileRequired), "file"), nil)
	case errors.Is(err, errFileTooLarge):
		util.ResponseFailed(ctx, http.StatusBadRequest, "File exceeds the upload size limit", util.GenerateErrorMessages(err, "file"), nil)
	case errors.Is(err, cropbox.ErrUnsupportedFormat):
		util.ResponseFailed(ctx, http.StatusBadRequest, "Unsupported file format", util.GenerateErrorMessages(err, "file"), nil)
	case errors.Is(err, cropbox.ErrDegenerateBox):
		util.ResponseFailed(ctx, http.StatusUnprocessableEntity, "Document has no visible content", util.GenerateErrorMessages(err, "file"), nil)
	case errors.Is(err, cropbox.ErrProbeProcess), errors.Is(err, cropbox.ErrProbeParse):
		util.ResponseFailed(ctx, http.StatusUnprocessableEntity, "Could not determine the document bounding box", util.GenerateErrorMessages(err, "file"), nil)
	case errors.Is(err, cropbox.ErrConversion):
		util.ResponseFailed(ctx, http.StatusUnprocessableEntity, "Could not convert the document to PDF", util.GenerateErrorMessages(err, "file"), nil)
	case errors.Is(err, cropbox.ErrCrop):
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to crop the document", util.GenerateErrorMessages(err, "file"), nil)
	default:
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to process the document", util.GenerateErrorMessages(err), nil)
	}
}
