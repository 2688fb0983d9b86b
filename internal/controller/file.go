package controller

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sovanara/cropbox/internal/util"
)

type FileController struct {
	*baseController
}

// ReadFilePublic streams a persisted artifact from whichever storage
// backend is configured.
func (fc FileController) ReadFilePublic(ctx *gin.Context) {
	objectName := ctx.Params.ByName("objectName")
	if objectName == "" || strings.ContainsAny(objectName, "/\\") {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid object name", util.GenerateErrorMessages(errors.New("invalid object name"), "objectName"), nil)
		return
	}

	object, info, err := fc.app.Storage.Open(ctx, objectName)
	if err != nil {
		fc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusNotFound, "File not found", util.GenerateErrorMessages(errors.New("file not found"), "objectName"), nil)
		return
	}
	defer object.Close()

	ctx.Header("Content-Type", info.ContentType)
	ctx.Header("Content-Length", fmt.Sprintf("%d", info.Size))
	io.Copy(ctx.Writer, object)
}
