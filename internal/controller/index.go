package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/sovanara/cropbox/internal/util"
)

type IndexController struct {
	*baseController
}

func (ic IndexController) Index(ctx *gin.Context) {
	util.ResponseSuccess(ctx, gin.H{
		"app":    "cropbox",
		"status": "ok",
	})
}
