package route

import (
	"github.com/gin-gonic/gin"
	"github.com/sovanara/cropbox/internal/controller"
)

func V1_File(r *gin.RouterGroup, fileController *controller.FileController) {
	v1 := r.Group("/v1/files")
	{
		v1.GET("/:objectName", fileController.ReadFilePublic)
	}
}
