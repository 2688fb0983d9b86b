package route

import (
	"github.com/gin-gonic/gin"
	"github.com/sovanara/cropbox/internal/controller"
)

func V1_Documents(r *gin.RouterGroup, documentController *controller.DocumentController) {
	v1 := r.Group("/v1/documents")
	{
		v1.POST("/analyze", documentController.Analyze)
		v1.POST("/convert", documentController.Convert)
	}
}
