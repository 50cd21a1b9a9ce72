package route

import (
	"certwizard/internal/controller"
	"github.com/gin-gonic/gin"
)

func V1_Templates(r *gin.RouterGroup, tc *controller.TemplateController) {
	v1 := r.Group("/v1/templates")
	{
		v1.GET("", tc.GetTemplates)
		v1.POST("", tc.CreateTemplate)
		v1.POST("/upload", tc.UploadTemplate)
		v1.PUT("/:templateId", tc.UpdateTemplate)
		v1.DELETE("/:templateId", tc.DeleteTemplate)
		v1.POST("/:templateId/select", tc.SelectTemplate)
		v1.GET("/:templateId/preview", tc.PreviewTemplate)
	}
}
