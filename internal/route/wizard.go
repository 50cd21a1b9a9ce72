package route

import (
	"certwizard/internal/controller"
	"github.com/gin-gonic/gin"
)

func V1_Wizard(r *gin.RouterGroup, wc *controller.WizardController) {
	v1 := r.Group("/v1/wizard")
	{
		v1.GET("", wc.GetState)
		v1.POST("/step", wc.GoToStep)
		v1.PUT("/event", wc.SetEvent)
		v1.PUT("/email", wc.SetEmail)
		v1.PUT("/preview-index", wc.SetPreviewIndex)
		v1.POST("/reset", wc.Reset)
	}
}
