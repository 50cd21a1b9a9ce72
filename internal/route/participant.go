package route

import (
	"certwizard/internal/controller"
	"github.com/gin-gonic/gin"
)

func V1_Participants(r *gin.RouterGroup, pc *controller.ParticipantController) {
	v1 := r.Group("/v1/participants")
	{
		v1.POST("/upload", pc.UploadParticipants)
		v1.GET("", pc.GetParticipants)
		v1.DELETE("", pc.ClearParticipants)
	}
}
