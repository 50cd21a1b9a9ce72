package route

import (
	"certwizard/internal/controller"
	"github.com/gin-gonic/gin"
)

func V1_Certificates(r *gin.RouterGroup, cc *controller.CertificateController) {
	v1 := r.Group("/v1/certificates")
	{
		v1.POST("/generate", cc.GenerateCertificates)
		v1.GET("/download", cc.DownloadCertificates)
	}
}
