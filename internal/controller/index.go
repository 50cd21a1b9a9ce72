package controller

import (
	"certwizard/internal/util"
	"github.com/gin-gonic/gin"
)

type IndexController struct {
	*baseController
}

func (ic IndexController) Index(ctx *gin.Context) {
	util.ResponseSuccess(ctx, gin.H{
		"service": "certwizard",
		"env":     ic.app.Config.ENV,
	})
}
