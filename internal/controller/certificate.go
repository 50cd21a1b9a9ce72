package controller

import (
	"errors"
	"io"
	"net/http"

	"certwizard/internal/generator"
	"certwizard/internal/util"
	"github.com/gin-gonic/gin"
)

type CertificateController struct {
	*baseController
}

// GenerateCertificates runs one awaited generation pass. The request carries
// no payload of its own: template, event details and email settings all come
// from the wizard session.
func (cc CertificateController) GenerateCertificates(ctx *gin.Context) {
	result, err := cc.app.Generator.Generate(ctx)
	if err != nil {
		cc.app.Logger.Debugf("Generation failed: %v", err)
		util.ResponseFailed(ctx, generationErrorStatus(err), "Failed to generate certificates", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, result)
}

// DownloadCertificates streams the archive of the latest batch, or of an
// explicit batch when ?batchId= is given.
func (cc CertificateController) DownloadCertificates(ctx *gin.Context) {
	body, err := cc.app.Generator.Download(ctx, ctx.Query("batchId"))
	if err != nil {
		util.ResponseFailed(ctx, generationErrorStatus(err), "Failed to download certificates", util.GenerateErrorMessages(err), nil)
		return
	}
	defer body.Close()

	ctx.Header("Content-Type", "application/zip")
	ctx.Header("Content-Disposition", `attachment; filename="certificates.zip"`)
	if _, err := io.Copy(ctx.Writer, body); err != nil {
		cc.app.Logger.Errorf("Failed to stream certificate archive: %v", err)
	}
}

func generationErrorStatus(err error) int {
	switch {
	case errors.Is(err, generator.ErrNoParticipants),
		errors.Is(err, generator.ErrNoTemplateSelected),
		errors.Is(err, generator.ErrNoRecipients),
		errors.Is(err, generator.ErrTooManyRecipients),
		errors.Is(err, generator.ErrNothingToDownload):
		return http.StatusBadRequest
	case errors.Is(err, generator.ErrGenerationInProgress):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}
