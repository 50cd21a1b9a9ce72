package controller

import (
	"errors"
	"net/http"

	"certwizard/internal/constant"
	"certwizard/internal/util"
	"certwizard/internal/wizard"
	"github.com/gin-gonic/gin"
)

type WizardController struct {
	*baseController
}

// GetState reports the whole session in one response so the client can
// rebuild its view after a reload.
func (wc WizardController) GetState(ctx *gin.Context) {
	snap := wc.app.Store.Snapshot()

	util.ResponseSuccess(ctx, gin.H{
		"currentStep":        snap.CurrentStep,
		"enabledSteps":       wc.app.Wizard.EnabledSteps(),
		"uploadedFile":       snap.UploadedFile,
		"participantCount":   len(snap.Participants),
		"roles":              snap.RolesUsed,
		"places":             snap.PlacesUsed,
		"templates":          snap.Templates,
		"selectedTemplateId": snap.SelectedTemplateId,
		"emailsEnabled":      snap.EmailsEnabled,
		"recipientCount":     snap.RecipientCount,
		"maxRecipients":      snap.MaxRecipients,
		"event":              snap.Event,
		"previewIndex":       snap.PreviewIndex,
	})
}

func (wc WizardController) GoToStep(ctx *gin.Context) {
	type Request struct {
		Step string `json:"step" form:"step" binding:"required,oneof=upload templates generate"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		wc.app.Logger.Debugf("Invalid step request: %v", err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	if err := wc.app.Wizard.GoTo(constant.WizardStep(body.Step)); err != nil {
		status := http.StatusConflict
		if errors.Is(err, wizard.ErrStepDisabled) {
			status = http.StatusBadRequest
		}
		util.ResponseFailed(ctx, status, "Cannot navigate to step", util.GenerateErrorMessages(err, "step"), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"currentStep":  wc.app.Wizard.CurrentStep(),
		"enabledSteps": wc.app.Wizard.EnabledSteps(),
	})
}

func (wc WizardController) SetEvent(ctx *gin.Context) {
	type Request struct {
		Name      string `json:"name" form:"name" binding:"omitempty,cmax=200"`
		Location  string `json:"location" form:"location" binding:"omitempty,cmax=200"`
		IssueDate string `json:"issueDate" form:"issueDate" binding:"omitempty,cmax=50"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	wc.app.Store.SetEventName(body.Name)
	wc.app.Store.SetEventLocation(body.Location)
	wc.app.Store.SetEventIssueDate(body.IssueDate)

	util.ResponseSuccess(ctx, gin.H{"event": wc.app.Store.Snapshot().Event})
}

// SetEmail updates the email-sending settings of the generate step. The
// recipient count is clamped into the session's allowed range.
func (wc WizardController) SetEmail(ctx *gin.Context) {
	type Request struct {
		Enabled        *bool `json:"enabled" form:"enabled" binding:"required"`
		RecipientCount *int  `json:"recipientCount" form:"recipientCount" binding:"omitempty,gte=0"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	wc.app.Store.SetEmailsEnabled(*body.Enabled)
	if body.RecipientCount != nil {
		wc.app.Store.SetRecipientCount(*body.RecipientCount)
	}

	snap := wc.app.Store.Snapshot()
	util.ResponseSuccess(ctx, gin.H{
		"emailsEnabled":  snap.EmailsEnabled,
		"recipientCount": snap.RecipientCount,
		"maxRecipients":  snap.MaxRecipients,
	})
}

func (wc WizardController) SetPreviewIndex(ctx *gin.Context) {
	type Request struct {
		Index *int `json:"index" form:"index" binding:"required,gte=0"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	wc.app.Store.SetPreviewIndex(*body.Index)
	util.ResponseSuccess(ctx, gin.H{"previewIndex": wc.app.Store.Snapshot().PreviewIndex})
}

// Reset clears the whole session including user templates; their asset
// objects are released. Standard templates survive.
func (wc WizardController) Reset(ctx *gin.Context) {
	removed := wc.app.Store.Reset()
	wc.app.Templates.ReleaseAssets(ctx, removed)
	wc.app.Logger.Infof("Wizard reset, removed %d user template(s)", len(removed))

	util.ResponseSuccess(ctx, nil)
}
