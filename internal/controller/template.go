package controller

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"certwizard/internal/constant"
	"certwizard/internal/template"
	"certwizard/internal/util"
	"certwizard/pkg/certwizard"
	"github.com/gin-gonic/gin"
)

type TemplateController struct {
	*baseController
}

const (
	ErrTemplateIdRequired   = "template id is required"
	ErrTemplateFileRequired = "template file is required"
)

func (tc TemplateController) GetTemplates(ctx *gin.Context) {
	snap := tc.app.Store.Snapshot()

	util.ResponseSuccess(ctx, gin.H{
		"templates":          snap.Templates,
		"selectedTemplateId": snap.SelectedTemplateId,
	})
}

func (tc TemplateController) CreateTemplate(ctx *gin.Context) {
	type Request struct {
		Name        string `json:"name" form:"name" binding:"required,strNotEmpty,cmax=100"`
		Description string `json:"description" form:"description" binding:"omitempty,cmax=500"`
		Type        string `json:"type" form:"type" binding:"required,oneof=html svg"`
		Content     string `json:"content" form:"content" binding:"required,strNotEmpty"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		tc.app.Logger.Debugf("Invalid create template request: %v", err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	created, err := tc.app.Templates.Create(ctx, template.Input{
		Name:        body.Name,
		Description: body.Description,
		Type:        constant.TemplateType(body.Type),
		Content:     body.Content,
	})
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Failed to create template", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"template":     created,
		"placeholders": certwizard.Placeholders(created.Content),
	})
}

// UploadTemplate ingests a template file. HTML and SVG become inline
// templates; PDF files are stored as binary assets.
func (tc TemplateController) UploadTemplate(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "No template file uploaded", util.GenerateErrorMessages(errors.New(ErrTemplateFileRequired), "file"), nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		tc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to open uploaded file", util.GenerateErrorMessages(err), nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		tc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to read uploaded file", util.GenerateErrorMessages(err), nil)
		return
	}

	created, err := tc.app.Templates.CreateFromFile(ctx, fileHeader.Filename, ctx.PostForm("name"), ctx.PostForm("description"), data)
	if err != nil {
		status := http.StatusBadRequest
		if !errors.Is(err, template.ErrUnsupportedFile) && !errors.Is(err, template.ErrNameRequired) && !errors.Is(err, template.ErrContentRequired) {
			status = http.StatusInternalServerError
		}
		util.ResponseFailed(ctx, status, "Failed to upload template", util.GenerateErrorMessages(err, "file"), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"template":     created,
		"placeholders": certwizard.Placeholders(created.Content),
	})
}

func (tc TemplateController) UpdateTemplate(ctx *gin.Context) {
	templateId := ctx.Params.ByName("templateId")
	if templateId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Template id is required", util.GenerateErrorMessages(errors.New(ErrTemplateIdRequired), "templateId"), nil)
		return
	}

	type Request struct {
		Name        string `json:"name" form:"name" binding:"required,strNotEmpty,cmax=100"`
		Description string `json:"description" form:"description" binding:"omitempty,cmax=500"`
		Type        string `json:"type" form:"type" binding:"required,oneof=html svg pdf"`
		Content     string `json:"content" form:"content"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		tc.app.Logger.Debugf("Invalid update template request: %v", err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	updated, err := tc.app.Templates.Update(ctx, templateId, template.Input{
		Name:        body.Name,
		Description: body.Description,
		Type:        constant.TemplateType(body.Type),
		Content:     body.Content,
	})
	if err != nil {
		util.ResponseFailed(ctx, templateErrorStatus(err), "Failed to update template", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{"template": updated})
}

func (tc TemplateController) DeleteTemplate(ctx *gin.Context) {
	templateId := ctx.Params.ByName("templateId")
	if templateId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Template id is required", util.GenerateErrorMessages(errors.New(ErrTemplateIdRequired), "templateId"), nil)
		return
	}

	if err := tc.app.Templates.Delete(ctx, templateId); err != nil {
		util.ResponseFailed(ctx, templateErrorStatus(err), "Failed to delete template", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

func (tc TemplateController) SelectTemplate(ctx *gin.Context) {
	templateId := ctx.Params.ByName("templateId")
	if templateId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Template id is required", util.GenerateErrorMessages(errors.New(ErrTemplateIdRequired), "templateId"), nil)
		return
	}

	if !tc.app.Store.SelectTemplate(templateId) {
		util.ResponseFailed(ctx, http.StatusNotFound, "Template not found", util.GenerateErrorMessages(template.ErrTemplateNotFound, "templateId"), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{"selectedTemplateId": templateId})
}

// PreviewTemplate renders a template against one uploaded participant.
// The participant index defaults to the stored preview cursor.
func (tc TemplateController) PreviewTemplate(ctx *gin.Context) {
	templateId := ctx.Params.ByName("templateId")
	if templateId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Template id is required", util.GenerateErrorMessages(errors.New(ErrTemplateIdRequired), "templateId"), nil)
		return
	}

	index := tc.app.Store.Snapshot().PreviewIndex
	if raw := ctx.Query("participant"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid participant index", util.GenerateErrorMessages(err, "participant"), nil)
			return
		}
		index = parsed
	}

	preview, err := tc.app.Templates.Preview(ctx, templateId, index)
	if err != nil {
		util.ResponseFailed(ctx, templateErrorStatus(err), "Failed to render preview", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{"preview": preview})
}

func templateErrorStatus(err error) int {
	switch {
	case errors.Is(err, template.ErrTemplateNotFound):
		return http.StatusNotFound
	case errors.Is(err, template.ErrStandardImmutable):
		return http.StatusForbidden
	case errors.Is(err, template.ErrNameRequired),
		errors.Is(err, template.ErrContentRequired),
		errors.Is(err, template.ErrInvalidType),
		errors.Is(err, template.ErrUnsupportedFile):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
