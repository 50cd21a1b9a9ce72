package controller

import (
	"errors"
	"io"
	"net/http"

	"certwizard/internal/util"
	"certwizard/pkg/certwizard"
	"github.com/gin-gonic/gin"
)

type ParticipantController struct {
	*baseController
}

const (
	ErrParticipantFileRequired = "participant file is required"
	ErrParticipantFileTooLarge = "participant file must be at most 5 MB"
)

// 5 MB is plenty for a participant list.
const maxParticipantFileSize = 5 << 20

// UploadParticipants parses a CSV or XLSX participant list, validates the
// rows and replaces the stored batch with the valid ones. Invalid rows are
// counted, never returned.
func (pc ParticipantController) UploadParticipants(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		pc.app.Logger.Debugf("No participant file uploaded: %v", err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "No participant file uploaded", util.GenerateErrorMessages(errors.New(ErrParticipantFileRequired), "file"), nil)
		return
	}

	if fileHeader.Size > maxParticipantFileSize {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Participant file too large", util.GenerateErrorMessages(errors.New(ErrParticipantFileTooLarge), "file"), nil)
		return
	}

	format, err := certwizard.FormatFromFilename(fileHeader.Filename)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Unsupported file format", util.GenerateErrorMessages(err, "file"), nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to open uploaded file", util.GenerateErrorMessages(err), nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to read uploaded file", util.GenerateErrorMessages(err), nil)
		return
	}

	rows, err := certwizard.ParseRecords(data, format)
	if err != nil {
		pc.app.Logger.Debugf("Failed to parse participant file %q: %v", fileHeader.Filename, err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Failed to parse participant file", util.GenerateErrorMessages(err, "file"), nil)
		return
	}

	participants, summary, err := certwizard.ValidateBatch(rows)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "No valid participants found", util.GenerateErrorMessages(err, "file"), nil)
		return
	}

	pc.app.Store.SetParticipants(participants, summary.Roles, summary.Places)
	pc.app.Store.SetUploadedFile(fileHeader.Filename)
	pc.app.Logger.Infof("Uploaded %d participant(s) from %q, %d row(s) rejected", summary.Accepted, fileHeader.Filename, summary.Rejected)

	util.ResponseSuccess(ctx, gin.H{
		"file":    fileHeader.Filename,
		"summary": summary,
	})
}

func (pc ParticipantController) GetParticipants(ctx *gin.Context) {
	snap := pc.app.Store.Snapshot()

	util.ResponseSuccess(ctx, gin.H{
		"file":         snap.UploadedFile,
		"participants": snap.Participants,
		"roles":        snap.RolesUsed,
		"places":       snap.PlacesUsed,
	})
}

// ClearParticipants drops the uploaded batch and sends the wizard back to
// the upload step. Templates survive.
func (pc ParticipantController) ClearParticipants(ctx *gin.Context) {
	pc.app.Wizard.Restart()
	util.ResponseSuccess(ctx, nil)
}
