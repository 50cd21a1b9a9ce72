package controller

import (
	appcontext "certwizard/internal/app_context"
)

type baseController struct {
	app *appcontext.Application
}

type Controller struct {
	Index       *IndexController
	Participant *ParticipantController
	Template    *TemplateController
	Wizard      *WizardController
	Certificate *CertificateController
}

func newBaseController(app *appcontext.Application) *baseController {
	return &baseController{app: app}
}

func NewController(app *appcontext.Application) *Controller {
	bc := newBaseController(app)

	return &Controller{
		Index:       &IndexController{baseController: bc},
		Participant: &ParticipantController{baseController: bc},
		Template:    &TemplateController{baseController: bc},
		Wizard:      &WizardController{baseController: bc},
		Certificate: &CertificateController{baseController: bc},
	}
}
