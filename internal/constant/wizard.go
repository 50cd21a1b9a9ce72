package constant

type WizardStep string

const (
	WizardStepUpload    WizardStep = "upload"
	WizardStepTemplates WizardStep = "templates"
	WizardStepGenerate  WizardStep = "generate"
)

// WizardStepOrder fixes the linear flow of the wizard.
var WizardStepOrder = []WizardStep{WizardStepUpload, WizardStepTemplates, WizardStepGenerate}

func (s WizardStep) Index() int {
	for i, step := range WizardStepOrder {
		if step == s {
			return i
		}
	}
	return -1
}
