package wizard

import (
	"errors"
	"fmt"

	"certwizard/internal/constant"
	"certwizard/internal/store"
	"go.uber.org/zap"
)

var (
	// ErrGenerationLocked is returned for backward navigation away from the
	// generate step; once there the flow is forward-only until a reset.
	ErrGenerationLocked = errors.New("cannot leave the generate step, restart the wizard instead")

	ErrStepDisabled = errors.New("step is not available yet")
)

// Controller enforces the linear upload → templates → generate flow. It owns
// no data of its own: every gate is derived from the injected store at the
// moment of navigation, so structural changes (participants cleared, selected
// template deleted) disable forward steps without any bookkeeping here.
type Controller struct {
	store  *store.WizardStore
	logger *zap.SugaredLogger
}

func NewController(store *store.WizardStore, logger *zap.SugaredLogger) *Controller {
	// For unit test
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Controller{store: store, logger: logger}
}

func (c *Controller) CurrentStep() constant.WizardStep {
	return c.store.Snapshot().CurrentStep
}

// StepEnabled reports whether a step is currently navigable, independent of
// where the user stands.
func (c *Controller) StepEnabled(step constant.WizardStep) bool {
	snap := c.store.Snapshot()

	switch step {
	case constant.WizardStepUpload:
		return true
	case constant.WizardStepTemplates:
		return len(snap.Participants) > 0
	case constant.WizardStepGenerate:
		if len(snap.Participants) == 0 || snap.SelectedTemplateId == "" {
			return false
		}
		// The selection may dangle after a deletion.
		_, ok := c.store.SelectedTemplate()
		return ok
	default:
		return false
	}
}

// EnabledSteps lists the navigable steps in wizard order, for UI display.
func (c *Controller) EnabledSteps() []constant.WizardStep {
	var steps []constant.WizardStep
	for _, step := range constant.WizardStepOrder {
		if c.StepEnabled(step) {
			steps = append(steps, step)
		}
	}
	return steps
}

// GoTo navigates to the given step if the state machine allows it. Later
// steps may always return to earlier ones, except away from generate:
// reaching generate locks the flow forward until the wizard is reset.
// Entering generate recomputes the recipient limit from the current
// participant count.
func (c *Controller) GoTo(step constant.WizardStep) error {
	if step.Index() < 0 {
		return fmt.Errorf("unknown wizard step %q", step)
	}

	current := c.store.Snapshot().CurrentStep
	if current == constant.WizardStepGenerate && step != constant.WizardStepGenerate {
		return ErrGenerationLocked
	}

	if !c.StepEnabled(step) {
		return ErrStepDisabled
	}

	if step == constant.WizardStepGenerate {
		c.store.SetMaxRecipients(c.store.ParticipantCount())
	}

	c.store.SetStep(step)
	c.logger.Debugf("Wizard moved from %q to %q", current, step)
	return nil
}

// Restart unlocks the flow and returns the whole session to the upload step,
// preserving the template collection.
func (c *Controller) Restart() {
	c.store.ResetKeepingTemplates()
}
