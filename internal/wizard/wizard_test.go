package wizard

import (
	"errors"
	"reflect"
	"testing"

	"certwizard/internal/config"
	"certwizard/internal/constant"
	"certwizard/internal/model"
	"certwizard/internal/store"
	"certwizard/pkg/certwizard"
)

func newTestController(t *testing.T) (*Controller, *store.WizardStore) {
	t.Helper()
	s := store.NewWizardStore(config.WizardConfig{MaxEmailRecipients: 90}, nil)
	return NewController(s, nil), s
}

func loadParticipants(s *store.WizardStore, n int) {
	participants := make([]certwizard.Participant, n)
	for i := range participants {
		participants[i] = certwizard.Participant{FullName: "P", Email: "p@x.com", Role: certwizard.RoleParticipant}
	}
	s.SetParticipants(participants, []string{"participant"}, nil)
}

func addSelectedTemplate(t *testing.T, s *store.WizardStore) model.TemplateEntity {
	t.Helper()
	tmpl, err := s.AddTemplate(model.TemplateEntity{Name: "T", Type: constant.TemplateTypeHTML, Content: "<p>x</p>"})
	if err != nil {
		t.Fatal(err)
	}
	s.SelectTemplate(tmpl.ID)
	return tmpl
}

func TestInitialGating(t *testing.T) {
	c, _ := newTestController(t)

	if got := c.CurrentStep(); got != constant.WizardStepUpload {
		t.Fatalf("expected initial step upload, got %q", got)
	}
	if c.StepEnabled(constant.WizardStepTemplates) {
		t.Error("templates step must be disabled before any participants are set")
	}
	if c.StepEnabled(constant.WizardStepGenerate) {
		t.Error("generate step must be disabled before any participants are set")
	}
	if !reflect.DeepEqual(c.EnabledSteps(), []constant.WizardStep{constant.WizardStepUpload}) {
		t.Errorf("unexpected enabled steps: %v", c.EnabledSteps())
	}
}

func TestTemplatesStepUnlocksWithParticipants(t *testing.T) {
	c, s := newTestController(t)

	if err := c.GoTo(constant.WizardStepTemplates); !errors.Is(err, ErrStepDisabled) {
		t.Fatalf("expected ErrStepDisabled, got %v", err)
	}

	loadParticipants(s, 1)
	if !c.StepEnabled(constant.WizardStepTemplates) {
		t.Fatal("templates step should be enabled after participants are set")
	}
	if err := c.GoTo(constant.WizardStepTemplates); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.ResetKeepingTemplates()
	if c.StepEnabled(constant.WizardStepTemplates) {
		t.Error("templates step should be disabled again after reset")
	}
}

func TestGenerateStepRequiresSelection(t *testing.T) {
	c, s := newTestController(t)
	loadParticipants(s, 2)

	if c.StepEnabled(constant.WizardStepGenerate) {
		t.Fatal("generate step must stay disabled without a selected template")
	}

	addSelectedTemplate(t, s)
	if !c.StepEnabled(constant.WizardStepGenerate) {
		t.Fatal("generate step should be enabled with participants and a selection")
	}
}

func TestDeletingSelectedTemplateDisablesGenerate(t *testing.T) {
	c, s := newTestController(t)
	loadParticipants(s, 1)
	tmpl := addSelectedTemplate(t, s)

	if !c.StepEnabled(constant.WizardStepGenerate) {
		t.Fatal("generate step should be enabled")
	}

	s.DeleteTemplate(tmpl.ID)
	if c.StepEnabled(constant.WizardStepGenerate) {
		t.Error("generate step must be disabled once the selected template is deleted")
	}
}

func TestEnteringGenerateClampsRecipients(t *testing.T) {
	c, s := newTestController(t)
	loadParticipants(s, 50)
	addSelectedTemplate(t, s)

	if err := c.GoTo(constant.WizardStepTemplates); err != nil {
		t.Fatal(err)
	}
	if err := c.GoTo(constant.WizardStepGenerate); err != nil {
		t.Fatal(err)
	}

	snap := s.Snapshot()
	if snap.MaxRecipients != 50 {
		t.Errorf("expected max recipients 50, got %d", snap.MaxRecipients)
	}
	if snap.RecipientCount != 50 {
		t.Errorf("expected recipient count min(90, 50)=50, got %d", snap.RecipientCount)
	}
}

func TestGenerateStepIsForwardOnly(t *testing.T) {
	c, s := newTestController(t)
	loadParticipants(s, 1)
	addSelectedTemplate(t, s)

	if err := c.GoTo(constant.WizardStepGenerate); err != nil {
		t.Fatal(err)
	}

	if err := c.GoTo(constant.WizardStepUpload); !errors.Is(err, ErrGenerationLocked) {
		t.Errorf("expected ErrGenerationLocked going back to upload, got %v", err)
	}
	if err := c.GoTo(constant.WizardStepTemplates); !errors.Is(err, ErrGenerationLocked) {
		t.Errorf("expected ErrGenerationLocked going back to templates, got %v", err)
	}

	c.Restart()
	if got := c.CurrentStep(); got != constant.WizardStepUpload {
		t.Errorf("expected restart to land on upload, got %q", got)
	}
}

func TestBackwardNavigationBeforeGenerate(t *testing.T) {
	c, s := newTestController(t)
	loadParticipants(s, 1)

	if err := c.GoTo(constant.WizardStepTemplates); err != nil {
		t.Fatal(err)
	}
	if err := c.GoTo(constant.WizardStepUpload); err != nil {
		t.Errorf("going back from templates to upload should be allowed, got %v", err)
	}
}

func TestGoToUnknownStep(t *testing.T) {
	c, _ := newTestController(t)
	if err := c.GoTo(constant.WizardStep("review")); err == nil {
		t.Error("expected error for unknown step")
	}
}
