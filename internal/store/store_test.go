package store

import (
	"reflect"
	"strings"
	"testing"

	"certwizard/internal/config"
	"certwizard/internal/constant"
	"certwizard/internal/model"
	"certwizard/pkg/certwizard"
)

func newTestStore() *WizardStore {
	return NewWizardStore(config.WizardConfig{MaxEmailRecipients: 90}, nil)
}

func TestSetParticipantsReplacesBatch(t *testing.T) {
	s := newTestStore()

	first := []certwizard.Participant{
		{FullName: "Ann", Email: "a@b.com", Role: certwizard.RoleWinner, Place: "1"},
	}
	s.SetParticipants(first, []string{"winner"}, []string{"1"})

	second := []certwizard.Participant{
		{FullName: "Lee", Email: "l@b.com", Role: certwizard.RoleSpeaker},
		{FullName: "Kim", Email: "k@b.com", Role: certwizard.RoleSpeaker},
	}
	s.SetParticipants(second, []string{"speaker"}, nil)

	snap := s.Snapshot()
	if !reflect.DeepEqual(snap.Participants, second) {
		t.Errorf("expected batch to be replaced wholesale, got %v", snap.Participants)
	}
	if !reflect.DeepEqual(snap.RolesUsed, []string{"speaker"}) {
		t.Errorf("unexpected roles summary: %v", snap.RolesUsed)
	}
}

func TestAddTemplateAssignsUniqueLocalId(t *testing.T) {
	s := newTestStore()

	a, err := s.AddTemplate(model.TemplateEntity{Name: "A", Type: constant.TemplateTypeHTML, Content: "<p>a</p>"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.AddTemplate(model.TemplateEntity{Name: "B", Type: constant.TemplateTypeHTML, Content: "<p>b</p>"})
	if err != nil {
		t.Fatal(err)
	}

	if a.ID == "" || b.ID == "" || a.ID == b.ID {
		t.Errorf("expected distinct non-empty ids, got %q and %q", a.ID, b.ID)
	}
	if !strings.HasPrefix(a.ID, constant.LocalTemplateIdPrefix) {
		t.Errorf("expected local id prefix, got %q", a.ID)
	}
	if !a.IsLocal() {
		t.Errorf("expected freshly added template to be local")
	}
}

func TestSelectedTemplateDerivedLookup(t *testing.T) {
	s := newTestStore()

	tmpl, err := s.AddTemplate(model.TemplateEntity{Name: "T1", Type: constant.TemplateTypeHTML, Content: "<p>x</p>"})
	if err != nil {
		t.Fatal(err)
	}

	if ok := s.SelectTemplate(tmpl.ID); !ok {
		t.Fatal("expected selection of existing template to succeed")
	}
	if ok := s.SelectTemplate("missing"); ok {
		t.Error("expected selection of unknown template to fail")
	}

	selected, ok := s.SelectedTemplate()
	if !ok || selected.ID != tmpl.ID {
		t.Fatalf("expected selected template %q, got %+v ok=%v", tmpl.ID, selected, ok)
	}
}

func TestDeleteSelectedTemplateClearsSelection(t *testing.T) {
	s := newTestStore()

	tmpl, err := s.AddTemplate(model.TemplateEntity{Name: "T1", Type: constant.TemplateTypeHTML, Content: "<p>x</p>"})
	if err != nil {
		t.Fatal(err)
	}
	s.SelectTemplate(tmpl.ID)

	removed, ok := s.DeleteTemplate(tmpl.ID)
	if !ok || removed.ID != tmpl.ID {
		t.Fatalf("expected deletion of %q, got %+v ok=%v", tmpl.ID, removed, ok)
	}

	if _, ok := s.SelectedTemplate(); ok {
		t.Error("expected selection to be cleared after deleting the selected template")
	}
}

func TestReplaceTemplateIdKeepsSelection(t *testing.T) {
	s := newTestStore()

	tmpl, err := s.AddTemplate(model.TemplateEntity{Name: "T1", Type: constant.TemplateTypeHTML, Content: "<p>x</p>"})
	if err != nil {
		t.Fatal(err)
	}
	s.SelectTemplate(tmpl.ID)

	if ok := s.ReplaceTemplateId(tmpl.ID, "backend-id-1"); !ok {
		t.Fatal("expected id replacement to succeed")
	}

	selected, ok := s.SelectedTemplate()
	if !ok || selected.ID != "backend-id-1" {
		t.Errorf("expected selection to follow the new id, got %+v ok=%v", selected, ok)
	}
}

func TestSetMaxRecipientsClampsCount(t *testing.T) {
	tests := []struct {
		name          string
		max           int
		expectedCount int
	}{
		{name: "Below cap", max: 50, expectedCount: 50},
		{name: "Above cap", max: 200, expectedCount: 90},
		{name: "Zero participants", max: 0, expectedCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore()
			s.SetMaxRecipients(tt.max)

			snap := s.Snapshot()
			if snap.RecipientCount != tt.expectedCount {
				t.Errorf("expected recipient count %d, got %d", tt.expectedCount, snap.RecipientCount)
			}
			if snap.MaxRecipients != tt.max {
				t.Errorf("expected max %d, got %d", tt.max, snap.MaxRecipients)
			}
		})
	}
}

func TestSetRecipientCountClamped(t *testing.T) {
	s := newTestStore()
	s.SetMaxRecipients(10)

	s.SetRecipientCount(25)
	if got := s.Snapshot().RecipientCount; got != 10 {
		t.Errorf("expected clamp to 10, got %d", got)
	}

	s.SetRecipientCount(-3)
	if got := s.Snapshot().RecipientCount; got != 0 {
		t.Errorf("expected clamp to 0, got %d", got)
	}
}

func TestSetPreviewIndexClamped(t *testing.T) {
	s := newTestStore()
	s.SetParticipants([]certwizard.Participant{
		{FullName: "Ann", Email: "a@b.com", Role: certwizard.RoleWinner},
		{FullName: "Lee", Email: "l@b.com", Role: certwizard.RoleSpeaker},
	}, nil, nil)

	s.SetPreviewIndex(5)
	if got := s.Snapshot().PreviewIndex; got != 1 {
		t.Errorf("expected preview index clamped to 1, got %d", got)
	}

	s.SetPreviewIndex(-1)
	if got := s.Snapshot().PreviewIndex; got != 0 {
		t.Errorf("expected preview index clamped to 0, got %d", got)
	}
}

func TestResetKeepsStandardTemplates(t *testing.T) {
	s := newTestStore()
	s.PutTemplate(model.TemplateEntity{ID: "standard-html", Name: "Standard", Type: constant.TemplateTypeHTML, Content: "<p>x</p>", IsStandard: true})

	user, err := s.AddTemplate(model.TemplateEntity{Name: "Mine", Type: constant.TemplateTypeSVG, Content: "<svg/>", AssetObject: "assets/mine.pdf"})
	if err != nil {
		t.Fatal(err)
	}
	s.SelectTemplate(user.ID)
	s.SetParticipants([]certwizard.Participant{{FullName: "Ann", Email: "a@b.com", Role: certwizard.RoleWinner}}, []string{"winner"}, nil)
	s.SetStep(constant.WizardStepGenerate)

	removed := s.Reset()

	if len(removed) != 1 || removed[0].ID != user.ID {
		t.Fatalf("expected the user template to be removed for asset release, got %v", removed)
	}

	snap := s.Snapshot()
	if len(snap.Templates) != 1 || !snap.Templates[0].IsStandard {
		t.Errorf("expected only the standard template to survive, got %v", snap.Templates)
	}
	if len(snap.Participants) != 0 || snap.SelectedTemplateId != "" {
		t.Errorf("expected participants and selection cleared, got %+v", snap)
	}
	if snap.CurrentStep != constant.WizardStepUpload {
		t.Errorf("expected step back to upload, got %q", snap.CurrentStep)
	}
	if !snap.EmailsEnabled || snap.RecipientCount != 90 {
		t.Errorf("expected email defaults restored, got %+v", snap)
	}
}

func TestResetKeepingTemplates(t *testing.T) {
	s := newTestStore()

	tmpl, err := s.AddTemplate(model.TemplateEntity{Name: "Mine", Type: constant.TemplateTypeHTML, Content: "<p>x</p>"})
	if err != nil {
		t.Fatal(err)
	}
	s.SetParticipants([]certwizard.Participant{{FullName: "Ann", Email: "a@b.com", Role: certwizard.RoleWinner}}, []string{"winner"}, nil)

	s.ResetKeepingTemplates()

	snap := s.Snapshot()
	if len(snap.Templates) != 1 || snap.Templates[0].ID != tmpl.ID {
		t.Errorf("expected template collection preserved, got %v", snap.Templates)
	}
	if len(snap.Participants) != 0 {
		t.Errorf("expected participants cleared, got %v", snap.Participants)
	}
}
