package store

import (
	"sync"

	"certwizard/internal/config"
	"certwizard/internal/constant"
	"certwizard/internal/model"
	"certwizard/pkg/certwizard"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

// WizardStore holds all session state of the wizard: the uploaded batch, the
// template collection, the selection and the generate-step settings. It is a
// single injected instance mutated only through its named operations; every
// operation is atomic from the caller's perspective.
//
// Nothing here is persisted. Losing the state on restart is accepted.
type WizardStore struct {
	mu     sync.Mutex
	logger *zap.SugaredLogger

	// Upper bound for one email-sending batch, from config (default 90).
	recipientCap int

	uploadedFile string
	participants []certwizard.Participant
	rolesUsed    []string
	placesUsed   []string

	templates          []model.TemplateEntity
	selectedTemplateId string

	emailsEnabled  bool
	recipientCount int
	maxRecipients  int

	event        model.EventDetails
	previewIndex int
	currentStep  constant.WizardStep
}

func NewWizardStore(cfg config.WizardConfig, logger *zap.SugaredLogger) *WizardStore {
	limit := cfg.MaxEmailRecipients
	if limit <= 0 {
		limit = 90
	}

	// For unit test
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &WizardStore{
		logger:         logger,
		recipientCap:   limit,
		emailsEnabled:  true,
		recipientCount: limit,
		currentStep:    constant.WizardStepUpload,
	}
}

// SetParticipants replaces the participant batch wholesale together with its
// derived role/place summary and resets the preview cursor.
func (s *WizardStore) SetParticipants(participants []certwizard.Participant, roles, places []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.participants = append([]certwizard.Participant(nil), participants...)
	s.rolesUsed = append([]string(nil), roles...)
	s.placesUsed = append([]string(nil), places...)
	s.previewIndex = 0
}

func (s *WizardStore) SetUploadedFile(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploadedFile = name
}

// AddTemplate stores the template under a freshly assigned identifier and
// returns the stored entity. Callers must not rely on the identifier format,
// only on its uniqueness; the local prefix is what marks templates the
// rendering service has not seen yet.
func (s *WizardStore) AddTemplate(t model.TemplateEntity) (model.TemplateEntity, error) {
	id, err := gonanoid.New()
	if err != nil {
		return model.TemplateEntity{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = constant.LocalTemplateIdPrefix + id
	s.templates = append(s.templates, t)
	return t, nil
}

// PutTemplate stores a template that already carries an identifier, e.g. one
// loaded from the rendering service or seeded at startup. An existing entry
// with the same identifier is replaced.
func (s *WizardStore) PutTemplate(t model.TemplateEntity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.templates {
		if s.templates[i].ID == t.ID {
			s.templates[i] = t
			return
		}
	}
	s.templates = append(s.templates, t)
}

// UpdateTemplate replaces the stored entity with the same identifier and
// reports whether it existed.
func (s *WizardStore) UpdateTemplate(t model.TemplateEntity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.templates {
		if s.templates[i].ID == t.ID {
			s.templates[i] = t
			return true
		}
	}
	return false
}

// ReplaceTemplateId rebinds a stored template to a new identifier, keeping a
// current selection pointed at it. Used when the rendering service assigns
// the authoritative id to a previously local template.
func (s *WizardStore) ReplaceTemplateId(oldId, newId string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.templates {
		if s.templates[i].ID == oldId {
			s.templates[i].ID = newId
			if s.selectedTemplateId == oldId {
				s.selectedTemplateId = newId
			}
			return true
		}
	}
	return false
}

// DeleteTemplate removes the entity and reports the removed copy so the
// caller can release any attached asset object. Deleting the currently
// selected template clears the selection.
func (s *WizardStore) DeleteTemplate(id string) (model.TemplateEntity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.templates {
		if s.templates[i].ID == id {
			removed := s.templates[i]
			s.templates = append(s.templates[:i], s.templates[i+1:]...)
			if s.selectedTemplateId == id {
				s.selectedTemplateId = ""
			}
			return removed, true
		}
	}
	return model.TemplateEntity{}, false
}

// SelectTemplate records the selection and reports whether the identifier
// refers to a stored template.
func (s *WizardStore) SelectTemplate(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.templates {
		if s.templates[i].ID == id {
			s.selectedTemplateId = id
			return true
		}
	}
	return false
}

// SelectedTemplate is a derived lookup. It returns false when nothing is
// selected or the selection refers to a template that no longer exists;
// callers must treat that as "generate step disabled".
func (s *WizardStore) SelectedTemplate() (model.TemplateEntity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selectedTemplateId == "" {
		return model.TemplateEntity{}, false
	}
	for i := range s.templates {
		if s.templates[i].ID == s.selectedTemplateId {
			return s.templates[i], true
		}
	}
	return model.TemplateEntity{}, false
}

func (s *WizardStore) Template(id string) (model.TemplateEntity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.templates {
		if s.templates[i].ID == id {
			return s.templates[i], true
		}
	}
	return model.TemplateEntity{}, false
}

func (s *WizardStore) Templates() []model.TemplateEntity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.TemplateEntity(nil), s.templates...)
}

func (s *WizardStore) Participants() []certwizard.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]certwizard.Participant(nil), s.participants...)
}

func (s *WizardStore) ParticipantCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.participants)
}

func (s *WizardStore) SetEmailsEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emailsEnabled = enabled
}

// SetRecipientCount stores the requested count clamped into
// [0, maxRecipients] when a maximum is known.
func (s *WizardStore) SetRecipientCount(count int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if count < 0 {
		count = 0
	}
	if s.maxRecipients > 0 && count > s.maxRecipients {
		count = s.maxRecipients
	}
	s.recipientCount = count
}

// SetMaxRecipients records the number of selectable recipients (the current
// participant count) and clamps the default recipient count to
// min(cap, max).
func (s *WizardStore) SetMaxRecipients(max int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if max < 0 {
		max = 0
	}
	s.maxRecipients = max

	count := s.recipientCap
	if max < count {
		count = max
	}
	s.recipientCount = count
}

func (s *WizardStore) SetEventName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.event.Name = name
}

func (s *WizardStore) SetEventLocation(location string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.event.Location = location
}

func (s *WizardStore) SetEventIssueDate(issueDate string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.event.IssueDate = issueDate
}

// SetPreviewIndex clamps the preview cursor into the participant range.
func (s *WizardStore) SetPreviewIndex(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 {
		index = 0
	}
	if max := len(s.participants) - 1; index > max && max >= 0 {
		index = max
	}
	s.previewIndex = index
}

func (s *WizardStore) SetStep(step constant.WizardStep) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentStep = step
}

// Reset clears the whole session: participants, selection, event details and
// generate-step settings. User-created templates are removed and returned so
// the caller can release their asset objects; standard templates survive.
func (s *WizardStore) Reset() []model.TemplateEntity {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []model.TemplateEntity
	kept := s.templates[:0]
	for _, t := range s.templates {
		if t.IsStandard {
			kept = append(kept, t)
		} else {
			removed = append(removed, t)
		}
	}
	s.templates = kept

	s.resetSessionLocked()
	s.logger.Debugf("Wizard state reset, removed %d user template(s)", len(removed))
	return removed
}

// ResetKeepingTemplates clears the uploaded batch and the wizard progress
// but preserves the full template collection.
func (s *WizardStore) ResetKeepingTemplates() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetSessionLocked()
}

func (s *WizardStore) resetSessionLocked() {
	s.uploadedFile = ""
	s.participants = nil
	s.rolesUsed = nil
	s.placesUsed = nil
	s.selectedTemplateId = ""
	s.emailsEnabled = true
	s.recipientCount = s.recipientCap
	s.maxRecipients = 0
	s.event = model.EventDetails{}
	s.previewIndex = 0
	s.currentStep = constant.WizardStepUpload
}

// Snapshot is a consistent read of the session for response building.
type Snapshot struct {
	UploadedFile       string
	Participants       []certwizard.Participant
	RolesUsed          []string
	PlacesUsed         []string
	Templates          []model.TemplateEntity
	SelectedTemplateId string
	EmailsEnabled      bool
	RecipientCount     int
	MaxRecipients      int
	Event              model.EventDetails
	PreviewIndex       int
	CurrentStep        constant.WizardStep
}

func (s *WizardStore) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		UploadedFile:       s.uploadedFile,
		Participants:       append([]certwizard.Participant(nil), s.participants...),
		RolesUsed:          append([]string(nil), s.rolesUsed...),
		PlacesUsed:         append([]string(nil), s.placesUsed...),
		Templates:          append([]model.TemplateEntity(nil), s.templates...),
		SelectedTemplateId: s.selectedTemplateId,
		EmailsEnabled:      s.emailsEnabled,
		RecipientCount:     s.recipientCount,
		MaxRecipients:      s.maxRecipients,
		Event:              s.event,
		PreviewIndex:       s.previewIndex,
		CurrentStep:        s.currentStep,
	}
}
