package template

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"certwizard/internal/constant"
	"certwizard/internal/model"
	"certwizard/internal/store"
	"certwizard/pkg/certwizard"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

var (
	ErrNameRequired      = errors.New("template name is required")
	ErrContentRequired   = errors.New("template content must not be empty")
	ErrInvalidType       = errors.New("template type must be html, svg or pdf")
	ErrStandardImmutable = errors.New("standard templates cannot be edited or deleted")
	ErrTemplateNotFound  = errors.New("template not found")
	ErrUnsupportedFile   = errors.New("template file must be .html, .svg or .pdf")
)

// AssetStorage owns binary template assets. Implemented by MinIO in
// production; tests inject a fake.
type AssetStorage interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, objectName string) error
	PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// Mirror is the slice of the rendering-service API the manager uses to keep
// non-local templates in sync. Local templates are persisted lazily by the
// generation orchestrator, not here.
type Mirror interface {
	ListTemplates(ctx context.Context) ([]model.TemplateEntity, error)
	UpdateTemplate(ctx context.Context, t model.TemplateEntity) error
	DeleteTemplate(ctx context.Context, id string) error
}

// Manager performs CRUD over the store's template collection, ingests
// template files and releases asset objects when entities go away.
type Manager struct {
	store  *store.WizardStore
	assets AssetStorage
	mirror Mirror
	logger *zap.SugaredLogger
}

func NewManager(store *store.WizardStore, assets AssetStorage, mirror Mirror, logger *zap.SugaredLogger) *Manager {
	// For unit test
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Manager{store: store, assets: assets, mirror: mirror, logger: logger}
}

type Input struct {
	Name        string
	Description string
	Type        constant.TemplateType
	Content     string
}

func (in Input) validate(hasAsset bool) error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrNameRequired
	}
	if !constant.ValidTemplateTypes[in.Type] {
		return ErrInvalidType
	}

	switch in.Type {
	case constant.TemplateTypeHTML:
		if strings.TrimSpace(in.Content) == "" {
			return ErrContentRequired
		}
	case constant.TemplateTypeSVG:
		if strings.TrimSpace(in.Content) == "" && !hasAsset {
			return ErrContentRequired
		}
	}

	return nil
}

// Create stores a new user template from inline markup.
func (m *Manager) Create(ctx context.Context, in Input) (model.TemplateEntity, error) {
	if err := in.validate(false); err != nil {
		return model.TemplateEntity{}, err
	}

	created, err := m.store.AddTemplate(model.TemplateEntity{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Type:        in.Type,
		Content:     in.Content,
	})
	if err != nil {
		return model.TemplateEntity{}, err
	}

	m.logger.Debugf("Created template %q (%s)", created.Name, created.ID)
	return created, nil
}

// CreateFromFile ingests an uploaded template file. HTML and SVG files are
// read and stored inline; PDF files are kept as an asset object referenced
// by the entity so they can be previewed out of process.
func (m *Manager) CreateFromFile(ctx context.Context, filename, name, description string, data []byte) (model.TemplateEntity, error) {
	if strings.TrimSpace(name) == "" {
		name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".html":
		return m.Create(ctx, Input{Name: name, Description: description, Type: constant.TemplateTypeHTML, Content: string(data)})
	case ".svg":
		return m.Create(ctx, Input{Name: name, Description: description, Type: constant.TemplateTypeSVG, Content: string(data)})
	case ".pdf":
		return m.createWithAsset(ctx, filename, name, description, data)
	default:
		return model.TemplateEntity{}, ErrUnsupportedFile
	}
}

func (m *Manager) createWithAsset(ctx context.Context, filename, name, description string, data []byte) (model.TemplateEntity, error) {
	suffix, err := gonanoid.New()
	if err != nil {
		return model.TemplateEntity{}, err
	}

	objectName := fmt.Sprintf("assets/%s_%s", suffix, filepath.Base(filename))
	if err := m.assets.Upload(ctx, objectName, bytes.NewReader(data), int64(len(data)), "application/pdf"); err != nil {
		return model.TemplateEntity{}, fmt.Errorf("failed to upload template asset: %w", err)
	}

	created, err := m.store.AddTemplate(model.TemplateEntity{
		Name:        strings.TrimSpace(name),
		Description: description,
		Type:        constant.TemplateTypePDF,
		AssetObject: objectName,
	})
	if err != nil {
		// do not leak the object when the entity was never stored
		if removeErr := m.assets.Remove(ctx, objectName); removeErr != nil {
			m.logger.Errorf("Failed to remove orphaned asset %q: %v", objectName, removeErr)
		}
		return model.TemplateEntity{}, err
	}

	return created, nil
}

// Update edits an existing user template. Standard templates are immutable.
// Non-local templates are mirrored to the rendering service best-effort.
func (m *Manager) Update(ctx context.Context, id string, in Input) (model.TemplateEntity, error) {
	existing, ok := m.store.Template(id)
	if !ok {
		return model.TemplateEntity{}, ErrTemplateNotFound
	}
	if existing.IsStandard {
		return model.TemplateEntity{}, ErrStandardImmutable
	}

	if err := in.validate(existing.HasAsset()); err != nil {
		return model.TemplateEntity{}, err
	}

	updated := existing
	updated.Name = strings.TrimSpace(in.Name)
	updated.Description = in.Description
	updated.Type = in.Type
	updated.Content = in.Content

	// Switching away from an asset-backed template releases the object.
	if existing.HasAsset() && updated.Type != constant.TemplateTypePDF {
		if err := m.assets.Remove(ctx, existing.AssetObject); err != nil {
			m.logger.Errorf("Failed to remove asset %q: %v", existing.AssetObject, err)
		}
		updated.AssetObject = ""
	}

	if !m.store.UpdateTemplate(updated) {
		return model.TemplateEntity{}, ErrTemplateNotFound
	}

	if m.mirror != nil && !updated.IsLocal() {
		if err := m.mirror.UpdateTemplate(ctx, updated); err != nil {
			m.logger.Errorf("Failed to mirror template update %q: %v", updated.ID, err)
		}
	}

	return updated, nil
}

// Delete removes a user template, releases its asset object and clears a
// selection pointing at it (the store handles the selection).
func (m *Manager) Delete(ctx context.Context, id string) error {
	existing, ok := m.store.Template(id)
	if !ok {
		return ErrTemplateNotFound
	}
	if existing.IsStandard {
		return ErrStandardImmutable
	}

	removed, ok := m.store.DeleteTemplate(id)
	if !ok {
		return ErrTemplateNotFound
	}

	m.releaseAsset(ctx, removed)

	if m.mirror != nil && !removed.IsLocal() {
		if err := m.mirror.DeleteTemplate(ctx, removed.ID); err != nil {
			m.logger.Errorf("Failed to mirror template deletion %q: %v", removed.ID, err)
		}
	}

	return nil
}

// ReleaseAssets removes the asset objects of templates that were dropped in
// bulk, e.g. by a full wizard reset.
func (m *Manager) ReleaseAssets(ctx context.Context, templates []model.TemplateEntity) {
	for _, t := range templates {
		m.releaseAsset(ctx, t)
	}
}

func (m *Manager) releaseAsset(ctx context.Context, t model.TemplateEntity) {
	if !t.HasAsset() {
		return
	}
	if err := m.assets.Remove(ctx, t.AssetObject); err != nil {
		m.logger.Errorf("Failed to remove asset %q of template %q: %v", t.AssetObject, t.ID, err)
	}
}

// LoadFromRenderer merges the rendering service's template collection into
// the store. Called at startup; a failure leaves only the seeded standard
// templates available, which is not fatal.
func (m *Manager) LoadFromRenderer(ctx context.Context) error {
	if m.mirror == nil {
		return nil
	}

	templates, err := m.mirror.ListTemplates(ctx)
	if err != nil {
		return err
	}

	for _, t := range templates {
		m.store.PutTemplate(t)
	}

	m.logger.Infof("Loaded %d template(s) from the rendering service", len(templates))
	return nil
}

// AssetURL returns a short-lived download URL for an asset-backed template.
func (m *Manager) AssetURL(ctx context.Context, id string) (string, error) {
	t, ok := m.store.Template(id)
	if !ok {
		return "", ErrTemplateNotFound
	}
	if !t.HasAsset() {
		return "", fmt.Errorf("template %q has no asset", id)
	}

	return m.assets.PresignedURL(ctx, t.AssetObject, 60*time.Minute)
}

// Preview renders the template for one participant. HTML templates get
// {{field}} substitution with the participant and event fields; SVG markup
// is returned as-is; asset-backed templates preview through their asset URL.
func (m *Manager) Preview(ctx context.Context, id string, participantIndex int) (string, error) {
	t, ok := m.store.Template(id)
	if !ok {
		return "", ErrTemplateNotFound
	}

	if t.Type == constant.TemplateTypePDF {
		return m.AssetURL(ctx, id)
	}

	if t.Type == constant.TemplateTypeSVG {
		return t.Content, nil
	}

	snap := m.store.Snapshot()
	var participant certwizard.Participant
	if participantIndex >= 0 && participantIndex < len(snap.Participants) {
		participant = snap.Participants[participantIndex]
	}

	fields := certwizard.ParticipantFields(participant, snap.Event.Name, snap.Event.Location, snap.Event.IssueDate)
	return certwizard.RenderTemplate(t.Content, fields), nil
}
