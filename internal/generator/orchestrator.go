package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"certwizard/internal/model"
	"certwizard/internal/renderer"
	"certwizard/internal/store"
	"go.uber.org/zap"
)

var (
	ErrNoParticipants       = errors.New("upload a participant list before generating certificates")
	ErrNoTemplateSelected   = errors.New("select a certificate template before generating")
	ErrNoRecipients         = errors.New("email sending is enabled but no recipients are selected")
	ErrTooManyRecipients    = errors.New("recipient count exceeds the number of uploaded participants")
	ErrGenerationInProgress = errors.New("a generation request is already running")
	ErrNothingToDownload    = errors.New("no generated batch is available for download")
)

// Renderer is the slice of the rendering-service client the orchestrator
// depends on. *renderer.Client satisfies it; tests inject a fake.
type Renderer interface {
	CreateTemplate(ctx context.Context, t model.TemplateEntity) (string, error)
	GenerateCertificates(ctx context.Context, req renderer.GenerateRequest) (renderer.GenerateResult, error)
	DownloadCertificates(ctx context.Context, batchId string) (io.ReadCloser, error)
}

// Orchestrator drives one awaited generation run: it validates the session
// preconditions, persists a still-local template to the rendering service,
// fires the generation request and remembers the batch for download.
type Orchestrator struct {
	store    *store.WizardStore
	renderer Renderer
	logger   *zap.SugaredLogger

	mu          sync.Mutex
	inFlight    bool
	lastBatchId string
}

func NewOrchestrator(store *store.WizardStore, renderer Renderer, logger *zap.SugaredLogger) *Orchestrator {
	// For unit test
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Orchestrator{store: store, renderer: renderer, logger: logger}
}

// Result reports one finished generation run.
type Result struct {
	Count   int    `json:"count"`
	BatchId string `json:"batchId"`
}

// Generate runs a full generation pass against the rendering service and
// blocks until it finishes. Only one run may be in flight at a time; a second
// call while one is running fails with ErrGenerationInProgress.
func (o *Orchestrator) Generate(ctx context.Context) (Result, error) {
	if err := o.begin(); err != nil {
		return Result{}, err
	}
	defer o.end()

	snap := o.store.Snapshot()
	if err := checkPreconditions(snap); err != nil {
		return Result{}, err
	}

	selected, ok := o.store.SelectedTemplate()
	if !ok {
		return Result{}, ErrNoTemplateSelected
	}

	// A template the rendering service has never seen must be persisted
	// first; the service's identifier replaces the local one everywhere.
	if selected.IsLocal() {
		assignedId, err := o.renderer.CreateTemplate(ctx, selected)
		if err != nil {
			return Result{}, fmt.Errorf("failed to persist template before generation: %w", err)
		}

		o.store.ReplaceTemplateId(selected.ID, assignedId)
		o.logger.Infof("Persisted local template %q as %q", selected.ID, assignedId)
		selected.ID = assignedId
	}

	result, err := o.renderer.GenerateCertificates(ctx, renderer.GenerateRequest{
		TemplateId:    selected.ID,
		EventName:     snap.Event.Name,
		EventLocation: snap.Event.Location,
		IssueDate:     snap.Event.IssueDate,
		SendEmail:     snap.EmailsEnabled,
	})
	if err != nil {
		return Result{}, err
	}

	o.mu.Lock()
	o.lastBatchId = result.BatchId
	o.mu.Unlock()

	o.logger.Infof("Generated %d certificate(s), batch %q", result.Count, result.BatchId)
	return Result{Count: result.Count, BatchId: result.BatchId}, nil
}

// Download streams the archive of the given batch, defaulting to the most
// recently generated one.
func (o *Orchestrator) Download(ctx context.Context, batchId string) (io.ReadCloser, error) {
	if batchId == "" {
		o.mu.Lock()
		batchId = o.lastBatchId
		o.mu.Unlock()
	}
	if batchId == "" {
		return nil, ErrNothingToDownload
	}

	return o.renderer.DownloadCertificates(ctx, batchId)
}

func (o *Orchestrator) LastBatchId() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastBatchId
}

func (o *Orchestrator) begin() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.inFlight {
		return ErrGenerationInProgress
	}
	o.inFlight = true
	return nil
}

func (o *Orchestrator) end() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.inFlight = false
}

// checkPreconditions enforces the generate-step gates. Each failure carries
// its own message so the caller can surface it verbatim.
func checkPreconditions(snap store.Snapshot) error {
	if len(snap.Participants) == 0 {
		return ErrNoParticipants
	}
	if snap.SelectedTemplateId == "" {
		return ErrNoTemplateSelected
	}
	if snap.EmailsEnabled && snap.RecipientCount == 0 {
		return ErrNoRecipients
	}
	if snap.EmailsEnabled && snap.RecipientCount > len(snap.Participants) {
		return ErrTooManyRecipients
	}
	return nil
}
