package appcontext

import (
	"certwizard/internal/config"
	"certwizard/internal/generator"
	"certwizard/internal/renderer"
	"certwizard/internal/store"
	"certwizard/internal/template"
	"certwizard/internal/wizard"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Application contains core dependencies for the app.
type Application struct {
	// Config holds application settings provided from .env file.
	Config *config.Config

	Logger *zap.SugaredLogger

	// Store holds the in-memory wizard session state.
	Store *store.WizardStore

	// Wizard guards step navigation over the store.
	Wizard *wizard.Controller

	// Templates manages the template collection and its asset objects.
	Templates *template.Manager

	// Generator drives awaited generation runs against the rendering service.
	Generator *generator.Orchestrator

	// Renderer is the HTTP client of the certificate-rendering service.
	Renderer *renderer.Client

	S3 *minio.Client
}
