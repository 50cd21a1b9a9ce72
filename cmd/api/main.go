package main

import (
	"context"

	appcontext "certwizard/internal/app_context"
	"certwizard/internal/config"
	"certwizard/internal/controller"
	"certwizard/internal/env"
	filestorage "certwizard/internal/file_storage"
	"certwizard/internal/generator"
	"certwizard/internal/middleware"
	ratelimiter "certwizard/internal/rate_limiter"
	"certwizard/internal/renderer"
	"certwizard/internal/route"
	"certwizard/internal/store"
	"certwizard/internal/template"
	"certwizard/internal/util"
	"certwizard/internal/wizard"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

func main() {
	cfg := config.GetConfig()

	logger := util.NewLogger(cfg.ENV)
	logger.Debugf("Configuration: %+v \n", cfg)

	s3, err := filestorage.NewMinioClient(&cfg.Minio)
	if err != nil {
		logger.Error("Error connecting to minio")
		logger.Panic(err)
	}

	// Custom validation
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("strNotEmpty", util.StrNotEmpty); err != nil {
			return
		}
		if err = v.RegisterValidation("cmin", util.CustomMin); err != nil {
			return
		}
		if err = v.RegisterValidation("cmax", util.CustomMax); err != nil {
			return
		}
	}

	rateLimiter := ratelimiter.NewRateLimiter(cfg.RateLimiter, logger)

	wizardStore := store.NewWizardStore(cfg.Wizard, logger)
	rendererClient := renderer.NewClient(cfg.Renderer, logger)
	assets := filestorage.NewMinioAssetStorage(s3, cfg.Minio.BUCKET)
	templates := template.NewManager(wizardStore, assets, rendererClient, logger)
	wizardController := wizard.NewController(wizardStore, logger)
	orchestrator := generator.NewOrchestrator(wizardStore, rendererClient, logger)

	template.SeedDefaults(wizardStore)
	if err := templates.LoadFromRenderer(context.Background()); err != nil {
		logger.Warnf("Failed to load templates from the rendering service: %v", err)
	}

	app := appcontext.Application{
		Config:    &cfg,
		Logger:    logger,
		Store:     wizardStore,
		Wizard:    wizardController,
		Templates: templates,
		Generator: orchestrator,
		Renderer:  rendererClient,
		S3:        s3,
	}

	_middleware := middleware.NewMiddleware(&app, rateLimiter)

	if cfg.IsProduction() {
		logger.Info("Running in production mode")
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// docs: https://github.com/gin-contrib/cors?tab=readme-ov-file#using-defaultconfig-as-start-point
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Requested-With", "Accept"}
	r.Use(cors.New(corsConfig))
	r.Use(_middleware.RequestIdMiddleware)
	r.Use(_middleware.RateLimiterMiddleware)

	_controller := controller.NewController(&app)

	r.GET("/", _controller.Index.Index)

	rApi := r.Group("/api")

	route.V1_Participants(rApi, _controller.Participant)
	route.V1_Templates(rApi, _controller.Template)
	route.V1_Wizard(rApi, _controller.Wizard)
	route.V1_Certificates(rApi, _controller.Certificate)

	if err := r.Run("0.0.0.0:" + app.Config.Port); err != nil {
		logger.Panic("Error running server: %v \n", err)
	}
}
