package config

import (
	"strings"
	"time"

	"certwizard/internal/env"
)

type Config struct {
	Port        string
	ENV         string
	RateLimiter RateLimiterConfig
	Minio       MinioConfig
	Renderer    RendererConfig
	Wizard      WizardConfig
}

type RateLimiterConfig struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

type MinioConfig struct {
	ENDPOINT   string
	ACCESS_KEY string
	SECRET_KEY string
	BUCKET     string
	USE_SSL    bool
}

// RendererConfig points at the certificate-rendering service that performs
// the actual PDF generation, zipping and email delivery.
type RendererConfig struct {
	BaseURL string
	Timeout time.Duration
}

type WizardConfig struct {
	// Default upper bound for one email-sending batch. The effective limit
	// is min(MaxEmailRecipients, participant count).
	MaxEmailRecipients int
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.ENV, "production")
}

func GetConfig() Config {
	rateLimitTimeFrame, err := time.ParseDuration(env.GetString("RATE_LIMIT_TIME_FRAME", "1m"))
	if err != nil {
		rateLimitTimeFrame = 60 * time.Second
	}

	rendererTimeout, err := time.ParseDuration(env.GetString("RENDERER_TIMEOUT", "2m"))
	if err != nil {
		rendererTimeout = 2 * time.Minute
	}

	return Config{
		Port: env.GetString("PORT", "8080"),
		ENV:  env.GetString("ENV", "development"),
		// By default if not specified, we allow 5000 requests per minute on all routes
		RateLimiter: RateLimiterConfig{
			RequestsPerTimeFrame: env.GetInt("RATE_LIMIT_REQUESTS_PER_TIME_FRAME", 5000),
			TimeFrame:            rateLimitTimeFrame,
			Enabled:              env.GetBool("RATE_LIMIT_ENABLED", true),
		},
		Minio: MinioConfig{
			ENDPOINT:   env.GetString("MINIO_ENDPOINT", "127.0.0.1:9000"),
			ACCESS_KEY: env.GetString("MINIO_ACCESS_KEY", "minioadmin"),
			SECRET_KEY: env.GetString("MINIO_SECRET_KEY", "minioadmin"),
			BUCKET:     env.GetString("MINIO_BUCKET", "certwizard"),
			USE_SSL:    env.GetBool("MINIO_USE_SSL", false),
		},
		Renderer: RendererConfig{
			BaseURL: env.GetString("RENDERER_BASE_URL", "http://localhost:3000/api"),
			Timeout: rendererTimeout,
		},
		Wizard: WizardConfig{
			MaxEmailRecipients: env.GetInt("WIZARD_MAX_EMAIL_RECIPIENTS", 90),
		},
	}
}
