// Package bootstrap wires configuration into the digest worker's
// collaborators.
package bootstrap

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	httpadapter "digest_worker/adapter/in/http"
	"digest_worker/adapter/in/worker"
	"digest_worker/adapter/out/identity"
	"digest_worker/adapter/out/provider/outlook"
	"digest_worker/config"
	"digest_worker/core/agent/llm"
	"digest_worker/core/service/digest"
)

// App holds the wired application graph for one process.
type App struct {
	Cfg       *config.Config
	Runner    *worker.Runner
	Scheduler *worker.Scheduler
	HTTP      *fiber.App
}

func New(cfg *config.Config, log zerolog.Logger) *App {
	tokens := identity.NewTokenProvider(
		cfg.MicrosoftTenantID,
		cfg.MicrosoftClientID,
		cfg.MicrosoftClientSecret,
	)

	mail := outlook.NewProvider(cfg.MailFolder, cfg.UnreadPageSize)

	classifier := llm.NewClient(llm.ClientConfig{
		Endpoint:    cfg.OpenAIEndpoint,
		APIKey:      cfg.OpenAIAPIKey,
		APIVersion:  cfg.OpenAIAPIVersion,
		Deployment:  cfg.OpenAIDeployment,
		MaxTokens:   cfg.LLMMaxTokens,
		Temperature: cfg.LLMTemperature,
		Timeout:     time.Duration(cfg.LLMTimeoutSec) * time.Second,
	})

	service := digest.NewService(
		tokens,
		mail,
		classifier,
		cfg,
		os.Stdout,
		log.With().Str("component", "digest").Logger(),
	)

	runner := worker.NewRunner(service)
	scheduler := worker.NewScheduler(runner, cfg.DigestInterval,
		log.With().Str("component", "scheduler").Logger())

	app := fiber.New(fiber.Config{
		AppName:               "digest_worker",
		DisableStartupMessage: true,
	})
	httpadapter.NewHandler(runner, log.With().Str("component", "http").Logger()).Register(app)

	return &App{
		Cfg:       cfg,
		Runner:    runner,
		Scheduler: scheduler,
		HTTP:      app,
	}
}
