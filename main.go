package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"digest_worker/config"
	"digest_worker/internal/bootstrap"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
		With().Timestamp().Str("service", "digest_worker").Logger()

	// Load .env file if exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	mode := flag.String("mode", "once", "Run mode: once, serve")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	app := bootstrap.New(cfg, log)

	switch *mode {
	case "once":
		runOnce(app, log)
	case "serve":
		runServe(app, log)
	default:
		log.Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}

// runOnce executes a single digest pass, the cron-friendly entry point.
// Fatal pipeline errors exit non-zero so the external scheduler sees them.
func runOnce(app *bootstrap.App, log zerolog.Logger) {
	outcome, err := app.Runner.Run(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("digest run aborted")
	}

	if outcome.NothingToDo {
		log.Info().Str("run_id", outcome.RunID).Msg("no report generated")
		return
	}
	log.Info().
		Str("run_id", outcome.RunID).
		Int("fetched", outcome.Fetched).
		Int("classified", outcome.Classified).
		Bool("dispatched", outcome.Dispatched).
		Msg("digest run finished")
}

// runServe starts the interval scheduler and the ops HTTP server.
func runServe(app *bootstrap.App, log zerolog.Logger) {
	app.Scheduler.Start()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info().Dur("timeout", shutdownTimeout).Msg("shutting down")
		app.Scheduler.Stop()

		done := make(chan error, 1)
		go func() {
			done <- app.HTTP.Shutdown()
		}()

		select {
		case err := <-done:
			if err != nil {
				log.Error().Err(err).Msg("error shutting down HTTP server")
			}
		case <-time.After(shutdownTimeout):
			log.Warn().Msg("shutdown timed out, forcing exit")
		}
	}()

	addr := ":" + app.Cfg.Port
	log.Info().Str("addr", addr).Msg("starting ops server")
	if err := app.HTTP.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start ops server")
	}
}
