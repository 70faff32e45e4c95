// Package http exposes the ops surface in serve mode: health check and a
// manual digest trigger.
package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"digest_worker/adapter/in/worker"
	"digest_worker/pkg/apperr"
)

type Handler struct {
	runner *worker.Runner
	log    zerolog.Logger
}

func NewHandler(runner *worker.Runner, log zerolog.Logger) *Handler {
	return &Handler{runner: runner, log: log}
}

// Register mounts the routes on the fiber app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/healthz", h.health)
	app.Post("/run", h.triggerRun)
}

func (h *Handler) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// triggerRun runs one digest synchronously. 409 while a run is in flight.
func (h *Handler) triggerRun(c *fiber.Ctx) error {
	outcome, err := h.runner.Run(c.Context())
	if err != nil {
		if errors.Is(err, worker.ErrRunInFlight) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.log.Error().Err(err).Msg("manual digest run failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
			"code":  apperr.Code(err),
		})
	}

	return c.JSON(fiber.Map{
		"run_id":        outcome.RunID,
		"fetched":       outcome.Fetched,
		"classified":    outcome.Classified,
		"dispatched":    outcome.Dispatched,
		"nothing_to_do": outcome.NothingToDo,
	})
}
