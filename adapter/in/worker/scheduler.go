package worker

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// Per-run ceiling so a hung external call cannot wedge the scheduler.
const runTimeout = 15 * time.Minute

// Scheduler fires digest runs on a fixed interval in serve mode.
type Scheduler struct {
	runner   *Runner
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	log      zerolog.Logger
}

func NewScheduler(runner *Runner, interval time.Duration, log zerolog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		runner:   runner,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		log:      log,
	}
}

// Start starts the scheduler loop.
func (s *Scheduler) Start() {
	s.log.Info().Dur("interval", s.interval).Msg("digest scheduler starting")
	go s.run()
}

// Stop stops the scheduler loop.
func (s *Scheduler) Stop() {
	s.log.Info().Msg("digest scheduler stopping")
	s.cancel()
}

func (s *Scheduler) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			s.log.Info().Msg("digest scheduler stopped")
			return
		case <-ticker.C:
			s.fire()
		}
	}
}

func (s *Scheduler) fire() {
	ctx, cancel := context.WithTimeout(s.ctx, runTimeout)
	defer cancel()

	outcome, err := s.runner.Run(ctx)
	switch {
	case errors.Is(err, ErrRunInFlight):
		s.log.Warn().Msg("previous digest run still active, skipping tick")
	case err != nil:
		s.log.Error().Err(err).Msg("scheduled digest run failed")
	default:
		s.log.Info().
			Str("run_id", outcome.RunID).
			Int("fetched", outcome.Fetched).
			Int("classified", outcome.Classified).
			Msg("scheduled digest run finished")
	}
}
