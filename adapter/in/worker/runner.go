// Package worker drives digest runs: a shared run guard and the interval
// scheduler.
package worker

import (
	"context"
	"errors"
	"sync/atomic"

	"digest_worker/core/port/in"
)

// ErrRunInFlight is returned when a run is requested while one is active.
var ErrRunInFlight = errors.New("digest run already in flight")

// Runner serializes digest runs. The scheduler and the manual HTTP
// trigger share one Runner so runs never overlap.
type Runner struct {
	service in.DigestService
	busy    atomic.Bool
}

func NewRunner(service in.DigestService) *Runner {
	return &Runner{service: service}
}

// Run executes one digest run unless one is already active.
func (r *Runner) Run(ctx context.Context) (*in.RunOutcome, error) {
	if !r.busy.CompareAndSwap(false, true) {
		return nil, ErrRunInFlight
	}
	defer r.busy.Store(false)

	return r.service.Run(ctx)
}
