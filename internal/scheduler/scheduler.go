package scheduler

import (
	"context"
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"sweepd/internal/metrics"
	"sweepd/internal/routine"
)

var errNoRoutines = errors.New("no routines to run")

// Scheduler drives one goroutine per routine: run a pass, sleep for the
// routine's interval, repeat. The cadence is measured from the end of one
// pass to the start of the next; there is no jitter, no drift correction,
// and no backoff on repeated failures.
type Scheduler struct {
	sweeper *routine.Sweeper
	logger  *log.Logger
	trigger chan os.Signal // forces an immediate pass on every routine
}

// New creates a Scheduler. The trigger channel may be nil.
func New(sweeper *routine.Sweeper, logger *log.Logger, trigger chan os.Signal) *Scheduler {
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{
		sweeper: sweeper,
		logger:  logger,
		trigger: trigger,
	}
}

// Run spawns every routine and blocks until all of them exit, which only
// happens once ctx is cancelled. A pass error (unreadable directory) is
// logged and counted, never fatal: the routine sleeps and tries again.
func (s *Scheduler) Run(ctx context.Context, routines []routine.Routine) error {
	if len(routines) == 0 {
		return errNoRoutines
	}

	kicks := make([]chan struct{}, len(routines))
	for i := range kicks {
		kicks[i] = make(chan struct{}, 1)
	}

	if s.trigger != nil {
		go s.dispatchTriggers(ctx, kicks)
	}

	var wg sync.WaitGroup
	for i, r := range routines {
		wg.Add(1)
		go s.loop(ctx, r, kicks[i], &wg)
	}

	wg.Wait()
	return ctx.Err()
}

// RunOnce executes a single pass of every routine and exits (for -once)
func (s *Scheduler) RunOnce(ctx context.Context, routines []routine.Routine) error {
	if len(routines) == 0 {
		return errNoRoutines
	}

	for _, r := range routines {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if _, err := s.sweeper.Run(r); err != nil {
			return err
		}
	}
	return nil
}

// loop is one routine's execution context. It owns its Routine value
// exclusively for its entire lifetime and exits only between passes.
func (s *Scheduler) loop(ctx context.Context, r routine.Routine, kick <-chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()

	metrics.RoutinesActive.Inc()
	defer metrics.RoutinesActive.Dec()

	for {
		if _, err := s.sweeper.Run(r); err != nil {
			s.logger.Printf("error running pass for %s: %v", r.Directory, err)
		}

		timer := time.NewTimer(r.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Printf("routine %s shutting down", r.Directory)
			return
		case <-kick:
			timer.Stop()
		case <-timer.C:
		}
	}
}

// dispatchTriggers fans one trigger signal out to every routine. Sends
// are non-blocking: a routine mid-pass already has a pass coming.
func (s *Scheduler) dispatchTriggers(ctx context.Context, kicks []chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-s.trigger:
			s.logger.Printf("received %v, triggering immediate pass on all routines", sig)
			for _, kick := range kicks {
				select {
				case kick <- struct{}{}:
				default:
				}
			}
		}
	}
}
