package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/ardufsm/internal/logging"
	"github.com/aretw0/ardufsm/pkg/ports"
)

// Controller is what the loop drives. *ardufsm.Controller implements it.
type Controller interface {
	Step(ctx context.Context) (bool, error)
	StartRequested() bool
	TrialsCompleted() int
}

// Runner is the main loop.
type Runner struct {
	controller Controller
	commands   ports.CommandSource
	reporter   ports.Reporter
	clock      ports.Clock
	logger     *slog.Logger

	retryDelay   time.Duration
	pollInterval time.Duration
	maxTrials    int
}

// setupIdle is the pause between setup polls that returned nothing.
const setupIdle = time.Millisecond

// New creates a runner for ctrl fed by commands.
func New(ctrl Controller, commands ports.CommandSource, opts ...Option) *Runner {
	r := &Runner{
		controller: ctrl,
		commands:   commands,
		logger:     logging.NewNop(),
		retryDelay: DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Setup polls commands until the host has released the first trial.
// Communication errors are logged, reported as DBG lines and retried after the
// retry delay. Only cancellation ends Setup early.
func (r *Runner) Setup(ctx context.Context) error {
	r.debug("begin setup")
	for !r.controller.StartRequested() {
		if err := r.commands.Poll(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.logger.Warn("comm error in setup", "error", err)
			r.debug("comm error in setup")
			if err := wait(ctx, r.retryDelay); err != nil {
				return err
			}
			continue
		}
		if r.controller.StartRequested() {
			break
		}
		if err := wait(ctx, max(r.pollInterval, setupIdle)); err != nil {
			return err
		}
	}
	r.logger.Info("setup complete")
	return nil
}

// Run performs Setup and then loops: poll commands, step the controller.
// It returns nil after WithMaxTrials trials, the context error on cancellation,
// and a wrapped error if the controller fails a step.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.Setup(ctx); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := r.commands.Poll(ctx); err != nil && ctx.Err() == nil {
			r.logger.Warn("comm error", "error", err)
		}

		if _, err := r.controller.Step(ctx); err != nil {
			return fmt.Errorf("step: %w", err)
		}

		if r.maxTrials > 0 && r.controller.TrialsCompleted() >= r.maxTrials {
			r.logger.Info("trial limit reached", "trials", r.controller.TrialsCompleted())
			return nil
		}

		if r.pollInterval > 0 {
			if err := wait(ctx, r.pollInterval); err != nil {
				return err
			}
		}
	}
}

func (r *Runner) debug(msg string) {
	if r.reporter == nil {
		return
	}
	var at time.Duration
	if r.clock != nil {
		at = r.clock.Now()
	}
	if err := r.reporter.Report(at, ports.TagDebug, msg); err != nil {
		r.logger.Warn("report failed", "error", err)
	}
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
