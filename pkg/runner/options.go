package runner

import (
	"log/slog"
	"time"

	"github.com/aretw0/ardufsm/pkg/ports"
)

// DefaultRetryDelay is the pause after a communication error during setup.
const DefaultRetryDelay = time.Second

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithReporter sets where setup diagnostics (DBG lines) go.
func WithReporter(rep ports.Reporter) Option {
	return func(r *Runner) {
		r.reporter = rep
	}
}

// WithClock sets the clock used to timestamp DBG lines.
func WithClock(c ports.Clock) Option {
	return func(r *Runner) {
		r.clock = c
	}
}

// WithRetryDelay overrides DefaultRetryDelay.
func WithRetryDelay(d time.Duration) Option {
	return func(r *Runner) {
		r.retryDelay = d
	}
}

// WithPollInterval pauses between loop iterations. Zero polls flat out.
func WithPollInterval(d time.Duration) Option {
	return func(r *Runner) {
		r.pollInterval = d
	}
}

// WithMaxTrials stops Run after n completed trials. Zero runs until cancelled.
func WithMaxTrials(n int) Option {
	return func(r *Runner) {
		r.maxTrials = n
	}
}
