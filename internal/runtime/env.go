package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/ardufsm/internal/logging"
	"github.com/aretw0/ardufsm/pkg/domain"
	"github.com/aretw0/ardufsm/pkg/ports"
)

// Env carries the collaborators shared by the dispatcher and the states.
type Env struct {
	Clock    ports.Clock
	Sleeper  ports.Sleeper
	Reporter ports.Reporter
	Hooks    domain.LifecycleHooks
	Logger   *slog.Logger
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithClock sets the time source.
func WithClock(c ports.Clock) EnvOption {
	return func(e *Env) { e.Clock = c }
}

// WithSleeper sets the blocking sleeper used by the reward state.
func WithSleeper(s ports.Sleeper) EnvOption {
	return func(e *Env) { e.Sleeper = s }
}

// WithReporter sets where protocol lines go.
func WithReporter(r ports.Reporter) EnvOption {
	return func(e *Env) { e.Reporter = r }
}

// WithHooks sets lifecycle hooks.
func WithHooks(h domain.LifecycleHooks) EnvOption {
	return func(e *Env) { e.Hooks = h }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) EnvOption {
	return func(e *Env) { e.Logger = l }
}

// NewEnv builds an Env. Clock and Sleeper are required; the reporter and logger
// default to discarding everything.
func NewEnv(opts ...EnvOption) *Env {
	e := &Env{
		Reporter: nopReporter{},
		Logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.Clock == nil || e.Sleeper == nil {
		panic("runtime: Env requires a clock and a sleeper")
	}
	return e
}

// report writes a protocol line. A failing link is a comm error: it is logged and
// the trial goes on.
func (e *Env) report(at time.Duration, tag string, fields ...any) {
	if err := e.Reporter.Report(at, tag, fields...); err != nil {
		e.Logger.Warn("report failed", "tag", tag, "error", err)
	}
}

func (e *Env) emitTransition(ctx context.Context, ev *domain.TransitionEvent) {
	if e.Hooks.OnTransition != nil {
		e.Hooks.OnTransition(ctx, ev)
	}
}

func (e *Env) emitTrialStart(ctx context.Context, ev *domain.TrialEvent) {
	if e.Hooks.OnTrialStart != nil {
		e.Hooks.OnTrialStart(ctx, ev)
	}
}

func (e *Env) emitTrialEnd(ctx context.Context, ev *domain.TrialEvent) {
	if e.Hooks.OnTrialEnd != nil {
		e.Hooks.OnTrialEnd(ctx, ev)
	}
}

func (e *Env) emitReward(ctx context.Context, ev *domain.RewardEvent) {
	if e.Hooks.OnReward != nil {
		e.Hooks.OnReward(ctx, ev)
	}
}

type nopReporter struct{}

func (nopReporter) Report(time.Duration, string, ...any) error { return nil }

type nopOutput struct{}

func (nopOutput) Set(bool) {}

func outputOrNop(o ports.Output) ports.Output {
	if o == nil {
		return nopOutput{}
	}
	return o
}
