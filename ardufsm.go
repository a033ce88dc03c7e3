package ardufsm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/ardufsm/internal/logging"
	"github.com/aretw0/ardufsm/internal/runtime"
	"github.com/aretw0/ardufsm/pkg/adapters/clock"
	"github.com/aretw0/ardufsm/pkg/domain"
	"github.com/aretw0/ardufsm/pkg/params"
	"github.com/aretw0/ardufsm/pkg/ports"
)

// Trial is the per-trial context handed to trial-start hooks.
type Trial = runtime.Trial

// TrialStartHook chooses the first state of each trial after the trial-start
// bookkeeping. The default opens every trial with the stimulus period.
type TrialStartHook = runtime.TrialStartHook

// Controller is the high-level entry point: one subject, one trial FSM.
// It also implements ports.CommandTarget so a host link can drive it.
// A Controller is not safe for concurrent use; run it from a single loop.
type Controller struct {
	engine *runtime.Engine
	trial  *runtime.Trial
	logger *slog.Logger
}

var _ ports.CommandTarget = (*Controller)(nil)

type options struct {
	clock     ports.Clock
	sleeper   ports.Sleeper
	reporter  ports.Reporter
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
	devices   []runtime.DeviceBinding
	valve     ports.Output
	sync      ports.Output
	licks     ports.LickDetector
	fake      bool
	fakeSeed  uint64
	onStart   TrialStartHook
	overrides map[string]int64
}

// Option configures a Controller.
type Option func(*options)

// WithClock sets the time source. The default is a wall clock started by New.
func WithClock(c ports.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithSleeper sets what the reward state blocks on. The default is the wall clock.
func WithSleeper(s ports.Sleeper) Option {
	return func(o *options) { o.sleeper = s }
}

// WithReporter sets where protocol lines are written.
func WithReporter(r ports.Reporter) Option {
	return func(o *options) { o.reporter = r }
}

// WithLogger sets a structured logger for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithLifecycleHooks registers observability hooks. Calling it again merges hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(o *options) { o.hooks = o.hooks.Merge(hooks) }
}

// WithDevice adds a stimulus device whose behavior each trial is chosen by param.
func WithDevice(param params.ParamID, d ports.Device) Option {
	return func(o *options) {
		o.devices = append(o.devices, runtime.DeviceBinding{Device: d, Param: param})
	}
}

// WithRewardValve sets the reward solenoid.
func WithRewardValve(valve ports.Output) Option {
	return func(o *options) { o.valve = valve }
}

// WithSyncLine sets the output held high while the stimulus plays.
func WithSyncLine(sync ports.Output) Option {
	return func(o *options) { o.sync = sync }
}

// WithLickDetector sets the lick sensor.
func WithLickDetector(d ports.LickDetector) Option {
	return func(o *options) { o.licks = d }
}

// WithFakeResponses replaces the lick sensor in the response window with a seeded
// random detector. The stimulus period still uses the real sensor.
func WithFakeResponses(seed uint64) Option {
	return func(o *options) {
		o.fake = true
		o.fakeSeed = seed
	}
}

// WithTrialStartHook installs the protocol hook run at the end of trial start.
func WithTrialStartHook(hook TrialStartHook) Option {
	return func(o *options) { o.onStart = hook }
}

// WithParamOverrides sets parameters by abbreviation before the first trial.
func WithParamOverrides(values map[string]int64) Option {
	return func(o *options) {
		if o.overrides == nil {
			o.overrides = make(map[string]int64, len(values))
		}
		for k, v := range values {
			o.overrides[k] = v
		}
	}
}

// New assembles a controller with the standard parameter table and state set.
// It starts in WAIT_TO_START_TRIAL.
func New(opts ...Option) (*Controller, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.clock == nil || o.sleeper == nil {
		wall := clock.NewWall()
		if o.clock == nil {
			o.clock = wall
		}
		if o.sleeper == nil {
			o.sleeper = wall
		}
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}

	trial := runtime.NewTrial(params.Standard(), params.StandardResults())
	for name, v := range o.overrides {
		if err := trial.Params.SetByName(name, v); err != nil {
			return nil, fmt.Errorf("param override: %w", err)
		}
	}

	envOpts := []runtime.EnvOption{
		runtime.WithClock(o.clock),
		runtime.WithSleeper(o.sleeper),
		runtime.WithHooks(o.hooks),
		runtime.WithLogger(o.logger),
	}
	if o.reporter != nil {
		envOpts = append(envOpts, runtime.WithReporter(o.reporter))
	}
	env := runtime.NewEnv(envOpts...)

	rig := runtime.Rig{
		Devices:    o.devices,
		Valve:      o.valve,
		Sync:       o.sync,
		StimLicks:  o.licks,
		TrialStart: o.onStart,
	}
	if o.fake {
		rig.ResponseLicks = runtime.NewRandomDetector(o.fakeSeed)
		o.logger.Info("fake responses enabled", "seed", o.fakeSeed)
	}

	engine, err := runtime.NewEngine(env, trial, runtime.StandardStates(env, rig)...)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble state set: %w", err)
	}

	return &Controller{engine: engine, trial: trial, logger: o.logger}, nil
}

// SetParam sets a parameter by abbreviation. It implements ports.CommandTarget.
// The new value is seen by the next state that reads it.
func (c *Controller) SetParam(name string, value int64) error {
	if err := c.trial.Params.SetByName(name, value); err != nil {
		return err
	}
	c.logger.Debug("param set", "name", name, "value", value)
	return nil
}

// ReleaseTrial raises the start-trial flag. It implements ports.CommandTarget.
func (c *Controller) ReleaseTrial() {
	c.trial.RequestStart()
}

// Step runs the current state once and reports whether the state changed.
func (c *Controller) Step(ctx context.Context) (bool, error) {
	return c.engine.Step(ctx)
}

// Current returns the current state.
func (c *Controller) Current() domain.StateID { return c.engine.Current() }

// Params returns the live parameter table.
func (c *Controller) Params() *params.Store { return c.trial.Params }

// Results returns the live result table.
func (c *Controller) Results() *params.Results { return c.trial.Results }

// Trial returns the trial context.
func (c *Controller) Trial() *Trial { return c.trial }

// StartRequested reports whether a trial release is pending.
func (c *Controller) StartRequested() bool { return c.trial.StartRequested() }

// TrialsCompleted counts finished trials.
func (c *Controller) TrialsCompleted() int { return c.engine.TrialsCompleted() }

// Rules returns the static transition table of the state set.
func (c *Controller) Rules() []domain.Rule { return runtime.Rules() }
