package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/muesli/termenv"
	"github.com/rs/xid"

	"github.com/aretw0/ardufsm"
	"github.com/aretw0/ardufsm/internal/presentation/tui"
	"github.com/aretw0/ardufsm/internal/runtime"
	"github.com/aretw0/ardufsm/pkg/adapters/chat"
	"github.com/aretw0/ardufsm/pkg/adapters/clock"
	"github.com/aretw0/ardufsm/pkg/adapters/sim"
	"github.com/aretw0/ardufsm/pkg/config"
	"github.com/aretw0/ardufsm/pkg/domain"
	"github.com/aretw0/ardufsm/pkg/observability"
	"github.com/aretw0/ardufsm/pkg/params"
	"github.com/aretw0/ardufsm/pkg/ports"
	"github.com/aretw0/ardufsm/pkg/runner"
)

// SessionOptions holds everything one controller session needs.
type SessionOptions struct {
	Config config.Config

	Stdin  io.Reader
	Stdout io.Writer
	// Stderr receives logs, the banner, per-trial lines and the summary.
	Stderr io.Writer

	// MetricsOut, when set, is a file the Prometheus text dump is written to at exit.
	MetricsOut string
	Banner     bool

	// Clock drives the controller, the runner and the simulated rig. The default
	// is a wall clock started with the session.
	Clock Clock
}

// Clock is a time source that can also block.
type Clock interface {
	ports.Clock
	ports.Sleeper
}

// Simulated lick bouts last this long.
const simLickBout = 150 * time.Millisecond

// RunSession runs the controller until the trial limit, a signal or a fatal
// step error. An interrupt is a normal end and returns nil.
func RunSession(ctx context.Context, opts SessionOptions) error {
	opts = withStdio(opts)
	cfg := opts.Config

	sessionID := xid.New().String()
	logger, err := newLogger(opts.Stderr, cfg.LogLevel, sessionID)
	if err != nil {
		return err
	}

	console := isTerminal(opts.Stderr)
	if opts.Banner && console {
		tui.PrintBanner(opts.Stderr, ardufsm.Version)
	}

	in, out, closePort, err := openPort(cfg.Port, opts.Stdin, opts.Stdout)
	if err != nil {
		return err
	}
	defer func() {
		if err := closePort(); err != nil {
			logger.Warn("close port", "error", err)
		}
	}()
	link := chat.New(in, out, chat.WithLogger(logger))

	metrics := observability.NewMetrics()
	summary := observability.NewSummary()
	hooks := metrics.Hooks().Merge(summary.Hooks())
	if console {
		profile := termenv.EnvColorProfile()
		hooks = hooks.Merge(domain.LifecycleHooks{
			OnTrialEnd: func(_ context.Context, e *domain.TrialEvent) {
				fmt.Fprintln(opts.Stderr, tui.TrialLine(profile, e))
			},
		})
	}

	clk := opts.Clock
	ctrl, err := ardufsm.New(controllerOptions(cfg, clk, link, logger, hooks)...)
	if err != nil {
		return fmt.Errorf("error initializing controller: %w", err)
	}

	var commands ports.CommandSource = link
	if cfg.Simulate {
		commands = sim.NewAutoHost(ctrl, cfg.Seed,
			sim.WithGoFraction(cfg.GoFraction),
			sim.WithHostLogger(logger),
		)
	} else {
		link.Bind(ctrl)
	}

	r := runner.New(ctrl, commands,
		runner.WithLogger(logger),
		runner.WithReporter(link),
		runner.WithClock(clk),
		runner.WithRetryDelay(cfg.RetryDelay),
		runner.WithPollInterval(cfg.PollInterval),
		runner.WithMaxTrials(cfg.Trials),
	)

	sigCtx := NewSignalContext(ctx)
	defer sigCtx.Cancel()

	logger.Info("session started", "simulate", cfg.Simulate, "port", cfg.Port, "trials", cfg.Trials)
	runErr := r.Run(sigCtx)

	switch {
	case runErr == nil:
		logger.Info("session finished", "trials", ctrl.TrialsCompleted())
	case errors.Is(runErr, context.Canceled):
		logger.Info("session interrupted", "trials", ctrl.TrialsCompleted(), "signal", sigCtx.Signal())
		runErr = nil
	default:
		logger.Error("session failed", "state", ctrl.Current(), "error", runErr)
	}

	printSummary(opts.Stderr, summary, console)
	if opts.MetricsOut != "" {
		if err := writeMetrics(opts.MetricsOut, metrics); err != nil {
			return errors.Join(runErr, err)
		}
	}
	return runErr
}

func withStdio(opts SessionOptions) SessionOptions {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Clock == nil {
		opts.Clock = clock.NewWall()
	}
	return opts
}

// controllerOptions wires the rig. Simulation gets dummy devices, a logged valve
// and a touch sensor read through the threshold detector. The simulated licks
// come in bouts spread over clock time, so the poll rate does not change how
// often a trial ends in ERROR.
func controllerOptions(cfg config.Config, clk Clock, rep ports.Reporter, logger *slog.Logger, hooks domain.LifecycleHooks) []ardufsm.Option {
	opts := []ardufsm.Option{
		ardufsm.WithClock(clk),
		ardufsm.WithSleeper(clk),
		ardufsm.WithReporter(rep),
		ardufsm.WithLogger(logger),
		ardufsm.WithLifecycleHooks(hooks),
		ardufsm.WithParamOverrides(cfg.Params),
	}
	if cfg.FakeResponses {
		opts = append(opts, ardufsm.WithFakeResponses(cfg.Seed))
	}
	if cfg.Simulate {
		touch := sim.NewTouchSensor(sim.NewRandomLicks(clk, cfg.Seed+1, cfg.SimLickGap, simLickBout))
		opts = append(opts,
			ardufsm.WithDevice(params.StepperIndex, sim.NewDummyStepper(logger)),
			ardufsm.WithDevice(params.SpeakerIndex, sim.NewDummySpeaker(logger)),
			ardufsm.WithRewardValve(sim.NewValve("reward", clk, logger)),
			ardufsm.WithLickDetector(runtime.NewThresholdDetector(touch, cfg.LickThreshold, logger)),
		)
	}
	return opts
}

func printSummary(w io.Writer, s *observability.Summary, console bool) {
	md := s.Markdown()
	if !console {
		fmt.Fprint(w, md)
		return
	}
	out, err := tui.NewRenderer(terminalWidth(w))(md)
	if err != nil {
		out = md
	}
	fmt.Fprint(w, out)
}

func writeMetrics(path string, m *observability.Metrics) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create metrics file: %w", err)
	}
	if err := m.WriteText(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
