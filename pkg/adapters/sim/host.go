package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/aretw0/ardufsm/internal/logging"
	"github.com/aretw0/ardufsm/pkg/domain"
	"github.com/aretw0/ardufsm/pkg/ports"
)

// Idle is a command target that can tell when it waits for a trial.
type Idle interface {
	ports.CommandTarget
	Current() domain.StateID
	StartRequested() bool
}

// AutoHost is a simulated host. Whenever the controller waits for a trial it picks
// the trial type (REW) at random, selects stepper behavior 1 and releases the trial.
type AutoHost struct {
	target     Idle
	rng        *rand.Rand
	goFraction float64
	logger     *slog.Logger
	released   int
}

// HostOption configures an AutoHost.
type HostOption func(*AutoHost)

// WithGoFraction sets the share of GO trials. The default is one half.
func WithGoFraction(f float64) HostOption {
	return func(h *AutoHost) { h.goFraction = f }
}

// WithHostLogger sets the logger.
func WithHostLogger(logger *slog.Logger) HostOption {
	return func(h *AutoHost) { h.logger = logger }
}

// NewAutoHost creates a host for target with a seeded trial-type sequence.
func NewAutoHost(target Idle, seed uint64, opts ...HostOption) *AutoHost {
	h := &AutoHost{
		target:     target,
		rng:        rand.New(rand.NewPCG(seed, ^seed)),
		goFraction: 0.5,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

var _ ports.CommandSource = (*AutoHost)(nil)

// Poll implements ports.CommandSource.
func (h *AutoHost) Poll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if h.target.Current() != domain.StateWaitToStartTrial || h.target.StartRequested() {
		return nil
	}

	trialType := domain.ResponseNoGo
	if h.rng.Float64() < h.goFraction {
		trialType = domain.ResponseGo
	}
	for name, v := range map[string]int64{"STPRIDX": 1, "REW": int64(trialType)} {
		if err := h.target.SetParam(name, v); err != nil {
			return fmt.Errorf("auto host: %w", err)
		}
	}
	h.target.ReleaseTrial()
	h.released++
	h.logger.Debug("trial released", "n", h.released, "type", trialType)
	return nil
}

// Released counts released trials.
func (h *AutoHost) Released() int { return h.released }
