package runtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/ardufsm/internal/testutils"
	"github.com/aretw0/ardufsm/pkg/adapters/clock"
	"github.com/aretw0/ardufsm/pkg/domain"
	"github.com/aretw0/ardufsm/pkg/params"
	"github.com/aretw0/ardufsm/pkg/ports"
)

type harness struct {
	clock       *clock.Manual
	rec         *testutils.Recorder
	valve       *testutils.Switch
	sync        *testutils.Switch
	trial       *Trial
	engine      *Engine
	transitions []domain.TransitionEvent
	ended       []domain.TrialEvent

	// Swappable detectors for the stimulus period and the response window.
	stimLicks ports.LickDetector
	respLicks ports.LickDetector
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		clock:     clock.NewManual(0),
		rec:       &testutils.Recorder{},
		valve:     &testutils.Switch{},
		sync:      &testutils.Switch{},
		stimLicks: never,
		respLicks: never,
	}
	env := NewEnv(
		WithClock(h.clock),
		WithSleeper(h.clock),
		WithReporter(h.rec),
		WithHooks(domain.LifecycleHooks{
			OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
				h.transitions = append(h.transitions, *e)
			},
			OnTrialEnd: func(_ context.Context, e *domain.TrialEvent) {
				h.ended = append(h.ended, *e)
			},
		}),
	)
	h.trial = NewTrial(params.Standard(), params.StandardResults())
	engine, err := NewEngine(env, h.trial, StandardStates(env, Rig{
		Valve:         h.valve,
		Sync:          h.sync,
		StimLicks:     ports.LickDetectorFunc(func() bool { return h.stimLicks.Licking() }),
		ResponseLicks: ports.LickDetectorFunc(func() bool { return h.respLicks.Licking() }),
	})...)
	require.NoError(t, err)
	h.engine = engine
	return h
}

func (h *harness) set(id params.ParamID, v int64) { h.trial.Params.Set(id, v) }

// runTrial releases one trial and polls every millisecond until it has completed.
func (h *harness) runTrial(t *testing.T) {
	t.Helper()
	want := h.engine.TrialsCompleted() + 1
	h.trial.RequestStart()
	for i := 0; i < 200_000; i++ {
		_, err := h.engine.Step(context.Background())
		require.NoError(t, err)
		if h.engine.TrialsCompleted() == want {
			return
		}
		h.clock.Advance(time.Millisecond)
	}
	t.Fatalf("trial did not complete, stuck in %s", h.engine.Current())
}

func (h *harness) path() []domain.StateID {
	var out []domain.StateID
	for i, e := range h.transitions {
		if i == 0 {
			out = append(out, e.From)
		}
		out = append(out, e.To)
	}
	return out
}

func (h *harness) transitionAt(from, to domain.StateID) time.Duration {
	for _, e := range h.transitions {
		if e.From == from && e.To == to {
			return e.At
		}
	}
	return -1
}

// licksBetween licks while the clock reads within [from, to).
func licksBetween(c ports.Clock, from, to time.Duration) ports.LickDetector {
	return ports.LickDetectorFunc(func() bool {
		now := c.Now()
		return now >= from && now < to
	})
}

var never = ports.LickDetectorFunc(func() bool { return false })
