package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/ardufsm/pkg/domain"
	"github.com/aretw0/ardufsm/pkg/ports"
)

// State is one node of the trial FSM.
type State interface {
	ID() domain.StateID
	Run(ctx context.Context, t *Trial, now time.Duration) Decision
}

type resetter interface {
	Reset()
}

// Engine is the dispatcher. It owns the current state and runs it once per Step.
type Engine struct {
	env     *Env
	trial   *Trial
	states  map[domain.StateID]State
	current domain.StateID

	completed int
}

// NewEngine registers states and starts in WAIT_TO_START_TRIAL, which must be among them.
func NewEngine(env *Env, trial *Trial, states ...State) (*Engine, error) {
	e := &Engine{
		env:     env,
		trial:   trial,
		states:  make(map[domain.StateID]State, len(states)),
		current: domain.StateWaitToStartTrial,
	}
	for _, s := range states {
		if _, dup := e.states[s.ID()]; dup {
			return nil, fmt.Errorf("state %s registered twice", s.ID())
		}
		e.states[s.ID()] = s
	}
	if _, ok := e.states[e.current]; !ok {
		return nil, fmt.Errorf("%w: %s not registered", domain.ErrUnknownState, e.current)
	}
	return e, nil
}

// Current returns the current state.
func (e *Engine) Current() domain.StateID { return e.current }

// Trial returns the trial context.
func (e *Engine) Trial() *Trial { return e.trial }

// TrialsCompleted counts trials that have run through the inter-trial interval.
func (e *Engine) TrialsCompleted() int { return e.completed }

// Step runs the current state once. It reports whether the current state changed.
//
// The clock is sampled once before the state runs. If the state asks for another
// state, ST_CHG is reported with that time and ST_CHG2 with a fresh sample, so the
// host can measure how long the announcement took.
func (e *Engine) Step(ctx context.Context) (bool, error) {
	now := e.env.Clock.Now()
	d := e.states[e.current].Run(ctx, e.trial, now)

	next, ok := d.Target()
	if !ok || next == e.current {
		return false, nil
	}
	if _, registered := e.states[next]; !registered {
		return false, fmt.Errorf("%w: %s requested %s", domain.ErrUnknownState, e.current, next)
	}

	from := e.current
	e.env.report(now, ports.TagStateChange, int(from), int(next))
	announced := e.env.Clock.Now()
	e.env.report(announced, ports.TagStateChange2, int(from), int(next))

	if next == domain.StateTrialStart {
		e.resetTimed()
	}
	if from == domain.StateInterTrialInterval && next == domain.StateWaitToStartTrial {
		e.completed++
	}
	e.current = next

	e.env.Logger.Debug("state change", "from", from, "to", next, "trial", e.trial.Number)
	e.env.emitTransition(ctx, &domain.TransitionEvent{
		EventBase:   domain.EventBase{At: now, Type: domain.EventTransition, Trial: e.trial.Number},
		From:        from,
		To:          next,
		DecidedAt:   now,
		AnnouncedAt: announced,
	})
	return true, nil
}

func (e *Engine) resetTimed() {
	for _, s := range e.states {
		if r, ok := s.(resetter); ok {
			r.Reset()
		}
	}
}
