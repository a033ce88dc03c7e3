package runtime

import (
	"context"
	"time"

	"github.com/aretw0/ardufsm/pkg/domain"
	"github.com/aretw0/ardufsm/pkg/params"
)

// TimedBehavior is the per-state part of a timed state.
//
// Enter runs on the first dispatch after the state becomes current and returns the
// state's duration. Tick runs on every dispatch while the duration has not elapsed.
// Exit runs exactly once, when the duration has elapsed or Tick returned Stop, and must
// name the next state.
type TimedBehavior interface {
	Enter(ctx context.Context, t *Trial, now time.Duration) time.Duration
	Tick(ctx context.Context, t *Trial, elapsed time.Duration) Decision
	Exit(ctx context.Context, t *Trial, elapsed time.Duration) domain.StateID
}

// TimedState wraps a TimedBehavior with the entry timestamp and the boundary check.
//
// Leaving the state from Tick with GoTo does not run Exit: the state stays active and
// resumes with its original deadline when it becomes current again. Reset discards
// that suspended run.
type TimedState struct {
	id       domain.StateID
	behavior TimedBehavior

	active    bool
	enteredAt time.Duration
	duration  time.Duration
}

// NewTimedState binds behavior to id.
func NewTimedState(id domain.StateID, behavior TimedBehavior) *TimedState {
	return &TimedState{id: id, behavior: behavior}
}

// ID implements State.
func (s *TimedState) ID() domain.StateID { return s.id }

// Active reports whether the state has been entered and not yet exited.
func (s *TimedState) Active() bool { return s.active }

// Deadline returns the absolute time at which the current run ends.
func (s *TimedState) Deadline() time.Duration { return s.enteredAt + s.duration }

// Reset returns the state to idle without running Exit.
func (s *TimedState) Reset() {
	s.active = false
	s.enteredAt = 0
	s.duration = 0
}

// Run implements State.
func (s *TimedState) Run(ctx context.Context, t *Trial, now time.Duration) Decision {
	if !s.active {
		s.active = true
		s.enteredAt = now
		s.duration = max(s.behavior.Enter(ctx, t, now), 0)
	}

	elapsed := now - s.enteredAt
	if elapsed >= s.duration {
		return s.exit(ctx, t, elapsed)
	}

	d := s.behavior.Tick(ctx, t, elapsed)
	if d.IsStop() {
		return s.exit(ctx, t, elapsed)
	}
	return d
}

func (s *TimedState) exit(ctx context.Context, t *Trial, elapsed time.Duration) Decision {
	next := s.behavior.Exit(ctx, t, elapsed)
	s.Reset()
	return GoTo(next)
}

// timer is a timed behavior with no body: it waits for a parameter's duration and
// then moves on.
type timer struct {
	param params.ParamID
	next  domain.StateID
}

func (b timer) Enter(_ context.Context, t *Trial, _ time.Duration) time.Duration {
	return t.Duration(b.param)
}

func (timer) Tick(context.Context, *Trial, time.Duration) Decision { return Stay() }

func (b timer) Exit(context.Context, *Trial, time.Duration) domain.StateID { return b.next }
