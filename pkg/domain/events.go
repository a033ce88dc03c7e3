package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTransition EventType = "transition"
	EventTrialStart EventType = "trial_start"
	EventTrialEnd   EventType = "trial_end"
	EventReward     EventType = "reward"
)

// EventBase contains common fields for all events.
// At is the controller clock (time since boot), not wall time.
type EventBase struct {
	At    time.Duration `json:"at"`
	Type  EventType     `json:"type"`
	Trial int           `json:"trial"`
}

// TransitionEvent is emitted after the dispatcher switches states.
// DecidedAt is the time latched when the state returned its decision, AnnouncedAt is
// re-sampled after the ST_CHG line was written; the gap exposes scheduling jitter.
type TransitionEvent struct {
	EventBase
	From        StateID       `json:"from"`
	To          StateID       `json:"to"`
	DecidedAt   time.Duration `json:"decided_at"`
	AnnouncedAt time.Duration `json:"announced_at"`
}

// TrialEvent marks a trial boundary. Results holds the result values by abbreviation
// (defaults on start, final values on end).
type TrialEvent struct {
	EventBase
	Results      map[string]int64 `json:"results,omitempty"`
	Rewards      int              `json:"rewards"`
	StoppedEarly bool             `json:"stopped_early,omitempty"`
}

// RewardEvent is emitted after a reward pulse has been delivered.
type RewardEvent struct {
	EventBase
	Duration time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for controller observability.
// Hooks run synchronously on the control loop and must return promptly.
type LifecycleHooks struct {
	OnTransition func(context.Context, *TransitionEvent)
	OnTrialStart func(context.Context, *TrialEvent)
	OnTrialEnd   func(context.Context, *TrialEvent)
	OnReward     func(context.Context, *RewardEvent)
}

// Merge returns hooks that call h first and then other for every event.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnTransition: chain(h.OnTransition, other.OnTransition),
		OnTrialStart: chain(h.OnTrialStart, other.OnTrialStart),
		OnTrialEnd:   chain(h.OnTrialEnd, other.OnTrialEnd),
		OnReward:     chain(h.OnReward, other.OnReward),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
