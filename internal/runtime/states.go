package runtime

import (
	"context"
	"time"

	"github.com/aretw0/ardufsm/pkg/domain"
	"github.com/aretw0/ardufsm/pkg/params"
	"github.com/aretw0/ardufsm/pkg/ports"
)

// DeviceBinding pairs a stimulus device with the parameter that selects its behavior.
type DeviceBinding struct {
	Device ports.Device
	Param  params.ParamID
}

// StimConfig wires the stimulus period to the rig.
type StimConfig struct {
	Devices []DeviceBinding
	Valve   ports.Output
	Sync    ports.Output
	Licks   ports.LickDetector
}

type stimPeriod struct {
	devices []DeviceBinding
	valve   ports.Output
	sync    ports.Output
	licks   ports.LickDetector

	selected  []domain.BehaviorID
	duration  time.Duration
	licked    bool
	valveOpen bool
}

// NewStimPeriod builds the stimulus period. Every device runs the behavior named by
// its parameter for STIMDUR. On rewarded trials the valve opens once in the final
// REW_DUR of the stimulus. The stimulus always runs its full STIMDUR: a lick during it
// is remembered and sends the trial to ERROR when the stimulus ends.
func NewStimPeriod(cfg StimConfig) *TimedState {
	licks := cfg.Licks
	if licks == nil {
		licks = ports.LickDetectorFunc(func() bool { return false })
	}
	return NewTimedState(domain.StateStimPeriod, &stimPeriod{
		devices:  cfg.Devices,
		valve:    outputOrNop(cfg.Valve),
		sync:     outputOrNop(cfg.Sync),
		licks:    licks,
		selected: make([]domain.BehaviorID, len(cfg.Devices)),
	})
}

func (s *stimPeriod) Enter(_ context.Context, t *Trial, _ time.Duration) time.Duration {
	s.licked = false
	s.valveOpen = false
	for i, b := range s.devices {
		s.selected[i] = domain.BehaviorID(t.param(b.Param))
	}
	s.sync.Set(true)
	s.duration = t.Duration(params.StimDuration)
	return s.duration
}

func (s *stimPeriod) Tick(_ context.Context, t *Trial, elapsed time.Duration) Decision {
	for i, b := range s.devices {
		b.Device.Execute(s.selected[i], elapsed)
	}
	if s.licks.Licking() {
		s.licked = true
	}
	if !s.valveOpen && t.param(params.Rewarded) == int64(domain.ResponseGo) &&
		s.duration-elapsed < t.Duration(params.RewardDuration) {
		s.valve.Set(true)
		s.valveOpen = true
	}
	return Stay()
}

func (s *stimPeriod) Exit(context.Context, *Trial, time.Duration) domain.StateID {
	for _, b := range s.devices {
		b.Device.Finish()
	}
	s.valve.Set(false)
	s.valveOpen = false
	s.sync.Set(false)
	if s.licked {
		return domain.StateError
	}
	return domain.StateResponseWindow
}

type responseWindow struct {
	licks ports.LickDetector
}

// NewResponseWindow builds the response window over the given detector. Pass a
// RandomDetector to simulate responses.
func NewResponseWindow(licks ports.LickDetector) *TimedState {
	return NewTimedState(domain.StateResponseWindow, &responseWindow{licks: licks})
}

func (w *responseWindow) Enter(_ context.Context, t *Trial, _ time.Duration) time.Duration {
	return t.Duration(params.ResponseWindowDuration)
}

func (w *responseWindow) Tick(_ context.Context, t *Trial, _ time.Duration) Decision {
	licking := w.licks.Licking()

	if int64(t.Rewards) >= t.param(params.MaxRewards) {
		t.StoppedEarly = true
		return Stop()
	}
	if !licking {
		return Stay()
	}

	// First response wins; later licks never overwrite it.
	if domain.Response(t.Results.Get(params.Response)) == domain.ResponseUnset {
		t.Results.Set(params.Response, int64(domain.ResponseGo))
	}

	switch {
	case t.param(params.Rewarded) == int64(domain.ResponseGo):
		t.Results.Set(params.Outcome, int64(domain.OutcomeHit))
		t.Rewards++
		return GoTo(domain.StateReward)
	case t.param(params.TerminateOnError) == domain.No:
		return Stay()
	default:
		t.Results.Set(params.Outcome, int64(domain.OutcomeFalseAlarm))
		return GoTo(domain.StateError)
	}
}

func (w *responseWindow) Exit(_ context.Context, t *Trial, _ time.Duration) domain.StateID {
	if domain.Response(t.Results.Get(params.Response)) == domain.ResponseUnset {
		t.Results.Set(params.Response, int64(domain.ResponseNoGo))
		if t.param(params.Rewarded) == int64(domain.ResponseNoGo) {
			t.Results.Set(params.Outcome, int64(domain.OutcomeCorrectRejection))
		} else {
			t.Results.Set(params.Outcome, int64(domain.OutcomeMiss))
		}
	}
	return domain.StateInterTrialInterval
}

type interTrialInterval struct {
	env *Env
}

// NewInterTrialInterval builds the inter-trial interval. On entry it reports every
// result with the entry timestamp and fires the trial-end hook.
func NewInterTrialInterval(env *Env) *TimedState {
	return NewTimedState(domain.StateInterTrialInterval, &interTrialInterval{env: env})
}

func (b *interTrialInterval) Enter(ctx context.Context, t *Trial, now time.Duration) time.Duration {
	t.Results.Each(func(_ params.ResultID, name string, value int64) {
		b.env.report(now, ports.TagResult, name, value)
	})
	b.env.emitTrialEnd(ctx, &domain.TrialEvent{
		EventBase:    domain.EventBase{At: now, Type: domain.EventTrialEnd, Trial: t.Number},
		Results:      t.Results.Snapshot(),
		Rewards:      t.Rewards,
		StoppedEarly: t.StoppedEarly,
	})
	b.env.Logger.Info("trial ended",
		"trial", t.Number,
		"outcome", domain.Outcome(t.Results.Get(params.Outcome)),
		"rewards", t.Rewards,
	)
	return t.Duration(params.InterTrialInterval)
}

func (b *interTrialInterval) Tick(context.Context, *Trial, time.Duration) Decision { return Stay() }

func (b *interTrialInterval) Exit(context.Context, *Trial, time.Duration) domain.StateID {
	return domain.StateWaitToStartTrial
}

// NewErrorTimeout builds the error timeout: TO of nothing, then the inter-trial interval.
func NewErrorTimeout() *TimedState {
	return NewTimedState(domain.StateError, timer{param: params.ErrorTimeout, next: domain.StateInterTrialInterval})
}

// NewPostRewardPause builds the pause after a reward. It returns to the response
// window, which resumes its original deadline.
func NewPostRewardPause() *TimedState {
	return NewTimedState(domain.StatePostRewardPause, timer{param: params.InterRewardInterval, next: domain.StateResponseWindow})
}
