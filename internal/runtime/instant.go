package runtime

import (
	"context"
	"strings"
	"time"

	"github.com/aretw0/ardufsm/pkg/domain"
	"github.com/aretw0/ardufsm/pkg/params"
	"github.com/aretw0/ardufsm/pkg/ports"
)

// TrialStartHook picks the first state of a trial after the trial-start bookkeeping.
// Protocols that need a different opening than the stimulus period install one.
type TrialStartHook func(t *Trial) domain.StateID

type waitToStart struct {
	env *Env
}

// NewWaitToStartTrial builds the idle state between trials. It stays until the host
// releases a trial.
func NewWaitToStartTrial(env *Env) State {
	return &waitToStart{env: env}
}

func (s *waitToStart) ID() domain.StateID { return domain.StateWaitToStartTrial }

func (s *waitToStart) Run(_ context.Context, t *Trial, now time.Duration) Decision {
	if !t.StartRequested() {
		return Stay()
	}
	s.env.report(now, ports.TagTrialRelease)
	t.clearStart()
	return GoTo(domain.StateTrialStart)
}

type trialStart struct {
	env  *Env
	next TrialStartHook
}

// NewTrialStart builds the state that opens a trial. A nil hook starts every trial
// with the stimulus period.
func NewTrialStart(env *Env, hook TrialStartHook) State {
	if hook == nil {
		hook = func(*Trial) domain.StateID { return domain.StateStimPeriod }
	}
	return &trialStart{env: env, next: hook}
}

func (s *trialStart) ID() domain.StateID { return domain.StateTrialStart }

func (s *trialStart) Run(ctx context.Context, t *Trial, now time.Duration) Decision {
	s.env.report(now, ports.TagTrialStart)
	t.Params.Each(func(id params.ParamID, name string, value int64) {
		if t.Params.Report(id) {
			s.env.report(now, ports.TagParam, name, value)
		}
	})

	t.Results.Reset()
	t.Rewards = 0
	t.StoppedEarly = false
	t.Number++

	if missing := t.Params.MissingRequired(); len(missing) > 0 {
		s.env.Logger.Warn("required params not set", "trial", t.Number, "params", strings.Join(missing, ","))
	}

	s.env.emitTrialStart(ctx, &domain.TrialEvent{
		EventBase: domain.EventBase{At: now, Type: domain.EventTrialStart, Trial: t.Number},
		Results:   t.Results.Snapshot(),
	})
	s.env.Logger.Debug("trial started", "trial", t.Number)
	return GoTo(s.next(t))
}

type reward struct {
	env   *Env
	valve ports.Output
}

// NewReward builds the reward state: open the valve, block for REW_DUR, close it.
// The sleep is the only place the control loop blocks.
func NewReward(env *Env, valve ports.Output) State {
	return &reward{env: env, valve: outputOrNop(valve)}
}

func (s *reward) ID() domain.StateID { return domain.StateReward }

func (s *reward) Run(ctx context.Context, t *Trial, now time.Duration) Decision {
	d := t.Duration(params.RewardDuration)
	s.valve.Set(true)
	s.env.Sleeper.Sleep(d)
	s.valve.Set(false)

	s.env.emitReward(ctx, &domain.RewardEvent{
		EventBase: domain.EventBase{At: now, Type: domain.EventReward, Trial: t.Number},
		Duration:  d,
	})
	return GoTo(domain.StatePostRewardPause)
}
