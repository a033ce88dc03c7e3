package runtime

import "github.com/aretw0/ardufsm/pkg/ports"

// Rig is the hardware the standard state set drives.
type Rig struct {
	Devices []DeviceBinding
	Valve   ports.Output
	Sync    ports.Output
	// StimLicks is polled during the stimulus period, ResponseLicks during the
	// response window. They differ when responses are simulated.
	StimLicks     ports.LickDetector
	ResponseLicks ports.LickDetector
	TrialStart    TrialStartHook
}

// StandardStates builds the full go/no-go state set.
func StandardStates(env *Env, rig Rig) []State {
	responseLicks := rig.ResponseLicks
	if responseLicks == nil {
		responseLicks = rig.StimLicks
	}
	if responseLicks == nil {
		responseLicks = ports.LickDetectorFunc(func() bool { return false })
	}
	return []State{
		NewWaitToStartTrial(env),
		NewTrialStart(env, rig.TrialStart),
		NewStimPeriod(StimConfig{
			Devices: rig.Devices,
			Valve:   rig.Valve,
			Sync:    rig.Sync,
			Licks:   rig.StimLicks,
		}),
		NewReward(env, rig.Valve),
		NewResponseWindow(responseLicks),
		NewErrorTimeout(),
		NewInterTrialInterval(env),
		NewPostRewardPause(),
	}
}
