package domain

import "fmt"

// StateID identifies a state of the trial FSM.
// The integer values are announced verbatim in ST_CHG lines, so their order is part
// of the host protocol.
type StateID int

const (
	StateWaitToStartTrial StateID = iota
	StateTrialStart
	StateStimPeriod
	StateReward
	StateResponseWindow
	StateError
	StateInterTrialInterval
	StatePostRewardPause
)

var stateNames = [...]string{
	StateWaitToStartTrial:   "WAIT_TO_START_TRIAL",
	StateTrialStart:         "TRIAL_START",
	StateStimPeriod:         "STIM_PERIOD",
	StateReward:             "REWARD",
	StateResponseWindow:     "RESPONSE_WINDOW",
	StateError:              "ERROR",
	StateInterTrialInterval: "INTER_TRIAL_INTERVAL",
	StatePostRewardPause:    "POST_REWARD_PAUSE",
}

// AllStates lists every state in protocol order.
func AllStates() []StateID {
	ids := make([]StateID, len(stateNames))
	for i := range stateNames {
		ids[i] = StateID(i)
	}
	return ids
}

func (s StateID) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("STATE(%d)", int(s))
}

// Valid reports whether s is one of the declared states.
func (s StateID) Valid() bool {
	return s >= 0 && int(s) < len(stateNames)
}
