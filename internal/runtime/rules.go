package runtime

import (
	"github.com/aretw0/ardufsm/pkg/domain"
	"github.com/aretw0/ardufsm/pkg/params"
)

// Rules is the static transition table of the standard state set.
func Rules() []domain.Rule {
	return []domain.Rule{
		{From: domain.StateWaitToStartTrial, To: domain.StateTrialStart, Condition: "trial released"},
		{From: domain.StateTrialStart, To: domain.StateStimPeriod, Condition: "trial-start hook"},
		{From: domain.StateStimPeriod, To: domain.StateError, Condition: "licked during stimulus"},
		{From: domain.StateStimPeriod, To: domain.StateResponseWindow, Condition: "STIMDUR elapsed"},
		{From: domain.StateResponseWindow, To: domain.StateReward, Condition: "lick on GO trial"},
		{From: domain.StateResponseWindow, To: domain.StateError, Condition: "false alarm, TOE set"},
		{From: domain.StateResponseWindow, To: domain.StateInterTrialInterval, Condition: "RWIN elapsed or MRT reached"},
		{From: domain.StateReward, To: domain.StatePostRewardPause, Condition: "REW_DUR delivered"},
		{From: domain.StatePostRewardPause, To: domain.StateResponseWindow, Condition: "IRI elapsed"},
		{From: domain.StateError, To: domain.StateInterTrialInterval, Condition: "TO elapsed"},
		{From: domain.StateInterTrialInterval, To: domain.StateWaitToStartTrial, Condition: "ITI elapsed"},
	}
}

// TimerParams maps every state that lasts for a parameter to that parameter.
// Reward is included: its duration is the blocking valve pulse.
func TimerParams() map[domain.StateID]params.ParamID {
	return map[domain.StateID]params.ParamID{
		domain.StateStimPeriod:         params.StimDuration,
		domain.StateResponseWindow:     params.ResponseWindowDuration,
		domain.StateError:              params.ErrorTimeout,
		domain.StateInterTrialInterval: params.InterTrialInterval,
		domain.StatePostRewardPause:    params.InterRewardInterval,
		domain.StateReward:             params.RewardDuration,
	}
}
