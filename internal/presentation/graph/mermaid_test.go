package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/ardufsm/internal/presentation/graph"
	"github.com/aretw0/ardufsm/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	rules := []domain.Rule{
		{From: domain.StateWaitToStartTrial, To: domain.StateTrialStart, Condition: "trial released"},
		{From: domain.StateTrialStart, To: domain.StateStimPeriod},
		{From: domain.StateStimPeriod, To: domain.StateError, Condition: `lick "early"`},
	}
	tests := []struct {
		name     string
		opts     graph.Options
		contains []string
		absent   []string
	}{
		{
			name: "Shapes",
			opts: graph.Options{Instant: map[domain.StateID]bool{domain.StateTrialStart: true}},
			contains: []string{
				`wait_to_start_trial(("WAIT_TO_START_TRIAL"))`,
				`trial_start(["TRIAL_START"])`,
				`stim_period["STIM_PERIOD"]`,
				`error["ERROR"]`,
			},
		},
		{
			name: "Timer Labels",
			opts: graph.Options{Timers: map[domain.StateID]string{domain.StateStimPeriod: "STIMDUR"}},
			contains: []string{
				`stim_period["STIM_PERIOD <br/> ⏱️ STIMDUR"]`,
			},
		},
		{
			name: "Edges",
			contains: []string{
				`wait_to_start_trial -- "trial released" --> trial_start`,
				"trial_start --> stim_period",
				`stim_period -- "lick 'early'" --> error`,
			},
			absent: []string{"classDef"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := graph.GenerateMermaid(rules, tt.opts)
			assert.True(t, strings.HasPrefix(out, "graph TD\n"))
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, no := range tt.absent {
				assert.NotContains(t, out, no)
			}
		})
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	rules := []domain.Rule{
		{From: domain.StateWaitToStartTrial, To: domain.StateTrialStart},
		{From: domain.StateTrialStart, To: domain.StateStimPeriod},
	}
	current := domain.StateStimPeriod

	out := graph.GenerateMermaid(rules, graph.Options{Overlay: &graph.Overlay{
		Visited: []domain.StateID{domain.StateWaitToStartTrial, domain.StateTrialStart, domain.StateWaitToStartTrial, domain.StateID(99)},
		Current: &current,
	}})

	assert.Equal(t, 1, strings.Count(out, "class wait_to_start_trial visited;"))
	assert.Contains(t, out, "class trial_start visited;")
	assert.Contains(t, out, "class stim_period current;")
	assert.NotContains(t, out, "STATE(99)")
}

func TestGenerateMermaid_OnlyListedStates(t *testing.T) {
	out := graph.GenerateMermaid([]domain.Rule{{From: domain.StateError, To: domain.StateInterTrialInterval}}, graph.Options{})
	assert.NotContains(t, out, "reward")
	assert.Contains(t, out, `inter_trial_interval["INTER_TRIAL_INTERVAL"]`)
}
