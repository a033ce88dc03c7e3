package main

import (
	"fmt"

	"github.com/aretw0/ardufsm/internal/presentation/graph"
	"github.com/aretw0/ardufsm/internal/runtime"
	"github.com/aretw0/ardufsm/pkg/domain"
	"github.com/aretw0/ardufsm/pkg/params"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the trial state machine as a Mermaid diagram",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(runtime.Rules(), graphOptions()))
	},
}

func graphOptions() graph.Options {
	specs := params.StandardSpecs()
	timers := make(map[domain.StateID]string)
	for state, p := range runtime.TimerParams() {
		timers[state] = specs[p].Name
	}
	return graph.Options{
		Timers: timers,
		Instant: map[domain.StateID]bool{
			domain.StateWaitToStartTrial: true,
			domain.StateTrialStart:       true,
			domain.StateReward:           true,
		},
	}
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
