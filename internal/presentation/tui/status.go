package tui

import (
	"fmt"

	"github.com/muesli/termenv"

	"github.com/aretw0/ardufsm/pkg/domain"
)

var outcomeColors = map[domain.Outcome]string{
	domain.OutcomeHit:              "#22c55e",
	domain.OutcomeCorrectRejection: "#22c55e",
	domain.OutcomeMiss:             "#f59e0b",
	domain.OutcomeFalseAlarm:       "#ef4444",
}

// TrialLine formats one finished trial for the operator console.
func TrialLine(p termenv.Profile, e *domain.TrialEvent) string {
	outcome := domain.Outcome(e.Results["OUTC"])
	label := outcome.String()
	if outcome == domain.OutcomeUnset {
		label = "error"
	}
	styled := p.String(fmt.Sprintf("%-17s", label))
	if c, ok := outcomeColors[outcome]; ok {
		styled = styled.Foreground(p.Color(c))
	}
	if outcome == domain.OutcomeUnset {
		styled = styled.Foreground(p.Color("#a855f7"))
	}

	line := fmt.Sprintf("trial %4d  %s  rewards %d", e.Trial, styled, e.Rewards)
	if e.StoppedEarly {
		line += "  (MRT)"
	}
	return line
}
