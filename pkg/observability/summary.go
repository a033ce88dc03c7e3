package observability

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aretw0/ardufsm/pkg/domain"
	"github.com/aretw0/ardufsm/pkg/params"
)

var outcomeOrder = []domain.Outcome{
	domain.OutcomeHit,
	domain.OutcomeMiss,
	domain.OutcomeFalseAlarm,
	domain.OutcomeCorrectRejection,
	domain.OutcomeUnset,
}

// Summary tallies trial outcomes for the end-of-session report.
type Summary struct {
	mu         sync.Mutex
	trials     int
	rewards    int
	earlyStops int
	outcomes   map[domain.Outcome]int
}

// NewSummary creates an empty tally.
func NewSummary() *Summary {
	return &Summary{outcomes: make(map[domain.Outcome]int)}
}

// Hooks returns the hook that records finished trials.
func (s *Summary) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTrialEnd: func(_ context.Context, e *domain.TrialEvent) { s.Record(e) },
	}
}

// Record adds one finished trial.
func (s *Summary) Record(e *domain.TrialEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trials++
	s.rewards += e.Rewards
	if e.StoppedEarly {
		s.earlyStops++
	}
	s.outcomes[domain.Outcome(e.Results[resultName(params.Outcome)])]++
}

// Trials returns the number of recorded trials.
func (s *Summary) Trials() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trials
}

// Count returns how many trials ended with o.
func (s *Summary) Count(o domain.Outcome) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcomes[o]
}

// Markdown renders the tally. Error trials carry no outcome and show as "unset".
func (s *Summary) Markdown() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	b.WriteString("## Session summary\n\n")
	fmt.Fprintf(&b, "%d trials, %d rewards, %d windows ended at MRT.\n\n", s.trials, s.rewards, s.earlyStops)
	b.WriteString("| Outcome | Trials | Share |\n|---|---:|---:|\n")
	for _, o := range outcomeOrder {
		n := s.outcomes[o]
		share := 0.0
		if s.trials > 0 {
			share = 100 * float64(n) / float64(s.trials)
		}
		fmt.Fprintf(&b, "| %s | %d | %.1f%% |\n", o, n, share)
	}
	return b.String()
}
