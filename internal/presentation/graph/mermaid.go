package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/ardufsm/pkg/domain"
)

// Overlay marks states on the graph: the ones a session went through and the
// current one.
type Overlay struct {
	Visited []domain.StateID
	Current *domain.StateID
}

// Options decorates the graph.
type Options struct {
	// Timers labels states with the name of their duration parameter.
	Timers map[domain.StateID]string
	// Instant lists the states that run once and leave on the same poll.
	Instant map[domain.StateID]bool
	Overlay *Overlay
}

// GenerateMermaid produces a Mermaid flowchart from the transition table.
// Node shapes:
// - entry state: ((Circle))
// - instantaneous states: ([Stadium])
// - timed states: [Rectangle], with the duration parameter below the name
func GenerateMermaid(rules []domain.Rule, opts Options) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, id := range statesOf(rules) {
		opener, closer := "[", "]"
		switch {
		case id == domain.StateWaitToStartTrial:
			opener, closer = "((", "))"
		case opts.Instant[id]:
			opener, closer = "([", "])"
		}

		label := id.String()
		if p, ok := opts.Timers[id]; ok {
			label = fmt.Sprintf("%s <br/> ⏱️ %s", label, p)
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", nodeID(id), opener, label, closer)
	}

	for _, r := range rules {
		arrow := "-->"
		if r.Condition != "" {
			arrow = fmt.Sprintf("-- \"%s\" -->", strings.ReplaceAll(r.Condition, "\"", "'"))
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", nodeID(r.From), arrow, nodeID(r.To))
	}

	if ov := opts.Overlay; ov != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text so labels stay readable on either theme.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[domain.StateID]bool)
		for _, id := range ov.Visited {
			if !seen[id] && id.Valid() {
				seen[id] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", nodeID(id))
			}
		}
		if ov.Current != nil {
			fmt.Fprintf(&sb, "    class %s current;\n", nodeID(*ov.Current))
		}
	}

	return sb.String()
}

// statesOf lists the states named by rules in protocol order.
func statesOf(rules []domain.Rule) []domain.StateID {
	present := make(map[domain.StateID]bool)
	for _, r := range rules {
		present[r.From] = true
		present[r.To] = true
	}
	var out []domain.StateID
	for _, id := range domain.AllStates() {
		if present[id] {
			out = append(out, id)
		}
	}
	return out
}

func nodeID(id domain.StateID) string {
	return strings.ToLower(id.String())
}
