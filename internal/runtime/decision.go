package runtime

import "github.com/aretw0/ardufsm/pkg/domain"

type decisionKind int

const (
	kindStay decisionKind = iota
	kindGoTo
	kindStop
)

// Decision is what a state asks the dispatcher to do after one dispatch.
// The zero value is Stay.
type Decision struct {
	kind   decisionKind
	target domain.StateID
}

// Stay keeps the current state.
func Stay() Decision { return Decision{kind: kindStay} }

// GoTo switches to the given state on this dispatch.
func GoTo(id domain.StateID) Decision { return Decision{kind: kindGoTo, target: id} }

// Stop ends a timed state early. Its exit hook chooses the next state.
// Instantaneous states have no exit hook, so Stop from them behaves like Stay.
func Stop() Decision { return Decision{kind: kindStop} }

// Target returns the requested state, if any.
func (d Decision) Target() (domain.StateID, bool) {
	return d.target, d.kind == kindGoTo
}

// IsStop reports whether d is a Stop decision.
func (d Decision) IsStop() bool { return d.kind == kindStop }

func (d Decision) String() string {
	switch d.kind {
	case kindGoTo:
		return "goto " + d.target.String()
	case kindStop:
		return "stop"
	default:
		return "stay"
	}
}
