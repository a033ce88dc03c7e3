package runtime

import (
	"time"

	"github.com/aretw0/ardufsm/pkg/params"
)

// Trial is the context threaded through every state call.
// It is owned by the dispatcher and only touched from the control loop.
type Trial struct {
	Params  *params.Store
	Results *params.Results

	// Number is the 1-based index of the current trial. It is 0 before the first trial starts.
	Number int
	// Rewards counts rewards delivered in the current trial.
	Rewards int
	// StoppedEarly is set when the response window ends because MRT was reached.
	StoppedEarly bool

	startRequested bool
}

// NewTrial creates a trial context over the given tables.
func NewTrial(p *params.Store, r *params.Results) *Trial {
	return &Trial{Params: p, Results: r}
}

// RequestStart raises the start-trial flag. The wait state consumes it.
func (t *Trial) RequestStart() { t.startRequested = true }

// StartRequested reports whether the start-trial flag is raised.
func (t *Trial) StartRequested() bool { return t.startRequested }

func (t *Trial) clearStart() { t.startRequested = false }

// Duration reads a millisecond parameter. Negative values clamp to zero.
func (t *Trial) Duration(id params.ParamID) time.Duration {
	v := t.Params.Get(id)
	if v < 0 {
		return 0
	}
	return time.Duration(v) * time.Millisecond
}

func (t *Trial) param(id params.ParamID) int64 { return t.Params.Get(id) }
