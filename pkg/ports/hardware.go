package ports

import (
	"time"

	"github.com/aretw0/ardufsm/pkg/domain"
)

// Device is a stimulus device (stepper, speaker, ...).
// Execute is called on every poll of the stimulus period with the behavior selected
// for this trial and the time elapsed in the state; Finish is called exactly once when
// the stimulus period ends.
type Device interface {
	Execute(behavior domain.BehaviorID, elapsed time.Duration)
	Finish()
}

// Output is a digital output line such as the reward solenoid or the sync pin.
type Output interface {
	Set(high bool)
}

// AnalogInput is a sampled analog pin.
type AnalogInput interface {
	Read() int
}

// LickDetector answers whether the subject is licking right now.
type LickDetector interface {
	Licking() bool
}

// LickDetectorFunc adapts a function to LickDetector.
type LickDetectorFunc func() bool

// Licking implements LickDetector.
func (f LickDetectorFunc) Licking() bool { return f() }
