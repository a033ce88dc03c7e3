package ports

import "time"

// Clock reports the time elapsed since the controller booted.
// Implementations must be monotonic.
type Clock interface {
	Now() time.Duration
}

// Sleeper blocks the caller for d.
// The controller uses it only for the reward pulse, the one sanctioned blocking
// operation of the control loop.
type Sleeper interface {
	Sleep(d time.Duration)
}
