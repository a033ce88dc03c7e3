package ports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunClockContract runs a suite of tests to verify that a Clock/Sleeper pair
// adheres to the timing contract the states rely on.
func RunClockContract(t *testing.T, clock Clock, sleeper Sleeper) {
	t.Run("Monotonic", func(t *testing.T) {
		prev := clock.Now()
		for i := 0; i < 100; i++ {
			now := clock.Now()
			require.GreaterOrEqual(t, now, prev, "clock went backwards")
			prev = now
		}
	})

	t.Run("Sleep Advances Clock", func(t *testing.T) {
		const d = 5 * time.Millisecond
		before := clock.Now()
		sleeper.Sleep(d)
		after := clock.Now()
		assert.GreaterOrEqual(t, after-before, d, "sleep returned before the pulse elapsed")
	})

	t.Run("Zero Sleep", func(t *testing.T) {
		before := clock.Now()
		sleeper.Sleep(0)
		assert.GreaterOrEqual(t, clock.Now(), before)
	})
}
