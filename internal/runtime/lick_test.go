package runtime

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/ardufsm/internal/logging"
)

type fixedInput int

func (v fixedInput) Read() int { return int(v) }

func TestThresholdDetector(t *testing.T) {
	tests := []struct {
		reading int
		want    bool
	}{
		{0, false},
		{900, false},
		{901, true},
		{1023, true},
	}
	for _, tt := range tests {
		d := NewThresholdDetector(fixedInput(tt.reading), 0, nil)
		assert.Equal(t, tt.want, d.Licking(), "reading %d", tt.reading)
	}
}

func TestThresholdDetector_ImpossibleReading(t *testing.T) {
	for _, reading := range []int{-1, 1024, 5000} {
		var buf bytes.Buffer
		d := NewThresholdDetector(fixedInput(reading), 500, logging.NewWriter(&buf, slog.LevelInfo))

		assert.False(t, d.Licking(), "reading %d", reading)
		assert.Contains(t, buf.String(), "impossible sensor reading")
	}
}

func TestRandomDetector_Rate(t *testing.T) {
	d := NewRandomDetector(42)
	const polls = 1_000_000

	licks := 0
	for i := 0; i < polls; i++ {
		if d.Licking() {
			licks++
		}
	}
	// Expected 300, standard deviation about 17.
	assert.InDelta(t, 300, licks, 100)
}

func TestRandomDetector_Seeded(t *testing.T) {
	a, b := NewRandomDetector(9), NewRandomDetector(9)
	for i := 0; i < 50_000; i++ {
		assert.Equal(t, a.Licking(), b.Licking())
	}
}
