package runtime

import (
	"log/slog"
	"math/rand/v2"

	"github.com/aretw0/ardufsm/internal/logging"
	"github.com/aretw0/ardufsm/pkg/ports"
)

// Analog readings outside this range cannot come from a 10-bit ADC.
const (
	minAnalog = 0
	maxAnalog = 1023

	// DefaultLickThreshold is the reading above which the touch sensor counts as a lick.
	DefaultLickThreshold = 900
)

// ThresholdDetector reports a lick when an analog reading exceeds a threshold.
type ThresholdDetector struct {
	input     ports.AnalogInput
	threshold int
	logger    *slog.Logger
}

// NewThresholdDetector wraps input. A threshold of 0 selects DefaultLickThreshold.
func NewThresholdDetector(input ports.AnalogInput, threshold int, logger *slog.Logger) *ThresholdDetector {
	if threshold == 0 {
		threshold = DefaultLickThreshold
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &ThresholdDetector{input: input, threshold: threshold, logger: logger}
}

// Licking implements ports.LickDetector.
func (d *ThresholdDetector) Licking() bool {
	v := d.input.Read()
	if v < minAnalog || v > maxAnalog {
		d.logger.Error("impossible sensor reading", "value", v)
		return false
	}
	return v > d.threshold
}

// Fake response rate: 3 licks in 10000 polls.
const (
	fakeLickNumerator   = 3
	fakeLickDenominator = 10000
)

// RandomDetector licks at random, independently of any sensor. It drives the fake
// response window.
type RandomDetector struct {
	rng *rand.Rand
}

// NewRandomDetector returns a detector seeded with seed, so runs are reproducible.
func NewRandomDetector(seed uint64) *RandomDetector {
	return &RandomDetector{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Licking implements ports.LickDetector.
func (d *RandomDetector) Licking() bool {
	return d.rng.IntN(fakeLickDenominator) < fakeLickNumerator
}
