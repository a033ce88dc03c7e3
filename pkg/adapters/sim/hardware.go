package sim

import (
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/aretw0/ardufsm/internal/logging"
	"github.com/aretw0/ardufsm/pkg/domain"
	"github.com/aretw0/ardufsm/pkg/ports"
)

// Window is a half-open interval of controller time.
type Window struct {
	From, To time.Duration
}

func (w Window) contains(t time.Duration) bool { return t >= w.From && t < w.To }

// ScriptedLicks licks whenever the clock falls inside one of its windows.
type ScriptedLicks struct {
	clock   ports.Clock
	windows []Window
}

// NewScriptedLicks creates a scripted detector.
func NewScriptedLicks(c ports.Clock, windows ...Window) *ScriptedLicks {
	return &ScriptedLicks{clock: c, windows: windows}
}

// Licking implements ports.LickDetector.
func (s *ScriptedLicks) Licking() bool {
	now := s.clock.Now()
	for _, w := range s.windows {
		if w.contains(now) {
			return true
		}
	}
	return false
}

// RandomLicks licks in short bouts whose onsets are spread at random in clock
// time, with MeanGap between onsets on average. The lick rate depends on the clock,
// not on how often Licking is polled.
type RandomLicks struct {
	clock   ports.Clock
	rng     *rand.Rand
	meanGap time.Duration
	bout    time.Duration

	started bool
	onset   time.Duration
}

// NewRandomLicks creates a seeded lick generator. A bout shorter than a millisecond
// is raised to one.
func NewRandomLicks(c ports.Clock, seed uint64, meanGap, bout time.Duration) *RandomLicks {
	return &RandomLicks{
		clock:   c,
		rng:     rand.New(rand.NewPCG(seed, seed^0x5eed)),
		meanGap: max(meanGap, 0),
		bout:    max(bout, time.Millisecond),
	}
}

// Licking implements ports.LickDetector.
func (l *RandomLicks) Licking() bool {
	now := l.clock.Now()
	if !l.started {
		l.started = true
		l.onset = now + l.gap()
	}
	for now >= l.onset+l.bout {
		l.onset += l.bout + l.gap()
	}
	return now >= l.onset
}

func (l *RandomLicks) gap() time.Duration {
	return time.Duration(l.rng.ExpFloat64() * float64(l.meanGap))
}

// Analog levels of the simulated touch sensor.
const (
	TouchIdle    = 120
	TouchContact = 1010
)

// TouchSensor is an analog input that reads TouchContact while its script licks.
// Pair it with a threshold detector to exercise the real detection path.
type TouchSensor struct {
	script ports.LickDetector
}

// NewTouchSensor wraps a lick script.
func NewTouchSensor(script ports.LickDetector) *TouchSensor {
	return &TouchSensor{script: script}
}

// Read implements ports.AnalogInput.
func (s *TouchSensor) Read() int {
	if s.script.Licking() {
		return TouchContact
	}
	return TouchIdle
}

// ValveEvent is one edge of a simulated solenoid.
type ValveEvent struct {
	At   time.Duration
	Open bool
}

// Valve is a simulated output line that keeps its edges.
type Valve struct {
	name   string
	clock  ports.Clock
	logger *slog.Logger

	mu     sync.Mutex
	open   bool
	events []ValveEvent
}

// NewValve creates a simulated output. A nil logger discards.
func NewValve(name string, c ports.Clock, logger *slog.Logger) *Valve {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Valve{name: name, clock: c, logger: logger}
}

// Set implements ports.Output. Only level changes are recorded.
func (v *Valve) Set(high bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if high == v.open {
		return
	}
	v.open = high
	at := v.clock.Now()
	v.events = append(v.events, ValveEvent{At: at, Open: high})
	v.logger.Debug("output", "line", v.name, "high", high, "at_ms", at.Milliseconds())
}

// Open reports the current level.
func (v *Valve) Open() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.open
}

// Events returns every recorded edge.
func (v *Valve) Events() []ValveEvent {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]ValveEvent(nil), v.events...)
}

// OpenTime sums the time the line was high, counting an open pulse up to now.
func (v *Valve) OpenTime() time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	var total, since time.Duration
	for _, e := range v.events {
		if e.Open {
			since = e.At
		} else {
			total += e.At - since
		}
	}
	if v.open {
		total += v.clock.Now() - since
	}
	return total
}

// Dummy is a stimulus device that only logs what it is asked to do.
type Dummy struct {
	name   string
	logger *slog.Logger

	running    bool
	behavior   domain.BehaviorID
	executions int
	finishes   int
}

// NewDummyStepper returns a dummy stepper motor.
func NewDummyStepper(logger *slog.Logger) *Dummy { return newDummy("stepper", logger) }

// NewDummySpeaker returns a dummy speaker.
func NewDummySpeaker(logger *slog.Logger) *Dummy { return newDummy("speaker", logger) }

func newDummy(name string, logger *slog.Logger) *Dummy {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Dummy{name: name, logger: logger}
}

// Execute implements ports.Device.
func (d *Dummy) Execute(behavior domain.BehaviorID, elapsed time.Duration) {
	if !d.running {
		d.running = true
		d.behavior = behavior
		d.logger.Debug("device start", "device", d.name, "behavior", int(behavior), "elapsed_ms", elapsed.Milliseconds())
	}
	d.executions++
}

// Finish implements ports.Device.
func (d *Dummy) Finish() {
	d.running = false
	d.finishes++
	d.logger.Debug("device finish", "device", d.name, "behavior", int(d.behavior))
}

// Name returns the device name.
func (d *Dummy) Name() string { return d.name }

// Behavior returns the behavior of the last stimulus.
func (d *Dummy) Behavior() domain.BehaviorID { return d.behavior }

// Executions counts Execute calls.
func (d *Dummy) Executions() int { return d.executions }

// Finishes counts Finish calls, one per stimulus period.
func (d *Dummy) Finishes() int { return d.finishes }
