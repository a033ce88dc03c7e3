package sim_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ardufsm/pkg/adapters/clock"
	"github.com/aretw0/ardufsm/pkg/adapters/sim"
	"github.com/aretw0/ardufsm/pkg/domain"
)

func TestScriptedLicks(t *testing.T) {
	clk := clock.NewManual(0)
	licks := sim.NewScriptedLicks(clk, sim.Window{From: 10 * time.Millisecond, To: 12 * time.Millisecond})

	var got []bool
	for i := 0; i < 14; i++ {
		got = append(got, licks.Licking())
		clk.Advance(time.Millisecond)
	}
	assert.Equal(t, []bool{false, false, false, false, false, false, false, false, false, false, true, true, false, false}, got)
}

func TestRandomLicks_RateFollowsClock(t *testing.T) {
	clk := clock.NewManual(0)
	licks := sim.NewRandomLicks(clk, 3, time.Second, 100*time.Millisecond)

	// Polling a thousand times without moving the clock changes nothing.
	first := licks.Licking()
	for i := 0; i < 1000; i++ {
		require.Equal(t, first, licks.Licking())
	}

	var onsets int
	prev := first
	for i := 0; i < 100_000; i++ {
		clk.Advance(time.Millisecond)
		now := licks.Licking()
		if now && !prev {
			onsets++
		}
		prev = now
	}
	// 100 s at one bout per 1.1 s on average.
	assert.InDelta(t, 90, onsets, 30)
}

func TestRandomLicks_Reproducible(t *testing.T) {
	run := func() []bool {
		clk := clock.NewManual(0)
		licks := sim.NewRandomLicks(clk, 11, 200*time.Millisecond, 20*time.Millisecond)
		out := make([]bool, 0, 2000)
		for i := 0; i < 2000; i++ {
			out = append(out, licks.Licking())
			clk.Advance(time.Millisecond)
		}
		return out
	}
	assert.Equal(t, run(), run())
}

func TestTouchSensor(t *testing.T) {
	on := false
	sensor := sim.NewTouchSensor(lickFunc(func() bool { return on }))
	assert.Equal(t, sim.TouchIdle, sensor.Read())
	on = true
	assert.Equal(t, sim.TouchContact, sensor.Read())
}

type lickFunc func() bool

func (f lickFunc) Licking() bool { return f() }

func TestValve_RecordsEdges(t *testing.T) {
	clk := clock.NewManual(0)
	v := sim.NewValve("reward", clk, nil)

	v.Set(false)
	clk.Advance(100 * time.Millisecond)
	v.Set(true)
	v.Set(true)
	clk.Advance(50 * time.Millisecond)
	v.Set(false)
	clk.Advance(time.Second)
	v.Set(true)
	clk.Advance(20 * time.Millisecond)

	assert.Equal(t, []sim.ValveEvent{
		{At: 100 * time.Millisecond, Open: true},
		{At: 150 * time.Millisecond, Open: false},
		{At: 1150 * time.Millisecond, Open: true},
	}, v.Events())
	assert.True(t, v.Open())
	assert.Equal(t, 70*time.Millisecond, v.OpenTime())
}

func TestDummy(t *testing.T) {
	d := sim.NewDummySpeaker(nil)
	for i := 0; i < 5; i++ {
		d.Execute(domain.BehaviorID(2), time.Duration(i)*time.Millisecond)
	}
	d.Finish()

	assert.Equal(t, "speaker", d.Name())
	assert.Equal(t, domain.BehaviorID(2), d.Behavior())
	assert.Equal(t, 5, d.Executions())
	assert.Equal(t, 1, d.Finishes())
	assert.Equal(t, "stepper", sim.NewDummyStepper(nil).Name())
}

type MockIdle struct {
	mock.Mock
}

func (m *MockIdle) SetParam(name string, value int64) error {
	return m.Called(name, value).Error(0)
}

func (m *MockIdle) ReleaseTrial() { m.Called() }

func (m *MockIdle) Current() domain.StateID {
	return m.Called().Get(0).(domain.StateID)
}

func (m *MockIdle) StartRequested() bool {
	return m.Called().Bool(0)
}

func TestAutoHost_ReleasesWhenIdle(t *testing.T) {
	target := new(MockIdle)
	target.On("Current").Return(domain.StateWaitToStartTrial).Once()
	target.On("StartRequested").Return(false).Once()
	target.On("SetParam", "STPRIDX", int64(1)).Return(nil).Once()
	target.On("SetParam", "REW", int64(domain.ResponseGo)).Return(nil).Once()
	target.On("ReleaseTrial").Return().Once()

	host := sim.NewAutoHost(target, 1, sim.WithGoFraction(1))
	require.NoError(t, host.Poll(context.Background()))

	assert.Equal(t, 1, host.Released())
	target.AssertExpectations(t)
}

func TestAutoHost_QuietWhileTrialRuns(t *testing.T) {
	target := new(MockIdle)
	target.On("Current").Return(domain.StateResponseWindow)

	host := sim.NewAutoHost(target, 1)
	require.NoError(t, host.Poll(context.Background()))

	assert.Zero(t, host.Released())
	target.AssertNotCalled(t, "ReleaseTrial")
}

func TestAutoHost_TrialTypeMix(t *testing.T) {
	target := new(MockIdle)
	target.On("Current").Return(domain.StateWaitToStartTrial)
	target.On("StartRequested").Return(false)
	target.On("SetParam", "STPRIDX", int64(1)).Return(nil)
	counts := map[int64]int{}
	target.On("SetParam", "REW", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		counts[args.Get(1).(int64)]++
	})
	target.On("ReleaseTrial").Return()

	host := sim.NewAutoHost(target, 3, sim.WithGoFraction(0.25))
	for i := 0; i < 4000; i++ {
		require.NoError(t, host.Poll(context.Background()))
	}

	assert.InDelta(t, 1000, counts[int64(domain.ResponseGo)], 150)
	assert.Equal(t, 4000, counts[int64(domain.ResponseGo)]+counts[int64(domain.ResponseNoGo)])
}

func TestAutoHost_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	host := sim.NewAutoHost(new(MockIdle), 1)
	assert.ErrorIs(t, host.Poll(ctx), context.Canceled)
}
