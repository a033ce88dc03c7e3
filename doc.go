/*
Package ardufsm runs the trial logic of a single-subject go/no-go behavioral rig.

A trial is a short cooperative state machine: wait for the host to release a trial,
announce the trial parameters, play the stimulus, open a response window, deliver
rewards or an error timeout, report the results and rest for the inter-trial interval.
Every state is polled by one loop; only the reward pulse blocks.

# Architecture

The Controller owns the parameter and result tables (pkg/params) and the trial FSM
(internal/runtime). Hardware and the host link are ports (pkg/ports) so the same
trial logic drives a real rig, a simulation (pkg/adapters/sim) or a test with a
manual clock (pkg/adapters/clock). The host talks the line protocol implemented by
pkg/adapters/chat; pkg/runner is the main loop.

# Usage

	clk := clock.NewManual(0)
	ctrl, err := ardufsm.New(
		ardufsm.WithClock(clk),
		ardufsm.WithSleeper(clk),
		ardufsm.WithReporter(link),
		ardufsm.WithRewardValve(valve),
		ardufsm.WithLickDetector(licks),
	)
	if err != nil {
		log.Fatal(err)
	}

	_ = ctrl.SetParam("REW", 1)
	ctrl.ReleaseTrial()
	for {
		if _, err := ctrl.Step(ctx); err != nil {
			log.Fatal(err)
		}
	}

# Protocol

Lines sent to the host are "<ms> <TAG> <fields...>". Parameters go out as TRLP at
trial start, results as TRLR at the start of the inter-trial interval, and every
state change as ST_CHG (decision time) followed by ST_CHG2 (announcement time).
*/
package ardufsm
