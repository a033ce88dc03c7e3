/*
Package ports defines the driven ports (interfaces) of the ardufsm controller.

These interfaces decouple the trial state machine from the serial link, the clock
and the apparatus, so the same states run against real hardware, a simulator or a
test double.

# Key Interfaces

  - Clock / Sleeper: The controller's notion of time since boot and the one blocking wait.
  - Reporter: Emits tagged protocol lines (TRLP, TRLR, ST_CHG, ...) to the host.
  - CommandSource: Non-blocking poll of incoming host commands.
  - Device: A stimulus device driven once per loop during the stimulus period.
  - Output / AnalogInput / LickDetector: Pin-level collaborators (valve, sync line, lick sensor).
*/
package ports
