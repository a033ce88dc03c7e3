/*
Package domain contains the core vocabulary of the ardufsm trial controller.

It defines the states of the trial state machine, the response and outcome codes
exchanged with the host, the lifecycle events emitted by the dispatcher, and the
sentinel errors shared by every layer. The package is kept free of I/O and timing
concerns so that states, adapters and the host-side tooling can agree on one set
of identifiers.

# Key Entities

  - StateID: One node of the trial FSM (Wait-To-Start, Trial Start, Stimulus, ...).
  - Response / Outcome: What the subject did and how it compares to the trial type.
  - Rule: A static transition of the FSM, used for introspection and graph export.
  - LifecycleHooks: Callbacks for transitions, trial boundaries and rewards.
*/
package domain
