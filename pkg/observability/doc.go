/*
Package observability turns controller lifecycle events into numbers.

Metrics exports Prometheus counters and histograms on a private registry and writes
them in the text exposition format; the controller has no network surface, so the
text is written to a file or the terminal at the end of a session. Summary keeps a
per-outcome tally in memory and renders it as a Markdown table.

Both attach to the controller through domain.LifecycleHooks:

	m := observability.NewMetrics()
	s := observability.NewSummary()
	ctrl, _ := ardufsm.New(
		ardufsm.WithLifecycleHooks(m.Hooks()),
		ardufsm.WithLifecycleHooks(s.Hooks()),
	)
*/
package observability
