/*
Package runner drives a controller from a host link: the main loop of the rig.

Setup polls the link until the host releases the first trial, retrying with a fixed
backoff on communication errors. Run then alternates one command poll and one state
step until the context is cancelled or a trial limit is reached.

	r := runner.New(ctrl, link,
		runner.WithReporter(link),
		runner.WithLogger(logger),
	)
	if err := r.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
*/
package runner
