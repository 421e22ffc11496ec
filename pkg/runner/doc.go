/*
Package runner implements the line-oriented front end of the CV terminal.

It is used when stdout is not a terminal (pipes, CI logs, dumb terminals)
or when the full-screen view is disabled. The runner plays the boot script,
then reads one command per line from its input and prints every finalised
transcript entry to its output.

# Usage

	r := runner.New(engine,
		runner.WithInput(os.Stdin),
		runner.WithOutput(os.Stdout),
	)
	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
