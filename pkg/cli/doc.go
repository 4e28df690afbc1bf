/*
Package cli provides small command-line helpers shared by sepulcherd's
subcommands: output formatters, a progress reporter, and signal-driven
shutdown contexts.

Output formatting:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

Progress reporting:

	progress := cli.NewProgressReporter(os.Stdout)
	progress.Start(totalItems)
	for i := 0; i < totalItems; i++ {
		progress.Update(i + 1)
	}
	progress.Finish()

Signal handling:

	ctx := cli.SetupSignalHandler()
	// ctx is cancelled on SIGINT/SIGTERM
*/
package cli
