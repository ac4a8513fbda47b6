package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
)

// Execute runs the demise CLI with args (without the program name) and
// returns the first command error.
//
// Logging goes to stderr at info level, or debug level with --verbose
// (-v). The logger is attached to the command context and reachable from
// every command via loggerFromContext.
//
// Example:
//
//	func main() {
//	    if err := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
//	        os.Exit(1)
//	    }
//	}
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var verbose bool

	c := New(stderr, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SilenceErrors = true
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	loadConfig := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(LogDebug)
		}
		return loadConfig(cmd, args)
	}

	return root.ExecuteContext(ctx)
}
