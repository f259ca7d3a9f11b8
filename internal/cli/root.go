// Package cli defines the Cobra command tree for the autopage CLI.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zaneb/autopage/cobrahelp"
)

// Execute runs the root command and returns the exit code.
func Execute(ctx context.Context, version, commit, date string) int {
	rootCmd := newRootCmd(version, commit, date)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var statusErr *exitStatusError
	if errors.As(err, &statusErr) {
		// The paging session already delivered its output; just carry
		// its exit code.
		return statusErr.code
	}

	fmt.Fprintf(os.Stderr, "autopage: %s\n", err) //nolint:errcheck // best-effort stderr write
	return 1
}

// newRootCmd creates the root Cobra command.
func newRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "autopage [file ...]",
		Short: "Page command output automatically",
		Long: `Display files (or standard input) through a pager when the output is a
terminal, and pass them through untouched when it is piped or redirected.
The pager exits immediately when the content fits on one screen, so short
output behaves as if no pager were involved.`,
		Args:          cobra.ArbitraryArgs,
		RunE:          runPage,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.Flags().String("pager", "", "Pager command to use (overrides $PAGER and config)")
	rootCmd.Flags().Bool("no-color", false, "Strip ANSI escape sequences instead of passing them through")
	rootCmd.Flags().Bool("reset", false, "Restore the terminal screen after the pager exits")
	rootCmd.Flags().Bool("line-buffered", false, "Flush after every line (default: only when input is interactive)")

	rootCmd.AddCommand(newVersionCmd(version, commit, date))
	cobrahelp.Wrap(rootCmd)

	return rootCmd
}

// newVersionCmd reports build information set via ldflags.
func newVersionCmd(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "autopage %s (commit %s, built %s)\n", version, commit, date)
			return err
		},
	}
}

// exitStatusError carries a paging session's exit code out through the
// cobra error path without printing anything.
type exitStatusError struct {
	code int
}

func (e *exitStatusError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}
