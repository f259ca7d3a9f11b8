// Package cobrahelp routes cobra help output through an autopage Pager,
// so long --help text is paged when it goes to a terminal and passed
// through untouched when it is redirected.
package cobrahelp

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zaneb/autopage"
)

// Wrap replaces cmd's help function with one that renders the same help
// text through a Pager. Cobra propagates the help function to
// subcommands, so wrapping the root covers the whole command tree. The
// extra options are applied on top of the paging defaults; the output
// destination is always the command's configured output.
func Wrap(cmd *cobra.Command, opts ...autopage.Option) {
	cmd.SetHelpFunc(helpFunc(nil, opts))
}

// WrapWithExit is Wrap for programs that surface the pager's exit
// status. After each help render, exit is called with the session's
// exit code: 0 when the user read to the end, 141 when they quit the
// pager early. Passing os.Exit mirrors what a shell user of a plain
// pager would see.
func WrapWithExit(cmd *cobra.Command, exit func(code int), opts ...autopage.Option) {
	cmd.SetHelpFunc(helpFunc(exit, opts))
}

// Install is Wrap with a scoped undo: it returns a function that
// restores the help function that was in effect before. This covers the
// case where the command tree is not yours to reconfigure permanently.
//
//	restore := cobrahelp.Install(rootCmd)
//	defer restore()
func Install(cmd *cobra.Command, opts ...autopage.Option) (restore func()) {
	prev := cmd.HelpFunc()
	cmd.SetHelpFunc(helpFunc(nil, opts))
	return func() { cmd.SetHelpFunc(prev) }
}

func helpFunc(exit func(code int), opts []autopage.Option) func(*cobra.Command, []string) {
	return func(c *cobra.Command, _ []string) {
		p := autopage.New(append([]autopage.Option{
			autopage.WithOutput(c.OutOrStdout()),
		}, opts...)...)
		//nolint:errcheck // help rendering has nowhere to report errors
		p.Run(func(out *autopage.Stream) error {
			return renderHelp(c, out)
		})
		if exit != nil {
			exit(p.ExitCode())
		}
	}
}

// renderHelp writes the same content cobra's default help function
// produces: the long (or short) description followed by the usage block.
func renderHelp(c *cobra.Command, out *autopage.Stream) error {
	if long := c.Long; long != "" {
		if _, err := fmt.Fprintf(out, "%s\n\n", long); err != nil {
			return err
		}
	} else if short := c.Short; short != "" {
		if _, err := fmt.Fprintf(out, "%s\n\n", short); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(out, c.UsageString()); err != nil {
		return err
	}
	return nil
}
