package cobrahelp

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCmd(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tool",
		Short: "A test tool",
		Long:  "A longer description of the test tool.",
		RunE:  func(*cobra.Command, []string) error { return nil },
	}
	cmd.SetOut(out)
	cmd.SetErr(out)
	return cmd
}

func TestWrap_HelpFlowsThroughStream(t *testing.T) {
	var out bytes.Buffer
	cmd := newTestCmd(&out)
	Wrap(cmd)

	cmd.SetArgs([]string{"--help"})
	require.NoError(t, cmd.Execute())

	// In a test environment the output is not a terminal, so the help
	// text passes straight through to the command's writer.
	assert.Contains(t, out.String(), "A longer description of the test tool.")
	assert.Contains(t, out.String(), "Usage:")
}

func TestWrap_SubcommandInheritsHelp(t *testing.T) {
	var out bytes.Buffer
	cmd := newTestCmd(&out)
	sub := &cobra.Command{
		Use:   "sub",
		Short: "A subcommand",
		RunE:  func(*cobra.Command, []string) error { return nil },
	}
	cmd.AddCommand(sub)
	Wrap(cmd)

	cmd.SetArgs([]string{"sub", "--help"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "A subcommand")
	assert.Contains(t, out.String(), "Usage:")
}

func TestWrapWithExit_ReportsSessionExitCode(t *testing.T) {
	var out bytes.Buffer
	cmd := newTestCmd(&out)

	code := -1
	WrapWithExit(cmd, func(c int) { code = c })

	cmd.SetArgs([]string{"--help"})
	require.NoError(t, cmd.Execute())

	// Non-terminal output completes normally, so the hook sees 0. A user
	// quitting a real pager early would see 141 here instead.
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Usage:")
}

func TestInstall_RestoresPreviousHelp(t *testing.T) {
	var out bytes.Buffer
	cmd := newTestCmd(&out)
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		c.Print("CUSTOM HELP")
	})

	restore := Install(cmd)

	cmd.SetArgs([]string{"--help"})
	require.NoError(t, cmd.Execute())
	assert.NotContains(t, out.String(), "CUSTOM HELP")
	assert.Contains(t, out.String(), "Usage:")

	restore()
	out.Reset()

	cmd.SetArgs([]string{"--help"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "CUSTOM HELP", out.String())
}
