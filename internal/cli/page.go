package cli

// ABOUTME: The main `autopage` run path: resolve settings from flags and
// ABOUTME: config, open a paging session, and relay files or stdin into it.

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/zaneb/autopage"
	"github.com/zaneb/autopage/command"
)

func runPage(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	reset, _ := cmd.Flags().GetBool("reset")
	lineBuffered, _ := cmd.Flags().GetBool("line-buffered")
	pagerFlag, _ := cmd.Flags().GetString("pager")

	opts := []autopage.Option{
		autopage.WithOutput(cmd.OutOrStdout()),
		autopage.WithColor(!noColor && cfg.colorAllowed()),
	}
	if reset || cfg.Reset {
		opts = append(opts, autopage.WithResetOnExit(true))
	}
	if pagerCmd := resolvePagerCommand(pagerFlag, cfg); pagerCmd != nil {
		opts = append(opts, autopage.WithPagerCommand(pagerCmd))
	}

	switch {
	case lineBuffered:
		opts = append(opts, autopage.WithLineBuffering(autopage.LineBufferingOn))
	case len(args) == 0:
		// Relaying stdin: line-buffer when the input itself trickles in.
		opts = append(opts, autopage.WithLineBuffering(autopage.LineBufferingFromInput(cmd.InOrStdin())))
	}

	p := autopage.New(opts...)
	out, err := p.Open()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	relayErr := relaySources(ctx, cmd, out, args, noColor)
	if ctx.Err() != nil {
		relayErr = autopage.ErrInterrupted
	}

	if err := p.Close(relayErr); err != nil {
		return err
	}
	if code := p.ExitCode(); code != 0 {
		return &exitStatusError{code: code}
	}
	return nil
}

// resolvePagerCommand applies the precedence flag > config file > nil
// (library default, which honors $PAGER).
func resolvePagerCommand(flagValue string, cfg *cliConfig) command.Command {
	if flagValue != "" {
		return command.NewCustom(flagValue)
	}
	if cfg.Pager != "" {
		return command.NewCustom(cfg.Pager)
	}
	return nil
}

// relaySources copies each named file, or stdin when no files are named,
// into the paging stream.
func relaySources(ctx context.Context, cmd *cobra.Command, out io.Writer, args []string, strip bool) error {
	if len(args) == 0 {
		return relay(ctx, out, cmd.InOrStdin(), strip)
	}
	for _, name := range args {
		if err := relayFile(ctx, out, name, strip); err != nil {
			return err
		}
	}
	return nil
}

func relayFile(ctx context.Context, out io.Writer, name string, strip bool) error {
	f, err := os.Open(name) //nolint:gosec // G304: the user named this file on the command line
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	return relay(ctx, out, f, strip)
}

// relay copies src to dst in chunks, checking for cancellation between
// chunks so an interrupt doesn't have to wait for EOF.
func relay(ctx context.Context, dst io.Writer, src io.Reader, strip bool) error {
	if strip {
		return stripANSI(ctx, dst, src)
	}

	buf := make([]byte, 32*1024)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, rerr := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return rerr
		}
	}
}
