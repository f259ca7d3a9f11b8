package cli

// ABOUTME: ANSI escape sequence stripping for --no-color relays, so the
// ABOUTME: pager sees plain text instead of raw escape bytes.

import (
	"bufio"
	"context"
	"io"
	"regexp"
)

// ansiPattern matches ANSI escape sequences: CSI (colors, cursor, erase),
// OSC (title setting), and character set selection.
var ansiPattern = regexp.MustCompile(`\x1b(?:\[[0-9;?]*[A-Za-z]|\][^\x07]*\x07|[()][AB012])`)

// stripANSI copies src to dst with ANSI escape sequences removed. It
// processes line-by-line both to avoid partial matches at buffer
// boundaries and to give the cancellation check a natural granularity.
// Lines of any length are handled, and input without a trailing newline
// comes out without one.
func stripANSI(ctx context.Context, dst io.Writer, src io.Reader) error {
	r := bufio.NewReader(src)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := r.ReadBytes('\n')
		if len(line) > 0 {
			if _, werr := dst.Write(ansiPattern.ReplaceAll(line, nil)); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
