package autopage

import (
	"io"

	"github.com/zaneb/autopage/command"
	"github.com/zaneb/autopage/internal/term"
)

// LineBuffering controls whether the stream flushes after every completed
// line.
type LineBuffering int

const (
	// LineBufferingInherit follows the destination: line-buffered when
	// writing to a terminal, fully buffered otherwise.
	LineBufferingInherit LineBuffering = iota
	// LineBufferingOn flushes after every completed line.
	LineBufferingOn
	// LineBufferingOff buffers freely for throughput.
	LineBufferingOff
)

// ErrorStrategy selects how invalid UTF-8 in a write is handled.
type ErrorStrategy string

const (
	// ErrorStrict rejects the write with ErrInvalidText.
	ErrorStrict ErrorStrategy = "strict"
	// ErrorIgnore silently drops the offending bytes.
	ErrorIgnore ErrorStrategy = "ignore"
	// ErrorReplace substitutes U+FFFD for the offending bytes.
	ErrorReplace ErrorStrategy = "replace"
	// ErrorBackslashReplace substitutes a \xNN escape for each offending
	// byte.
	ErrorBackslashReplace ErrorStrategy = "backslashreplace"
)

// Option configures a Pager before it is opened.
type Option func(*Pager)

// WithOutput sets the destination stream. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(p *Pager) { p.out = w }
}

// WithPagerCommand overrides how the pager command is resolved. The
// default is command.Default(), which honors $PAGER.
func WithPagerCommand(c command.Command) Option {
	return func(p *Pager) { p.cmd = c }
}

// WithColor controls whether ANSI color escapes may pass through the
// pager. The default is true.
func WithColor(allow bool) Option {
	return func(p *Pager) { p.allowColor = allow }
}

// WithLineBuffering sets the line-buffering mode. The default is
// LineBufferingInherit.
func WithLineBuffering(lb LineBuffering) Option {
	return func(p *Pager) { p.lineBuffering = lb }
}

// WithResetOnExit requests that the terminal screen be restored to its
// pre-pager state when the session closes. The default is false.
func WithResetOnExit(reset bool) Option {
	return func(p *Pager) { p.resetOnExit = reset }
}

// WithErrorStrategy sets the handling of invalid UTF-8 in writes. The
// default is ErrorStrict.
func WithErrorStrategy(s ErrorStrategy) Option {
	return func(p *Pager) { p.strategy = s }
}

// WithMinimumLines declares the expected number of output lines. When the
// terminal height is known and the content fits on one screen, the pager
// is skipped entirely. Zero (the default) means unknown, which is treated
// as pageable.
func WithMinimumLines(n int) Option {
	return func(p *Pager) { p.minimumLines = n }
}

// withDetector substitutes the terminal detector, for tests.
func withDetector(d term.Detector) Option {
	return func(p *Pager) { p.detector = d }
}
