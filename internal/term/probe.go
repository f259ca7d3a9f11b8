// Package term probes an output stream and the process environment for
// terminal capabilities: whether the stream is a terminal, whether it
// supports color, and the terminal dimensions.
package term

import (
	"io"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// SizeUnknown is reported for a dimension that could not be determined.
const SizeUnknown = -1

// Probe is the result of inspecting an output stream. All queries are
// read-only; nothing about the stream or terminal is modified.
type Probe struct {
	IsTerminal    bool
	SupportsColor bool
	Width         int
	Height        int
}

// Detector answers terminal queries for a file descriptor. It exists so
// tests can substitute a fake without a real TTY.
type Detector interface {
	IsTerminal(fd int) bool
	GetSize(fd int) (width, height int, err error)
}

// DefaultDetector queries the actual terminal via golang.org/x/term.
type DefaultDetector struct{}

func (DefaultDetector) IsTerminal(fd int) bool { return term.IsTerminal(fd) }

func (DefaultDetector) GetSize(fd int) (width, height int, err error) {
	return term.GetSize(fd)
}

// fdWriter is satisfied by *os.File and anything else backed by a real
// file descriptor.
type fdWriter interface {
	Fd() uintptr
}

// Inspect probes the given output stream. Streams without a file
// descriptor (buffers, pipes wrapped in writers) are never terminals.
// Dimensions that cannot be determined are reported as SizeUnknown.
func Inspect(w io.Writer, d Detector) Probe {
	if d == nil {
		d = DefaultDetector{}
	}
	p := Probe{Width: SizeUnknown, Height: SizeUnknown}

	f, ok := w.(fdWriter)
	if !ok {
		return p
	}
	fd := int(f.Fd())
	if !d.IsTerminal(fd) {
		return p
	}
	p.IsTerminal = true

	if width, height, err := d.GetSize(fd); err == nil {
		p.Width = width
		p.Height = height
	}

	p.SupportsColor = termenv.EnvColorProfile() != termenv.Ascii
	return p
}
