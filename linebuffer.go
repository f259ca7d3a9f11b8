package autopage

import (
	"io"
	"os"

	"golang.org/x/term"
)

// LineBufferFromInput reports whether line buffering should be enabled
// on output that relays the given input stream.
//
// When data is read from an input, transformed, and written to an
// autopaged output, enabling line buffering makes each line visible as
// soon as it is written instead of waiting for a buffer to fill, at some
// cost in throughput. That only matters when the input itself trickles
// in: for input read from a regular file, the output is produced as fast
// as it can be consumed and line buffering is pointless.
//
// A nil input means os.Stdin.
//
//	p := autopage.New(autopage.WithLineBuffering(
//	        autopage.LineBufferingFromInput(os.Stdin)))
func LineBufferFromInput(input io.Reader) bool {
	if input == nil {
		input = os.Stdin
	}
	// On some platforms TTYs claim to be seekable, so a successful seek
	// alone doesn't prove the input is a file.
	if f, ok := input.(interface{ Fd() uintptr }); ok {
		if term.IsTerminal(int(f.Fd())) {
			return true
		}
	}
	if seeker, ok := input.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekCurrent); err == nil {
			return false
		}
	}
	return true
}

// LineBufferingFromInput is LineBufferFromInput expressed as a
// LineBuffering mode, for passing directly to WithLineBuffering.
func LineBufferingFromInput(input io.Reader) LineBuffering {
	if LineBufferFromInput(input) {
		return LineBufferingOn
	}
	return LineBufferingOff
}
