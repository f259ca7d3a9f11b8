package autopage

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"
)

// Stream is the write-only stream a Pager hands to its caller. It writes
// either into the pager's input pipe or directly to the destination; the
// sink is fixed when the Pager opens and never changes.
//
// A Stream is not safe for concurrent use.
type Stream struct {
	w            *bufio.Writer
	lineBuffered bool
	strategy     ErrorStrategy
	closed       bool
}

var _ io.Writer = (*Stream)(nil)
var _ io.StringWriter = (*Stream)(nil)

func newStream(sink io.Writer, lineBuffered bool, strategy ErrorStrategy) *Stream {
	return &Stream{
		w:            bufio.NewWriter(sink),
		lineBuffered: lineBuffered,
		strategy:     strategy,
	}
}

// Write writes b to the underlying sink, applying the configured
// error strategy to any invalid UTF-8. In line-buffered mode, a write
// that completes one or more lines is flushed immediately so slowly
// trickling output stays visible.
func (s *Stream) Write(b []byte) (int, error) {
	if s.closed {
		return 0, ErrClosedStream
	}
	clean, err := sanitize(b, s.strategy)
	if err != nil {
		return 0, err
	}
	if _, err := s.w.Write(clean); err != nil {
		return 0, err
	}
	if s.lineBuffered && bytes.IndexByte(clean, '\n') >= 0 {
		if err := s.w.Flush(); err != nil {
			return 0, err
		}
	}
	return len(b), nil
}

// WriteString writes a string to the stream.
func (s *Stream) WriteString(str string) (int, error) {
	return s.Write([]byte(str))
}

// Flush forces buffered data through to the sink.
func (s *Stream) Flush() error {
	if s.closed {
		return ErrClosedStream
	}
	return s.w.Flush()
}

// LineBuffered reports the stream's resolved line-buffering mode.
func (s *Stream) LineBuffered() bool { return s.lineBuffered }

// close flushes and marks the stream closed. Further writes fail with
// ErrClosedStream. It reports whether the final flush hit a broken pipe.
func (s *Stream) close() (brokenPipe bool, err error) {
	if s.closed {
		return false, nil
	}
	s.closed = true
	if ferr := s.w.Flush(); ferr != nil {
		if isBrokenPipe(ferr) {
			return true, nil
		}
		return false, ferr
	}
	return false, nil
}

// sanitize applies the error strategy to invalid UTF-8 in b. Valid input
// is returned as-is without copying.
func sanitize(b []byte, strategy ErrorStrategy) ([]byte, error) {
	if utf8.Valid(b) {
		return b, nil
	}
	if strategy == ErrorStrict || strategy == "" {
		return nil, ErrInvalidText
	}

	out := make([]byte, 0, len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			switch strategy {
			case ErrorIgnore:
			case ErrorReplace:
				out = utf8.AppendRune(out, utf8.RuneError)
			case ErrorBackslashReplace:
				out = fmt.Appendf(out, `\x%02x`, b[0])
			}
		} else {
			out = append(out, b[:size]...)
		}
		b = b[size:]
	}
	return out, nil
}
