package autopage

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Sentinel errors for paging sessions.
var (
	// ErrClosedStream is returned by writes to a Stream whose Pager has
	// already been closed.
	ErrClosedStream = errors.New("autopage: write to closed stream")

	// ErrInterrupted can be passed to Close to record that the session
	// was cut short by a user interrupt (Ctrl-C). Close absorbs it; the
	// interrupt is reflected only in the exit code.
	ErrInterrupted = errors.New("autopage: interrupted")

	// ErrInvalidText is returned by Stream writes containing invalid
	// UTF-8 when the strict error strategy is in effect.
	ErrInvalidText = errors.New("autopage: invalid UTF-8 in write")
)

// ExitCodeError carries an explicit process exit code through Close,
// analogous to exiting a program with a chosen status. Close absorbs it
// and reports the code via ExitCode.
type ExitCodeError struct {
	Code int
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("autopage: exit with code %d", e.Code)
}

// Disposition classifies how a paging session ended.
type Disposition int

const (
	// DispositionCompleted means the session ran to normal completion.
	DispositionCompleted Disposition = iota
	// DispositionInterrupted means a user interrupt cut the session short.
	DispositionInterrupted
	// DispositionPagerQuit means the user exited the pager before all
	// output was delivered (the pipe to the pager broke).
	DispositionPagerQuit
	// DispositionCallerError means caller code failed while the stream
	// was active.
	DispositionCallerError
)

func (d Disposition) String() string {
	switch d {
	case DispositionCompleted:
		return "completed"
	case DispositionInterrupted:
		return "interrupted"
	case DispositionPagerQuit:
		return "pager quit"
	case DispositionCallerError:
		return "caller error"
	}
	return fmt.Sprintf("disposition(%d)", int(d))
}

// Conventionally a process killed by a signal exits with 128 plus the
// signal number.
const (
	exitCodeInterrupted = 128 + int(unix.SIGINT)  // 130
	exitCodePagerQuit   = 128 + int(unix.SIGPIPE) // 141
	exitCodeCallerError = 1
)

// isBrokenPipe reports whether err represents writing to a pipe whose
// reader has gone away.
func isBrokenPipe(err error) bool {
	return errors.Is(err, unix.EPIPE) || errors.Is(err, os.ErrClosed)
}
