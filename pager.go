// Package autopage provides automatic output paging for command-line
// programs.
//
// A Pager decides, at the moment a program would write to a terminal,
// whether to interpose an external pager process (less by default),
// configures it for color passthrough and scroll suppression, and hands
// the caller a single stream to write to. Output that is redirected to a
// file or pipe is passed through untouched, and a missing or broken
// pager never prevents the output from being delivered.
//
//	p := autopage.New()
//	out, _ := p.Open()
//	err := produce(out)
//	p.Close(err)
//	os.Exit(p.ExitCode())
package autopage

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/muesli/termenv"
	"github.com/zaneb/autopage/command"
	"github.com/zaneb/autopage/internal/term"
)

// state is the controller's lifecycle position.
type state int

const (
	stateIdle state = iota
	stateActive
	stateClosing
	stateClosed
)

// Pager is the paging-lifecycle controller. It is a scoped resource:
// Open acquires it (probing the terminal, deciding whether to page, and
// spawning the pager if so), and Close releases it exactly once, even on
// abnormal exit paths. After Close, ExitCode reports how the session
// ended.
//
// A Pager is not safe for concurrent use.
type Pager struct {
	out           io.Writer
	cmd           command.Command
	allowColor    bool
	lineBuffering LineBuffering
	resetOnExit   bool
	strategy      ErrorStrategy
	minimumLines  int
	detector      term.Detector

	state       state
	probe       term.Probe
	probed      bool
	decision    Decision
	proc        *process
	stream      *Stream
	disposition Disposition
	exitCode    int
	cause       error
	closeResult error
}

// New creates a Pager writing to os.Stdout with the default pager
// command, color allowed, inherited line buffering, and the strict
// encoding-error strategy. Options override the defaults. The returned
// Pager is Idle until Open is called.
func New(opts ...Option) *Pager {
	p := &Pager{
		out:        os.Stdout,
		cmd:        command.Default(),
		allowColor: true,
		strategy:   ErrorStrict,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ToTerminal reports whether the destination stream is a terminal.
func (p *Pager) ToTerminal() bool {
	return p.inspect().IsTerminal
}

func (p *Pager) inspect() term.Probe {
	if !p.probed {
		p.probe = term.Inspect(p.out, p.detector)
		p.probed = true
	}
	return p.probe
}

// Open activates the Pager and returns the stream to write output to.
// If paging is appropriate, the pager subprocess is spawned and the
// stream feeds its input; otherwise the stream writes directly to the
// destination. A pager that cannot be spawned (not found, not runnable)
// silently degrades to direct output. Calling Open on a Pager that is
// not Idle is a usage fault and panics.
func (p *Pager) Open() (*Stream, error) {
	if p.state != stateIdle {
		panic("autopage: Open called twice")
	}

	p.decision = decide(p, p.inspect())

	sink := p.out
	if p.decision.ShouldPage {
		proc, err := startProcess(p.decision, p.out)
		if err != nil {
			// A missing pager must never prevent output delivery.
			slog.Debug("pager unavailable, writing directly", "argv", p.decision.Argv, "error", err)
		} else {
			p.proc = proc
			sink = proc
		}
	}

	p.stream = newStream(sink, p.decision.LineBuffered, p.strategy)
	p.state = stateActive
	return p.stream, nil
}

// Close releases the Pager: it flushes and closes the stream, waits for
// the pager subprocess to exit (which blocks until the user quits the
// pager), restores the terminal if requested, and freezes the exit
// disposition.
//
// err is whatever error the caller's own work produced, or nil. Close
// reports back the error the caller should continue to propagate:
// broken-pipe errors (the user quit the pager), interrupts, and explicit
// ExitCodeErrors are absorbed into the exit disposition and return nil;
// any other error is recorded and returned unchanged after teardown
// completes.
//
// Close is idempotent: subsequent calls return the same result without
// touching the subprocess again.
func (p *Pager) Close(err error) error {
	switch p.state {
	case stateIdle:
		panic("autopage: Close called before Open")
	case stateClosing:
		panic("autopage: Close called reentrantly")
	case stateClosed:
		return p.closeResult
	}
	p.state = stateClosing

	brokenPipe := p.teardown()
	if p.resetOnExit && p.proc != nil {
		p.resetTerminal()
	}

	p.closeResult = p.dispose(err, brokenPipe)
	p.state = stateClosed
	return p.closeResult
}

// Run opens the Pager, invokes fn with the stream, and closes the Pager
// with whatever fn returns, guaranteeing release even when fn fails. It
// returns the error left over after Close absorbs the expected ones.
func (p *Pager) Run(fn func(*Stream) error) error {
	out, err := p.Open()
	if err != nil {
		return err
	}
	return p.Close(fn(out))
}

// ExitCode returns the process exit code for the session: 0 for normal
// completion (or the code from an ExitCodeError), 130 for an interrupt,
// 141 when the user quit the pager early, and 1 for any other caller
// error. Calling it before Close has completed is a usage fault and
// panics.
func (p *Pager) ExitCode() int {
	if p.state != stateClosed {
		panic("autopage: ExitCode called before Close")
	}
	return p.exitCode
}

// Disposition reports how the session ended. Like ExitCode, it is only
// available once the Pager is closed.
func (p *Pager) Disposition() Disposition {
	if p.state != stateClosed {
		panic("autopage: Disposition called before Close")
	}
	return p.disposition
}

// Cause returns the caller error recorded at Close, or nil when the
// session ended any other way.
func (p *Pager) Cause() error {
	if p.state != stateClosed {
		panic("autopage: Cause called before Close")
	}
	return p.cause
}

// teardown drains and closes the stream and reaps the subprocess. It
// reports whether a broken pipe was observed anywhere on the way out.
func (p *Pager) teardown() bool {
	if p.proc == nil {
		brokenPipe, err := p.stream.close()
		if err != nil {
			slog.Debug("flush on close failed", "error", err)
		}
		return brokenPipe
	}

	// The pager ignores Ctrl-C while it is in the foreground, so keep it
	// non-fatal here too for as long as we are waiting on the pager. A
	// throwaway Notify channel does that without disturbing any interrupt
	// registrations the host program holds.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	brokenPipe, err := p.stream.close()
	if err != nil {
		slog.Debug("flush to pager failed", "error", err)
	}
	_, procBroken := p.proc.Finish()
	return brokenPipe || procBroken
}

// resetTerminal restores the screen to its pre-pager state, matching
// what less does on exit when its no-init option is not set.
func (p *Pager) resetTerminal() {
	o := termenv.NewOutput(p.out)
	o.ExitAltScreen()
	o.ShowCursor()
}

// dispose computes the exit disposition, in priority order: interrupt,
// broken pipe (from the caller or observed internally), caller error,
// normal completion.
func (p *Pager) dispose(err error, brokenPipe bool) error {
	var exitErr *ExitCodeError
	switch {
	case errors.Is(err, ErrInterrupted):
		p.disposition = DispositionInterrupted
		p.exitCode = exitCodeInterrupted
		return nil
	case err != nil && isBrokenPipe(err):
		p.disposition = DispositionPagerQuit
		p.exitCode = exitCodePagerQuit
		return nil
	case errors.As(err, &exitErr):
		p.disposition = DispositionCompleted
		p.exitCode = exitErr.Code
		return nil
	case err != nil:
		p.disposition = DispositionCallerError
		p.exitCode = exitCodeCallerError
		p.cause = err
		return err
	case brokenPipe:
		p.disposition = DispositionPagerQuit
		p.exitCode = exitCodePagerQuit
		return nil
	}
	p.disposition = DispositionCompleted
	p.exitCode = 0
	return nil
}
