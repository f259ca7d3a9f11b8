package autopage

// ABOUTME: Pager subprocess lifecycle: spawn with a synthesized
// ABOUTME: environment, own its stdin pipe, wait for exit exactly once.

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
)

// process owns the pager subprocess for one paging session. The pager's
// stdout and stderr go to the terminal directly so it can display and
// read keystrokes; the only coupling with the parent is the stdin pipe.
type process struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser

	brokenPipe bool
	finished   bool
	status     int
}

// startProcess spawns the pager described by the decision. The decision's
// environment variables are merged over the inherited process
// environment. The pager's stdout is the original destination stream, so
// it renders straight to the terminal.
func startProcess(d Decision, stdout io.Writer) (*process, error) {
	cmd := exec.Command(d.Argv[0], d.Argv[1:]...) //nolint:gosec // G204: argv comes from $PAGER or a built-in pager
	if len(d.Env) > 0 {
		env := os.Environ()
		for k, v := range d.Env {
			env = append(env, k+"="+v)
		}
		cmd.Env = env
	}
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("open pager pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		stdin.Close() //nolint:errcheck // best-effort cleanup
		return nil, fmt.Errorf("start pager: %w", err)
	}
	slog.Debug("pager started", "argv", d.Argv, "pid", cmd.Process.Pid)

	return &process{cmd: cmd, stdin: stdin}, nil
}

// Write forwards to the pager's stdin. If the pager has already exited
// (the user quit), the broken pipe is recorded rather than surfaced: the
// caller's writes keep succeeding, and the early exit is reported through
// the session's exit disposition instead.
func (p *process) Write(b []byte) (int, error) {
	if p.brokenPipe {
		return len(b), nil
	}
	n, err := p.stdin.Write(b)
	if err != nil {
		if isBrokenPipe(err) {
			p.brokenPipe = true
			return len(b), nil
		}
		return n, err
	}
	return n, nil
}

// Finish closes the pager's stdin and waits for it to exit, which blocks
// until the user quits the pager. It is idempotent: subsequent calls
// return the cached status without waiting again.
func (p *process) Finish() (status int, brokenPipe bool) {
	if p.finished {
		return p.status, p.brokenPipe
	}
	p.finished = true

	if err := p.stdin.Close(); err != nil && isBrokenPipe(err) {
		p.brokenPipe = true
	}

	err := p.cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		p.status = exitErr.ExitCode()
	}
	slog.Debug("pager exited", "status", p.status, "broken_pipe", p.brokenPipe)

	return p.status, p.brokenPipe
}
