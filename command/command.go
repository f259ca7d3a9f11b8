// Package command resolves which pager program to run and which
// environment variables to hand it.
//
// A pager is described by the Command interface: the argv to execute and
// any environment variables that configure it for a particular paging
// session. Built-in commands are provided for less, more, and lv, along
// with resolution helpers that honor $PAGER and platform defaults.
package command

import (
	"os"
	"runtime"
	"strings"
)

// Config carries the session settings that influence pager environment
// synthesis.
type Config struct {
	// Color allows the pager to pass ANSI color escapes through raw.
	Color bool
	// LineBufferingRequested means the caller wants each line visible as
	// soon as it is written, so the pager must not buffer a full screen.
	LineBufferingRequested bool
	// ResetTerminal asks the pager to restore the screen on exit.
	ResetTerminal bool
}

// Command describes a pager program and how to configure it for a session.
type Command interface {
	// Argv returns the command and arguments to execute.
	Argv() []string
	// EnvironmentVariables returns variables to set for the subprocess,
	// or nil if the inherited environment should be used as-is.
	EnvironmentVariables(cfg Config) map[string]string
}

// Less is the pager command "less", configured via the $LESS variable.
type Less struct{}

func (Less) Argv() []string { return []string{"less"} }

// EnvironmentVariables synthesizes a $LESS option string from the session
// config. If the user already has $LESS set, their setting wins and
// nothing is synthesized.
func (Less) EnvironmentVariables(cfg Config) map[string]string {
	var flags strings.Builder
	if cfg.Color {
		// Output ANSI color escapes in raw form (--RAW-CONTROL-CHARS).
		flags.WriteByte('R')
	}
	if !cfg.LineBufferingRequested && !cfg.ResetTerminal {
		// Exit immediately if the content fits on one screen
		// (--quit-if-one-screen). This makes less buffer a full screen
		// before displaying anything, so skip it when line buffering was
		// requested. It also skips the terminal reset on exit, so skip
		// it when a reset was requested.
		flags.WriteByte('F')
	}
	if !cfg.ResetTerminal {
		// Don't reset the terminal on exit (--no-init).
		flags.WriteByte('X')
	}

	if flags.Len() == 0 {
		return nil
	}
	if _, set := os.LookupEnv("LESS"); set {
		return nil
	}
	return map[string]string{"LESS": flags.String()}
}

// More is the pager command "more". It takes no configuration.
type More struct{}

func (More) Argv() []string {
	if runtime.GOOS == "windows" {
		return []string{"more.com"}
	}
	return []string{"more"}
}

func (More) EnvironmentVariables(Config) map[string]string { return nil }

// LV is the pager command "lv", configured via the $LV variable.
type LV struct{}

func (LV) Argv() []string { return []string{"lv"} }

func (LV) EnvironmentVariables(cfg Config) map[string]string {
	if !cfg.Color {
		return nil
	}
	if _, set := os.LookupEnv("LV"); set {
		return nil
	}
	// -c allows ANSI color escape sequences through.
	return map[string]string{"LV": "-c"}
}

// Custom is a pager parsed from a user-specified command line, such as
// the value of $PAGER. Since the actual program is unknown, it receives
// the union of the variables that less and lv understand; other pagers
// ignore them.
type Custom struct {
	argv []string
}

// NewCustom splits a command line on whitespace into a Custom command.
func NewCustom(cmdline string) Custom {
	return Custom{argv: strings.Fields(cmdline)}
}

func (c Custom) Argv() []string { return c.argv }

func (c Custom) EnvironmentVariables(cfg Config) map[string]string {
	env := map[string]string{}
	for _, provider := range []Command{Less{}, LV{}} {
		for k, v := range provider.EnvironmentVariables(cfg) {
			env[k] = v
		}
	}
	if len(env) == 0 {
		return nil
	}
	return env
}

// Platform returns the default pager command for the current platform.
func Platform() Command {
	switch runtime.GOOS {
	case "windows", "aix":
		return More{}
	}
	return Less{}
}

// UserSpecified searches the given environment variables in order and
// uses the first one that is set and non-empty as the pager command
// line. If none is set, the platform default is used.
func UserSpecified(envVars ...string) Command {
	for _, name := range envVars {
		if cmdline := os.Getenv(name); cmdline != "" {
			return NewCustom(cmdline)
		}
	}
	return Platform()
}

// Default returns the pager command for the current environment: $PAGER
// if configured, else the platform default. In a setuid program (real
// and effective user differ, and we are not simply root), $PAGER is
// ignored so it cannot be used to run an arbitrary command with the
// elevated privileges.
func Default() Command {
	if runtime.GOOS != "windows" {
		if uid := os.Getuid(); uid != 0 && uid != os.Geteuid() {
			return Platform()
		}
	}
	return UserSpecified("PAGER")
}
