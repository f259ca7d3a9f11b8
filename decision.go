package autopage

import (
	"os"
	"strings"

	"github.com/zaneb/autopage/command"
	"github.com/zaneb/autopage/internal/term"
)

// Decision is the derived paging decision for one session. It is computed
// once when the Pager opens and not revisited.
type Decision struct {
	// ShouldPage reports whether a pager subprocess will be interposed.
	ShouldPage bool
	// Argv is the resolved pager command line.
	Argv []string
	// Env holds environment variables to merge over the inherited
	// process environment for the subprocess.
	Env map[string]string
	// LineBuffered is the resolved line-buffering mode for the stream.
	LineBuffered bool
}

// decide derives the paging decision from the caller's configuration and
// the probe of the destination. It never fails: malformed environment
// values degrade to not paging rather than erroring.
func decide(p *Pager, probe term.Probe) Decision {
	d := Decision{LineBuffered: resolveLineBuffering(p.lineBuffering, probe)}

	// Never page output that is redirected to a file or pipe.
	if !probe.IsTerminal {
		return d
	}

	argv := p.cmd.Argv()
	if emptyCommand(argv) {
		// An explicitly blanked-out pager disables paging rather than
		// failing.
		return d
	}
	if len(argv) == 1 && argv[0] == "cat" {
		// cat as the configured pager is a request for pass-through.
		return d
	}

	// A caller-declared line count that fits on one screen makes the
	// pager pointless. An unknown height is treated as pageable, and a
	// user who set LESS has taken explicit control, so the shortcut does
	// not apply.
	if _, userControlled := os.LookupEnv("LESS"); !userControlled {
		if p.minimumLines > 0 && probe.Height != term.SizeUnknown && p.minimumLines <= probe.Height {
			return d
		}
	}

	d.ShouldPage = true
	d.Argv = argv
	// Only an explicit line-buffering request suppresses scroll
	// suppression; buffering merely inherited from the terminal must not.
	d.Env = p.cmd.EnvironmentVariables(command.Config{
		Color:                  p.allowColor && probe.SupportsColor,
		LineBufferingRequested: p.lineBuffering == LineBufferingOn,
		ResetTerminal:          p.resetOnExit,
	})
	return d
}

// resolveLineBuffering applies an explicit on/off setting, else inherits
// the destination's mode: terminals are line-buffered, files and pipes
// are not.
func resolveLineBuffering(lb LineBuffering, probe term.Probe) bool {
	switch lb {
	case LineBufferingOn:
		return true
	case LineBufferingOff:
		return false
	}
	return probe.IsTerminal
}

func emptyCommand(argv []string) bool {
	for _, arg := range argv {
		if strings.TrimSpace(arg) != "" {
			return false
		}
	}
	return true
}
