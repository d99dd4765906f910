package subprocrun

import (
	"os"
	"os/signal"
	"strings"
)

// ParseCommandArgs splits a shell-like command line into argv, honoring
// single and double quotes and collapsing runs of unquoted spaces. It is
// the supplemented quoting-aware argument parser from the original
// command-string entry points this package's Popen/CheckNonZeroExit
// replace (those take argv directly); this is for callers who only have a
// single command string, e.g. a config file field or a REPL line.
func ParseCommandArgs(args ...string) []string {
	out := make([]string, 0)
	for _, s := range args {
		var word strings.Builder
		hasWord := false
		var quote byte // 0, '\'', or '"'

		flushUnquoted := func() {
			if hasWord {
				out = append(out, word.String())
				word.Reset()
				hasWord = false
			}
		}

		for i := 0; i < len(s); i++ {
			c := s[i]
			switch {
			case quote != 0:
				// A quoted run is always its own token, even empty,
				// so it flushes on the closing quote rather than on
				// the next space.
				if c == quote {
					out = append(out, word.String())
					word.Reset()
					quote = 0
				} else {
					word.WriteByte(c)
				}
			case c == '\'' || c == '"':
				flushUnquoted()
				quote = c
			case c == ' ':
				flushUnquoted()
			default:
				word.WriteByte(c)
				hasWord = true
			}
		}
		if quote != 0 {
			out = append(out, word.String())
		} else {
			flushUnquoted()
		}
	}
	return out
}

// ListenForInterrupt returns a buffered channel fed by os/signal.Notify for
// os.Interrupt, for callers that want to forward a parent's Ctrl+C into a
// Signal(SIGINT) call on a ProcessHandle they are supervising.
func ListenForInterrupt() chan os.Signal {
	c := make(chan os.Signal, 10)
	signal.Notify(c, os.Interrupt)
	return c
}

// devNull is opened once and reused by DevNull so repeated calls don't leak
// file descriptors.
var devNull, _ = os.OpenFile(os.DevNull, os.O_RDWR, 0)

// DevNull returns the platform null device, usable anywhere an *os.File is
// expected. None of the OutputRedirection variants accepts a writer, so it
// cannot be passed to Config.Redirection as a discard target.
func DevNull() *os.File {
	return devNull
}
