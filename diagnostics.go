package subprocrun

import (
	"os"

	"github.com/rs/zerolog"
)

// Sink is where ProcessHandle.Launch emits the shell-escaped argv when
// Config.Verbose is set, and where Signal logs delivery failures that it
// otherwise swallows from the caller's perspective (spec.md §4.6: "delivery
// failure is silently ignored"). Satisfied by *zerolog.Logger.
type Sink interface {
	Info() *zerolog.Event
	Debug() *zerolog.Event
}

// DefaultSink writes to stderr, matching the teacher's own preference for
// stderr as the diagnostic stream. It sets no level filter, so both Info
// and Debug events are written.
var DefaultSink Sink = newStderrLogger()

func newStderrLogger() Sink {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).With().Timestamp().Logger()
	return &logger
}
