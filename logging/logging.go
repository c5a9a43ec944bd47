// ABOUTME: Structured logger construction
// ABOUTME: Console-formatted zerolog output, stamped with a per-process session id
package logging

import (
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// New returns a console logger at level writing to w. A nil w means stderr,
// since the MCP server owns stdout.
func New(level string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if w == nil {
		w = os.Stderr
	}

	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: w != os.Stderr}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// WithSession tags every event with a fresh session id so one CLI run or MCP
// connection can be picked out of a shared log.
func WithSession(log zerolog.Logger) (zerolog.Logger, string) {
	id := uuid.NewString()
	return log.With().Str("session", id).Logger(), id
}
