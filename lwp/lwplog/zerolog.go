package lwplog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Zerolog adapts a github.com/rs/zerolog.Logger to the Logger interface.
type Zerolog struct {
	z        zerolog.Logger
	minLevel Level
}

// NewZerolog wraps z. Entries below minLevel are dropped before they ever
// reach zerolog, so disabled levels cost nothing beyond the IsEnabled
// check.
func NewZerolog(z zerolog.Logger, minLevel Level) *Zerolog {
	return &Zerolog{z: z, minLevel: minLevel}
}

// NewZerologConsole is the convenience constructor cmd/lwpdemo attaches at
// startup: a human-readable console writer over w (typically os.Stderr).
func NewZerologConsole(w io.Writer, minLevel Level) *Zerolog {
	if w == nil {
		w = os.Stderr
	}
	z := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000"}).With().Timestamp().Logger()
	return NewZerolog(z, minLevel)
}

func (z *Zerolog) IsEnabled(level Level) bool {
	return level >= z.minLevel
}

func (z *Zerolog) Log(e Entry) {
	if !z.IsEnabled(e.Level) {
		return
	}

	var ev *zerolog.Event
	switch e.Level {
	case LevelDebug:
		ev = z.z.Debug()
	case LevelWarn:
		ev = z.z.Warn()
	case LevelError:
		ev = z.z.Error()
	default:
		ev = z.z.Info()
	}

	ev = ev.Str("category", e.Category)
	if e.TID != 0 {
		ev = ev.Uint64("tid", e.TID)
	}
	if e.Scheduler != "" {
		ev = ev.Str("scheduler", e.Scheduler)
	}
	for k, v := range e.Fields {
		ev = ev.Interface(k, v)
	}
	if e.Err != nil {
		ev = ev.Err(e.Err)
	}
	if !e.Timestamp.IsZero() {
		ev = ev.Time("ts", e.Timestamp)
	}
	ev.Msg(e.Message)
}
