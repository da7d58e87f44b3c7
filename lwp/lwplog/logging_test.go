package lwplog

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNoOp_NeverEnabled(t *testing.T) {
	var l NoOp
	require.False(t, l.IsEnabled(LevelDebug))
	require.False(t, l.IsEnabled(LevelError))
	l.Log(Entry{Message: "ignored"}) // must not panic
}

func TestBuilder_BuildsExpectedEntry(t *testing.T) {
	e := NewEntry(LevelWarn, "sched", "thread starved").
		TID(7).
		Scheduler("roundrobin").
		Field("qlen", 3).
		Err(errors.New("boom")).
		Build()

	require.Equal(t, LevelWarn, e.Level)
	require.Equal(t, "sched", e.Category)
	require.Equal(t, uint64(7), e.TID)
	require.Equal(t, "roundrobin", e.Scheduler)
	require.Equal(t, 3, e.Fields["qlen"])
	require.EqualError(t, e.Err, "boom")
	require.False(t, e.Timestamp.IsZero())
}

func TestBuilder_LogSkipsDisabledLevel(t *testing.T) {
	var buf bytes.Buffer
	z := NewZerolog(zerolog.New(&buf), LevelError)

	NewEntry(LevelInfo, "sched", "noisy").Log(z)
	require.Zero(t, buf.Len())

	NewEntry(LevelError, "sched", "loud").Log(z)
	require.NotZero(t, buf.Len())
	require.Contains(t, buf.String(), "loud")
}

func TestZerolog_IncludesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	z := NewZerolog(zerolog.New(&buf), LevelDebug)

	z.Log(NewEntry(LevelInfo, "ctxswitch", "switched").
		TID(42).
		Scheduler("throttled").
		Field("reason", "yield").
		Build())

	out := buf.String()
	require.Contains(t, out, `"tid":42`)
	require.Contains(t, out, `"scheduler":"throttled"`)
	require.Contains(t, out, `"reason":"yield"`)
}
