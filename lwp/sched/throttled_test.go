package sched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestThrottled_DefersRapidReadmission(t *testing.T) {
	th := NewThrottled(NewRoundRobin(), time.Hour)
	a := &fakeThread{name: "a", live: true}
	b := &fakeThread{name: "b", live: true}

	th.Admit(a)
	require.Equal(t, 1, th.Qlen())

	// a runs, leaves the ready set, and is re-admitted before its window
	// clears. Next alone does not remove a thread, so Remove models it
	// leaving (as Exit and Wait do in the runtime).
	require.Same(t, a, th.Next())
	th.Remove(a)
	th.Admit(b)
	th.Admit(a)

	// a should be parked in the pending set, not handed back out yet;
	// Qlen counts b (ready) plus a (pending).
	require.Same(t, b, th.Next())
	require.Equal(t, 2, th.Qlen())
}

func TestThrottled_ZeroWindowPassesThrough(t *testing.T) {
	th := NewThrottled(NewRoundRobin(), 0)
	a := &fakeThread{name: "a", live: true}
	th.Admit(a)
	th.Admit(a)
	require.Equal(t, 2, th.Qlen())
}

func TestThrottled_RemoveDropsPending(t *testing.T) {
	th := NewThrottled(NewRoundRobin(), time.Hour)
	a := &fakeThread{name: "a", live: true}
	th.Admit(a)
	th.Next()
	th.Admit(a) // now pending, window hasn't cleared

	th.Remove(a)
	require.Zero(t, th.Qlen())
}
