package sched

import (
	"time"

	catrate "github.com/joeycumines/go-catrate"
)

// Throttled wraps another [Scheduler] and refuses to admit a thread more
// than once per window: an Admit beyond that rate parks the thread in a
// pending set, and a later Next hands it to the wrapped scheduler once the
// rate limiter says the window has cleared. Only Admit is rate-limited;
// a thread that stays in the ready set (as a yielding thread does, since
// the runtime's Yield never re-admits) is selected by the wrapped
// scheduler as usual.
//
// This is a supplementary scheduler (spec.md names only round robin as the
// concrete implementation); it exists to exercise the scheduler interface's
// pluggability with a second, independently sourced policy, and to give
// github.com/joeycumines/go-catrate a concrete home in this module.
type Throttled struct {
	inner   Scheduler
	limiter *catrate.Limiter
	window  time.Duration
	pending []Schedulable
}

var _ Scheduler = (*Throttled)(nil)

// NewThrottled wraps inner so that no single thread may be re-admitted more
// than once per window. A window of zero disables throttling entirely
// (Throttled degenerates to a pass-through over inner).
func NewThrottled(inner Scheduler, window time.Duration) *Throttled {
	t := &Throttled{inner: inner, window: window}
	if window > 0 {
		t.limiter = catrate.NewLimiter(map[time.Duration]int{window: 1})
	}
	return t
}

// Init initializes the wrapped scheduler.
func (t *Throttled) Init() { t.inner.Init() }

// Shutdown shuts down the wrapped scheduler and drops any pending threads.
// Callers (the runtime, via SetScheduler) are expected to have already
// drained everything reachable via Next/Remove before calling Shutdown;
// Admit is not re-examined here.
func (t *Throttled) Shutdown() {
	t.inner.Shutdown()
	t.pending = nil
}

// Admit defers t's admission if it was re-admitted within the current
// window, otherwise forwards it straight to the wrapped scheduler.
func (t *Throttled) Admit(s Schedulable) {
	if s == nil || !s.Live() {
		return
	}
	if t.limiter == nil {
		t.inner.Admit(s)
		return
	}
	if _, ok := t.limiter.Allow(s); ok {
		t.inner.Admit(s)
		return
	}
	t.pending = append(t.pending, s)
}

// Remove removes s from the wrapped scheduler's ready set, and drops it
// from the pending (throttled) set if it's waiting there instead.
func (t *Throttled) Remove(s Schedulable) {
	t.inner.Remove(s)
	for i, p := range t.pending {
		if p == s {
			t.pending = append(t.pending[:i], t.pending[i+1:]...)
			return
		}
	}
}

// Next promotes any pending threads whose window has now cleared, then
// defers to the wrapped scheduler for selection.
func (t *Throttled) Next() Schedulable {
	if len(t.pending) > 0 {
		remaining := t.pending[:0]
		for _, p := range t.pending {
			if !p.Live() {
				continue
			}
			if _, ok := t.limiter.Allow(p); ok {
				t.inner.Admit(p)
			} else {
				remaining = append(remaining, p)
			}
		}
		t.pending = remaining
	}
	return t.inner.Next()
}

// Qlen returns the wrapped scheduler's ready count plus anything currently
// throttled and waiting for its window to clear.
func (t *Throttled) Qlen() int {
	return t.inner.Qlen() + len(t.pending)
}
