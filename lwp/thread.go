package lwp

import (
	"github.com/jgonzo24/lwp/lwp/ctx"
	"github.com/jgonzo24/lwp/lwp/sched"
	"github.com/jgonzo24/lwp/lwp/stack"
)

// TID identifies a thread, unique among all currently live-or-zombie
// threads. The zero value is NoThread.
type TID uint64

// NoThread is the TID value meaning "no thread" — returned by Create on
// failure, by GetTID before Start, and by Wait when woken without a
// payload.
const NoThread TID = 0

// Thread is one LWP's descriptor: register file, owned stack region,
// status, and the intrusive link fields the runtime and the active
// scheduler use to track which list (if any) the thread currently
// belongs to.
//
// spec.md gives the descriptor two runtime-owned link slots and two
// scheduler-owned ones. The scheduler's slots live in sched.RoundRobin's
// own node type instead (see that package's doc comment on node) since
// schedulers here are a separate Go package rather than code sharing the
// descriptor's memory layout; Thread keeps only the two runtime-owned
// slots, registryNext and listNext, described below.
type Thread struct {
	tid    TID
	status Status

	regs  *ctx.Context
	stack stack.Region

	// registryNext links this descriptor into the global registry, in
	// creation order. Append-only except at reap, where wait scans for
	// and unlinks the reaped descriptor (the same O(n) allowance spec.md
	// gives tid2thread's lookup).
	registryNext *Thread

	// listNext is the shared link slot for whichever of the zombie FIFO
	// or blocked-joiner FIFO currently holds this thread. The two lists
	// are mutually exclusive per the package invariant (a thread is never
	// in both at once), so one slot suffices for both — this and
	// registryNext are the descriptor's two runtime-owned link slots
	// spec.md §3 describes; the scheduler's own two slots live in
	// sched.RoundRobin's node type instead (see that type's doc comment).
	listNext *Thread

	// joinPayload is set by exit (step 3) on the waiter it woke directly;
	// wait reads and clears it on resumption.
	joinPayload *Thread
}

var _ sched.Schedulable = (*Thread)(nil)

// Live reports whether the thread is still LIVE, satisfying
// sched.Schedulable.
func (t *Thread) Live() bool {
	return t.status.State() == Live
}

// TID returns the thread's identifier.
func (t *Thread) TID() TID {
	return t.tid
}

// Status returns the thread's current packed status.
func (t *Thread) Status() Status {
	return t.status
}
