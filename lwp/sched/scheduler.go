// Package sched defines the pluggable scheduling contract used by the lwp
// runtime, plus a couple of concrete implementations.
//
// A [Scheduler] owns the ready set: the collection of runnable threads the
// runtime core may hand the CPU to next. The core never inspects a
// scheduler's internal bookkeeping; it only calls the six operations below,
// so third parties can supply their own scheduler (a priority queue, a
// lottery scheduler, whatever) by implementing this interface.
package sched

// Schedulable is the minimal view of a thread a [Scheduler] needs. It is
// satisfied by *lwp.Thread; the interface exists so this package has no
// import-cycle dependency on the root lwp package.
type Schedulable interface {
	// Live reports whether the thread is still eligible to run. A
	// scheduler must never hand a non-live thread back from Next.
	Live() bool
}

// Scheduler is the capability set a scheduling policy must implement.
// Init and Shutdown are optional lifecycle hooks; a scheduler that doesn't
// need them may implement them as no-ops.
type Scheduler interface {
	// Init is called once, when this scheduler becomes the active one
	// (either at runtime construction, or via SetScheduler).
	Init()

	// Shutdown is called once, when this scheduler is replaced by another.
	// After Shutdown, the scheduler must not be reused.
	Shutdown()

	// Admit makes t ready. Admitting a thread that is not Live is a no-op.
	// Admitting an already-ready thread need not be idempotent; callers
	// (the runtime core) never do so.
	Admit(t Schedulable)

	// Remove removes t from the ready set if present; otherwise a no-op.
	Remove(t Schedulable)

	// Next returns some ready thread, updating internal state so that
	// repeated calls produce a fair schedule under the scheduler's policy.
	// Returns nil if the ready set is empty.
	Next() Schedulable

	// Qlen returns the number of threads currently in the ready set.
	Qlen() int
}
