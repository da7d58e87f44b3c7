// Package lwp implements a cooperative user-space thread runtime: a
// register-level context primitive, per-thread stack provisioning, a
// pluggable scheduler, and blocking join/reap semantics, all driven from
// a single OS thread.
//
// A zero-configuration program uses the package-level functions (Create,
// Start, Yield, Exit, Wait, ...), which operate on a lazily constructed
// Default Runtime. A program that wants a non-default scheduler, stack
// size, or logger constructs its own *Runtime via NewRuntime and calls
// the methods directly.
package lwp

import (
	"os"
	"runtime"

	"github.com/jgonzo24/lwp/lwp/ctx"
	"github.com/jgonzo24/lwp/lwp/lwplog"
	"github.com/jgonzo24/lwp/lwp/sched"
	"github.com/jgonzo24/lwp/lwp/stack"
)

// EntryFunc is a worker's entry point: it receives its opaque argument
// and returns the value passed to Exit (or handed to Exit implicitly, on
// a plain return).
type EntryFunc = ctx.EntryFunc

const stackDefaultHint = 0

// exitProcess is Yield's step-2 process-termination call, factored into a
// package variable so tests can substitute a non-terminating stand-in
// (e.g. one that panics with the code, to be recovered and asserted on)
// instead of actually ending the test binary.
var exitProcess = os.Exit

// Runtime owns all process-wide LWP state: the thread registry, the
// zombie and blocked-joiner FIFOs, the currently running thread, the TID
// counter, and the active scheduler. Per spec.md §5, every field here is
// mutated only by the single currently-running LWP; no locks guard any of
// it, by design.
type Runtime struct {
	opts *runtimeOptions

	registryHead, registryTail *Thread
	zombieHead, zombieTail     *Thread
	blockedHead, blockedTail   *Thread

	current *Thread
	nextTID TID

	scheduler sched.Scheduler
	started   bool
}

// NewRuntime constructs a Runtime with opts applied over the defaults (an
// 8 MiB-floor stack hint, a round-robin scheduler, and a no-op logger).
func NewRuntime(opts ...Option) (*Runtime, error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	rt := &Runtime{opts: cfg, scheduler: cfg.scheduler}
	rt.scheduler.Init()
	return rt, nil
}

func (rt *Runtime) logger() lwplog.Logger {
	if rt.opts.logger != nil {
		return rt.opts.logger
	}
	return lwplog.NoOp{}
}

// Create allocates a stack and descriptor for fn, admits it to the active
// scheduler, and appends it to the global registry. stackHint is
// advisory; 0 defers to the runtime's configured default.
func (rt *Runtime) Create(fn EntryFunc, arg any, stackHint int) (TID, error) {
	if stackHint == 0 {
		stackHint = rt.opts.defaultStackSize
	}

	region, err := stack.Allocate(stackHint)
	if err != nil {
		lwplog.NewEntry(lwplog.LevelError, "lifecycle", "stack allocation failed").Err(err).Log(rt.logger())
		return NoThread, ErrNoMemory
	}

	t := &Thread{
		status: MakeStatus(Live, 0),
		stack:  region,
	}
	t.regs = ctx.NewEntry(region.Base+region.Size, fn, arg)

	rt.nextTID++
	if rt.nextTID == TID(NoThread) {
		rt.nextTID++ // skip 0 on wraparound, per spec.md §3
	}
	t.tid = rt.nextTID

	rt.scheduler.Admit(t)
	rt.appendRegistry(t)

	lwplog.NewEntry(lwplog.LevelDebug, "lifecycle", "thread created").TID(uint64(t.tid)).Log(rt.logger())
	return t.tid, nil
}

// Start converts the calling goroutine into the first LWP: it synthesizes
// a descriptor with no owned stack (the caller already has one), admits
// it, records it as current, and enters scheduling via Yield. Idempotent:
// a second call returns immediately.
//
// Start calls runtime.LockOSThread because the context primitive
// manipulates this goroutine's stack pointer directly; if the Go
// scheduler migrated it to a different OS thread mid-switch the saved
// and restored register files would belong to different physical CPUs.
func (rt *Runtime) Start() {
	if rt.started {
		return
	}
	runtime.LockOSThread()
	rt.started = true

	// Binds the trampoline's "entry function returned" path to this
	// Runtime's own Exit, implementing spec.md §2's implicit-exit rule
	// ("each worker either returns ... or calls exit explicitly"). The
	// binding is package-wide rather than per-thread: each Start replaces
	// it, so the Runtime that started most recently receives every
	// implicit exit.
	ctx.SetExitFunc(rt.Exit)

	self := &Thread{
		status: MakeStatus(Live, 0),
		regs:   &ctx.Context{},
	}
	rt.nextTID++
	self.tid = rt.nextTID

	rt.scheduler.Admit(self)
	rt.appendRegistry(self)
	rt.current = self

	lwplog.NewEntry(lwplog.LevelInfo, "lifecycle", "runtime started").TID(uint64(self.tid)).Log(rt.logger())
	rt.Yield()
}

// Yield asks the scheduler for the next ready thread and context-switches
// to it. If the ready set is empty, the process exits with the current
// thread's exit code (0 if there is no current thread) — this is how a
// program built only on LWPs terminates. If the scheduler returns the
// current thread itself, Yield is a no-op.
func (rt *Runtime) Yield() {
	next, ok := rt.scheduler.Next().(*Thread)
	if !ok || next == nil {
		code := 0
		if rt.current != nil {
			code = rt.current.status.ExitCode()
		}
		lwplog.NewEntry(lwplog.LevelInfo, "lifecycle", "ready set empty, process exiting").
			Field("code", code).Log(rt.logger())
		exitProcess(code)
		return
	}

	if next == rt.current {
		return
	}

	prev := rt.current
	rt.current = next

	var saveInto *ctx.Context
	if prev != nil {
		saveInto = prev.regs
	}
	ctx.Swap(saveInto, next.regs)
}

// Exit terminates the calling thread with the given code (masked to its
// low 8 bits). If a joiner is already blocked in Wait, it is woken
// directly with this thread as its join payload; otherwise this thread is
// parked on the zombie FIFO for a future Wait to reap. Exit never
// returns; if Yield somehow returns control here, that is the fatal
// condition spec.md §7 describes.
func (rt *Runtime) Exit(code int) {
	self := rt.current
	if self == nil {
		wrapFatal("exit called with no current thread", nil)
	}
	self.status = MakeStatus(Terminated, code)
	rt.scheduler.Remove(self)

	lwplog.NewEntry(lwplog.LevelDebug, "lifecycle", "thread exiting").
		TID(uint64(self.tid)).Field("code", self.status.ExitCode()).Log(rt.logger())

	if w := rt.popBlocked(); w != nil {
		w.joinPayload = self
		rt.scheduler.Admit(w)
	} else {
		rt.pushZombie(self)
	}

	rt.Yield()
	wrapFatal("yield returned control after exit", nil)
}

// Wait reaps a pending zombie if one exists, otherwise blocks the caller
// until some thread exits and pairs with it. Returns the reaped thread's
// TID and status, or (NoThread, zero Status) if woken without a payload —
// the never-reached fallback spec.md §9's open question discusses.
func (rt *Runtime) Wait() (TID, Status) {
	if z := rt.popZombie(); z != nil {
		return rt.reap(z)
	}

	self := rt.current
	if self == nil {
		wrapFatal("wait called with no current thread", nil)
	}
	self.joinPayload = nil
	rt.scheduler.Remove(self)
	rt.pushBlocked(self)
	rt.Yield()

	if self.joinPayload != nil {
		z := self.joinPayload
		self.joinPayload = nil
		return rt.reap(z)
	}
	return NoThread, 0
}

// reap removes z from the global registry, releases its stack, and
// returns its tid and final status. z's descriptor becomes unreachable
// once this returns (no Go code retains a pointer to it beyond this
// call).
func (rt *Runtime) reap(z *Thread) (TID, Status) {
	rt.removeRegistry(z)
	if err := stack.Release(z.stack); err != nil {
		lwplog.NewEntry(lwplog.LevelWarn, "lifecycle", "stack release failed").
			TID(uint64(z.tid)).Err(err).Log(rt.logger())
	}
	lwplog.NewEntry(lwplog.LevelDebug, "lifecycle", "thread reaped").
		TID(uint64(z.tid)).Field("code", z.status.ExitCode()).Log(rt.logger())
	return z.tid, z.status
}

// GetTID returns the currently running thread's tid, or NoThread if the
// runtime hasn't been started.
func (rt *Runtime) GetTID() TID {
	if rt.current == nil {
		return NoThread
	}
	return rt.current.tid
}

// TidToThread looks up a thread by tid in the global registry (live or
// zombie). The registry is expected to stay small; a linear scan is
// spec.md's explicitly sanctioned implementation.
func (rt *Runtime) TidToThread(tid TID) (*Thread, bool) {
	for t := rt.registryHead; t != nil; t = t.registryNext {
		if t.tid == tid {
			return t, true
		}
	}
	return nil, false
}

// SetScheduler transactionally swaps the active scheduler for s (or the
// default round robin, if s is nil). Every thread ready under the old
// scheduler is drained and re-admitted to the new one before the swap
// completes. Once Start has run, the currently running thread is itself
// in the ready set (Start admits it and Yield never removes it), so it is
// drained and migrated along with the others.
func (rt *Runtime) SetScheduler(s sched.Scheduler) {
	if s == nil {
		s = sched.NewRoundRobin()
	}
	if s == rt.scheduler {
		return
	}

	s.Init()
	for {
		n := rt.scheduler.Next()
		if n == nil {
			break
		}
		rt.scheduler.Remove(n)
		s.Admit(n)
	}
	rt.scheduler.Shutdown()
	rt.scheduler = s

	lwplog.NewEntry(lwplog.LevelInfo, "sched", "scheduler swapped").Log(rt.logger())
}

// GetScheduler returns the currently active scheduler.
func (rt *Runtime) GetScheduler() sched.Scheduler {
	return rt.scheduler
}

func (rt *Runtime) appendRegistry(t *Thread) {
	if rt.registryTail == nil {
		rt.registryHead, rt.registryTail = t, t
		return
	}
	rt.registryTail.registryNext = t
	rt.registryTail = t
}

func (rt *Runtime) removeRegistry(t *Thread) {
	var prev *Thread
	for cur := rt.registryHead; cur != nil; cur = cur.registryNext {
		if cur == t {
			if prev == nil {
				rt.registryHead = cur.registryNext
			} else {
				prev.registryNext = cur.registryNext
			}
			if rt.registryTail == cur {
				rt.registryTail = prev
			}
			cur.registryNext = nil
			return
		}
		prev = cur
	}
}

func (rt *Runtime) pushZombie(t *Thread) {
	t.listNext = nil
	if rt.zombieTail == nil {
		rt.zombieHead, rt.zombieTail = t, t
		return
	}
	rt.zombieTail.listNext = t
	rt.zombieTail = t
}

func (rt *Runtime) popZombie() *Thread {
	if rt.zombieHead == nil {
		return nil
	}
	t := rt.zombieHead
	rt.zombieHead = t.listNext
	if rt.zombieHead == nil {
		rt.zombieTail = nil
	}
	t.listNext = nil
	return t
}

func (rt *Runtime) pushBlocked(t *Thread) {
	t.listNext = nil
	if rt.blockedTail == nil {
		rt.blockedHead, rt.blockedTail = t, t
		return
	}
	rt.blockedTail.listNext = t
	rt.blockedTail = t
}

func (rt *Runtime) popBlocked() *Thread {
	if rt.blockedHead == nil {
		return nil
	}
	t := rt.blockedHead
	rt.blockedHead = t.listNext
	if rt.blockedHead == nil {
		rt.blockedTail = nil
	}
	t.listNext = nil
	return t
}
