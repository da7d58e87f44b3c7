package lwp

import "github.com/jgonzo24/lwp/lwp/sched"

var defaultRuntime *Runtime

// Default lazily constructs and returns the package-level Runtime the
// top-level functions below operate on, so simple programs can call
// lwp.Create/lwp.Start/... without constructing a Runtime of their own —
// matching spec.md's description of the API as flat, C-style functions.
func Default() *Runtime {
	if defaultRuntime == nil {
		rt, err := NewRuntime()
		if err != nil {
			// NewRuntime with no options cannot fail: resolveOptions only
			// ever errors from a caller-supplied Option, and none are
			// passed here.
			wrapFatal("default runtime construction failed", err)
		}
		defaultRuntime = rt
	}
	return defaultRuntime
}

// Create registers a new worker on the default Runtime. See
// Runtime.Create.
func Create(fn EntryFunc, arg any, stackHint int) (TID, error) {
	return Default().Create(fn, arg, stackHint)
}

// Start converts the caller into an LWP on the default Runtime. See
// Runtime.Start.
func Start() {
	Default().Start()
}

// Yield hands the CPU to the next ready thread on the default Runtime.
// See Runtime.Yield.
func Yield() {
	Default().Yield()
}

// Exit terminates the calling thread on the default Runtime. See
// Runtime.Exit.
func Exit(code int) {
	Default().Exit(code)
}

// Wait reaps a zombie (or blocks until one is available) on the default
// Runtime. See Runtime.Wait.
func Wait() (TID, Status) {
	return Default().Wait()
}

// GetTID returns the current thread's tid on the default Runtime.
func GetTID() TID {
	return Default().GetTID()
}

// TidToThread looks up a thread by tid on the default Runtime.
func TidToThread(tid TID) (*Thread, bool) {
	return Default().TidToThread(tid)
}

// SetScheduler swaps the active scheduler on the default Runtime.
func SetScheduler(s sched.Scheduler) {
	Default().SetScheduler(s)
}

// GetScheduler returns the active scheduler on the default Runtime.
func GetScheduler() sched.Scheduler {
	return Default().GetScheduler()
}
