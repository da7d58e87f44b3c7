package ctx

// EntryFunc is a thread's entry point: it receives its opaque argument and
// returns the value to be passed to Exit.
type EntryFunc func(arg any) int

// ExitFunc is called by the trampoline with the entry function's return
// value once it returns normally — the "implicit exit" path from spec.md
// §2 ("Each worker either returns ... or calls exit explicitly"). It must
// not return.
type ExitFunc func(code int)

// onExit is the installed ExitFunc. A Context's entry/arg fields are
// ordinary Go values (a closure, an interface) that only Go code ever
// touches; the assembly trampoline is handed nothing but the *Context
// pointer, and dispatch resolves the rest from there.
var onExit ExitFunc

// SetExitFunc installs the function the trampoline calls with a worker's
// return value. The runtime core calls this once during initialization,
// wiring the trampoline's "fall off the end" path to Exit.
func SetExitFunc(fn ExitFunc) {
	onExit = fn
}

// dispatch is called by the assembly trampoline (trampolineEntry) with the
// *Context a freshly resumed thread was constructed from. It invokes the
// thread's entry function and hands its result to the installed
// ExitFunc. dispatch must never return: if onExit itself returns (it
// shouldn't — Exit calls Yield, which terminates the process rather than
// returning when asked to resume after exit), that is the fatal,
// unrecoverable condition spec.md §4.3 step 4 and §7 describe.
func dispatch(c *Context) {
	result := c.entry(c.arg)
	if onExit != nil {
		onExit(result)
	}
	panic("ctx: trampoline resumed after exit; runtime is corrupt")
}
