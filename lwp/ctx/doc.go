// Package ctx is the LWP runtime's context primitive: the single
// non-portable piece that atomically saves one CPU register file and
// loads another, per spec.md §4.1.
//
// [Swap] is implemented once per architecture in real assembly
// (switch_amd64.s, switch_arm64.s); everything else in this package is
// architecture-independent scaffolding around it: building the synthetic
// initial stack frame a freshly created thread resumes into (NewEntry),
// and the small trampoline that bridges from "a function was just resumed
// into out of nowhere" to an ordinary Go call of the thread's entry
// function.
//
// # Calling convention
//
// Swap(save, load *Context) saves the caller's stack pointer, frame
// pointer, callee-saved general-purpose registers, and FPU/SSE state into
// save (skipped if save is nil), then loads the same fields from load
// (skipped if load is nil) and resumes execution at the instruction
// addressed by load's saved return address — ordinary function-return
// semantics, not a longjmp-style restart. A context built by [NewEntry]
// arranges for that resumption point to be this package's trampoline,
// 16-byte stack aligned per the platform ABI once the trampoline's own
// prologue accounts for the return address slot, exactly as spec.md §4.1
// requires for calls into ordinary library code from inside a worker.
//
// # What is and is not saved
//
// Only the callee-saved integer registers and SP/FP need saving: Swap is
// always invoked through an ordinary Go function call, so the caller-saved
// registers are already dead by the time Swap's own prologue runs, exactly
// as they would be across any other function call. The FPU/SSE state is
// saved unconditionally because floating point and vector registers are
// not part of either architecture's standard callee-saved set, yet
// correctness across a switch requires them — spec.md's Design Notes call
// this out explicitly ("failing to do so corrupts floating point
// computation across switches on many platforms").
//
// # A known, accepted limitation
//
// This package manipulates the stack pointer of the single goroutine the
// LWP runtime runs on directly; it does not patch that goroutine's
// stack-growth bookkeeping (stackguard0) to describe the newly switched-to
// memory region. In practice this is safe as long as worker call chains
// stay within the bounds of their allocated stack (sized per spec.md
// §4.2, normally 8 MiB) and never approach Go's own tiny initial-goroutine
// stack bounds closely enough to trigger a spurious morestack. The
// original C assignment this is ported from has the identical exposure —
// stack overflow detection is an explicit Non-goal in spec.md §1 — so this
// is a faithful translation of that limitation, not a new one introduced
// by the port. See DESIGN.md for the full discussion.
package ctx
