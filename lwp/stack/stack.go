// Package stack provisions the memory regions backing each LWP's call
// stack: page-aligned, anonymous, read/write, sized from the process's
// stack rlimit.
package stack

import "errors"

// DefaultSize is the minimum stack size: it is used when both the caller's
// hint and the process rlimit are zero or smaller than it.
const DefaultSize = 8 << 20 // 8 MiB

// ErrAllocFailed is returned when the underlying OS allocation fails (out
// of memory, over a system mapping limit, etc). The runtime core surfaces
// this as NoThread from Create.
var ErrAllocFailed = errors.New("stack: allocation failed")

// Region is an allocated stack: Base is the low address of the mapping,
// Size is its length in bytes (always a whole number of pages).
type Region struct {
	Base uintptr
	Size uintptr
}

// Allocate returns a Region sized max(hint, process stack rlimit,
// DefaultSize), rounded up to a whole number of pages. A hint of 0 means
// "no preference"; the rlimit/default still apply.
//
// Allocate is implemented per-OS: stack_unix.go (mmap via golang.org/x/sys)
// and stack_windows.go (VirtualAlloc via golang.org/x/sys/windows).
func Allocate(hint int) (Region, error) {
	return allocate(hint)
}

// Release unmaps r. Calling Release on the zero Region (Base == 0, as used
// for the start-synthesized thread that owns no separately allocated
// stack) is a no-op.
func Release(r Region) error {
	if r.Base == 0 {
		return nil
	}
	return release(r)
}

func effectiveSize(hint int, rlimit uint64, pageSize uintptr) uintptr {
	size := uintptr(DefaultSize)
	if rlimit > 0 && uintptr(rlimit) > size {
		size = uintptr(rlimit)
	}
	if hint > 0 && uintptr(hint) > size {
		size = uintptr(hint)
	}
	return roundUp(size, pageSize)
}

func roundUp(size, align uintptr) uintptr {
	if align == 0 {
		return size
	}
	return (size + align - 1) &^ (align - 1)
}
