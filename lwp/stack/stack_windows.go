//go:build windows

package stack

import (
	"golang.org/x/sys/windows"
)

func pageSize() uintptr {
	var si windows.SystemInfo
	windows.GetSystemInfo(&si)
	if si.PageSize == 0 {
		return 4096
	}
	return uintptr(si.PageSize)
}

// rlimitStack: Windows has no POSIX rlimit; the thread stack size
// is fixed at creation. There's nothing to query here, so callers fall
// back to DefaultSize.
func rlimitStack() uint64 {
	return 0
}

func allocate(hint int) (Region, error) {
	size := effectiveSize(hint, rlimitStack(), pageSize())

	addr, err := windows.VirtualAlloc(0, size, windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return Region{}, ErrAllocFailed
	}

	return Region{Base: addr, Size: size}, nil
}

func release(r Region) error {
	return windows.VirtualFree(r.Base, 0, windows.MEM_RELEASE)
}
