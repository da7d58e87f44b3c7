//go:build linux || darwin

package stack

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

func pageSize() uintptr {
	return uintptr(unix.Getpagesize())
}

func rlimitStack() uint64 {
	var rl unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_STACK, &rl); err != nil {
		return 0
	}
	// RLIM_INFINITY means "no limit imposed"; fall back to the default
	// rather than trying to map an unbounded region.
	if rl.Cur == 0 || rl.Cur > uint64(1)<<40 {
		return 0
	}
	return rl.Cur
}

func allocate(hint int) (Region, error) {
	size := effectiveSize(hint, rlimitStack(), pageSize())

	b, err := unix.Mmap(-1, 0, int(size),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON|growthHintFlag())
	if err != nil {
		return Region{}, ErrAllocFailed
	}

	return Region{Base: uintptr(unsafe.Pointer(&b[0])), Size: size}, nil
}

func release(r Region) error {
	b := unsafe.Slice((*byte)(unsafe.Pointer(r.Base)), r.Size)
	return unix.Munmap(b)
}
