//go:build linux

package stack

import "golang.org/x/sys/unix"

// growthHintFlag asks the kernel to treat the mapping as stack memory
// (gap placement, grow-down semantics) where it's supported.
func growthHintFlag() int {
	return unix.MAP_STACK
}
