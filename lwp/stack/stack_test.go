package stack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllocate_SizedAndPageAligned(t *testing.T) {
	r, err := Allocate(0)
	require.NoError(t, err)
	require.NotZero(t, r.Base)
	require.GreaterOrEqual(t, r.Size, uintptr(DefaultSize))
	require.Zero(t, r.Size%pageSize())

	require.NoError(t, Release(r))
}

func TestAllocate_HintLargerThanDefaultWins(t *testing.T) {
	hint := DefaultSize * 2
	r, err := Allocate(hint)
	require.NoError(t, err)
	defer Release(r)

	require.GreaterOrEqual(t, r.Size, uintptr(hint))
}

func TestRelease_NilRegionIsNoOp(t *testing.T) {
	require.NoError(t, Release(Region{}))
}

func TestEffectiveSize_RoundsUpToPage(t *testing.T) {
	const page = 4096
	got := effectiveSize(0, 0, page)
	require.Zero(t, got%page)
	require.GreaterOrEqual(t, got, uintptr(DefaultSize))
}

func TestEffectiveSize_RlimitBeatsDefault(t *testing.T) {
	const page = 4096
	got := effectiveSize(0, DefaultSize*4, page)
	require.GreaterOrEqual(t, got, uintptr(DefaultSize*4))
}
