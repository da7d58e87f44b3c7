package lwp

import (
	"testing"

	"github.com/jgonzo24/lwp/lwp/sched"
	"github.com/stretchr/testify/require"
)

// reverseScheduler is a minimal test double serving ready threads in
// reverse admission order, standing in for spec.md S4's "test scheduler
// that serves threads in reverse admission order".
type reverseScheduler struct {
	ready []sched.Schedulable
}

func newReverseScheduler() *reverseScheduler {
	return &reverseScheduler{}
}

var _ sched.Scheduler = (*reverseScheduler)(nil)

func (r *reverseScheduler) Init()     {}
func (r *reverseScheduler) Shutdown() { r.ready = nil }

func (r *reverseScheduler) Admit(t sched.Schedulable) {
	if t == nil || !t.Live() {
		return
	}
	r.ready = append(r.ready, t)
}

func (r *reverseScheduler) Remove(t sched.Schedulable) {
	for i, cur := range r.ready {
		if cur == t {
			r.ready = append(r.ready[:i], r.ready[i+1:]...)
			return
		}
	}
}

func (r *reverseScheduler) Next() sched.Schedulable {
	for len(r.ready) > 0 && !r.ready[len(r.ready)-1].Live() {
		r.ready = r.ready[:len(r.ready)-1]
	}
	if len(r.ready) == 0 {
		return nil
	}
	return r.ready[len(r.ready)-1]
}

func (r *reverseScheduler) Qlen() int {
	return len(r.ready)
}

// exitSentinel is panicked by the test stand-in installed for exitProcess,
// so runExpectingExit can distinguish "the runtime called exitProcess"
// from any other panic.
type exitSentinel struct{}

// runExpectingExit substitutes exitProcess with a stand-in that records
// the requested code and panics instead of calling os.Exit, runs body,
// and returns the recorded code. Fails the test if body returns without
// ever reaching exitProcess.
func runExpectingExit(t *testing.T, body func()) (code int) {
	t.Helper()
	orig := exitProcess
	defer func() { exitProcess = orig }()
	exitProcess = func(c int) {
		code = c
		panic(exitSentinel{})
	}
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected the runtime to exit the process, but it returned normally")
		}
		if _, ok := r.(exitSentinel); !ok {
			panic(r)
		}
	}()
	body()
	return
}

func TestCreate_ReturnsUniqueTIDs(t *testing.T) {
	rt, err := NewRuntime()
	require.NoError(t, err)

	seen := map[TID]bool{}
	for i := 0; i < 10; i++ {
		tid, err := rt.Create(func(any) int { return 0 }, nil, 0)
		require.NoError(t, err)
		require.NotEqual(t, NoThread, tid)
		require.False(t, seen[tid], "tid %d reused", tid)
		seen[tid] = true
	}
}

func TestCreate_SkipsZeroOnWraparound(t *testing.T) {
	rt, err := NewRuntime()
	require.NoError(t, err)
	rt.nextTID = TID(^uint64(0)) // one below wraparound to 0

	tid, err := rt.Create(func(any) int { return 0 }, nil, 0)
	require.NoError(t, err)
	require.NotEqual(t, NoThread, tid)
}

func TestGetTID_BeforeStartIsNoThread(t *testing.T) {
	rt, err := NewRuntime()
	require.NoError(t, err)
	require.Equal(t, NoThread, rt.GetTID())
}

func TestTidToThread_UnknownTIDNotFound(t *testing.T) {
	rt, err := NewRuntime()
	require.NoError(t, err)
	_, ok := rt.TidToThread(TID(999))
	require.False(t, ok)
}

func TestTidToThread_FindsCreatedThread(t *testing.T) {
	rt, err := NewRuntime()
	require.NoError(t, err)
	tid, err := rt.Create(func(any) int { return 0 }, nil, 0)
	require.NoError(t, err)

	th, ok := rt.TidToThread(tid)
	require.True(t, ok)
	require.Equal(t, tid, th.TID())
	require.True(t, th.Live())
}

// TestScenario_FallOffEndVsExplicitExit mirrors spec.md S5: a worker that
// returns a value implicitly exits with it; a worker that calls Exit
// explicitly exits with that code. Both are reaped with their respective
// codes. Start itself returns normally here (the thread it synthesizes
// for the caller stays in the ready set the whole time, so Yield never
// drains to empty mid-Start) — matching the ground-truth pattern in
// original_source/prestons_lwp/p2/numbersmain.c, where start() returns
// and main reaps afterward.
func TestScenario_FallOffEndVsExplicitExit(t *testing.T) {
	rt, err := NewRuntime()
	require.NoError(t, err)

	tidX, err := rt.Create(func(any) int { return 7 }, nil, 0)
	require.NoError(t, err)
	tidY, err := rt.Create(func(any) int {
		rt.Exit(9)
		return -1 // unreached
	}, nil, 0)
	require.NoError(t, err)

	rt.Start()

	gotTID1, status1 := rt.Wait()
	gotTID2, status2 := rt.Wait()

	results := map[TID]int{gotTID1: status1.ExitCode(), gotTID2: status2.ExitCode()}
	require.Equal(t, map[TID]int{tidX: 7, tidY: 9}, results)
}

// TestScenario_Reaper mirrors spec.md S2: three workers exit with codes
// 41-43; a fourth reaper loop drains Wait until nothing is left. Start
// returns normally (the caller's own synthesized thread is still ready
// the whole time), matching numbersmain.c's start()-returns-then-reap
// pattern; the drain only reaches process exit on the *fourth* Wait,
// once all three zombies are gone and the caller itself is the only
// thread left to block.
func TestScenario_Reaper(t *testing.T) {
	rt, err := NewRuntime()
	require.NoError(t, err)

	var tids []TID
	for i := 1; i <= 3; i++ {
		code := 40 + i
		tid, err := rt.Create(func(any) int { return code }, nil, 0)
		require.NoError(t, err)
		tids = append(tids, tid)
	}

	rt.Start()

	var reaped []int
	for i := 0; i < 3; i++ {
		_, status := rt.Wait()
		reaped = append(reaped, status.ExitCode())
	}
	require.ElementsMatch(t, []int{41, 42, 43}, reaped)

	code := runExpectingExit(t, func() { rt.Wait() })
	require.Equal(t, 0, code, "the caller's own thread never changed its status, so the drained exit code is its default 0")
}

// TestScenario_TIDNotReusedAfterReap mirrors spec.md S6: after reaping
// three threads, a fourth Create must not reissue any of their tids.
// Start returns normally (the caller's own thread is still ready the
// whole time); the reap loop stops exactly at the three zombies created,
// so the ready set never drains to empty and no process exit occurs.
func TestScenario_TIDNotReusedAfterReap(t *testing.T) {
	rt, err := NewRuntime()
	require.NoError(t, err)

	used := map[TID]bool{}
	for i := 0; i < 3; i++ {
		tid, err := rt.Create(func(any) int { return 0 }, nil, 0)
		require.NoError(t, err)
		used[tid] = true
	}

	rt.Start()

	for i := 0; i < 3; i++ {
		tid, _ := rt.Wait()
		require.True(t, used[tid])
	}

	next, err := rt.Create(func(any) int { return 0 }, nil, 0)
	require.NoError(t, err)
	require.False(t, used[next], "tid %d was reused", next)
}

func TestSetScheduler_MigratesReadySetAndIsNoOpForSameScheduler(t *testing.T) {
	rt, err := NewRuntime()
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, err := rt.Create(func(any) int { return 0 }, nil, 0)
		require.NoError(t, err)
	}

	before := rt.GetScheduler()
	rt.SetScheduler(before)
	require.Same(t, before, rt.GetScheduler())

	readyBefore := before.Qlen()

	custom := newReverseScheduler()
	rt.SetScheduler(custom)
	require.Equal(t, readyBefore, custom.Qlen())
	require.Equal(t, readyBefore, rt.GetScheduler().Qlen())
}

// TestWait_DeadlockDrainsToProcessExit shows that the "woken with no
// payload" path Wait's doc comment calls a never-reached fallback really
// is unreachable in practice: once the sole worker blocks in its own
// Wait, the caller's own thread is the last one ready, so the caller
// blocking too (here, by calling Wait itself) drains the ready set to
// empty and the runtime exits the process instead of anything ever
// returning NoThread.
func TestWait_DeadlockDrainsToProcessExit(t *testing.T) {
	rt, err := NewRuntime()
	require.NoError(t, err)

	_, err = rt.Create(func(any) int {
		rt.Wait() // blocks: no zombie, nothing will ever exit to pair with it
		return 0
	}, nil, 0)
	require.NoError(t, err)

	rt.Start()

	code := runExpectingExit(t, func() { rt.Wait() })
	require.Equal(t, 0, code)
}
