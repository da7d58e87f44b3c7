package main

import (
	"bytes"
	"fmt"

	"github.com/jgonzo24/lwp/lwp/sched"
)

// cmdScenario1 is spec.md S1: two workers print their arg three times
// with a yield between prints. Under round robin the expected output is
// interleaved A,B,A,B,A,B.
func cmdScenario1() error {
	rt, err := newDemoRuntime()
	if err != nil {
		return err
	}

	worker := func(arg any) int {
		n := arg.(int)
		for i := 0; i < 3; i++ {
			fmt.Println(n)
			rt.Yield()
		}
		return n
	}

	tidA, err := rt.Create(worker, 1, 0)
	if err != nil {
		return err
	}
	tidB, err := rt.Create(worker, 2, 0)
	if err != nil {
		return err
	}

	rt.Start()

	for i := 0; i < 2; i++ {
		tid, status := rt.Wait()
		switch tid {
		case tidA:
			fmt.Printf("A (tid %d) exited %d\n", tid, status.ExitCode())
		case tidB:
			fmt.Printf("B (tid %d) exited %d\n", tid, status.ExitCode())
		}
	}
	return nil
}

// cmdScenario2 is spec.md S2: three workers exit(40+i); the caller reaps
// in a loop that stops on NoThread. After the third reap, Wait finds no
// zombie and no other ready thread, so Yield ends the process with exit
// code 0 and the closing count line is not printed.
func cmdScenario2() error {
	rt, err := newDemoRuntime()
	if err != nil {
		return err
	}

	for i := 1; i <= 3; i++ {
		code := 40 + i
		if _, err := rt.Create(func(any) int { return code }, nil, 0); err != nil {
			return err
		}
	}

	rt.Start()

	count := 0
	for {
		tid, status := rt.Wait()
		if tid == 0 {
			break
		}
		count++
		fmt.Printf("reaped tid %d status %d\n", tid, status.ExitCode())
	}
	fmt.Printf("reaper observed %d exits\n", count)
	return nil
}

// cmdScenario3 is spec.md S3: five workers each write a known 4 KiB
// pattern to a local buffer, yield, then read it back — verifying that
// each worker's stack is isolated from the others.
func cmdScenario3() error {
	rt, err := newDemoRuntime()
	if err != nil {
		return err
	}

	for i := 0; i < 5; i++ {
		pattern := byte(i + 1)
		if _, err := rt.Create(func(any) int {
			var buf [4096]byte
			for i := range buf {
				buf[i] = pattern
			}
			rt.Yield()
			want := bytes.Repeat([]byte{pattern}, len(buf))
			if !bytes.Equal(buf[:], want) {
				return 1
			}
			return 0
		}, nil, 0); err != nil {
			return err
		}
	}

	rt.Start()

	for i := 0; i < 5; i++ {
		tid, status := rt.Wait()
		fmt.Printf("worker tid %d: status %d\n", tid, status.ExitCode())
	}
	return nil
}

// cmdScenario4 is spec.md S4: four workers that yield 10 times each; a
// scheduler swap to a reverse-admission-order scheduler happens after the
// workers are created and before Start.
func cmdScenario4() error {
	rt, err := newDemoRuntime()
	if err != nil {
		return err
	}

	for i := 0; i < 4; i++ {
		n := i + 1
		if _, err := rt.Create(func(any) int {
			for j := 0; j < 10; j++ {
				rt.Yield()
			}
			return n
		}, nil, 0); err != nil {
			return err
		}
	}

	// Swap immediately before starting: every thread created above is
	// still ready, so the migration captures all four.
	rt.SetScheduler(newReverseDemoScheduler())

	rt.Start()

	for i := 0; i < 4; i++ {
		tid, status := rt.Wait()
		fmt.Printf("worker tid %d: status %d\n", tid, status.ExitCode())
	}
	return nil
}

// cmdScenario5 is spec.md S5: worker X returns 7 (implicit exit), worker
// Y calls Exit(9) explicitly. Both are reaped with their respective
// codes.
func cmdScenario5() error {
	rt, err := newDemoRuntime()
	if err != nil {
		return err
	}

	tidX, err := rt.Create(func(any) int { return 7 }, nil, 0)
	if err != nil {
		return err
	}
	tidY, err := rt.Create(func(any) int {
		rt.Exit(9)
		return -1
	}, nil, 0)
	if err != nil {
		return err
	}

	rt.Start()

	for i := 0; i < 2; i++ {
		tid, status := rt.Wait()
		switch tid {
		case tidX:
			fmt.Printf("X (tid %d) exited %d\n", tid, status.ExitCode())
		case tidY:
			fmt.Printf("Y (tid %d) exited %d\n", tid, status.ExitCode())
		}
	}
	return nil
}

// cmdScenario6 is spec.md S6: three threads are created and reaped, then
// a fourth is created — its tid must not be any of the first three.
func cmdScenario6() error {
	rt, err := newDemoRuntime()
	if err != nil {
		return err
	}

	used := map[int]bool{}
	for i := 0; i < 3; i++ {
		tid, err := rt.Create(func(any) int { return 0 }, nil, 0)
		if err != nil {
			return err
		}
		used[int(tid)] = true
	}

	rt.Start()

	for i := 0; i < 3; i++ {
		rt.Wait()
	}

	next, err := rt.Create(func(any) int { return 0 }, nil, 0)
	if err != nil {
		return err
	}
	fmt.Printf("new tid %d reused an earlier tid: %v\n", next, used[int(next)])
	return nil
}

// reverseDemoScheduler is the CLI-side counterpart to lwp's internal test
// double of the same shape: it serves ready threads in reverse admission
// order, standing in for spec.md S4's "test scheduler".
type reverseDemoScheduler struct {
	ready []sched.Schedulable
}

func newReverseDemoScheduler() *reverseDemoScheduler {
	return &reverseDemoScheduler{}
}

var _ sched.Scheduler = (*reverseDemoScheduler)(nil)

func (r *reverseDemoScheduler) Init()     {}
func (r *reverseDemoScheduler) Shutdown() { r.ready = nil }

func (r *reverseDemoScheduler) Admit(t sched.Schedulable) {
	if t == nil || !t.Live() {
		return
	}
	r.ready = append(r.ready, t)
}

func (r *reverseDemoScheduler) Remove(t sched.Schedulable) {
	for i, cur := range r.ready {
		if cur == t {
			r.ready = append(r.ready[:i], r.ready[i+1:]...)
			return
		}
	}
}

func (r *reverseDemoScheduler) Next() sched.Schedulable {
	for len(r.ready) > 0 && !r.ready[len(r.ready)-1].Live() {
		r.ready = r.ready[:len(r.ready)-1]
	}
	if len(r.ready) == 0 {
		return nil
	}
	return r.ready[len(r.ready)-1]
}

func (r *reverseDemoScheduler) Qlen() int {
	return len(r.ready)
}
