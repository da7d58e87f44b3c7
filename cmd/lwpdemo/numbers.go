package main

import "fmt"

// cmdNumbers adapts prestons_lwp/p2/numbersmain.c: five workers each print
// an indented running count, yielding between each line, then exit with
// their own iteration count; main reaps all five afterward.
func cmdNumbers() error {
	rt, err := newDemoRuntime()
	if err != nil {
		return err
	}

	fmt.Println("Launching LWPs")

	for i := 1; i <= 5; i++ {
		howFar := i
		if _, err := rt.Create(func(any) int {
			n := 0
			for n = 0; n < howFar; n++ {
				fmt.Printf("%*d\n", howFar*5, howFar)
				rt.Yield()
			}
			return n
		}, nil, 0); err != nil {
			return err
		}
	}

	rt.Start()

	for i := 0; i < 5; i++ {
		tid, status := rt.Wait()
		fmt.Printf("Thread %d exited with status %d\n", tid, status.ExitCode())
	}

	fmt.Println("Back from LWPs.")
	return nil
}
