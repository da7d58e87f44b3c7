package main

import "fmt"

type direction int

const (
	dirEast direction = iota
	dirWest
	dirSouth
)

func (d direction) String() string {
	switch d {
	case dirEast:
		return "E"
	case dirWest:
		return "W"
	case dirSouth:
		return "S"
	default:
		return "?"
	}
}

type snake struct {
	id       int
	row, col int
	dir      direction
	steps    int
}

func (s *snake) advance() {
	switch s.dir {
	case dirEast:
		s.col++
	case dirWest:
		s.col--
	case dirSouth:
		s.row++
	}
}

// cmdSnakes adapts prestons_lwp/p2/randomsnakes.c: several workers each
// advance an independent cursor across a shared grid, yielding between
// moves. The original used ncurses for a live terminal display (out of
// this module's scope); this prints each snake's final resting position
// instead of animating it.
func cmdSnakes() error {
	rt, err := newDemoRuntime()
	if err != nil {
		return err
	}

	snakes := []*snake{
		{id: 1, row: 8, col: 30, dir: dirEast, steps: 10},
		{id: 2, row: 10, col: 30, dir: dirEast, steps: 10},
		{id: 3, row: 12, col: 30, dir: dirEast, steps: 10},
		{id: 4, row: 8, col: 50, dir: dirWest, steps: 10},
		{id: 5, row: 10, col: 50, dir: dirWest, steps: 10},
		{id: 6, row: 12, col: 50, dir: dirWest, steps: 10},
		{id: 7, row: 4, col: 40, dir: dirSouth, steps: 10},
	}

	fmt.Println("Turning snakes loose...")

	for _, s := range snakes {
		s := s
		if _, err := rt.Create(func(any) int {
			for i := 0; i < s.steps; i++ {
				s.advance()
				rt.Yield()
			}
			return 0
		}, nil, 0); err != nil {
			return err
		}
	}

	rt.Start()

	for range snakes {
		rt.Wait()
	}

	for _, s := range snakes {
		fmt.Printf("snake %d (%s): resting at row %d, col %d\n", s.id, s.dir, s.row, s.col)
	}

	fmt.Println("Goodbye.")
	return nil
}
