package exhaustive

import (
	"testing"

	"battleships-api/internal/core"
)

// S1 from spec.md §8: a fully-disclosed 7x7 instance (every ship cell typed,
// everything else Vacant) has exactly one consistent placement, 20 total
// ship cells, and no diagonal adjacency between ships.
func TestSolve_FullyDisclosedUniqueSolution(t *testing.T) {
	rows := []string{
		"<xx>..^",
		"......x",
		"<x>.^.x",
		"....x.v",
		"<>..v..",
		"......^",
		"..<>..v",
	}
	b, err := core.ParseBoardLiteral(rows)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	clues := core.NewClues(7, 7,
		[]int{4, 4, 3, 3, 2, 2, 2},
		[]int{5, 1, 5, 2, 3, 1, 3},
		[]int{3, 3, 3, 2, 3, 0, 6},
		b,
	)

	sol, calls, err := Solve(clues, 0)
	if err != nil {
		t.Fatalf("Solve: %v (calls=%d)", err, calls)
	}

	total := 0
	occupied := map[[2]int]bool{}
	for _, p := range sol {
		for _, c := range p.Cells() {
			total++
			occupied[[2]int{c[0], c[1]}] = true
		}
	}
	if total != 20 {
		t.Errorf("total ship cells = %d, want 20", total)
	}
	for c := range occupied {
		for dy := -1; dy <= 1; dy += 2 {
			for dx := -1; dx <= 1; dx += 2 {
				if occupied[[2]int{c[0] + dy, c[1] + dx}] {
					t.Errorf("diagonal adjacency at (%d,%d)-(%d,%d)", c[0], c[1], c[0]+dy, c[1]+dx)
				}
			}
		}
	}
}

// S4 from spec.md §8.
func TestSolve_NonUnique(t *testing.T) {
	clues := core.NewClues(3, 3, []int{1, 1}, []int{1, 0, 1}, []int{1, 0, 1}, nil)

	_, _, err := Solve(clues, 0)
	if err != ErrNonUnique {
		t.Fatalf("Solve err = %v, want ErrNonUnique", err)
	}
}

func TestSolve_NoSolution(t *testing.T) {
	// A single length-3 ship necessarily concentrates 3 cells on one row or
	// one column, which cannot satisfy uniform row/column totals of 1.
	clues := core.NewClues(3, 3, []int{3}, []int{1, 1, 1}, []int{1, 1, 1}, nil)

	_, _, err := Solve(clues, 0)
	if err != ErrNoSolution {
		t.Fatalf("Solve err = %v, want ErrNoSolution", err)
	}
}

func TestSolve_LimitExceeded(t *testing.T) {
	clues := core.NewClues(7, 7,
		[]int{4, 4, 3, 3, 2, 2, 2},
		[]int{5, 1, 5, 2, 3, 1, 3},
		[]int{3, 3, 3, 2, 3, 0, 6},
		nil,
	)

	_, calls, err := Solve(clues, 1)
	if err != ErrLimitExceeded {
		t.Fatalf("Solve err = %v, want ErrLimitExceeded", err)
	}
	if calls < 1 {
		t.Errorf("calls = %d, want >= 1", calls)
	}
}
