package validator

import (
	"testing"

	"battleships-api/internal/core"
)

// TestValidate_GroundTruthSolutionIsSolved mirrors S1's board shape (spec.md
// §8): a fully disclosed, correctly typed 7x7 solution should validate with
// every flag clear and Solved true.
func TestValidate_GroundTruthSolutionIsSolved(t *testing.T) {
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
		t.Fatalf("ParseBoardLiteral: %v", err)
	}

	clues := core.NewClues(7, 7,
		[]int{4, 4, 3, 3, 2, 2, 2},
		[]int{5, 1, 5, 2, 3, 1, 3},
		[]int{3, 3, 3, 2, 3, 0, 6},
		b,
	)

	res := Validate(clues, b)
	if !res.Solved {
		t.Fatalf("Solved = false, want true")
	}
	for i, e := range res.CellErr {
		if e {
			t.Errorf("CellErr[%d] = true, want false", i)
		}
	}
	for i, e := range res.DiagErr {
		if e {
			t.Errorf("DiagErr[%d] = true, want false", i)
		}
	}
	for y, e := range res.RowErr {
		if e {
			t.Errorf("RowErr[%d] = true, want false", y)
		}
	}
	for x, e := range res.ColErr {
		if e {
			t.Errorf("ColErr[%d] = true, want false", x)
		}
	}
	if res.ShipsErr {
		t.Errorf("ShipsErr = true, want false")
	}
}

func TestValidate_DiagonalAdjacencyFlagged(t *testing.T) {
	rows := []string{
		"o..",
		".o.",
		"...",
	}
	b, err := core.ParseBoardLiteral(rows)
	if err != nil {
		t.Fatalf("ParseBoardLiteral: %v", err)
	}
	clues := core.NewClues(3, 3, []int{1, 1}, []int{1, 1, 0}, []int{1, 1, 0}, b)

	res := Validate(clues, b)
	if !res.DiagErr[0*3+0] || !res.DiagErr[1*3+1] {
		t.Fatalf("expected diagonal-adjacency flags on (0,0) and (1,1), got %v", res.DiagErr)
	}
	if res.Solved {
		t.Errorf("Solved = true, want false")
	}
}

func TestValidate_RowTotalExceeded(t *testing.T) {
	rows := []string{
		"##.",
	}
	b, err := core.ParseBoardLiteral(rows)
	if err != nil {
		t.Fatalf("ParseBoardLiteral: %v", err)
	}
	clues := core.NewClues(1, 3, []int{2}, []int{1}, []int{1, 1, 0}, b)

	res := Validate(clues, b)
	if !res.RowErr[0] {
		t.Errorf("RowErr[0] = false, want true (2 occupied cells against a row total of 1)")
	}
}

func TestValidate_ShipsErrOnExcessDistribution(t *testing.T) {
	rows := []string{
		"o.o",
		"...",
		"o..",
	}
	b, err := core.ParseBoardLiteral(rows)
	if err != nil {
		t.Fatalf("ParseBoardLiteral: %v", err)
	}
	// Required multiset has exactly one length-1 ship; the board has three.
	clues := core.NewClues(3, 3, []int{1}, []int{-1, -1, -1}, []int{-1, -1, -1}, b)

	res := Validate(clues, b)
	if !res.ShipsErr {
		t.Errorf("ShipsErr = false, want true")
	}
	if res.Solved {
		t.Errorf("Solved = true, want false")
	}
}

func TestValidate_ShipEndContradictionFlagsCell(t *testing.T) {
	// An N (arrow pointing up, ship extends south) with its south neighbour
	// explicitly Vacant is a direct contradiction.
	b := core.NewBoard(4, 4)
	b.Set(1, 1, core.N)
	b.Set(2, 1, core.Vacant)

	clues := core.NewClues(4, 4, []int{2}, []int{-1, -1, -1, -1}, []int{-1, -1, -1, -1}, b)
	res := Validate(clues, b)
	if !res.CellErr[1*4+1] {
		t.Errorf("CellErr at (1,1) = false, want true")
	}
}

func TestValidate_IncompleteBoardNotSolved(t *testing.T) {
	b := core.NewBoard(3, 3)
	clues := core.NewClues(3, 3, []int{1, 1}, []int{1, 0, 1}, []int{1, 0, 1}, b)
	res := Validate(clues, b)
	if res.Solved {
		t.Errorf("Solved = true, want false on an empty board")
	}
	for i, e := range res.CellErr {
		if e {
			t.Errorf("CellErr[%d] = true, want false on an all-Undef board", i)
		}
	}
}
