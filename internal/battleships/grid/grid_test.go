package grid

import (
	"testing"

	"battleships-api/internal/core"
)

// S5 from spec.md §8.
func TestComplShipsDistr_VerticalFour(t *testing.T) {
	rows := []string{
		".....",
		".^...",
		".x...",
		".x...",
		".v...",
	}
	b, err := core.ParseBoardLiteral(rows)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	distr, gotErr := ComplShipsDistr(b, 4)
	if gotErr {
		t.Fatalf("unexpected err=true")
	}
	want := []int{0, 0, 0, 1}
	for i := range want {
		if distr[i] != want[i] {
			t.Errorf("distr[%d] = %d, want %d", i, distr[i], want[i])
		}
	}
}

func TestComplShipsDistr_UnterminatedRun(t *testing.T) {
	rows := []string{
		".....",
		".^...",
		".x...",
		".x...",
		".x...", // replaces the terminal 'v' with another Inner
	}
	b, err := core.ParseBoardLiteral(rows)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	_, gotErr := ComplShipsDistr(b, 4)
	if !gotErr {
		t.Fatalf("expected err=true for unterminated run")
	}
}

func TestComplShipsDistr_HorizontalAndSingleton(t *testing.T) {
	rows := []string{
		"<x>..",
		".....",
		"..o..",
		".....",
		".....",
	}
	b, err := core.ParseBoardLiteral(rows)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	distr, gotErr := ComplShipsDistr(b, 4)
	if gotErr {
		t.Fatalf("unexpected err=true")
	}
	if distr[2] != 1 { // length 3
		t.Errorf("expected one length-3 ship, got distr=%v", distr)
	}
	if distr[0] != 1 { // length 1
		t.Errorf("expected one length-1 ship, got distr=%v", distr)
	}
}

func TestView_ArrowStateCycle(t *testing.T) {
	want := []core.CellState{core.N, core.E, core.S, core.W}
	for rot, w := range want {
		if got := ArrowState(rot); got != w {
			t.Errorf("ArrowState(%d) = %v, want %v", rot, got, w)
		}
	}
}

func TestView_RoundTripsCoordinates(t *testing.T) {
	b := core.NewBoard(4, 6)
	for rot := 0; rot < 4; rot++ {
		v := NewView(b, rot)
		h, w := v.Height(), v.Width()
		seen := make(map[[2]int]bool)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				by, bx := v.toBoard(y, x)
				if !b.InBounds(by, bx) {
					t.Fatalf("rot=%d view(%d,%d) -> out of bounds board(%d,%d)", rot, y, x, by, bx)
				}
				if seen[[2]int{by, bx}] {
					t.Fatalf("rot=%d view(%d,%d) maps to already-seen board(%d,%d)", rot, y, x, by, bx)
				}
				seen[[2]int{by, bx}] = true
			}
		}
		if len(seen) != b.H*b.W {
			t.Fatalf("rot=%d mapped %d distinct board cells, want %d", rot, len(seen), b.H*b.W)
		}
	}
}
