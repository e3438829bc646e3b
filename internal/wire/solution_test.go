package wire

import (
	"testing"

	"battleships-api/internal/core"
)

func TestEncodeSolution_TypesEndsAndInner(t *testing.T) {
	sol := core.Solution{
		{Orientation: core.Horizontal, Y: 0, X: 0, Length: 3},
		{Orientation: core.Vertical, Y: 1, X: 2, Length: 1},
	}
	s := EncodeSolution(sol)
	if s[0] != 'S' {
		t.Fatalf("encoded solution must start with 'S': %q", s)
	}

	mv, err := ParseMove(s)
	if err != nil {
		t.Fatalf("ParseMove(EncodeSolution(...)): %v", err)
	}
	if mv.Kind != MoveSolver {
		t.Fatalf("Kind = %v, want MoveSolver", mv.Kind)
	}

	want := map[[2]int]int{
		{0, 0}: cellStateToCode(core.W),
		{0, 1}: cellStateToCode(core.Inner),
		{0, 2}: cellStateToCode(core.E),
		{1, 2}: cellStateToCode(core.One),
	}
	if len(mv.Cells) != len(want) {
		t.Fatalf("got %d cells, want %d", len(mv.Cells), len(want))
	}
	for _, c := range mv.Cells {
		wantZ, ok := want[[2]int{c.y, c.x}]
		if !ok {
			t.Fatalf("unexpected cell (%d,%d)", c.y, c.x)
		}
		if c.z != wantZ {
			t.Errorf("cell (%d,%d) z = %d, want %d", c.y, c.x, c.z, wantZ)
		}
	}
}
