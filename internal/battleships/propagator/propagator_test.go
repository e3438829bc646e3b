package propagator

import (
	"testing"

	"battleships-api/internal/core"
)

// S2 from spec.md §8.
func TestPropagate_ShipEndNorth(t *testing.T) {
	b := core.NewBoard(5, 6)
	b.Set(2, 3, core.N)

	Propagate(b)

	vacant := [][2]int{{1, 2}, {1, 3}, {1, 4}, {2, 2}, {2, 4}, {3, 2}, {3, 4}}
	for _, c := range vacant {
		if got := b.Get(c[0], c[1]); got != core.Vacant {
			t.Errorf("(%d,%d) = %v, want Vacant", c[0], c[1], got)
		}
	}
	if got := b.Get(3, 3); got != core.Occ {
		t.Errorf("(3,3) = %v, want Occ", got)
	}
	if got := b.Get(2, 3); got != core.N {
		t.Errorf("(2,3) = %v, want unchanged N", got)
	}

	// The Occ pass vacates the diagonals of the newly promoted (3,3); its
	// upper diagonals are already in the list above.
	occDiag := [][2]int{{4, 2}, {4, 4}}
	for _, c := range occDiag {
		if got := b.Get(c[0], c[1]); got != core.Vacant {
			t.Errorf("(%d,%d) = %v, want Vacant", c[0], c[1], got)
		}
	}

	// Everything else should remain Undef.
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			if (y == 2 && x == 3) || (y == 3 && x == 3) || contains(vacant, y, x) || contains(occDiag, y, x) {
				continue
			}
			if got := b.Get(y, x); got != core.Undef {
				t.Errorf("(%d,%d) = %v, want Undef", y, x, got)
			}
		}
	}
}

func contains(cs [][2]int, y, x int) bool {
	for _, c := range cs {
		if c[0] == y && c[1] == x {
			return true
		}
	}
	return false
}

func TestPropagate_ShipEndDirections(t *testing.T) {
	cases := []struct {
		state           core.CellState
		occY, occX      int // the "at least Occ" neighbour
	}{
		{core.S, 2, 3}, // arrow points down, ship extends up
		{core.E, 3, 2}, // arrow points right, ship extends left
		{core.W, 3, 4}, // arrow points left, ship extends right
	}
	for _, c := range cases {
		b := core.NewBoard(6, 7)
		b.Set(3, 3, c.state)
		Propagate(b)
		if got := b.Get(c.occY, c.occX); got != core.Occ {
			t.Errorf("state %v: (%d,%d) = %v, want Occ", c.state, c.occY, c.occX, got)
		}
	}
}

func TestPropagate_Singleton(t *testing.T) {
	b := core.NewBoard(5, 5)
	b.Set(2, 2, core.One)
	Propagate(b)
	for _, d := range [][2]int{{1, 1}, {1, 2}, {1, 3}, {2, 1}, {2, 3}, {3, 1}, {3, 2}, {3, 3}} {
		if got := b.Get(d[0], d[1]); got != core.Vacant {
			t.Errorf("(%d,%d) = %v, want Vacant", d[0], d[1], got)
		}
	}
}

func TestPropagate_InnerHorizontalAxis(t *testing.T) {
	b := core.NewBoard(5, 6)
	b.Set(2, 3, core.Inner)
	b.Set(2, 2, core.Occ) // west neighbour known-occupied; east unknown

	Propagate(b)

	// Diagonals vacant.
	for _, d := range [][2]int{{1, 2}, {1, 4}, {3, 2}, {3, 4}} {
		if got := b.Get(d[0], d[1]); got != core.Vacant {
			t.Errorf("diag (%d,%d) = %v, want Vacant", d[0], d[1], got)
		}
	}
	// Perpendicular (vertical) axis vacant.
	if got := b.Get(1, 3); got != core.Vacant {
		t.Errorf("(1,3) = %v, want Vacant", got)
	}
	if got := b.Get(3, 3); got != core.Vacant {
		t.Errorf("(3,3) = %v, want Vacant", got)
	}
	// East neighbour promoted to at least Occ.
	if got := b.Get(2, 4); got != core.Occ {
		t.Errorf("(2,4) = %v, want Occ", got)
	}
}

func TestPropagate_OccDiagonalSecondPass(t *testing.T) {
	b := core.NewBoard(4, 4)
	b.Set(1, 1, core.Occ)
	Propagate(b)
	for _, d := range [][2]int{{0, 0}, {0, 2}, {2, 0}, {2, 2}} {
		if got := b.Get(d[0], d[1]); got != core.Vacant {
			t.Errorf("(%d,%d) = %v, want Vacant", d[0], d[1], got)
		}
	}
}

func TestPropagate_Idempotent(t *testing.T) {
	b := core.NewBoard(8, 9)
	b.Set(3, 4, core.N)
	b.Set(5, 2, core.Inner)
	b.Set(5, 3, core.W)
	b.Set(1, 1, core.One)

	Propagate(b)
	snapshot := b.Clone()
	Propagate(b)

	for i := range b.Cells {
		if b.Cells[i] != snapshot.Cells[i] {
			t.Fatalf("propagate not idempotent at cell %d: %v vs %v", i, b.Cells[i], snapshot.Cells[i])
		}
	}
}
