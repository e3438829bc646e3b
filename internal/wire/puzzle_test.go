package wire

import (
	"testing"

	"battleships-api/internal/core"
)

func TestParsePuzzle_RoundTrip(t *testing.T) {
	orig := "s2s1r2r1c1c2y0x0z1y1x0z3"
	clues, err := ParsePuzzle(orig)
	if err != nil {
		t.Fatalf("ParsePuzzle: %v", err)
	}
	if clues.H != 2 || clues.W != 2 {
		t.Fatalf("H,W = %d,%d, want 2,2", clues.H, clues.W)
	}
	if got, want := clues.Ships, []int{2, 1}; !intsEqual(got, want) {
		t.Fatalf("Ships = %v, want %v", got, want)
	}
	if clues.Init.Get(0, 0) != core.N || clues.Init.Get(1, 0) != core.S {
		t.Fatalf("disclosures not applied: %v", clues.Init)
	}

	again, err := ParsePuzzle(EncodePuzzle(clues))
	if err != nil {
		t.Fatalf("ParsePuzzle(EncodePuzzle(...)): %v", err)
	}
	if !intsEqual(again.Rows, clues.Rows) || !intsEqual(again.Cols, clues.Cols) {
		t.Fatalf("round trip rows/cols mismatch: %v/%v vs %v/%v", again.Rows, again.Cols, clues.Rows, clues.Cols)
	}
	for y := 0; y < clues.H; y++ {
		for x := 0; x < clues.W; x++ {
			if again.Init.Get(y, x) != clues.Init.Get(y, x) {
				t.Fatalf("round trip cell (%d,%d) mismatch: %v vs %v", y, x, again.Init.Get(y, x), clues.Init.Get(y, x))
			}
		}
	}
}

func TestParsePuzzle_HiddenSums(t *testing.T) {
	clues, err := ParsePuzzle("s1r-1c-1")
	if err != nil {
		t.Fatalf("ParsePuzzle: %v", err)
	}
	if clues.Rows[0] != core.HiddenSum || clues.Cols[0] != core.HiddenSum {
		t.Fatalf("Rows/Cols = %v/%v, want hidden", clues.Rows, clues.Cols)
	}
}

func TestParsePuzzle_SkipsUnrecognizedCharacters(t *testing.T) {
	clues, err := ParsePuzzle("  s1;r0!c0  ")
	if err != nil {
		t.Fatalf("ParsePuzzle: %v", err)
	}
	if clues.H != 1 || clues.W != 1 {
		t.Fatalf("H,W = %d,%d, want 1,1", clues.H, clues.W)
	}
}

func TestParsePuzzle_RejectsMissingDigits(t *testing.T) {
	if _, err := ParsePuzzle("sr0c0"); err == nil {
		t.Fatalf("expected error for missing digits after 's'")
	}
}

func TestParsePuzzle_RejectsNoShips(t *testing.T) {
	if _, err := ParsePuzzle("r0c0"); err == nil {
		t.Fatalf("expected error for zero ship tokens")
	}
}

func TestParsePuzzle_RejectsOutOfRangeShipLength(t *testing.T) {
	if _, err := ParsePuzzle("s5r0c0"); err == nil {
		t.Fatalf("expected error: ship length 5 exceeds min(H,W)=1")
	}
}

func TestParsePuzzle_RejectsOutOfRangeStateCode(t *testing.T) {
	if _, err := ParsePuzzle("s1r0c0y0x0z9"); err == nil {
		t.Fatalf("expected error for state code 9")
	}
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
