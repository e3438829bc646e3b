package logical

import "battleships-api/internal/core"

// ruleRunLength is R3 of spec.md §4.C: compute the length L of the longest
// unfinished ship; for any run of k >= L consecutive known-occupied cells in
// a row or column, the cells immediately beyond either end are capped
// Vacant, since extending the run further would exceed L.
//
// When L = 1 the cap is skipped for a run that is also stretched along the
// perpendicular axis, to avoid falsely capping a ship that is still growing
// in that other direction (spec.md §9's documented open question: this
// short-circuit is preserved as specified).
func ruleRunLength(clues *core.Clues, b *core.Board) bool {
	L, _, ok := computeUnfinished(clues, b).longest()
	if !ok {
		return false
	}
	changed := false
	if capRunsHorizontal(b, L) {
		changed = true
	}
	if capRunsVertical(b, L) {
		changed = true
	}
	return changed
}

func capRunsHorizontal(b *core.Board, L int) bool {
	changed := false
	for y := 0; y < b.H; y++ {
		x := 0
		for x < b.W {
			if !b.Get(y, x).IsKnownOccupied() {
				x++
				continue
			}
			start := x
			for x < b.W && b.Get(y, x).IsKnownOccupied() {
				x++
			}
			end := x - 1
			runLen := end - start + 1
			if runLen < L {
				continue
			}
			if L == 1 && runLen == 1 && stretchedVertically(b, y, start) {
				continue
			}
			if b.Write(y, start-1, core.Vacant) {
				changed = true
			}
			if b.Write(y, end+1, core.Vacant) {
				changed = true
			}
		}
	}
	return changed
}

func capRunsVertical(b *core.Board, L int) bool {
	changed := false
	for x := 0; x < b.W; x++ {
		y := 0
		for y < b.H {
			if !b.Get(y, x).IsKnownOccupied() {
				y++
				continue
			}
			start := y
			for y < b.H && b.Get(y, x).IsKnownOccupied() {
				y++
			}
			end := y - 1
			runLen := end - start + 1
			if runLen < L {
				continue
			}
			if L == 1 && runLen == 1 && stretchedHorizontally(b, start, x) {
				continue
			}
			if b.Write(start-1, x, core.Vacant) {
				changed = true
			}
			if b.Write(end+1, x, core.Vacant) {
				changed = true
			}
		}
	}
	return changed
}

func stretchedVertically(b *core.Board, y, x int) bool {
	return b.Get(y-1, x).IsKnownOccupied() || b.Get(y+1, x).IsKnownOccupied()
}

func stretchedHorizontally(b *core.Board, y, x int) bool {
	return b.Get(y, x-1).IsKnownOccupied() || b.Get(y, x+1).IsKnownOccupied()
}
