package logical

import "battleships-api/internal/core"

// ruleGapTooSmall is the advanced rule R4 of spec.md §4.C: compute the
// shortest unfinished ship length m. For every Undef cell, compute the
// longest contiguous run of non-Vacant cells through it, in each of the
// horizontal and vertical directions; if the larger of the two is smaller
// than m, no ship of any remaining length can occupy this cell, so it is
// marked Vacant.
func ruleGapTooSmall(clues *core.Clues, b *core.Board) bool {
	m, ok := computeUnfinished(clues, b).shortest()
	if !ok {
		return false
	}
	changed := false
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			if b.Get(y, x) != core.Undef {
				continue
			}
			h := nonVacantRunThrough(b, y, x, 0, 1)
			v := nonVacantRunThrough(b, y, x, 1, 0)
			max := h
			if v > max {
				max = v
			}
			if max < m {
				if b.Write(y, x, core.Vacant) {
					changed = true
				}
			}
		}
	}
	return changed
}

// nonVacantRunThrough returns the length of the maximal run of non-Vacant
// cells through (y, x) along direction (dy, dx), counting (y, x) itself.
func nonVacantRunThrough(b *core.Board, y, x, dy, dx int) int {
	length := 1
	for cy, cx := y-dy, x-dx; b.Get(cy, cx) != core.Vacant; cy, cx = cy-dy, cx-dx {
		length++
	}
	for cy, cx := y+dy, x+dx; b.Get(cy, cx) != core.Vacant; cy, cx = cy+dy, cx+dx {
		length++
	}
	return length
}
