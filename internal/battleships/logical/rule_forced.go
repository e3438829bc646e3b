package logical

import "battleships-api/internal/core"

type gap struct {
	row         bool // true: fixed=row index, varies over x; false: fixed=col index, varies over y
	fixed       int
	start, len_ int
}

// ruleForcedPlacement is the advanced rule R5 of spec.md §4.C: compute L
// (longest unfinished length) and N_L (how many unfinished ships share it).
// Enumerate every "gap" — a maximal run of non-Vacant cells in a row or
// column whose declared (or hidden) total can hold an L-ship — and count,
// per gap, the upper bound on how many L-ships fit:
// floor((|G|+1)/(L+1)). If the sum across every gap equals N_L, every
// placement of those ships is forced to agree on the nonogram-style overlap
// cells, which are marked Occ.
//
// Skipped when L = 1, per spec.md §4.C.
func ruleForcedPlacement(clues *core.Clues, b *core.Board) bool {
	u := computeUnfinished(clues, b)
	L, NL, ok := u.longest()
	if !ok || L == 1 {
		return false
	}

	var gaps []gap
	for y := 0; y < clues.H; y++ {
		if clues.Rows[y] != core.HiddenSum && clues.Rows[y] < L {
			continue
		}
		for _, r := range nonVacantRunsRow(b, y) {
			gaps = append(gaps, gap{row: true, fixed: y, start: r[0], len_: r[1]})
		}
	}
	for x := 0; x < clues.W; x++ {
		if clues.Cols[x] != core.HiddenSum && clues.Cols[x] < L {
			continue
		}
		for _, r := range nonVacantRunsCol(b, x) {
			gaps = append(gaps, gap{row: false, fixed: x, start: r[0], len_: r[1]})
		}
	}

	counts := make([]int, len(gaps))
	sum := 0
	for i, g := range gaps {
		c := (g.len_ + 1) / (L + 1)
		counts[i] = c
		sum += c
	}
	if sum != NL {
		return false
	}

	changed := false
	for i, g := range gaps {
		c := counts[i]
		if c == 0 {
			continue
		}
		k := (g.len_ + 1) % (L + 1)
		for slot := 0; slot < c; slot++ {
			slotStart := g.start + slot*(L+1)
			for offset := k; offset <= L-1; offset++ {
				pos := slotStart + offset
				var ok bool
				if g.row {
					ok = b.Write(g.fixed, pos, core.Occ)
				} else {
					ok = b.Write(pos, g.fixed, core.Occ)
				}
				if ok {
					changed = true
				}
			}
		}
	}
	return changed
}

// nonVacantRunsRow returns [start, length] pairs for every maximal run of
// non-Vacant cells in row y.
func nonVacantRunsRow(b *core.Board, y int) [][2]int {
	var out [][2]int
	x := 0
	for x < b.W {
		if b.Get(y, x) == core.Vacant {
			x++
			continue
		}
		start := x
		for x < b.W && b.Get(y, x) != core.Vacant {
			x++
		}
		out = append(out, [2]int{start, x - start})
	}
	return out
}

// nonVacantRunsCol is the column analogue of nonVacantRunsRow.
func nonVacantRunsCol(b *core.Board, x int) [][2]int {
	var out [][2]int
	y := 0
	for y < b.H {
		if b.Get(y, x) == core.Vacant {
			y++
			continue
		}
		start := y
		for y < b.H && b.Get(y, x) != core.Vacant {
			y++
		}
		out = append(out, [2]int{start, y - start})
	}
	return out
}
