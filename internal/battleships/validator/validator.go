// Package validator implements component G of spec.md §4.G: it inspects a
// player-facing board against a puzzle's clues and annotates per-cell,
// per-row, per-column, and per-ship-multiset error flags, without mutating
// the board (unlike the propagator and solvers, which write to it).
package validator

import (
	"battleships-api/internal/battleships/grid"
	"battleships-api/internal/core"
)

// Result is the full set of flags the host renders back to the player.
type Result struct {
	H, W int

	// CellErr[y*W+x] is true if the cell's own declared state is
	// inconsistent with its neighbours.
	CellErr []bool

	// DiagErr[y*W+x] is true if the cell is diagonally adjacent to another
	// occupied cell.
	DiagErr []bool

	RowErr []bool // length H
	ColErr []bool // length W

	ShipsErr bool // completed-ship distribution exceeds the required one, or a ship run is malformed or over-long

	Solved bool
}

func (r Result) cellAt(y, x int) int { return y*r.W + x }

// Validate inspects b against clues and returns every flag of spec.md
// §4.G. b need not be complete; cells left Undef raise no error on their
// own, only outright contradictions with an already-committed neighbour.
func Validate(clues *core.Clues, b *core.Board) Result {
	h, w := clues.H, clues.W
	r := Result{
		H: h, W: w,
		CellErr: make([]bool, h*w),
		DiagErr: make([]bool, h*w),
		RowErr:  make([]bool, h),
		ColErr:  make([]bool, w),
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !checkCellNeighbours(b, y, x) {
				r.CellErr[r.cellAt(y, x)] = true
			}
		}
	}

	checkDiagonalAdjacency(b, h, w, r.DiagErr)
	checkRowTotals(clues, b, r.RowErr)
	checkColTotals(clues, b, r.ColErr)

	maxLen := 0
	for _, s := range clues.Ships {
		if s > maxLen {
			maxLen = s
		}
	}
	required := make([]int, maxLen)
	for _, s := range clues.Ships {
		required[s-1]++
	}
	distr, distrErr := grid.ComplShipsDistr(b, maxLen)
	if distrErr {
		r.ShipsErr = true
	}
	for i, count := range distr {
		if count > required[i] {
			r.ShipsErr = true
		}
	}

	r.Solved = isSolved(clues, b, r, distr, required)
	return r
}

func isSolved(clues *core.Clues, b *core.Board, r Result, distr, required []int) bool {
	for _, e := range r.CellErr {
		if e {
			return false
		}
	}
	for _, e := range r.DiagErr {
		if e {
			return false
		}
	}
	for _, e := range r.RowErr {
		if e {
			return false
		}
	}
	for _, e := range r.ColErr {
		if e {
			return false
		}
	}
	if r.ShipsErr {
		return false
	}
	for i := range distr {
		if distr[i] != required[i] {
			return false
		}
	}
	occ := 0
	for _, c := range b.Cells {
		if c.IsKnownOccupied() {
			occ++
		}
	}
	return occ == clues.ShipsSum
}

// vacantOK reports whether s is consistent with "this neighbour must not
// be occupied" — true for Vacant and for Undef, which commits to nothing
// yet.
func vacantOK(s core.CellState) bool { return !s.IsKnownOccupied() }

// occOK reports whether s is consistent with "this neighbour must be
// occupied" — true for any known-occupied state and for Undef.
func occOK(s core.CellState) bool { return s.IsKnownOccupied() || s == core.Undef }

// checkCellNeighbours implements spec.md §4.G's per-symbol rotation-
// symmetric neighbour rule set: the same shape the propagator writes
// (§4.B), checked for contradiction instead of enforced by writing.
func checkCellNeighbours(b *core.Board, y, x int) bool {
	switch b.Get(y, x) {
	case core.N:
		return checkShipEnd(b, y, x, 1, 0)
	case core.S:
		return checkShipEnd(b, y, x, -1, 0)
	case core.E:
		return checkShipEnd(b, y, x, 0, -1)
	case core.W:
		return checkShipEnd(b, y, x, 0, 1)
	case core.One:
		for _, d := range grid.Neighbors8(y, x) {
			if !vacantOK(b.Get(d[0], d[1])) {
				return false
			}
		}
		return true
	case core.Inner:
		return checkInner(b, y, x)
	default:
		return true
	}
}

// checkShipEnd verifies the cell at (y,x) holding a ship-end symbol whose
// arrow implies "occupied continuation" at (y+dy,x+dx): that neighbour
// must be occupied-or-undef, and the other seven must be vacant-or-undef.
func checkShipEnd(b *core.Board, y, x, dy, dx int) bool {
	if !occOK(b.Get(y+dy, x+dx)) {
		return false
	}
	for _, d := range grid.Neighbors8(y, x) {
		if d[0] == y+dy && d[1] == x+dx {
			continue
		}
		if !vacantOK(b.Get(d[0], d[1])) {
			return false
		}
	}
	return true
}

// checkInner verifies an interior ship cell: its four diagonals must be
// vacant-or-undef, and at least one axis (horizontal or vertical) must
// still be capable of carrying the run — i.e. not have both of its
// same-axis neighbours already committed Vacant.
func checkInner(b *core.Board, y, x int) bool {
	for _, d := range grid.Diagonals4(y, x) {
		if !vacantOK(b.Get(d[0], d[1])) {
			return false
		}
	}
	hViable := b.Get(y, x-1) != core.Vacant || b.Get(y, x+1) != core.Vacant
	vViable := b.Get(y-1, x) != core.Vacant || b.Get(y+1, x) != core.Vacant
	return hViable || vViable
}

func checkDiagonalAdjacency(b *core.Board, h, w int, diagErr []bool) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !b.Get(y, x).IsKnownOccupied() {
				continue
			}
			for _, d := range grid.Diagonals4(y, x) {
				if b.Get(d[0], d[1]).IsKnownOccupied() {
					diagErr[y*w+x] = true
					break
				}
			}
		}
	}
}

func checkRowTotals(clues *core.Clues, b *core.Board, rowErr []bool) {
	for y := 0; y < clues.H; y++ {
		if clues.Rows[y] == core.HiddenSum {
			continue
		}
		occ, vac := 0, 0
		for x := 0; x < clues.W; x++ {
			switch {
			case b.Get(y, x).IsKnownOccupied():
				occ++
			case b.Get(y, x) == core.Vacant:
				vac++
			}
		}
		if occ > clues.Rows[y] || vac > clues.W-clues.Rows[y] {
			rowErr[y] = true
		}
	}
}

func checkColTotals(clues *core.Clues, b *core.Board, colErr []bool) {
	for x := 0; x < clues.W; x++ {
		if clues.Cols[x] == core.HiddenSum {
			continue
		}
		occ, vac := 0, 0
		for y := 0; y < clues.H; y++ {
			switch {
			case b.Get(y, x).IsKnownOccupied():
				occ++
			case b.Get(y, x) == core.Vacant:
				vac++
			}
		}
		if occ > clues.Cols[x] || vac > clues.H-clues.Cols[x] {
			colErr[x] = true
		}
	}
}
