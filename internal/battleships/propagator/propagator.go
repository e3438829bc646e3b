// Package propagator implements the constraint propagator of
// spec.md §4.B ("solver_init"): it enriches a board by writing the cell
// states implied by already-known ship-end, singleton, interior, and
// generic-occupied cells. It is rule R1 of the logical solver (§4.C) and is
// also applied once by the exhaustive solver before placement search.
package propagator

import (
	"slices"

	"battleships-api/internal/battleships/grid"
	"battleships-api/internal/core"
)

// Propagate enriches b in place, repeating its enrichment passes until a
// full pass changes nothing. Writes are monotone (Board.Write): a write
// that would lower a cell's state is silently suppressed, and
// contradictions are not detected here — they surface to callers as failed
// final checks (spec.md §4.B).
//
// Propagate is idempotent: calling it again on its own output changes
// nothing (spec.md §8).
func Propagate(b *core.Board) {
	for {
		before := b.Clone()
		applyShipEndRules(b)
		applySingletonAndInnerRules(b)
		applyOccDiagonalRule(b) // second pass: the rules above may create new Occ cells
		if slices.Equal(before.Cells, b.Cells) {
			return
		}
	}
}

// applyShipEndRules implements: for a ship-end cell, all eight neighbours
// except the cell opposite the arrow are Vacant; the cell opposite the
// arrow is at least Occ.
//
// The rule is written once in terms of "the arrow points to view-up" and
// invoked under all four rotations (grid.Views4) — each rotation's own
// coordinate space is scanned directly, so no inverse board<->view mapping
// is needed, per spec.md §9's "write once, invoke under rotation"
// guidance.
func applyShipEndRules(b *core.Board) {
	for rot, v := range grid.Views4(b) {
		want := grid.ArrowState(rot)
		h, w := v.Height(), v.Width()
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if v.Get(y, x) != want {
					continue
				}
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dy == 0 && dx == 0 {
							continue
						}
						if dy == 1 && dx == 0 {
							v.Write(y+dy, x+dx, core.Occ)
						} else {
							v.Write(y+dy, x+dx, core.Vacant)
						}
					}
				}
			}
		}
	}
}

// applySingletonAndInnerRules implements the One and Inner rules, which are
// not direction-dependent the way ship ends are (One radiates symmetrically;
// Inner's two axis checks are handled by rotating the axis vector itself,
// see applyInnerAxis).
func applySingletonAndInnerRules(b *core.Board) {
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			switch b.Get(y, x) {
			case core.One:
				for _, d := range grid.Neighbors8(y, x) {
					b.Write(d[0], d[1], core.Vacant)
				}
			case core.Inner:
				for _, d := range grid.Diagonals4(y, x) {
					b.Write(d[0], d[1], core.Vacant)
				}
				applyInnerAxis(b, y, x, 0, 1) // horizontal axis (west/east)
				applyInnerAxis(b, y, x, 1, 0) // vertical axis (north/south)
			}
		}
	}
}

// applyInnerAxis implements, for one axis: if exactly one of the two
// same-axis neighbours is known-occupied, the perpendicular-axis neighbours
// become Vacant and the other (not-yet-known) same-axis neighbour is
// promoted to at least Occ.
//
// Called once with (dy, dx) = the horizontal axis unit vector and once with
// the vertical axis unit vector — the same rule "rotated" 90° rather than
// duplicated, per spec.md §9.
func applyInnerAxis(b *core.Board, y, x, dy, dx int) {
	fwdY, fwdX := y+dy, x+dx
	bwdY, bwdX := y-dy, x-dx
	fwdOcc := b.Get(fwdY, fwdX).IsKnownOccupied()
	bwdOcc := b.Get(bwdY, bwdX).IsKnownOccupied()
	if fwdOcc == bwdOcc {
		return // both or neither known-occupied: this axis stays ambiguous
	}
	// perpendicular directions: rotate (dy,dx) by +/-90 degrees
	p1y, p1x := -dx, dy
	p2y, p2x := dx, -dy
	b.Write(y+p1y, x+p1x, core.Vacant)
	b.Write(y+p2y, x+p2x, core.Vacant)
	if fwdOcc {
		b.Write(bwdY, bwdX, core.Occ)
	} else {
		b.Write(fwdY, fwdX, core.Occ)
	}
}

// applyOccDiagonalRule is pass two: every known-occupied cell (plain Occ or
// any typed subtype) vacates its four diagonal neighbours. Run after the
// typed-cell passes because those may have promoted new cells to Occ.
func applyOccDiagonalRule(b *core.Board) {
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			if !b.Get(y, x).IsKnownOccupied() {
				continue
			}
			for _, d := range grid.Diagonals4(y, x) {
				b.Write(d[0], d[1], core.Vacant)
			}
		}
	}
}
