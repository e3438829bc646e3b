// Package grid provides the grid primitives shared by every solver:
// rotated coordinate views (so an eight-way neighbour rule can be written
// once and applied under all four ship-end orientations) and the
// completed-ship scanner used for grading and validation.
package grid

import (
	"fmt"

	"battleships-api/internal/core"
)

// View remaps (row, col) coordinates through one of the four rotations
// (identity, 90°, 180°, 270°) so a neighbour-inference rule written in
// terms of "up/down/left/right" can be invoked four times — once per
// ship-end direction — instead of once per direction by hand.
//
// Rotation r cycles the compass as N -> E -> S -> W -> N: "view-up" (the
// direction of decreasing view-row) lands on board-north at r=0,
// board-east at r=1, board-south at r=2, and board-west at r=3. ArrowState
// below exposes that mapping as a CellState so callers needn't re-derive
// it.
type View struct {
	b   *core.Board
	rot int // 0..3, quarter turns
}

// NewView wraps b under rotation rot (taken mod 4).
func NewView(b *core.Board, rot int) View {
	return View{b: b, rot: ((rot % 4) + 4) % 4}
}

// Height is the view-space row count.
func (v View) Height() int {
	if v.rot%2 == 0 {
		return v.b.H
	}
	return v.b.W
}

// Width is the view-space column count.
func (v View) Width() int {
	if v.rot%2 == 0 {
		return v.b.W
	}
	return v.b.H
}

// toBoard maps a view-space coordinate to board-space.
func (v View) toBoard(y, x int) (int, int) {
	switch v.rot {
	case 0:
		return y, x
	case 1:
		return x, v.b.W - 1 - y
	case 2:
		return v.b.H - 1 - y, v.b.W - 1 - x
	default: // 3
		return v.b.H - 1 - x, y
	}
}

// Get returns the board state at view-space (y, x); out-of-bounds reads as
// Vacant, matching Board.Get's border convention.
func (v View) Get(y, x int) core.CellState {
	by, bx := v.toBoard(y, x)
	return v.b.Get(by, bx)
}

// Write performs a monotone write at view-space (y, x).
func (v View) Write(y, x int, s core.CellState) bool {
	by, bx := v.toBoard(y, x)
	return v.b.Write(by, bx, s)
}

// ArrowState is the ship-end CellState that means "arrow pointing toward
// view-up" under rotation rot.
func ArrowState(rot int) core.CellState {
	switch ((rot % 4) + 4) % 4 {
	case 0:
		return core.N
	case 1:
		return core.E
	case 2:
		return core.S
	default:
		return core.W
	}
}

// Views4 returns the four rotations of b, indexed by rotation, so the view
// at index i is the one in which ArrowState(i) points view-up — the
// standard way to iterate "once per ship-end direction" over a board.
func Views4(b *core.Board) [4]View {
	return [4]View{NewView(b, 0), NewView(b, 1), NewView(b, 2), NewView(b, 3)}
}

// ComplShipsDistr scans board for completed ships (standalone One cells,
// and N...Inner*...S / W...Inner*...E runs) and returns the distribution of
// ship lengths found, distr[length-1], for length in [1, maxSize].
//
// err is true if an Inner run never terminates (runs off the board or into
// a non-Inner, non-terminal cell) or if a completed run's length exceeds
// maxSize. Spec.md §4.A / §8 scenario S5.
func ComplShipsDistr(b *core.Board, maxSize int) (distr []int, err bool) {
	distr = make([]int, maxSize)
	record := func(length int) {
		if length < 1 || length > maxSize {
			err = true
			return
		}
		distr[length-1]++
	}

	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			switch b.Get(y, x) {
			case core.One:
				record(1)
			case core.N:
				length, ok := traceRun(b, y, x, 1, 0, core.S)
				if !ok {
					err = true
					continue
				}
				record(length)
			case core.W:
				length, ok := traceRun(b, y, x, 0, 1, core.E)
				if !ok {
					err = true
					continue
				}
				record(length)
			}
		}
	}
	return distr, err
}

// traceRun walks from a ship-end cell (already counted as length 1) in
// direction (dy, dx), consuming Inner cells and requiring the run to
// terminate in terminal. Returns the full ship length and whether the run
// terminated properly.
func traceRun(b *core.Board, y, x, dy, dx int, terminal core.CellState) (int, bool) {
	length := 1
	cy, cx := y+dy, x+dx
	for {
		if !b.InBounds(cy, cx) {
			return length, false
		}
		switch b.Get(cy, cx) {
		case core.Inner:
			length++
			cy, cx = cy+dy, cx+dx
		case terminal:
			return length + 1, true
		default:
			return length, false
		}
	}
}

// Neighbors8 returns the eight Chebyshev-adjacent coordinates of (y, x),
// including off-board ones (callers use Board.Get's Vacant-border
// convention, or filter with Board.InBounds).
func Neighbors8(y, x int) [8][2]int {
	return [8][2]int{
		{y - 1, x - 1}, {y - 1, x}, {y - 1, x + 1},
		{y, x - 1}, {y, x + 1},
		{y + 1, x - 1}, {y + 1, x}, {y + 1, x + 1},
	}
}

// Diagonals4 returns the four diagonal neighbours of (y, x).
func Diagonals4(y, x int) [4][2]int {
	return [4][2]int{{y - 1, x - 1}, {y - 1, x + 1}, {y + 1, x - 1}, {y + 1, x + 1}}
}

// Orthogonals4 returns the four orthogonal (non-diagonal) neighbours of
// (y, x) in N, E, S, W order.
func Orthogonals4(y, x int) [4][2]int {
	return [4][2]int{{y - 1, x}, {y, x + 1}, {y + 1, x}, {y, x - 1}}
}

// TypedStateFor returns the disclosed-state symbol a cell at offset i of
// placement p would show if fully identified: One for a length-1 ship,
// Inner for an interior cell, and the directional end otherwise. The
// direction convention matches the propagator and exhaustive solver: N
// marks a south-facing run (adjacent occupied cell at y+1), S a
// north-facing run (y-1), E a west-facing run (x-1), W an east-facing run
// (x+1).
func TypedStateFor(p core.ShipPlacement, i int) core.CellState {
	if p.Length == 1 {
		return core.One
	}
	if i > 0 && i < p.Length-1 {
		return core.Inner
	}
	if p.Orientation == core.Horizontal {
		if i == 0 {
			return core.W
		}
		return core.E
	}
	if i == 0 {
		return core.N
	}
	return core.S
}

// DistrString is a debug helper rendering distr as "len:count" pairs.
func DistrString(distr []int) string {
	s := ""
	for i, c := range distr {
		if c == 0 {
			continue
		}
		s += fmt.Sprintf("%d:%d ", i+1, c)
	}
	return s
}
