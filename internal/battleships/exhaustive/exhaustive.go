// Package exhaustive implements the recursive depth-first exhaustive solver
// of spec.md §4.D: placement search over the ship multiset with blocked
// layers, running-sum pruning, and uniqueness detection.
package exhaustive

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"battleships-api/internal/battleships/grid"
	"battleships-api/internal/battleships/propagator"
	"battleships-api/internal/core"
)

// Sentinel errors corresponding to spec.md §4.D's error codes ("ok" is the
// nil-error case).
var (
	ErrNoSolution    = errors.New("exhaustive: no solution")
	ErrNonUnique     = errors.New("exhaustive: non-unique solution")
	ErrLimitExceeded = errors.New("exhaustive: call limit exceeded")
)

// Debug is a package-level trace logger, disabled by default. Callers that
// want a per-solve line with the call count and number of solutions found
// can replace it with a configured zerolog.Logger.
var Debug = zerolog.Nop()

// Solve runs the exhaustive search over clues, stopping early once a
// callLimit > 0 is hit, or once a second distinct solution is found. A
// callLimit <= 0 means unbounded.
func Solve(clues *core.Clues, callLimit int) (core.Solution, int, error) {
	s := run(clues, callLimit)
	if s.limitHit {
		return nil, s.calls, ErrLimitExceeded
	}
	switch len(s.solutions) {
	case 0:
		return nil, s.calls, ErrNoSolution
	case 1:
		return s.solutions[0], s.calls, nil
	default:
		return nil, s.calls, ErrNonUnique
	}
}

// FindUpToTwo is Solve's variant for the generator's ambiguity-resolution
// step (spec.md §4.F): it needs both conflicting solutions, not just the
// fact that a second one exists, so it can pick a "wrong" cell between them.
func FindUpToTwo(clues *core.Clues, callLimit int) ([]core.Solution, int, error) {
	s := run(clues, callLimit)
	if s.limitHit {
		return nil, s.calls, ErrLimitExceeded
	}
	switch len(s.solutions) {
	case 0:
		return nil, s.calls, ErrNoSolution
	case 1:
		return s.solutions, s.calls, nil
	default:
		return s.solutions, s.calls, ErrNonUnique
	}
}

func run(clues *core.Clues, callLimit int) *solver {
	init := clues.Init.Clone()
	propagator.Propagate(init)

	s := &solver{
		clues: clues,
		init:  init,
		board: core.NewBoard(clues.H, clues.W),
		limit: callLimit,
	}
	s.rowOcc = make([]int, clues.H)
	s.colOcc = make([]int, clues.W)

	s.search(0, 0)

	Debug.Debug().Int("calls", s.calls).Int("solutions", len(s.solutions)).Msg("exhaustive solve finished")
	return s
}

type solver struct {
	clues *core.Clues
	init  *core.Board
	board *core.Board // scratch: Undef or Occ only, during search

	layers [][]bool // stack of blocked layers, one per placed ship; length = depth

	rowOcc, colOcc         []int
	hiddenRowOcc, hiddenColOcc int

	placements []core.ShipPlacement
	solutions  []core.Solution

	limit    int
	calls    int
	limitHit bool
}

// candidatePositions enumerates every placement of a ship of the given
// length in lexicographic (orientation, y, x) order: all horizontal
// positions, then all vertical ones.
//
// A length-1 ship has no orientation of its own (a single cell is the same
// placement either way), so only the horizontal enumeration is produced for
// it — unlike the Random Placer (spec.md §4.E), which samples both and
// accepts the resulting harmless double-counting, the exhaustive search
// must not enumerate the same cell twice or it would misreport a unique
// solution as non-unique.
func candidatePositions(h, w, length int) []core.ShipPlacement {
	var out []core.ShipPlacement
	if length <= w {
		for y := 0; y < h; y++ {
			for x := 0; x+length <= w; x++ {
				out = append(out, core.ShipPlacement{Orientation: core.Horizontal, Y: y, X: x, Length: length})
			}
		}
	}
	if length == 1 {
		return out
	}
	if length <= h {
		for y := 0; y+length <= h; y++ {
			for x := 0; x < w; x++ {
				out = append(out, core.ShipPlacement{Orientation: core.Vertical, Y: y, X: x, Length: length})
			}
		}
	}
	return out
}

func (s *solver) search(shipIdx, startIdx int) {
	s.calls++
	if s.limit > 0 && s.calls > s.limit {
		s.limitHit = true
		return
	}
	if s.limitHit || len(s.solutions) >= 2 {
		return
	}

	length := s.clues.Ships[shipIdx]
	last := shipIdx == len(s.clues.Ships)-1
	positions := candidatePositions(s.clues.H, s.clues.W, length)

	for i := startIdx; i < len(positions); i++ {
		p := positions[i]
		if !s.accept(p) {
			continue
		}

		s.place(p)

		if !last {
			if s.feasible() {
				nextStart := 0
				if s.clues.Ships[shipIdx+1] == length {
					nextStart = i + 1
				}
				s.search(shipIdx+1, nextStart)
			}
		} else if s.validateFinal() {
			sol := make(core.Solution, len(s.placements))
			copy(sol, s.placements)
			s.solutions = append(s.solutions, sol)
		}

		s.unplace(p)

		if s.limitHit || len(s.solutions) >= 2 {
			return
		}
	}
}

// accept checks the universal per-candidate rejections of spec.md §4.D
// item 2: no cell Vacant in the propagated init, endpoint/Inner and
// singleton-type compatibility, and no cell in any currently blocked layer.
func (s *solver) accept(p core.ShipPlacement) bool {
	cells := p.Cells()
	for _, c := range cells {
		if s.init.Get(c[0], c[1]) == core.Vacant {
			return false
		}
		if s.isBlocked(c[0], c[1]) {
			return false
		}
	}
	if p.Length == 1 {
		st := s.init.Get(cells[0][0], cells[0][1])
		if st != core.Undef && st != core.Occ && st != core.One {
			return false
		}
		return true
	}
	for _, idx := range [2]int{0, p.Length - 1} {
		if s.init.Get(cells[idx][0], cells[idx][1]) == core.Inner {
			return false
		}
	}
	return true
}

func (s *solver) isBlocked(y, x int) bool {
	idx := y*s.clues.W + x
	for _, layer := range s.layers {
		if layer[idx] {
			return true
		}
	}
	return false
}

// place marks p's cells Occ on the scratch board, updates row/column
// occupancy counters, records the placement, and pushes its blocked layer.
func (s *solver) place(p core.ShipPlacement) {
	for _, c := range p.Cells() {
		y, x := c[0], c[1]
		s.board.Set(y, x, core.Occ)
		if s.clues.Rows[y] == core.HiddenSum {
			s.hiddenRowOcc++
		} else {
			s.rowOcc[y]++
		}
		if s.clues.Cols[x] == core.HiddenSum {
			s.hiddenColOcc++
		} else {
			s.colOcc[x]++
		}
	}
	s.placements = append(s.placements, p)
	s.layers = append(s.layers, s.buildBlockedLayer(p))
}

func (s *solver) unplace(p core.ShipPlacement) {
	s.layers = s.layers[:len(s.layers)-1]
	s.placements = s.placements[:len(s.placements)-1]
	for _, c := range p.Cells() {
		y, x := c[0], c[1]
		s.board.Set(y, x, core.Undef)
		if s.clues.Rows[y] == core.HiddenSum {
			s.hiddenRowOcc--
		} else {
			s.rowOcc[y]--
		}
		if s.clues.Cols[x] == core.HiddenSum {
			s.hiddenColOcc--
		} else {
			s.colOcc[x]--
		}
	}
}

// feasible is the running-sum pruning of spec.md §4.D item 3: after placing
// a non-last ship, no visible row/column total may already be exceeded, nor
// the aggregate hidden-row/column budget.
func (s *solver) feasible() bool {
	for y := 0; y < s.clues.H; y++ {
		if s.clues.Rows[y] != core.HiddenSum && s.rowOcc[y] > s.clues.Rows[y] {
			return false
		}
	}
	for x := 0; x < s.clues.W; x++ {
		if s.clues.Cols[x] != core.HiddenSum && s.colOcc[x] > s.clues.Cols[x] {
			return false
		}
	}
	if s.hiddenRowOcc > s.clues.HiddenRowsBudget() {
		return false
	}
	if s.hiddenColOcc > s.clues.HiddenColsBudget() {
		return false
	}
	return true
}

// buildBlockedLayer marks p's own cells and their one-cell border, plus any
// row/column whose budget is now exactly matched, as off-limits to future
// ships — except cells already known-occupied in init, which must remain
// available (spec.md §4.D item 3, §9 "blocked layers").
func (s *solver) buildBlockedLayer(p core.ShipPlacement) []bool {
	layer := make([]bool, s.clues.H*s.clues.W)
	mark := func(y, x int) {
		if !s.init.InBounds(y, x) {
			return
		}
		if s.init.Get(y, x).IsKnownOccupied() {
			return
		}
		layer[y*s.clues.W+x] = true
	}

	for _, c := range p.Cells() {
		mark(c[0], c[1])
		for _, d := range grid.Neighbors8(c[0], c[1]) {
			mark(d[0], d[1])
		}
	}
	for y := 0; y < s.clues.H; y++ {
		if s.clues.Rows[y] != core.HiddenSum && s.rowOcc[y] == s.clues.Rows[y] {
			for x := 0; x < s.clues.W; x++ {
				mark(y, x)
			}
		}
	}
	for x := 0; x < s.clues.W; x++ {
		if s.clues.Cols[x] != core.HiddenSum && s.colOcc[x] == s.clues.Cols[x] {
			for y := 0; y < s.clues.H; y++ {
				mark(y, x)
			}
		}
	}
	if s.hiddenRowOcc == s.clues.HiddenRowsBudget() {
		for y, r := range s.clues.Rows {
			if r == core.HiddenSum {
				for x := 0; x < s.clues.W; x++ {
					mark(y, x)
				}
			}
		}
	}
	if s.hiddenColOcc == s.clues.HiddenColsBudget() {
		for x, c := range s.clues.Cols {
			if c == core.HiddenSum {
				for y := 0; y < s.clues.H; y++ {
					mark(y, x)
				}
			}
		}
	}
	return layer
}

// validateFinal is spec.md §4.D item 5: once every ship is placed, check
// exact row/column totals and per-clue adjacency consistency against the
// scratch board.
func (s *solver) validateFinal() bool {
	for y := 0; y < s.clues.H; y++ {
		if s.clues.Rows[y] != core.HiddenSum && s.rowOcc[y] != s.clues.Rows[y] {
			return false
		}
	}
	for x := 0; x < s.clues.W; x++ {
		if s.clues.Cols[x] != core.HiddenSum && s.colOcc[x] != s.clues.Cols[x] {
			return false
		}
	}
	if s.hiddenRowOcc != s.clues.HiddenRowsBudget() {
		if hasHiddenRow(s.clues) {
			return false
		}
	}
	if s.hiddenColOcc != s.clues.HiddenColsBudget() {
		if hasHiddenCol(s.clues) {
			return false
		}
	}

	for y := 0; y < s.clues.H; y++ {
		for x := 0; x < s.clues.W; x++ {
			if !s.checkCellConsistency(y, x) {
				return false
			}
		}
	}
	return true
}

func (s *solver) checkCellConsistency(y, x int) bool {
	clue := s.init.Get(y, x)
	occ := s.board.Get(y, x) == core.Occ
	switch clue {
	case core.Vacant:
		return !occ
	case core.Occ:
		return occ
	case core.N:
		return occ && s.board.Get(y+1, x) == core.Occ
	case core.S:
		return occ && s.board.Get(y-1, x) == core.Occ
	case core.E:
		return occ && s.board.Get(y, x-1) == core.Occ
	case core.W:
		return occ && s.board.Get(y, x+1) == core.Occ
	case core.One:
		if !occ {
			return false
		}
		for _, d := range grid.Neighbors8(y, x) {
			if s.board.Get(d[0], d[1]) == core.Occ {
				return false
			}
		}
		return true
	case core.Inner:
		if !occ {
			return false
		}
		horiz := s.board.Get(y, x-1) == core.Occ && s.board.Get(y, x+1) == core.Occ
		vert := s.board.Get(y-1, x) == core.Occ && s.board.Get(y+1, x) == core.Occ
		return horiz || vert
	default: // Undef: no disclosure, nothing to check
		return true
	}
}

func hasHiddenRow(clues *core.Clues) bool {
	for _, r := range clues.Rows {
		if r == core.HiddenSum {
			return true
		}
	}
	return false
}

func hasHiddenCol(clues *core.Clues) bool {
	for _, c := range clues.Cols {
		if c == core.HiddenSum {
			return true
		}
	}
	return false
}
