// Package core holds the domain model shared by every battleships engine
// package: cell/board state, clues, ship placements, and the difficulty
// level and parameter types the host communicates with the generator
// through.
package core

import (
	"fmt"

	"battleships-api/pkg/constants"
)

// CellState is the tagged state of a single grid cell.
//
// The integer ordering intentionally encodes the promotion order used by
// the propagator and logical solver: Vacant < Occ < {N,E,S,W,One,Inner}.
// A write that would lower a cell below its current state is a demotion
// and must be suppressed by the caller (see Board.Write).
type CellState int

const (
	Undef CellState = iota
	Vacant
	Occ
	N
	E
	S
	W
	One
	Inner
)

// IsKnownOccupied reports whether s is Occ or one of the typed subtypes.
func (s CellState) IsKnownOccupied() bool { return s >= Occ }

// IsTyped reports whether s is a specific ship-shape subtype (not plain Occ).
func (s CellState) IsTyped() bool { return s >= N }

// IsEnd reports whether s is one of the four ship-end directions.
func (s CellState) IsEnd() bool { return s == N || s == E || s == S || s == W }

func (s CellState) String() string {
	switch s {
	case Undef:
		return "?"
	case Vacant:
		return "."
	case Occ:
		return "#"
	case N:
		return "^"
	case E:
		return ">"
	case S:
		return "v"
	case W:
		return "<"
	case One:
		return "o"
	case Inner:
		return "x"
	default:
		return fmt.Sprintf("!%d", int(s))
	}
}

// CellStateFromRune parses the literal-grid symbols used throughout the
// test fixtures ('.'=Vacant, '#'=Occ, '<>^v'=W/E/N/S, 'o'=One, 'x'=Inner,
// '?'=Undef). It does not parse the numeric z-codes of the wire puzzle/move
// string grammar.
func CellStateFromRune(r rune) (CellState, bool) {
	switch r {
	case '?':
		return Undef, true
	case '.':
		return Vacant, true
	case '#':
		return Occ, true
	case '^':
		return N, true
	case '>':
		return E, true
	case 'v':
		return S, true
	case '<':
		return W, true
	case 'o':
		return One, true
	case 'x':
		return Inner, true
	default:
		return Undef, false
	}
}

// Board is an H×W grid of cell states, used as solver scratch space.
type Board struct {
	H, W  int
	Cells []CellState // row-major, length H*W
}

// NewBoard allocates an H×W board with every cell Undef.
func NewBoard(h, w int) *Board {
	return &Board{H: h, W: w, Cells: make([]CellState, h*w)}
}

func (b *Board) idx(y, x int) int { return y*b.W + x }

// InBounds reports whether (y, x) lies on the board.
func (b *Board) InBounds(y, x int) bool {
	return y >= 0 && y < b.H && x >= 0 && x < b.W
}

// Get returns the state at (y, x), or Vacant if out of bounds — the border
// is always treated as Vacant per spec.md §4.B's "or is the border treated
// as Vacant on that side".
func (b *Board) Get(y, x int) CellState {
	if !b.InBounds(y, x) {
		return Vacant
	}
	return b.Cells[b.idx(y, x)]
}

// Set unconditionally overwrites the state at (y, x). Used when a caller
// has already decided a demotion/reclassification is warranted (outside
// the monotone propagation rules).
func (b *Board) Set(y, x int, s CellState) {
	if b.InBounds(y, x) {
		b.Cells[b.idx(y, x)] = s
	}
}

// Write performs a monotone write: the cell is updated only if s would not
// lower its current state. Returns true if the board was changed.
//
// Per spec.md §4.B: "a write that would lower a cell's state is suppressed;
// contradictions ... are not detected here."
func (b *Board) Write(y, x int, s CellState) bool {
	if !b.InBounds(y, x) {
		return false
	}
	i := b.idx(y, x)
	if s <= b.Cells[i] {
		return false
	}
	b.Cells[i] = s
	return true
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cp := &Board{H: b.H, W: b.W, Cells: make([]CellState, len(b.Cells))}
	copy(cp.Cells, b.Cells)
	return cp
}

// Checksum is a cheap 32-bit fingerprint of the board contents, used by the
// logical solver's fixed-point loop to detect "no further change" (spec.md
// §4.C).
func (b *Board) Checksum() uint32 {
	var h uint32 = 2166136261 // FNV offset basis
	for _, c := range b.Cells {
		h ^= uint32(c)
		h *= 16777619 // FNV prime
	}
	return h
}

// String renders the board using the literal-grid symbols, one row per
// line, for test fixtures and debug logging.
func (b *Board) String() string {
	buf := make([]byte, 0, b.H*(b.W+1))
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			buf = append(buf, []byte(b.Get(y, x).String())...)
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

// ParseBoardLiteral builds a Board from literal-grid rows (see CellState's
// symbol table). All rows must have equal length.
func ParseBoardLiteral(rows []string) (*Board, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows")
	}
	w := len(rows[0])
	b := NewBoard(len(rows), w)
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("row %d has length %d, want %d", y, len(row), w)
		}
		for x, r := range row {
			s, ok := CellStateFromRune(r)
			if !ok {
				return nil, fmt.Errorf("row %d col %d: unrecognized symbol %q", y, x, r)
			}
			b.Set(y, x, s)
		}
	}
	return b, nil
}

// Orientation is a ship's axis.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// ShipPlacement records one ship's position and orientation. Length is
// carried alongside for convenience (it is always consistent with the
// Clues.Ships entry at the same index in a Solution).
type ShipPlacement struct {
	Orientation Orientation
	Y, X        int
	Length      int
}

// CellAt returns the i'th cell (0-indexed from the origin along the ship's
// axis) of the placement.
func (p ShipPlacement) CellAt(i int) (y, x int) {
	if p.Orientation == Horizontal {
		return p.Y, p.X + i
	}
	return p.Y + i, p.X
}

// Cells returns every cell of the placement in order.
func (p ShipPlacement) Cells() [][2]int {
	out := make([][2]int, p.Length)
	for i := range out {
		y, x := p.CellAt(i)
		out[i] = [2]int{y, x}
	}
	return out
}

// Solution is a sequence of placements in the same order as Clues.Ships.
type Solution []ShipPlacement

// HiddenSum is the sentinel value for a hidden row/column total.
const HiddenSum = -1

// Clues is the immutable puzzle description consumed by every solver.
type Clues struct {
	H, W  int
	Ships []int // descending-sorted lengths
	Rows  []int // length H; HiddenSum or a required count
	Cols  []int // length W; HiddenSum or a required count
	Init  *Board

	ShipsSum int // sum of Ships
	RowsSum  int // sum of non-hidden Rows
	ColsSum  int // sum of non-hidden Cols
}

// NewClues builds a Clues from its components, computing the derived sums.
// Init may be nil, meaning all cells are Undef.
func NewClues(h, w int, ships, rows, cols []int, init *Board) *Clues {
	if init == nil {
		init = NewBoard(h, w)
	}
	c := &Clues{H: h, W: w, Ships: ships, Rows: rows, Cols: cols, Init: init}
	for _, s := range ships {
		c.ShipsSum += s
	}
	for _, r := range rows {
		if r != HiddenSum {
			c.RowsSum += r
		}
	}
	for _, col := range cols {
		if col != HiddenSum {
			c.ColsSum += col
		}
	}
	return c
}

// HiddenRowsBudget is the aggregate occupied-cell budget across every
// hidden row: ships_sum - rows_sum (spec.md §4.C rule R2).
func (c *Clues) HiddenRowsBudget() int { return c.ShipsSum - c.RowsSum }

// HiddenColsBudget is the analogous aggregate budget for hidden columns.
func (c *Clues) HiddenColsBudget() int { return c.ShipsSum - c.ColsSum }

// Level is the puzzle difficulty requested from the generator.
type Level int

const (
	Basic Level = iota
	Intermediate
	Advanced
	Unreasonable
)

func (l Level) String() string {
	switch l {
	case Basic:
		return "basic"
	case Intermediate:
		return "intermediate"
	case Advanced:
		return "advanced"
	case Unreasonable:
		return "unreasonable"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// LevelFromInt validates and converts the wire-level 0..3 difficulty code.
func LevelFromInt(n int) (Level, error) {
	if n < 0 || n > 3 {
		return 0, fmt.Errorf("difficulty out of range [0,3]: %d", n)
	}
	return Level(n), nil
}

// Params are the host-supplied generation parameters (spec.md §6.1).
type Params struct {
	H, W       int
	Difficulty Level
}

// Validate checks the bounds from spec.md §6.1.
func (p Params) Validate() error {
	if p.H < constants.MinBoardSize || p.H > constants.MaxBoardSize {
		return fmt.Errorf("H out of range [%d,%d]: %d", constants.MinBoardSize, constants.MaxBoardSize, p.H)
	}
	if p.W < constants.MinBoardSize || p.W > constants.MaxBoardSize {
		return fmt.Errorf("W out of range [%d,%d]: %d", constants.MinBoardSize, constants.MaxBoardSize, p.W)
	}
	if p.Difficulty < Basic || p.Difficulty > Unreasonable {
		return fmt.Errorf("difficulty out of range [0,3]: %d", int(p.Difficulty))
	}
	return nil
}

// LogicalStatus is the result status of the logical (deductive) solver.
type LogicalStatus int

const (
	SolvedBySimple LogicalStatus = iota
	SolvedUsingAdvanced
	Stuck
)

func (s LogicalStatus) String() string {
	switch s {
	case SolvedBySimple:
		return "solved-by-simple"
	case SolvedUsingAdvanced:
		return "solved-using-advanced"
	case Stuck:
		return "stuck"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}
