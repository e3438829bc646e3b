package wire

import (
	"github.com/pkg/errors"

	"battleships-api/internal/core"
)

// MoveKind distinguishes the move description string's tagged variants
// (spec.md §6.3).
type MoveKind int

const (
	// MoveDrag sets or clears a rectangular region to Vacant.
	MoveDrag MoveKind = iota
	// MoveWrite sets a single cell to the given state.
	MoveWrite
	// MoveToggleRow flips a row's "marked done" flag.
	MoveToggleRow
	// MoveToggleCol flips a column's "marked done" flag.
	MoveToggleCol
	// MoveSolver supplies an entire solved board as a stream of triples.
	MoveSolver
)

// Move is a parsed move description.
type Move struct {
	Kind MoveKind

	// MoveDrag
	DragClear  bool // false = set Vacant, true = clear Vacant
	Y0, X0     int
	Y1, X1     int

	// MoveWrite
	Y, X  int
	State core.CellState

	// MoveToggleRow / MoveToggleCol
	Index int

	// MoveSolver
	Cells []cellTriple
}

// ParseMove decodes a move description string (spec.md §6.3). A leading 'S'
// signals a solver move and consumes the rest of the string as a stream of
// y..x..z.. triples; any other recognized tag produces exactly one Move.
// Unrecognized characters before the first recognized tag are skipped, same
// as the puzzle description grammar.
func ParseMove(s string) (*Move, error) {
	if len(s) == 0 {
		return nil, errors.New("wire: empty move string")
	}
	if s[0] == 'S' {
		triples, err := parseCellTriples(s[1:])
		if err != nil {
			return nil, errors.Wrap(err, "wire: solver move")
		}
		for _, t := range triples {
			if _, err := cellStateFromCode(t.z); err != nil {
				return nil, errors.Wrap(err, "wire: solver move")
			}
		}
		return &Move{Kind: MoveSolver, Cells: triples}, nil
	}

	i := 0
	for i < len(s) {
		switch s[i] {
		case 'd':
			return parseDragMove(s, i)
		case 'y':
			return parseWriteMove(s, i)
		case 'r':
			v, _, ok := readInt(s, i+1)
			if !ok {
				return nil, errors.New("wire: missing digits after 'r'")
			}
			return &Move{Kind: MoveToggleRow, Index: v}, nil
		case 'c':
			v, _, ok := readInt(s, i+1)
			if !ok {
				return nil, errors.New("wire: missing digits after 'c'")
			}
			return &Move{Kind: MoveToggleCol, Index: v}, nil
		default:
			i++
		}
	}
	return nil, errors.New("wire: move string contains no recognized tag")
}

func parseDragMove(s string, i int) (*Move, error) {
	clear, ni, ok := readInt(s, i+1)
	if !ok {
		return nil, errors.New("wire: missing digit after 'd'")
	}
	if clear != 0 && clear != 1 {
		return nil, errors.Errorf("wire: drag flag %d out of range [0,1]", clear)
	}
	return parseDragCoords(s, ni, clear == 1)
}

// parseDragCoords parses the four y<int>x<int>y<int>x<int> coordinates
// following a "d<0|1>" tag at position i in s.
func parseDragCoords(s string, i int, clearFlag bool) (*Move, error) {
	if !expectTag(s, i, 'y') {
		return nil, errors.New("wire: expected 'y' after drag flag")
	}
	y0, ni, ok := readInt(s, i+1)
	if !ok {
		return nil, errors.New("wire: missing digits after first 'y'")
	}
	if !expectTag(s, ni, 'x') {
		return nil, errors.New("wire: expected 'x' after first y-coordinate")
	}
	x0, ni2, ok := readInt(s, ni+1)
	if !ok {
		return nil, errors.New("wire: missing digits after first 'x'")
	}
	if !expectTag(s, ni2, 'y') {
		return nil, errors.New("wire: expected second 'y' in drag move")
	}
	y1, ni3, ok := readInt(s, ni2+1)
	if !ok {
		return nil, errors.New("wire: missing digits after second 'y'")
	}
	if !expectTag(s, ni3, 'x') {
		return nil, errors.New("wire: expected second 'x' in drag move")
	}
	x1, _, ok := readInt(s, ni3+1)
	if !ok {
		return nil, errors.New("wire: missing digits after second 'x'")
	}
	return &Move{Kind: MoveDrag, DragClear: clearFlag, Y0: y0, X0: x0, Y1: y1, X1: x1}, nil
}

func parseWriteMove(s string, i int) (*Move, error) {
	t, _, err := parseOneCellTriple(s, i)
	if err != nil {
		return nil, err
	}
	state, err := cellStateFromCode(t.z)
	if err != nil {
		return nil, err
	}
	return &Move{Kind: MoveWrite, Y: t.y, X: t.x, State: state}, nil
}

// ApplyMove applies a parsed move to a live board. Drag and single-cell
// writes use Board.Set (a player correction can legitimately demote a
// cell), and a solver move Sets every cell it lists. Row/column toggles
// leave the board unchanged and return nil: the core does not track those
// flags.
func ApplyMove(b *core.Board, mv *Move) error {
	switch mv.Kind {
	case MoveDrag:
		state := core.Occ
		if !mv.DragClear {
			state = core.Vacant
		}
		y0, y1 := mv.Y0, mv.Y1
		if y0 > y1 {
			y0, y1 = y1, y0
		}
		x0, x1 := mv.X0, mv.X1
		if x0 > x1 {
			x0, x1 = x1, x0
		}
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				if !b.InBounds(y, x) {
					continue
				}
				if mv.DragClear {
					if b.Get(y, x) == core.Vacant {
						b.Set(y, x, core.Undef)
					}
					continue
				}
				b.Set(y, x, state)
			}
		}
		return nil
	case MoveWrite:
		if !b.InBounds(mv.Y, mv.X) {
			return errors.Errorf("wire: write move (%d,%d) out of bounds", mv.Y, mv.X)
		}
		b.Set(mv.Y, mv.X, mv.State)
		return nil
	case MoveToggleRow, MoveToggleCol:
		return nil
	case MoveSolver:
		for _, t := range mv.Cells {
			if !b.InBounds(t.y, t.x) {
				return errors.Errorf("wire: solver move cell (%d,%d) out of bounds", t.y, t.x)
			}
			state, err := cellStateFromCode(t.z)
			if err != nil {
				return err
			}
			b.Set(t.y, t.x, state)
		}
		return nil
	default:
		return errors.Errorf("wire: unknown move kind %d", mv.Kind)
	}
}
