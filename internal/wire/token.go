// Package wire implements spec.md §6's external interface surface: the
// puzzle description string, the move description string, and the
// solver move string, plus the pure board-mutation effect of applying a
// move. Every exported parser returns a github.com/pkg/errors-wrapped
// error describing exactly what grammar rule was violated, the same
// shape other_examples' takuzu package uses for its own string-encoded
// board grammar.
package wire

import (
	"github.com/pkg/errors"

	"battleships-api/internal/core"
)

// readInt reads an optional leading '-' followed by one or more decimal
// digits starting at s[i]. It returns the parsed value, the index just
// past the digits, and whether a value was found at all.
func readInt(s string, i int) (val, next int, ok bool) {
	start := i
	if i < len(s) && s[i] == '-' {
		i++
	}
	digitsStart := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digitsStart {
		return 0, start, false
	}
	neg := false
	v := 0
	for j := start; j < i; j++ {
		switch s[j] {
		case '-':
			neg = true
		default:
			v = v*10 + int(s[j]-'0')
		}
	}
	if neg {
		v = -v
	}
	return v, i, true
}

// expectTag reports whether s[i] equals tag, without consuming it.
func expectTag(s string, i int, tag byte) bool {
	return i < len(s) && s[i] == tag
}

// cellTriple is one disclosed/solved cell: (y, x, state-code).
type cellTriple struct {
	y, x, z int
}

// parseCellTriples reads a run of "y<int>x<int>z<int>" compound tokens
// from s, used for the solver move string's full solution (the puzzle
// string's disclosures are read one at a time by parseOneCellTriple).
func parseCellTriples(s string) ([]cellTriple, error) {
	var out []cellTriple
	i := 0
	for i < len(s) {
		if s[i] != 'y' {
			i++
			continue
		}
		y, ni, ok := readInt(s, i+1)
		if !ok {
			return nil, errors.New("wire: missing digits after 'y'")
		}
		if !expectTag(s, ni, 'x') {
			return nil, errors.New("wire: expected 'x' after y-coordinate")
		}
		x, ni2, ok := readInt(s, ni+1)
		if !ok {
			return nil, errors.New("wire: missing digits after 'x'")
		}
		if !expectTag(s, ni2, 'z') {
			return nil, errors.New("wire: expected 'z' after x-coordinate")
		}
		z, ni3, ok := readInt(s, ni2+1)
		if !ok {
			return nil, errors.New("wire: missing digits after 'z'")
		}
		out = append(out, cellTriple{y: y, x: x, z: z})
		i = ni3
	}
	return out, nil
}

// cellStateFromCode maps the z-code grammar to core.CellState:
// -1=Vacant, 0=Occ, 1..4=N/E/S/W, 5=One, 6=Inner.
func cellStateFromCode(z int) (core.CellState, error) {
	switch z {
	case -1:
		return core.Vacant, nil
	case 0:
		return core.Occ, nil
	case 1:
		return core.N, nil
	case 2:
		return core.E, nil
	case 3:
		return core.S, nil
	case 4:
		return core.W, nil
	case 5:
		return core.One, nil
	case 6:
		return core.Inner, nil
	default:
		return core.Undef, errors.Errorf("wire: state code %d out of range [-1,6]", z)
	}
}

// cellStateToCode is the inverse of cellStateFromCode.
func cellStateToCode(s core.CellState) int {
	switch s {
	case core.Vacant:
		return -1
	case core.Occ:
		return 0
	case core.N:
		return 1
	case core.E:
		return 2
	case core.S:
		return 3
	case core.W:
		return 4
	case core.One:
		return 5
	case core.Inner:
		return 6
	default:
		return -1
	}
}
