package wire

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"battleships-api/internal/core"
)

// ParsePuzzle decodes a puzzle description string (spec.md §6.2) into a
// Clues. Ordering of tokens is not significant; unrecognized characters are
// skipped. H and W are inferred from the number of r and c tokens found, so
// each of the two counts must be non-zero; they need not be equal.
func ParsePuzzle(s string) (*core.Clues, error) {
	var ships []int
	var rows, cols []int
	var triples []cellTriple

	i := 0
	for i < len(s) {
		switch s[i] {
		case 's':
			v, ni, ok := readInt(s, i+1)
			if !ok {
				return nil, errors.New("wire: missing digits after 's'")
			}
			ships = append(ships, v)
			i = ni
		case 'r':
			v, ni, ok := readInt(s, i+1)
			if !ok {
				return nil, errors.New("wire: missing digits after 'r'")
			}
			rows = append(rows, v)
			i = ni
		case 'c':
			v, ni, ok := readInt(s, i+1)
			if !ok {
				return nil, errors.New("wire: missing digits after 'c'")
			}
			cols = append(cols, v)
			i = ni
		case 'y':
			t, ni, err := parseOneCellTriple(s, i)
			if err != nil {
				return nil, err
			}
			triples = append(triples, t)
			i = ni
		default:
			i++
		}
	}

	if len(ships) < 1 {
		return nil, errors.New("wire: puzzle string has no ship tokens")
	}
	h := len(rows)
	w := len(cols)
	if h == 0 || w == 0 {
		return nil, errors.New("wire: puzzle string has no row/column totals")
	}
	minHW := h
	if w < minHW {
		minHW = w
	}
	for _, sh := range ships {
		if sh < 1 || sh > minHW {
			return nil, errors.Errorf("wire: ship length %d out of range [1,%d]", sh, minHW)
		}
	}
	for _, r := range rows {
		if r < core.HiddenSum || r > w {
			return nil, errors.Errorf("wire: row total %d out of range [-1,%d]", r, w)
		}
	}
	for _, c := range cols {
		if c < core.HiddenSum || c > h {
			return nil, errors.Errorf("wire: column total %d out of range [-1,%d]", c, h)
		}
	}

	init := core.NewBoard(h, w)
	for _, t := range triples {
		if t.y < 0 || t.y >= h || t.x < 0 || t.x >= w {
			return nil, errors.Errorf("wire: disclosure (%d,%d) out of bounds for %dx%d board", t.y, t.x, h, w)
		}
		state, err := cellStateFromCode(t.z)
		if err != nil {
			return nil, err
		}
		init.Set(t.y, t.x, state)
	}

	return core.NewClues(h, w, ships, rows, cols, init), nil
}

// parseOneCellTriple parses a single "y<int>x<int>z<int>" token starting at
// s[i] (s[i] must be 'y') and returns it along with the index just past it.
func parseOneCellTriple(s string, i int) (cellTriple, int, error) {
	y, ni, ok := readInt(s, i+1)
	if !ok {
		return cellTriple{}, i, errors.New("wire: missing digits after 'y'")
	}
	if !expectTag(s, ni, 'x') {
		return cellTriple{}, i, errors.New("wire: expected 'x' after y-coordinate")
	}
	x, ni2, ok := readInt(s, ni+1)
	if !ok {
		return cellTriple{}, i, errors.New("wire: missing digits after 'x'")
	}
	if !expectTag(s, ni2, 'z') {
		return cellTriple{}, i, errors.New("wire: expected 'z' after x-coordinate")
	}
	z, ni3, ok := readInt(s, ni2+1)
	if !ok {
		return cellTriple{}, i, errors.New("wire: missing digits after 'z'")
	}
	return cellTriple{y: y, x: x, z: z}, ni3, nil
}

// EncodePuzzle renders clues back into a puzzle description string. Ships
// are emitted in their stored order, rows then columns, and disclosures in
// row-major order; a round trip through ParsePuzzle reconstructs an
// equivalent Clues (token order is not significant per spec.md §6.2).
func EncodePuzzle(c *core.Clues) string {
	var b strings.Builder
	for _, sh := range c.Ships {
		fmt.Fprintf(&b, "s%d", sh)
	}
	for _, r := range c.Rows {
		fmt.Fprintf(&b, "r%d", r)
	}
	for _, col := range c.Cols {
		fmt.Fprintf(&b, "c%d", col)
	}
	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			if st := c.Init.Get(y, x); st != core.Undef {
				fmt.Fprintf(&b, "y%dx%dz%d", y, x, cellStateToCode(st))
			}
		}
	}
	return b.String()
}
