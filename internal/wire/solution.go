package wire

import (
	"fmt"
	"strings"

	"battleships-api/internal/battleships/grid"
	"battleships-api/internal/core"
)

// EncodeSolution renders a solver move string (spec.md §6.4): a leading 'S'
// followed by one y..x..z.. triple per occupied cell, typed per the
// ship-end/inner/one convention shared with the generator.
func EncodeSolution(sol core.Solution) string {
	var b strings.Builder
	b.WriteByte('S')
	for _, p := range sol {
		for i := 0; i < p.Length; i++ {
			y, x := p.CellAt(i)
			state := grid.TypedStateFor(p, i)
			fmt.Fprintf(&b, "y%dx%dz%d", y, x, cellStateToCode(state))
		}
	}
	return b.String()
}
