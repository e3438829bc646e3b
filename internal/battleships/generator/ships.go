package generator

import (
	"math"
	"sort"

	"battleships-api/internal/battleships/placer"
	"battleships-api/internal/core"
)

// chooseShips is step 1 of spec.md §4.F: pick the ship multiset for an
// h x w board at the given difficulty.
func chooseShips(h, w int, level core.Level, rnd placer.Rand) []int {
	minHW := h
	if w < minHW {
		minHW = w
	}
	if minHW == 7 {
		return []int{4, 4, 3, 3, 2, 2, 2}
	}

	nShips := 7
	if level != core.Basic && rnd.Upto(2) == 1 {
		nShips = 8
	}

	lMax := int(math.Round(0.6 * float64(minHW)))
	if lMax < 2 {
		lMax = 2
	}
	var lengths []int
	for l := 2; l <= lMax; l++ {
		lengths = append(lengths, l)
	}

	// Divide {2..lMax} into four near-equal groups. A divisor of 3.8 rather
	// than 4 keeps the top group from starving when len(lengths) isn't a
	// clean multiple of 4.
	const divisor = 3.8
	groups := make([][]int, 4)
	n := len(lengths)
	for i, l := range lengths {
		gi := int(float64(i) / (float64(n) / divisor))
		if gi > 3 {
			gi = 3
		}
		groups[gi] = append(groups[gi], l)
	}
	for gi := range groups {
		if len(groups[gi]) == 0 {
			groups[gi] = []int{lengths[len(lengths)-1]}
		}
	}

	var chosen []int
	for gi := 1; gi <= 3; gi++ {
		g := groups[gi]
		chosen = append(chosen, g[rnd.Upto(len(g))])
		chosen = append(chosen, g[rnd.Upto(len(g))])
	}

	lowest := groups[0]
	pickLowest := func() int {
		if level == core.Basic || level == core.Intermediate {
			return lowest[len(lowest)-1] // largest: singletons are harder to find, avoided
		}
		return lowest[rnd.Upto(len(lowest))]
	}
	chosen = append(chosen, pickLowest())
	if nShips == 8 {
		chosen = append(chosen, pickLowest())
	}

	sort.Sort(sort.Reverse(sort.IntSlice(chosen)))
	return chosen
}
