package generator

import (
	"battleships-api/internal/battleships/grid"
	"battleships-api/internal/battleships/placer"
	"battleships-api/internal/core"
)

// disclosureParams holds the difficulty-dependent constants of spec.md
// §4.F step 3.
type disclosureParams struct {
	sumsHidden int
	iniVacant  int
	iniOccupied,
	iniTyped int
}

func computeDisclosureParams(h, w int, shipsSum int, level core.Level, rnd placer.Rand) disclosureParams {
	var p disclosureParams

	switch level {
	case core.Basic, core.Intermediate:
		p.sumsHidden = 0
	case core.Advanced:
		p.sumsHidden = (h+w)/10 + rnd.Upto(2)
	case core.Unreasonable:
		p.sumsHidden = 2*(h+w)/10 + rnd.Upto(3)
	}

	alpha := [...]float64{0.2, 0.1, 0.05, 0}[level]
	p.iniVacant = round(float64(h*w-shipsSum) * alpha)

	totalFrac := [...]float64{0.6, 0.3, 0.2, 0.15}[level]
	occFrac := rnd.Upto(1001) // uniform split of totalFrac between plain-Occ and typed
	split := float64(occFrac) / 1000.0
	p.iniOccupied = round(float64(shipsSum) * totalFrac * split)
	p.iniTyped = round(float64(shipsSum)*totalFrac) - p.iniOccupied
	if p.iniTyped < 0 {
		p.iniTyped = 0
	}
	return p
}

func round(f float64) int {
	if f < 0 {
		return -round(-f)
	}
	return int(f + 0.5)
}

// cellInfo pairs a ship-occupied cell with the typed state it would take
// if fully disclosed (its end/inner/one symbol), derived from the sampled
// solution's placements.
type cellInfo struct {
	y, x  int
	typed core.CellState
}

// truth holds the ground-truth facts of a sampled solution: exact row and
// column occupied counts, and the disclosed-type each occupied cell would
// show if fully identified. The tuning loop keeps this around so any later
// disclosure or sum restoration it makes is always consistent with the
// original sample, not merely with whatever has already been revealed.
type truth struct {
	rows, cols []int
	occupied   map[[2]int]cellInfo
}

func computeTruth(h, w int, sol core.Solution) truth {
	t := truth{rows: make([]int, h), cols: make([]int, w), occupied: map[[2]int]cellInfo{}}
	for _, p := range sol {
		for i := 0; i < p.Length; i++ {
			y, x := p.CellAt(i)
			t.rows[y]++
			t.cols[x]++
			t.occupied[[2]int{y, x}] = cellInfo{y: y, x: x, typed: grid.TypedStateFor(p, i)}
		}
	}
	return t
}

// deriveClues is step 3 of spec.md §4.F: turn a sampled placement into a
// full Clues, picking hidden row/column sums and disclosed cells according
// to the difficulty-dependent parameters.
func deriveClues(h, w int, ships []int, t truth, level core.Level, rnd placer.Rand) *core.Clues {
	rows := append([]int(nil), t.rows...)
	cols := append([]int(nil), t.cols...)
	occupied := t.occupied

	shipsSum := 0
	for _, s := range ships {
		shipsSum += s
	}
	params := computeDisclosureParams(h, w, shipsSum, level, rnd)

	// Hide sums_hidden of the H+W row/column totals.
	hideOrder := make([]int, h+w)
	for i := range hideOrder {
		hideOrder[i] = i
	}
	rnd.Shuffle(len(hideOrder), func(i, j int) { hideOrder[i], hideOrder[j] = hideOrder[j], hideOrder[i] })
	for k := 0; k < params.sumsHidden && k < len(hideOrder); k++ {
		idx := hideOrder[k]
		if idx < h {
			rows[idx] = core.HiddenSum
		} else {
			cols[idx-h] = core.HiddenSum
		}
	}

	init := core.NewBoard(h, w)

	var occCells []cellInfo
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if info, ok := occupied[[2]int{y, x}]; ok {
				occCells = append(occCells, info)
			}
		}
	}
	var vacCells [][2]int
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if _, ok := occupied[[2]int{y, x}]; !ok {
				vacCells = append(vacCells, [2]int{y, x})
			}
		}
	}

	rnd.Shuffle(len(occCells), func(i, j int) { occCells[i], occCells[j] = occCells[j], occCells[i] })
	rnd.Shuffle(len(vacCells), func(i, j int) { vacCells[i], vacCells[j] = vacCells[j], vacCells[i] })

	total := params.iniOccupied + params.iniTyped
	if total > len(occCells) {
		total = len(occCells)
	}
	for i := 0; i < total; i++ {
		info := occCells[i]
		if i < params.iniTyped {
			init.Set(info.y, info.x, info.typed)
		} else {
			init.Set(info.y, info.x, core.Occ)
		}
	}

	nVac := params.iniVacant
	if nVac > len(vacCells) {
		nVac = len(vacCells)
	}
	for i := 0; i < nVac; i++ {
		c := vacCells[i]
		init.Set(c[0], c[1], core.Vacant)
	}

	return core.NewClues(h, w, ships, rows, cols, init)
}

