package logical

import "battleships-api/internal/core"

// ruleRowColCounting is R2 of spec.md §4.C: for each row/column with a
// visible total, compare known-occupied and remaining-Undef counts against
// it; if they already match, resolve the row/column. Hidden rows/columns
// are handled collectively against the aggregate ships_sum-rows_sum
// (ships_sum-cols_sum) budget.
func ruleRowColCounting(clues *core.Clues, b *core.Board) bool {
	changed := false

	for y := 0; y < clues.H; y++ {
		if clues.Rows[y] == core.HiddenSum {
			continue
		}
		occ, undef := countLineRow(b, y)
		if occ == clues.Rows[y] {
			if fillLineRowUndef(b, y, core.Vacant) {
				changed = true
			}
		} else if occ+undef == clues.Rows[y] {
			if fillLineRowUndef(b, y, core.Occ) {
				changed = true
			}
		}
	}

	for x := 0; x < clues.W; x++ {
		if clues.Cols[x] == core.HiddenSum {
			continue
		}
		occ, undef := countLineCol(b, x)
		if occ == clues.Cols[x] {
			if fillLineColUndef(b, x, core.Vacant) {
				changed = true
			}
		} else if occ+undef == clues.Cols[x] {
			if fillLineColUndef(b, x, core.Occ) {
				changed = true
			}
		}
	}

	if hasHiddenRow(clues) {
		occ, undef := countHiddenRows(b, clues)
		budget := clues.HiddenRowsBudget()
		if occ == budget {
			if fillHiddenRowsUndef(b, clues, core.Vacant) {
				changed = true
			}
		} else if occ+undef == budget {
			if fillHiddenRowsUndef(b, clues, core.Occ) {
				changed = true
			}
		}
	}

	if hasHiddenCol(clues) {
		occ, undef := countHiddenCols(b, clues)
		budget := clues.HiddenColsBudget()
		if occ == budget {
			if fillHiddenColsUndef(b, clues, core.Vacant) {
				changed = true
			}
		} else if occ+undef == budget {
			if fillHiddenColsUndef(b, clues, core.Occ) {
				changed = true
			}
		}
	}

	return changed
}

func countLineRow(b *core.Board, y int) (occ, undef int) {
	for x := 0; x < b.W; x++ {
		switch {
		case b.Get(y, x).IsKnownOccupied():
			occ++
		case b.Get(y, x) == core.Undef:
			undef++
		}
	}
	return
}

func countLineCol(b *core.Board, x int) (occ, undef int) {
	for y := 0; y < b.H; y++ {
		switch {
		case b.Get(y, x).IsKnownOccupied():
			occ++
		case b.Get(y, x) == core.Undef:
			undef++
		}
	}
	return
}

func fillLineRowUndef(b *core.Board, y int, s core.CellState) bool {
	changed := false
	for x := 0; x < b.W; x++ {
		if b.Get(y, x) == core.Undef && b.Write(y, x, s) {
			changed = true
		}
	}
	return changed
}

func fillLineColUndef(b *core.Board, x int, s core.CellState) bool {
	changed := false
	for y := 0; y < b.H; y++ {
		if b.Get(y, x) == core.Undef && b.Write(y, x, s) {
			changed = true
		}
	}
	return changed
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

func countHiddenRows(b *core.Board, clues *core.Clues) (occ, undef int) {
	for y, r := range clues.Rows {
		if r != core.HiddenSum {
			continue
		}
		o, u := countLineRow(b, y)
		occ += o
		undef += u
	}
	return
}

func countHiddenCols(b *core.Board, clues *core.Clues) (occ, undef int) {
	for x, c := range clues.Cols {
		if c != core.HiddenSum {
			continue
		}
		o, u := countLineCol(b, x)
		occ += o
		undef += u
	}
	return
}

func fillHiddenRowsUndef(b *core.Board, clues *core.Clues, s core.CellState) bool {
	changed := false
	for y, r := range clues.Rows {
		if r != core.HiddenSum {
			continue
		}
		if fillLineRowUndef(b, y, s) {
			changed = true
		}
	}
	return changed
}

func fillHiddenColsUndef(b *core.Board, clues *core.Clues, s core.CellState) bool {
	changed := false
	for x, c := range clues.Cols {
		if c != core.HiddenSum {
			continue
		}
		if fillLineColUndef(b, x, s) {
			changed = true
		}
	}
	return changed
}
