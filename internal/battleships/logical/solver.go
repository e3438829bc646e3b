// Package logical implements the deductive (non-guessing) solver of
// spec.md §4.C: a fixed-point application of rules R1 (the propagator) and
// R2..R5, with R4 and R5 gated to Level >= Advanced.
package logical

import (
	"battleships-api/internal/battleships/propagator"
	"battleships-api/internal/core"
)

// Result is the outcome of one Solve call.
type Result struct {
	Board    *core.Board
	OccCount int
	VacCount int
	Status   core.LogicalStatus
}

// Solve runs the deductive solver over a clone of clues.Init (clues.Init is
// never mutated) until no rule changes the board. Every round applies R2
// and R3; for Level >= Advanced, the advanced rules (R4, R5) are applied
// only in a round where R2 and R3 changed nothing, and the status becomes
// SolvedUsingAdvanced once one of them has changed the board. The loop
// ends at the first round in which no applied rule changes the board.
func Solve(clues *core.Clues, level core.Level) Result {
	b := clues.Init.Clone()
	propagator.Propagate(b)

	usedAdvanced := false
	advanced := level >= core.Advanced

	for {
		changed := ruleRowColCounting(clues, b)
		if ruleRunLength(clues, b) {
			changed = true
		}

		if advanced && !changed {
			before := b.Checksum()
			if ruleGapTooSmall(clues, b) {
				changed = true
				usedAdvanced = true
			}
			if ruleForcedPlacement(clues, b) {
				changed = true
				usedAdvanced = true
			}
			if b.Checksum() != before {
				propagator.Propagate(b)
			}
		}

		if changed {
			propagator.Propagate(b)
		} else {
			break
		}
	}

	occ, vac := countOccVac(b)
	status := core.SolvedBySimple
	if usedAdvanced {
		status = core.SolvedUsingAdvanced
	}
	if occ != clues.ShipsSum {
		status = core.Stuck
	}
	return Result{Board: b, OccCount: occ, VacCount: vac, Status: status}
}

func countOccVac(b *core.Board) (occ, vac int) {
	for _, c := range b.Cells {
		switch {
		case c.IsKnownOccupied():
			occ++
		case c == core.Vacant:
			vac++
		}
	}
	return
}
