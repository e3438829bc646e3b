package logical

import (
	"battleships-api/internal/battleships/grid"
	"battleships-api/internal/core"
)

// unfinishedState summarizes, for the current board, how many ships of each
// length required by clues.Ships are not yet accounted for by a completed
// (fully typed) shape on the board — the input to rules R3, R4, and R5.
type unfinishedState struct {
	remaining []int // remaining[length] = required count - completed count, length in [0, maxLen]
	maxLen    int
}

func computeUnfinished(clues *core.Clues, b *core.Board) unfinishedState {
	maxLen := 0
	for _, s := range clues.Ships {
		if s > maxLen {
			maxLen = s
		}
	}
	required := make([]int, maxLen+1)
	for _, s := range clues.Ships {
		required[s]++
	}
	completed, _ := grid.ComplShipsDistr(b, maxLen) // completed[length-1]
	remaining := make([]int, maxLen+1)
	for length := 1; length <= maxLen; length++ {
		r := required[length] - completed[length-1]
		if r > 0 {
			remaining[length] = r
		}
	}
	return unfinishedState{remaining: remaining, maxLen: maxLen}
}

// longest returns the length of the longest unfinished ship and how many
// unfinished ships share that length. ok is false if every ship is
// accounted for.
func (u unfinishedState) longest() (length, count int, ok bool) {
	for l := u.maxLen; l >= 1; l-- {
		if u.remaining[l] > 0 {
			return l, u.remaining[l], true
		}
	}
	return 0, 0, false
}

// shortest returns the length of the shortest unfinished ship.
func (u unfinishedState) shortest() (length int, ok bool) {
	for l := 1; l <= u.maxLen; l++ {
		if u.remaining[l] > 0 {
			return l, true
		}
	}
	return 0, false
}
