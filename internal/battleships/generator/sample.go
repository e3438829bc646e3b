package generator

import (
	"sort"

	"battleships-api/internal/battleships/placer"
	"battleships-api/internal/core"
)

// sampleBoard is step 2 of spec.md §4.F: sample a board via the Random
// Placer with a call-count cap, and on repeated failure remove the
// median-index ship and retry with the reduced multiset.
func sampleBoard(h, w int, ships []int, rnd placer.Rand, callLimit, attemptBudget int) (core.Solution, []int, int, error) {
	remaining := append([]int(nil), ships...)
	retries := 0

	for {
		sol, _, err := placer.Place(h, w, remaining, rnd, callLimit)
		if err == nil {
			return sol, remaining, retries, nil
		}
		retries++
		if retries >= attemptBudget && len(remaining) > 1 {
			remaining = removeMedian(remaining)
			retries = 0
			continue
		}
		if retries >= attemptBudget {
			return nil, nil, retries, err
		}
	}
}

// removeMedian drops the median-index ship length from a descending-sorted
// slice, keeping the result sorted.
func removeMedian(ships []int) []int {
	out := append([]int(nil), ships...)
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	mid := len(out) / 2
	return append(out[:mid], out[mid+1:]...)
}
