// Package placer implements the random valid-board sampler of spec.md
// §4.E: a recursive placement search identical in shape to the exhaustive
// solver's backtracking, but choosing a uniformly random candidate at each
// step instead of enumerating, and retrying on failure instead of
// continuing to the next candidate.
package placer

import (
	"github.com/pkg/errors"

	"battleships-api/internal/battleships/grid"
	"battleships-api/internal/core"
)

// ErrLimitExceeded is returned when the caller-supplied call-count cap is
// hit before a placement for every ship is found.
var ErrLimitExceeded = errors.New("placer: call limit exceeded")

// Rand is the randomness collaborator spec.md §9 asks to be injected
// rather than reached for globally, so placement is reproducible under a
// seeded source and testable under a fixed one.
type Rand interface {
	// Upto returns a uniform random integer in [0, n).
	Upto(n int) int
	// Shuffle randomizes the order of a slice of length n via swap.
	Shuffle(n int, swap func(i, j int))
}

// Place samples a random, non-touching placement of every ship in ships
// (in the given order) on an h x w board. callLimit bounds the total
// number of placement attempts across every ship and retry; callLimit <= 0
// means unbounded.
func Place(h, w int, ships []int, rnd Rand, callLimit int) (core.Solution, int, error) {
	p := &placer{h: h, w: w, ships: ships, rnd: rnd, limit: callLimit}
	if p.place(0) {
		sol := make(core.Solution, len(p.placements))
		copy(sol, p.placements)
		return sol, p.calls, nil
	}
	return nil, p.calls, ErrLimitExceeded
}

type placer struct {
	h, w  int
	ships []int
	rnd   Rand

	layers     [][]bool
	placements []core.ShipPlacement

	limit    int
	calls    int
	limitHit bool
}

// place recursively samples ship shipIdx's position, retrying on a
// rejected or ultimately-failed candidate (spec.md §4.E: "if the recursion
// fails, clear this layer and retry").
func (p *placer) place(shipIdx int) bool {
	if shipIdx == len(p.ships) {
		return true
	}
	length := p.ships[shipIdx]

	for {
		p.calls++
		if p.limit > 0 && p.calls > p.limit {
			p.limitHit = true
			return false
		}

		candidate := samplePlacement(p.h, p.w, length, p.rnd)
		if p.isBlocked(candidate) {
			continue
		}

		p.placements = append(p.placements, candidate)
		p.layers = append(p.layers, p.buildBlockedLayer(candidate))

		if p.place(shipIdx + 1) {
			return true
		}

		p.layers = p.layers[:len(p.layers)-1]
		p.placements = p.placements[:len(p.placements)-1]

		if p.limitHit {
			return false
		}
	}
}

func (p *placer) isBlocked(s core.ShipPlacement) bool {
	for _, c := range s.Cells() {
		idx := c[0]*p.w + c[1]
		for _, layer := range p.layers {
			if layer[idx] {
				return true
			}
		}
	}
	return false
}

func (p *placer) buildBlockedLayer(s core.ShipPlacement) []bool {
	layer := make([]bool, p.h*p.w)
	mark := func(y, x int) {
		if y < 0 || y >= p.h || x < 0 || x >= p.w {
			return
		}
		layer[y*p.w+x] = true
	}
	for _, c := range s.Cells() {
		mark(c[0], c[1])
		for _, d := range grid.Neighbors8(c[0], c[1]) {
			mark(d[0], d[1])
		}
	}
	return layer
}

// samplePlacement draws a uniform candidate placement for a ship of the
// given length. Horizontal positions occupy h*(w-length+1) of the sample
// space, vertical (h-length+1)*w; for length == 1 both orientations are
// sampled over the same h*w cells, which harmlessly doubles the odds of
// any given cell relative to a true uniform-over-cells distribution.
// spec.md §9 documents this as an accepted, reproducibility-preserving
// quirk rather than a bug to fix.
func samplePlacement(h, w, length int, rnd Rand) core.ShipPlacement {
	hCount, vCount := 0, 0
	if length <= w {
		hCount = h * (w - length + 1)
	}
	if length <= h {
		vCount = (h - length + 1) * w
	}

	idx := rnd.Upto(hCount + vCount)
	if idx < hCount {
		rowWidth := w - length + 1
		return core.ShipPlacement{Orientation: core.Horizontal, Y: idx / rowWidth, X: idx % rowWidth, Length: length}
	}
	idx -= hCount
	return core.ShipPlacement{Orientation: core.Vertical, Y: idx / w, X: idx % w, Length: length}
}
