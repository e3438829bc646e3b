// Package generator implements component F of spec.md §4.F: random
// instance generation targeting a requested difficulty, by sampling a
// hidden board and then tuning the clue set until the solvers agree it
// meets the difficulty's acceptance contract.
package generator

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"battleships-api/internal/battleships/exhaustive"
	"battleships-api/internal/battleships/logical"
	"battleships-api/internal/battleships/placer"
	"battleships-api/internal/core"
	"battleships-api/pkg/constants"
)

// Debug is the package-level trace logger for the tuning loop, a no-op by
// default (see internal/battleships/exhaustive for the same pattern).
var Debug = zerolog.Nop()

// ErrGaveUp is returned when the tuning loop exhausts its iteration budget
// without reaching an acceptable instance.
var ErrGaveUp = errors.New("generator: gave up tuning after max iterations")

// maxTuningIterations bounds step 4's loop; termination is expected well
// before this in practice (spec.md §4.F: "bounded in expectation").
const maxTuningIterations = constants.GeneratorMaxTuningIters

// unreasonableCallFloor is the minimum exhaustive-solver call count spec.md
// §4.F requires as a lower bound on Unreasonable difficulty.
const unreasonableCallFloor = 50

// exhaustiveCallLimit bounds a single Unreasonable-tuning exhaustive run.
const exhaustiveCallLimit = constants.DefaultExhaustiveCallLimit

// GenTrace records the tuning loop's path for diagnostics (logged by the
// new-game HTTP handler when generation fails, never returned to the
// player).
type GenTrace struct {
	Iterations       int
	ShipsChosen      []int
	PlacementRetries int
	FinalLogical     core.LogicalStatus
	FinalCalls       int
}

// Generate builds a puzzle instance for params, sampling randomness from
// rnd. callLimit bounds each exhaustive-solver invocation during tuning (0
// uses the package default).
func Generate(params core.Params, rnd placer.Rand, callLimit int) (*core.Clues, GenTrace, error) {
	clues, _, trace, err := GenerateWithSolution(params, rnd, callLimit)
	return clues, trace, err
}

// GenerateWithSolution is Generate, additionally returning the sampled
// ground-truth solution — needed by cmd/generate to persist a pre-built
// batch's answer key alongside each puzzle.
func GenerateWithSolution(params core.Params, rnd placer.Rand, callLimit int) (*core.Clues, core.Solution, GenTrace, error) {
	if err := params.Validate(); err != nil {
		return nil, nil, GenTrace{}, errors.Wrap(err, "generator: invalid params")
	}
	if callLimit <= 0 {
		callLimit = exhaustiveCallLimit
	}

	h, w, level := params.H, params.W, params.Difficulty
	requested := chooseShips(h, w, level, rnd)

	sol, ships, retries, err := sampleBoard(h, w, requested, rnd, constants.GeneratorSampleCallLimit, constants.GeneratorSampleAttempts)
	if err != nil {
		return nil, nil, GenTrace{}, errors.Wrap(err, "generator: sampling board")
	}

	t := computeTruth(h, w, sol)
	clues := deriveClues(h, w, ships, t, level, rnd)
	trace := GenTrace{ShipsChosen: ships, PlacementRetries: retries}

	fastReturn := false
	for iter := 0; iter < maxTuningIterations; iter++ {
		trace.Iterations = iter + 1

		lr := logical.Solve(clues, level)
		trace.FinalLogical = lr.Status

		accepted, tooEasy := evaluateAcceptance(clues, level, lr, callLimit, &trace)
		Debug.Debug().Int("iter", iter).Str("status", lr.Status.String()).Bool("accepted", accepted).Msg("generator tuning iteration")

		if accepted && (fastReturn || !tooEasy) {
			return clues, sol, trace, nil
		}

		if tooEasy {
			makeHarder(clues, t, rnd)
			continue
		}

		outcome := evaluateHardness(clues, level, lr, callLimit, &trace)
		switch outcome {
		case outcomeAmbiguous:
			resolveAmbiguity(clues, t, rnd)
			fastReturn = true
		case outcomeTooHard:
			makeEasier(clues, t, lr.Board, rnd)
			fastReturn = true
		case outcomeAccept:
			return clues, sol, trace, nil
		}
	}

	return nil, nil, trace, ErrGaveUp
}

type hardnessOutcome int

const (
	outcomeAccept hardnessOutcome = iota
	outcomeAmbiguous
	outcomeTooHard
)

// evaluateAcceptance checks the per-difficulty contract of spec.md §4.F
// step 4 against a Logical Solver result, running the Exhaustive Solver
// too when the difficulty is Unreasonable. It returns whether the instance
// is currently acceptable, and whether it looks too easy for the level.
func evaluateAcceptance(clues *core.Clues, level core.Level, lr logical.Result, callLimit int, trace *GenTrace) (accepted, tooEasy bool) {
	switch level {
	case core.Basic, core.Intermediate:
		return lr.Status == core.SolvedBySimple, false
	case core.Advanced:
		if lr.Status == core.SolvedUsingAdvanced {
			return true, false
		}
		if lr.Status == core.SolvedBySimple {
			return true, true
		}
		return false, false
	case core.Unreasonable:
		if lr.Status != core.Stuck {
			return false, true
		}
		_, calls, err := exhaustive.Solve(clues, callLimit)
		trace.FinalCalls = calls
		if err == exhaustive.ErrNoSolution || err == exhaustive.ErrNonUnique {
			return false, false
		}
		if calls < unreasonableCallFloor {
			return false, true
		}
		return true, false
	}
	return false, false
}

// evaluateHardness is invoked only when evaluateAcceptance found the
// instance unacceptable and not too easy: it distinguishes "no solution /
// too hard" from Unreasonable's "ambiguous" case.
func evaluateHardness(clues *core.Clues, level core.Level, lr logical.Result, callLimit int, trace *GenTrace) hardnessOutcome {
	if level != core.Unreasonable {
		return outcomeTooHard
	}
	sols, calls, err := exhaustive.FindUpToTwo(clues, callLimit)
	trace.FinalCalls = calls
	if err == exhaustive.ErrNonUnique && len(sols) >= 2 {
		return outcomeAmbiguous
	}
	return outcomeTooHard
}

// makeHarder implements spec.md §4.F's "too easy" branch: either hide one
// more row/column sum, or remove one disclosure from init, chosen
// uniformly.
func makeHarder(clues *core.Clues, t truth, rnd placer.Rand) {
	if rnd.Upto(2) == 0 {
		if hideOneSum(clues, rnd) {
			return
		}
	}
	removeOneDisclosure(clues, rnd)
}

// makeEasier implements the "too hard" branch: with probabilities roughly
// 1:3:1, either restore a hidden sum, disclose a cell plainly, or disclose
// a cell as typed, choosing among cells the logical solver left Undef on
// solverBoard (the post-fixed-point board from the Logical Solver's last
// run), not merely undisclosed in clues.Init. A disclosure shows the
// sampled solution's state of the chosen cell: the plain branch writes Occ
// for an occupied cell and the typed branch writes Vacant for an empty
// one, so neither branch always discloses the state its name suggests.
func makeEasier(clues *core.Clues, t truth, solverBoard *core.Board, rnd placer.Rand) {
	switch rnd.Upto(5) {
	case 0:
		if restoreOneSum(clues, t, rnd) {
			return
		}
	case 1, 2, 3:
		if discloseUndisclosed(clues, t, solverBoard, rnd, false) {
			return
		}
	case 4:
		if discloseUndisclosed(clues, t, solverBoard, rnd, true) {
			return
		}
	}
	// Fall through to whichever branch still has room, so the loop keeps
	// making progress instead of repeating a no-op.
	if restoreOneSum(clues, t, rnd) {
		return
	}
	discloseUndisclosed(clues, t, solverBoard, rnd, false)
}

// resolveAmbiguity implements spec.md §4.F's ambiguous branch: among the
// cells where the two found solutions disagree, pick one uniformly and
// disclose it at its true (sampled) state. The sample stays a solution,
// and at least one of the two found solutions disagrees with the
// disclosed cell, so at least one of them is ruled out.
func resolveAmbiguity(clues *core.Clues, t truth, rnd placer.Rand) {
	sols, _, err := exhaustive.FindUpToTwo(clues, exhaustiveCallLimit)
	if err != exhaustive.ErrNonUnique || len(sols) < 2 {
		return
	}
	occA := occupiedSet(sols[0])
	occB := occupiedSet(sols[1])

	var diffs [][2]int
	for c := range occA {
		if !occB[c] {
			diffs = append(diffs, c)
		}
	}
	for c := range occB {
		if !occA[c] {
			diffs = append(diffs, c)
		}
	}
	if len(diffs) == 0 {
		return
	}
	sort.Slice(diffs, func(i, j int) bool {
		if diffs[i][0] != diffs[j][0] {
			return diffs[i][0] < diffs[j][0]
		}
		return diffs[i][1] < diffs[j][1]
	})
	pick := diffs[rnd.Upto(len(diffs))]
	if info, ok := t.occupied[pick]; ok {
		clues.Init.Write(pick[0], pick[1], info.typed)
	} else {
		clues.Init.Set(pick[0], pick[1], core.Vacant)
	}
}

func occupiedSet(sol core.Solution) map[[2]int]bool {
	out := map[[2]int]bool{}
	for _, p := range sol {
		for _, c := range p.Cells() {
			out[c] = true
		}
	}
	return out
}

func hideOneSum(clues *core.Clues, rnd placer.Rand) bool {
	var candidates []int // negative-1-biased index: 0..H-1 rows, H..H+W-1 cols
	for y := 0; y < clues.H; y++ {
		if clues.Rows[y] != core.HiddenSum {
			candidates = append(candidates, y)
		}
	}
	for x := 0; x < clues.W; x++ {
		if clues.Cols[x] != core.HiddenSum {
			candidates = append(candidates, clues.H+x)
		}
	}
	if len(candidates) == 0 {
		return false
	}
	idx := candidates[rnd.Upto(len(candidates))]
	if idx < clues.H {
		clues.RowsSum -= clues.Rows[idx]
		clues.Rows[idx] = core.HiddenSum
	} else {
		x := idx - clues.H
		clues.ColsSum -= clues.Cols[x]
		clues.Cols[x] = core.HiddenSum
	}
	return true
}

func restoreOneSum(clues *core.Clues, t truth, rnd placer.Rand) bool {
	var candidates []int
	for y := 0; y < clues.H; y++ {
		if clues.Rows[y] == core.HiddenSum {
			candidates = append(candidates, y)
		}
	}
	for x := 0; x < clues.W; x++ {
		if clues.Cols[x] == core.HiddenSum {
			candidates = append(candidates, clues.H+x)
		}
	}
	if len(candidates) == 0 {
		return false
	}
	idx := candidates[rnd.Upto(len(candidates))]
	if idx < clues.H {
		clues.Rows[idx] = t.rows[idx]
		clues.RowsSum += clues.Rows[idx]
	} else {
		x := idx - clues.H
		clues.Cols[x] = t.cols[x]
		clues.ColsSum += clues.Cols[x]
	}
	return true
}

func removeOneDisclosure(clues *core.Clues, rnd placer.Rand) bool {
	var candidates [][2]int
	for y := 0; y < clues.H; y++ {
		for x := 0; x < clues.W; x++ {
			if clues.Init.Get(y, x) != core.Undef {
				candidates = append(candidates, [2]int{y, x})
			}
		}
	}
	if len(candidates) == 0 {
		return false
	}
	c := candidates[rnd.Upto(len(candidates))]
	clues.Init.Set(c[0], c[1], core.Undef)
	return true
}

// discloseUndisclosed adds one new disclosure among cells solverBoard (the
// Logical Solver's post-fixed-point board) left Undef, preferring them to
// maximise information gain; typed requests a fully-typed disclosure (the
// cell's true end/inner/one symbol from t), otherwise a plain Vacant/Occ
// one reflecting the sampled solution's truth.
func discloseUndisclosed(clues *core.Clues, t truth, solverBoard *core.Board, rnd placer.Rand, typed bool) bool {
	var candidates [][2]int
	for y := 0; y < clues.H; y++ {
		for x := 0; x < clues.W; x++ {
			if solverBoard.Get(y, x) == core.Undef {
				candidates = append(candidates, [2]int{y, x})
			}
		}
	}
	if len(candidates) == 0 {
		return false
	}
	c := candidates[rnd.Upto(len(candidates))]
	info, occupied := t.occupied[c]
	switch {
	case !occupied:
		clues.Init.Set(c[0], c[1], core.Vacant)
	case typed:
		clues.Init.Set(c[0], c[1], info.typed)
	default:
		clues.Init.Set(c[0], c[1], core.Occ)
	}
	return true
}
