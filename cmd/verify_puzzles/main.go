// Command verify_puzzles stress-tests a pre-generated batch file: for every
// puzzle it confirms the exhaustive solver agrees the stored solution is
// the unique one, and that the validator reports it solved.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"battleships-api/internal/battleships/exhaustive"
	"battleships-api/internal/battleships/validator"
	"battleships-api/internal/core"
	"battleships-api/internal/puzzles"
	"battleships-api/internal/wire"
)

type checkResult struct {
	Index      int
	Difficulty string
	Status     string // "ok", "non-unique", "no-solution", "mismatch", "limit-exceeded", "not-solved", "decode-error:<msg>", "error:<msg>"
	Calls      int
}

func checkPuzzle(idx int, cp puzzles.CompactPuzzle, callLimit int) checkResult {
	res := checkResult{Index: idx, Difficulty: cp.Difficulty}

	clues, err := wire.ParsePuzzle(cp.Puzzle)
	if err != nil {
		res.Status = "decode-error:" + err.Error()
		return res
	}
	storedMove, err := wire.ParseMove(cp.Solution)
	if err != nil {
		res.Status = "decode-error:" + err.Error()
		return res
	}
	stored := core.NewBoard(clues.H, clues.W)
	if err := wire.ApplyMove(stored, storedMove); err != nil {
		res.Status = "decode-error:" + err.Error()
		return res
	}

	sol, calls, err := exhaustive.Solve(clues, callLimit)
	res.Calls = calls
	switch err {
	case exhaustive.ErrNonUnique:
		res.Status = "non-unique"
		return res
	case exhaustive.ErrNoSolution:
		res.Status = "no-solution"
		return res
	case exhaustive.ErrLimitExceeded:
		res.Status = "limit-exceeded"
		return res
	case nil:
	default:
		res.Status = "error:" + err.Error()
		return res
	}

	found := core.NewBoard(clues.H, clues.W)
	for _, p := range sol {
		for i := 0; i < p.Length; i++ {
			y, x := p.CellAt(i)
			found.Set(y, x, core.Occ)
		}
	}
	for y := 0; y < clues.H; y++ {
		for x := 0; x < clues.W; x++ {
			a := stored.Get(y, x).IsKnownOccupied()
			b := found.Get(y, x).IsKnownOccupied()
			if a != b {
				res.Status = "mismatch"
				return res
			}
		}
	}

	vr := validator.Validate(clues, stored)
	if !vr.Solved {
		res.Status = "not-solved"
		return res
	}

	res.Status = "ok"
	return res
}

func main() {
	path := flag.String("f", "puzzles.json", "Puzzle batch file to verify")
	numWorkers := flag.Int("workers", 8, "Number of parallel workers")
	callLimit := flag.Int("call-limit", 20000, "Exhaustive solver call-count cap")
	flag.Parse()

	data, err := os.ReadFile(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", *path, err)
		os.Exit(1)
	}
	var file puzzles.PuzzleFile
	if err := json.Unmarshal(data, &file); err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse %s: %v\n", *path, err)
		os.Exit(1)
	}

	n := len(file.Puzzles)
	fmt.Printf("Verifying %d puzzles with %d workers...\n", n, *numWorkers)
	start := time.Now()

	jobs := make(chan int, n)
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	results := make(chan checkResult, n)
	var completed int64

	var wg sync.WaitGroup
	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results <- checkPuzzle(idx, file.Puzzles[idx], *callLimit)
				atomic.AddInt64(&completed, 1)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var all []checkResult
	for r := range results {
		all = append(all, r)
	}

	elapsed := time.Since(start)
	counts := map[string]int{}
	for _, r := range all {
		counts[r.Status]++
	}

	fmt.Printf("\nDone in %v (%.1f/sec)\n", elapsed, float64(n)/elapsed.Seconds())
	var statuses []string
	for s := range counts {
		statuses = append(statuses, s)
	}
	sort.Strings(statuses)
	for _, s := range statuses {
		fmt.Printf("  %-16s %d\n", s, counts[s])
	}

	if counts["ok"] != n {
		fmt.Printf("\nFAILED: %d/%d puzzles did not verify cleanly\n", n-counts["ok"], n)
		os.Exit(1)
	}
	fmt.Println("\nSUCCESS: every puzzle verified")
}
