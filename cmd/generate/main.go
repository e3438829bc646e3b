// Command generate builds a batch of pre-generated puzzles, one per
// (size, difficulty, index) combination, and writes them as the compact
// JSON format internal/puzzles.Loader reads.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"battleships-api/internal/battleships/generator"
	"battleships-api/internal/core"
	"battleships-api/internal/puzzles"
	"battleships-api/internal/wire"
	"battleships-api/pkg/constants"
)

type mathRand struct{ r *rand.Rand }

func (m mathRand) Upto(n int) int { return m.r.Intn(n) }
func (m mathRand) Shuffle(n int, swap func(i, j int)) { m.r.Shuffle(n, swap) }

func main() {
	perDifficulty := flag.Int("n", 2500, "Number of puzzles to generate per difficulty")
	h := flag.Int("h", 10, "Board height")
	w := flag.Int("w", 10, "Board width")
	output := flag.String("o", "puzzles.json", "Output file path")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: num CPUs)")
	startSeed := flag.Int64("seed", 1, "Starting seed value")
	callLimit := flag.Int("call-limit", 20000, "Exhaustive solver call-count cap during tuning")
	flag.Parse()

	if *workers <= 0 {
		*workers = runtime.NumCPU()
	}

	levels := []core.Level{core.Basic, core.Intermediate, core.Advanced, core.Unreasonable}
	total := *perDifficulty * len(levels)

	fmt.Printf("Generating %d puzzles (%d per difficulty, %dx%d) with %d workers...\n", total, *perDifficulty, *h, *w, *workers)
	start := time.Now()

	type job struct {
		level core.Level
		seed  int64
	}
	jobs := make(chan job, total)
	idx := 0
	for _, lvl := range levels {
		for i := 0; i < *perDifficulty; i++ {
			jobs <- job{level: lvl, seed: *startSeed + int64(idx)}
			idx++
		}
	}
	close(jobs)

	results := make(chan puzzles.CompactPuzzle, total)
	var generated int64

	done := make(chan bool)
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				g := atomic.LoadInt64(&generated)
				elapsed := time.Since(start)
				rate := float64(g) / elapsed.Seconds()
				fmt.Printf("  Progress: %d/%d (%.1f/sec)\n", g, total, rate)
			case <-done:
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for wkr := 0; wkr < *workers; wkr++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				cp, err := generateOne(*h, *w, j.level, j.seed, *callLimit)
				if err != nil {
					fmt.Fprintf(os.Stderr, "seed %d: %v\n", j.seed, err)
					continue
				}
				results <- cp
				atomic.AddInt64(&generated, 1)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
		done <- true
	}()

	var batch []puzzles.CompactPuzzle
	for cp := range results {
		batch = append(batch, cp)
	}

	elapsed := time.Since(start)
	fmt.Printf("Generated %d puzzles in %v (%.1f puzzles/sec)\n", len(batch), elapsed, float64(len(batch))/elapsed.Seconds())

	file := puzzles.PuzzleFile{Version: 1, Count: len(batch), Puzzles: batch}
	data, err := json.Marshal(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*output, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	info, _ := os.Stat(*output)
	fmt.Printf("Done! File size: %.2f MB\n", float64(info.Size())/1024/1024)
}

func generateOne(h, w int, level core.Level, seed int64, callLimit int) (puzzles.CompactPuzzle, error) {
	rnd := mathRand{r: rand.New(rand.NewSource(seed))}
	clues, sol, _, err := generator.GenerateWithSolution(core.Params{H: h, W: w, Difficulty: level}, rnd, callLimit)
	if err != nil {
		return puzzles.CompactPuzzle{}, err
	}
	return puzzles.CompactPuzzle{
		Puzzle:     wire.EncodePuzzle(clues),
		Solution:   wire.EncodeSolution(sol),
		Difficulty: constants.DifficultyKeys[level.String()],
	}, nil
}
