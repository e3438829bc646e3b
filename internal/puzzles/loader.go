// Package puzzles manages a pre-generated batch of puzzles, persisted as
// compact JSON and served by index, seed, or calendar date without ever
// invoking the generator at request time.
package puzzles

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"os"
	"sync"
	"time"

	"battleships-api/internal/core"
	"battleships-api/internal/wire"
	"battleships-api/pkg/constants"
)

// CompactPuzzle stores one pre-generated puzzle in wire format: the puzzle
// description string the generator produced, the matching solver move
// string, and the difficulty it was generated at.
type CompactPuzzle struct {
	Puzzle     string `json:"p"`
	Solution   string `json:"sol"`
	Difficulty string `json:"d"` // compact key, see constants.DifficultyKeys
}

// PuzzleFile is the top-level structure of the JSON batch file.
type PuzzleFile struct {
	Version int             `json:"version"`
	Count   int             `json:"count"`
	Puzzles []CompactPuzzle `json:"puzzles"`
}

// Loader manages an in-memory batch of pre-generated puzzles, indexed by
// difficulty for fast filtered lookup.
type Loader struct {
	puzzles   []CompactPuzzle
	byLevel   map[string][]int
	mu        sync.RWMutex
}

var (
	globalLoader *Loader
	loadOnce     sync.Once
	loadErr      error
)

// Load reads a puzzle batch from a JSON file.
func Load(path string) (*Loader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read puzzle file: %w", err)
	}

	var file PuzzleFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse puzzle file: %w", err)
	}

	return newLoader(file.Puzzles), nil
}

func newLoader(puzzles []CompactPuzzle) *Loader {
	byLevel := make(map[string][]int)
	for i, p := range puzzles {
		byLevel[p.Difficulty] = append(byLevel[p.Difficulty], i)
	}
	return &Loader{puzzles: puzzles, byLevel: byLevel}
}

// NewLoaderFromPuzzles builds a loader directly from puzzle data, for
// tests and for the generator CLI writing a fresh batch.
func NewLoaderFromPuzzles(puzzles []CompactPuzzle) *Loader {
	return newLoader(puzzles)
}

// LoadGlobal loads a puzzle batch into the process-wide singleton, once.
func LoadGlobal(path string) error {
	loadOnce.Do(func() {
		globalLoader, loadErr = Load(path)
	})
	return loadErr
}

// Global returns the process-wide loader instance.
func Global() *Loader {
	return globalLoader
}

// SetGlobal overrides the process-wide loader instance (for testing).
func SetGlobal(l *Loader) {
	globalLoader = l
}

// Count returns the number of puzzles in the batch.
func (l *Loader) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.puzzles)
}

// CountByDifficulty returns how many puzzles in the batch were generated
// at the given difficulty.
func (l *Loader) CountByDifficulty(level core.Level) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	key := constants.DifficultyKeys[level.String()]
	return len(l.byLevel[key])
}

// GetPuzzle returns the decoded clues and solved board for the puzzle at
// index, regardless of difficulty.
func (l *Loader) GetPuzzle(index int) (*core.Clues, *core.Board, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if index < 0 || index >= len(l.puzzles) {
		return nil, nil, fmt.Errorf("puzzle index %d out of range (0-%d)", index, len(l.puzzles)-1)
	}
	return decodeCompactPuzzle(l.puzzles[index])
}

func decodeCompactPuzzle(p CompactPuzzle) (*core.Clues, *core.Board, error) {
	clues, err := wire.ParsePuzzle(p.Puzzle)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding stored puzzle: %w", err)
	}
	mv, err := wire.ParseMove(p.Solution)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding stored solution: %w", err)
	}
	solved := core.NewBoard(clues.H, clues.W)
	if err := wire.ApplyMove(solved, mv); err != nil {
		return nil, nil, fmt.Errorf("applying stored solution: %w", err)
	}
	return clues, solved, nil
}

// GetPuzzleBySeed deterministically maps seed to a puzzle index among
// those generated at the given difficulty, via FNV hashing, and returns
// its clues, solved board, and the chosen index.
func (l *Loader) GetPuzzleBySeed(seed string, level core.Level) (*core.Clues, *core.Board, int, error) {
	l.mu.RLock()
	key := constants.DifficultyKeys[level.String()]
	indices := l.byLevel[key]
	l.mu.RUnlock()

	if len(indices) == 0 {
		return nil, nil, 0, fmt.Errorf("no puzzles loaded for difficulty %q", level.String())
	}

	h := fnv.New64a()
	h.Write([]byte(seed))
	pick := indices[h.Sum64()%uint64(len(indices))]

	clues, solved, err := l.GetPuzzle(pick)
	return clues, solved, pick, err
}

// GetDailyPuzzle returns the puzzle for a given UTC date and difficulty.
func (l *Loader) GetDailyPuzzle(date time.Time, level core.Level) (*core.Clues, *core.Board, int, error) {
	dateStr := date.UTC().Format(constants.DateFormat)
	seed := "daily:" + dateStr
	return l.GetPuzzleBySeed(seed, level)
}

// GetTodayPuzzle returns the puzzle for today (UTC) at the given difficulty.
func (l *Loader) GetTodayPuzzle(level core.Level) (*core.Clues, *core.Board, int, error) {
	return l.GetDailyPuzzle(time.Now(), level)
}
