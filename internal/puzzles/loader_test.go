package puzzles

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"battleships-api/internal/core"
)

func samplePuzzles() []CompactPuzzle {
	// A 3x3 board with a single length-1 ship at (1,1).
	return []CompactPuzzle{
		{
			Puzzle:     "s1r0r1r0c0c1c0",
			Solution:   "Sy1x1z5",
			Difficulty: "b",
		},
		{
			Puzzle:     "s1r0r1r0c0c1c0",
			Solution:   "Sy1x1z5",
			Difficulty: "b",
		},
		{
			Puzzle:     "s1r0r1r0c0c1c0",
			Solution:   "Sy1x1z5",
			Difficulty: "i",
		},
	}
}

func TestNewLoaderFromPuzzles_CountAndCountByDifficulty(t *testing.T) {
	l := NewLoaderFromPuzzles(samplePuzzles())
	if l.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", l.Count())
	}
	if got := l.CountByDifficulty(core.Basic); got != 2 {
		t.Fatalf("CountByDifficulty(Basic) = %d, want 2", got)
	}
	if got := l.CountByDifficulty(core.Intermediate); got != 1 {
		t.Fatalf("CountByDifficulty(Intermediate) = %d, want 1", got)
	}
	if got := l.CountByDifficulty(core.Advanced); got != 0 {
		t.Fatalf("CountByDifficulty(Advanced) = %d, want 0", got)
	}
}

func TestLoader_GetPuzzle_DecodesCluesAndSolution(t *testing.T) {
	l := NewLoaderFromPuzzles(samplePuzzles())
	clues, solved, err := l.GetPuzzle(0)
	if err != nil {
		t.Fatalf("GetPuzzle: %v", err)
	}
	if clues.H != 3 || clues.W != 3 {
		t.Fatalf("H,W = %d,%d, want 3,3", clues.H, clues.W)
	}
	if solved.Get(1, 1) != core.One {
		t.Fatalf("solved(1,1) = %v, want One", solved.Get(1, 1))
	}
}

func TestLoader_GetPuzzle_IndexOutOfRange(t *testing.T) {
	l := NewLoaderFromPuzzles(samplePuzzles())
	if _, _, err := l.GetPuzzle(99); err == nil {
		t.Fatalf("expected out-of-range error")
	}
}

func TestLoader_GetPuzzleBySeed_Deterministic(t *testing.T) {
	l := NewLoaderFromPuzzles(samplePuzzles())
	_, _, idx1, err := l.GetPuzzleBySeed("same-seed", core.Basic)
	if err != nil {
		t.Fatalf("GetPuzzleBySeed: %v", err)
	}
	_, _, idx2, err := l.GetPuzzleBySeed("same-seed", core.Basic)
	if err != nil {
		t.Fatalf("GetPuzzleBySeed: %v", err)
	}
	if idx1 != idx2 {
		t.Fatalf("same seed produced different indices: %d vs %d", idx1, idx2)
	}
}

func TestLoader_GetPuzzleBySeed_NoPuzzlesForDifficulty(t *testing.T) {
	l := NewLoaderFromPuzzles(samplePuzzles())
	if _, _, _, err := l.GetPuzzleBySeed("x", core.Advanced); err == nil {
		t.Fatalf("expected error for difficulty with no puzzles")
	}
}

func TestLoader_GetDailyPuzzle_StableWithinDay(t *testing.T) {
	l := NewLoaderFromPuzzles(samplePuzzles())
	d := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	_, _, idx1, err := l.GetDailyPuzzle(d, core.Basic)
	if err != nil {
		t.Fatalf("GetDailyPuzzle: %v", err)
	}
	_, _, idx2, err := l.GetDailyPuzzle(d.Add(5*time.Hour), core.Basic)
	if err != nil {
		t.Fatalf("GetDailyPuzzle: %v", err)
	}
	if idx1 != idx2 {
		t.Fatalf("same UTC day produced different indices: %d vs %d", idx1, idx2)
	}
}

func TestLoad_ValidFile(t *testing.T) {
	content := `{
		"version": 1,
		"count": 1,
		"puzzles": [
			{"p": "s1r0r1r0c0c1c0", "sol": "Sy1x1z5", "d": "b"}
		]
	}`
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "puzzles.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	l, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if l.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", l.Count())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/puzzles.json"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestGlobalLoader_SetAndGet(t *testing.T) {
	l := NewLoaderFromPuzzles(samplePuzzles())
	SetGlobal(l)
	if Global() != l {
		t.Fatalf("Global() did not return the loader set via SetGlobal")
	}
}
