// Package http registers the HTTP surface through which a host drives the
// core: a new puzzle, board validation, move application, and the
// exhaustive solver, all speaking the wire strings of spec.md §6.
package http

import (
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"battleships-api/internal/battleships/exhaustive"
	"battleships-api/internal/battleships/generator"
	"battleships-api/internal/battleships/validator"
	"battleships-api/internal/core"
	"battleships-api/internal/puzzles"
	"battleships-api/internal/wire"
	"battleships-api/pkg/config"
	"battleships-api/pkg/constants"
)

var cfg *config.Config

// RegisterRoutes wires the core's HTTP surface onto r.
func RegisterRoutes(r *gin.Engine, c *config.Config) {
	cfg = c

	r.GET("/health", healthHandler)

	api := r.Group("/api")
	{
		api.POST("/new_game", newGameHandler)
		api.POST("/validate", validateHandler)
		api.POST("/execute_move", executeMoveHandler)
		api.POST("/solve_game", solveGameHandler)
	}
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": constants.APIVersion,
	})
}

// NewGameRequest requests a puzzle at the given size and difficulty. Seed,
// if set, selects deterministically among the pre-generated batch (or
// seeds the on-demand generator when none is loaded or none match).
type NewGameRequest struct {
	H          int    `json:"h" binding:"required"`
	W          int    `json:"w" binding:"required"`
	Difficulty int    `json:"difficulty"`
	Seed       string `json:"seed"`
}

func newGameHandler(c *gin.Context) {
	var req NewGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	level, err := core.LevelFromInt(req.Difficulty)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	params := core.Params{H: req.H, W: req.W, Difficulty: level}
	if err := params.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if loader := puzzles.Global(); loader != nil {
		seed := req.Seed
		if seed == "" {
			seed = time.Now().UTC().Format("2006-01-02T15:04:05")
		}
		clues, _, idx, err := loader.GetPuzzleBySeed(seed, level)
		if err == nil && clues.H == req.H && clues.W == req.W {
			c.JSON(http.StatusOK, gin.H{
				"puzzle":       wire.EncodePuzzle(clues),
				"puzzle_index": idx,
			})
			return
		}
	}

	rnd := rand.New(rand.NewSource(seedFor(req.Seed)))
	clues, trace, err := generator.Generate(params, rnd, cfg.ExhaustiveLimit)
	if err != nil {
		log.Printf("ERROR [new_game]: generator gave up after %d iterations: %v", trace.Iterations, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate puzzle"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"puzzle":       wire.EncodePuzzle(clues),
		"puzzle_index": -1,
	})
}

func seedFor(s string) int64 {
	if s == "" {
		return time.Now().UnixNano()
	}
	var h int64 = 0
	for _, r := range s {
		h = h*31 + int64(r)
	}
	return h
}

// boardStateRequest is the shape shared by every handler that receives the
// player's current board: the puzzle description string, reused verbatim
// as the board-state encoding since spec.md §6 defines no separate one.
type boardStateRequest struct {
	State string `json:"state" binding:"required"`
}

func validateHandler(c *gin.Context) {
	var req boardStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	clues, err := wire.ParsePuzzle(req.State)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := validator.Validate(clues, clues.Init)
	c.JSON(http.StatusOK, gin.H{
		"cell_errors":   res.CellErr,
		"diag_errors":   res.DiagErr,
		"row_errors":    res.RowErr,
		"col_errors":    res.ColErr,
		"ships_error":   res.ShipsErr,
		"solved":        res.Solved,
	})
}

// ExecuteMoveRequest applies a single move to a board state, returning the
// updated state re-encoded the same way.
type ExecuteMoveRequest struct {
	State string `json:"state" binding:"required"`
	Move  string `json:"move" binding:"required"`
}

func executeMoveHandler(c *gin.Context) {
	var req ExecuteMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	clues, err := wire.ParsePuzzle(req.State)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mv, err := wire.ParseMove(req.Move)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := wire.ApplyMove(clues.Init, mv); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state": wire.EncodePuzzle(clues),
	})
}

// SolveGameRequest asks the exhaustive solver for the unique solution of a
// puzzle, bounded by the host's configured call-count cap.
type SolveGameRequest struct {
	Puzzle string `json:"puzzle" binding:"required"`
}

func solveGameHandler(c *gin.Context) {
	var req SolveGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	clues, err := wire.ParsePuzzle(req.Puzzle)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sol, _, err := exhaustive.Solve(clues, cfg.ExhaustiveLimit)
	switch err {
	case nil:
		c.JSON(http.StatusOK, gin.H{"solution": wire.EncodeSolution(sol)})
	case exhaustive.ErrNonUnique:
		c.JSON(http.StatusOK, gin.H{"error": "Multiple solutions exist"})
	case exhaustive.ErrNoSolution:
		c.JSON(http.StatusOK, gin.H{"error": "No solution exists"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
