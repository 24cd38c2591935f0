package main

import (
	"fmt"
	"sync"
	"time"
)

// SolveResult is the outcome of one solve request.
type SolveResult struct {
	Best       Move
	HasBest    bool
	Top        []Move
	Candidates int
	Duration   time.Duration
	SolvedAt   time.Time
}

// SolveController owns the most recent puzzle and its result. Handlers
// and the websocket hub read through it instead of sharing solver
// state.
type SolveController struct {
	mu         sync.Mutex
	grid       Grid
	pieces     []Shape
	last       SolveResult
	hasPuzzle  bool
	solveCount int
}

func NewSolveController() *SolveController {
	return &SolveController{}
}

// Solve validates the inputs, runs the full search, records the result,
// and returns it. Validation failures surface before any search runs.
func (sc *SolveController) Solve(grid Grid, pieces []Shape, topN int) (SolveResult, error) {
	config := GetConfig()
	if len(pieces) == 0 {
		return SolveResult{}, fmt.Errorf("%w: no pieces", ErrInvalidPiece)
	}
	if config.MaxPieces > 0 && len(pieces) > config.MaxPieces {
		return SolveResult{}, fmt.Errorf("%w: %d pieces, at most %d allowed", ErrInvalidPiece, len(pieces), config.MaxPieces)
	}
	if topN <= 0 {
		topN = config.SolverTopMoves
	}

	moves, stats := enumerateMoves(grid, pieces, config)

	result := SolveResult{
		Candidates: stats.Candidates,
		Duration:   stats.Duration,
		SolvedAt:   stats.Start,
	}
	if best, ok := bestOf(moves); ok {
		result.Best = best
		result.HasBest = true
		result.Top = rankMoves(moves, topN)
	}

	sc.mu.Lock()
	sc.grid = grid
	sc.pieces = pieces
	sc.last = result
	sc.hasPuzzle = true
	sc.solveCount++
	sc.mu.Unlock()
	return result, nil
}

func (sc *SolveController) LastResult() (SolveResult, bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.last, sc.hasPuzzle
}

func (sc *SolveController) Puzzle() (Grid, []Shape, bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if !sc.hasPuzzle {
		return Grid{}, nil, false
	}
	return sc.grid.Clone(), append([]Shape(nil), sc.pieces...), true
}

func (sc *SolveController) SolveCount() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.solveCount
}
