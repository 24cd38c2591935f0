package main

import (
	"log"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// Move is one evaluated candidate placement. Result is the board after
// the piece lands and full lines clear; it shares nothing with the
// caller's grid.
type Move struct {
	PieceIndex   int     `json:"piece_index"`
	Anchor       Cell    `json:"anchor"`
	Cells        []Cell  `json:"cells"`
	LinesCleared int     `json:"lines_cleared"`
	Score        float64 `json:"score"`
	Result       Grid    `json:"-"`
}

type SearchStats struct {
	Start        time.Time
	Candidates   int
	Orientations int
	Duration     time.Duration
}

// orientationJob is one (piece, orientation) unit of work. Jobs are
// indexed so parallel runs merge back into enumeration order.
type orientationJob struct {
	pieceIndex  int
	orientation Shape
}

// enumerateMoves evaluates every placement of every orientation of
// every piece: piece index ascending, orientations in the order Shape
// produces them, anchors row-major. That order is the tie-break
// contract, so the parallel path collects per-job slices and
// concatenates them in job order rather than as workers finish.
func enumerateMoves(g Grid, pieces []Shape, config Config) ([]Move, SearchStats) {
	stats := SearchStats{Start: time.Now()}

	jobs := []orientationJob{}
	for pieceIndex, piece := range pieces {
		for _, orientation := range piece.Orientations() {
			jobs = append(jobs, orientationJob{pieceIndex: pieceIndex, orientation: orientation})
		}
	}
	stats.Orientations = len(jobs)

	results := make([][]Move, len(jobs))
	if config.SolverWorkers > 1 {
		var group errgroup.Group
		group.SetLimit(config.SolverWorkers)
		for i, job := range jobs {
			i, job := i, job
			group.Go(func() error {
				results[i] = movesForOrientation(g, job, config)
				return nil
			})
		}
		_ = group.Wait()
	} else {
		for i, job := range jobs {
			results[i] = movesForOrientation(g, job, config)
		}
	}

	moves := []Move{}
	for _, jobMoves := range results {
		moves = append(moves, jobMoves...)
	}
	stats.Candidates = len(moves)
	stats.Duration = time.Since(stats.Start)
	if config.LogSearchStats {
		logSearchStats(stats, len(pieces))
	}
	return moves, stats
}

func movesForOrientation(g Grid, job orientationJob, config Config) []Move {
	cells := job.orientation.Cells
	anchors := g.ValidAnchors(cells)
	moves := make([]Move, 0, len(anchors))
	for _, anchor := range anchors {
		placed := g.Place(cells, anchor)
		cleared, linesCleared := placed.ClearFullLines()
		moves = append(moves, Move{
			PieceIndex:   job.pieceIndex,
			Anchor:       anchor,
			Cells:        cells,
			LinesCleared: linesCleared,
			Score:        EvaluateGrid(cleared, linesCleared, config),
			Result:       cleared,
		})
	}
	return moves
}

// bestOf picks the strict maximum, so ties resolve to the earliest
// candidate in enumeration order.
func bestOf(moves []Move) (Move, bool) {
	if len(moves) == 0 {
		return Move{}, false
	}
	best := moves[0]
	for _, move := range moves[1:] {
		if move.Score > best.Score {
			best = move
		}
	}
	return best, true
}

// rankMoves stably sorts a copy by score descending and truncates to n.
// Equal scores keep enumeration order.
func rankMoves(moves []Move, n int) []Move {
	ranked := make([]Move, len(moves))
	copy(ranked, moves)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// FindBestMove returns the highest-scoring candidate, or ok=false when
// no piece fits anywhere.
func FindBestMove(g Grid, pieces []Shape, config Config) (Move, bool) {
	moves, _ := enumerateMoves(g, pieces, config)
	return bestOf(moves)
}

// TopMoves returns up to n candidates ranked by score.
func TopMoves(g Grid, pieces []Shape, n int, config Config) []Move {
	moves, _ := enumerateMoves(g, pieces, config)
	return rankMoves(moves, n)
}

func logSearchStats(stats SearchStats, pieceCount int) {
	log.Printf("[backend] search: pieces=%d orientations=%d candidates=%d dur=%s",
		pieceCount, stats.Orientations, stats.Candidates, stats.Duration.Round(time.Microsecond))
}
