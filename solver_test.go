package main

import "testing"

func mustNewShape(t *testing.T, name string, cells ...Cell) Shape {
	t.Helper()
	shape, err := NewShape(cells, name)
	if err != nil {
		t.Fatalf("bad shape %s: %v", name, err)
	}
	return shape
}

func TestFindBestMoveEmptyBoardSinglePiece(t *testing.T) {
	g := NewGrid(8)
	single := mustNewShape(t, "single", Cell{0, 0})
	move, ok := FindBestMove(g, []Shape{single}, DefaultConfig())
	if !ok {
		t.Fatalf("expected a legal move on the empty board")
	}
	if move.LinesCleared != 0 {
		t.Fatalf("expected no clears, got %d", move.LinesCleared)
	}
	if !g.InBounds(move.Anchor.Row, move.Anchor.Col) {
		t.Fatalf("anchor %v out of bounds", move.Anchor)
	}
	if move.PieceIndex != 0 {
		t.Fatalf("expected piece 0, got %d", move.PieceIndex)
	}
}

func TestFindBestMoveCompletesRow(t *testing.T) {
	g := NewGrid(8)
	for col := 0; col < 7; col++ {
		g.Set(0, col, true)
	}
	single := mustNewShape(t, "single", Cell{0, 0})
	move, ok := FindBestMove(g, []Shape{single}, DefaultConfig())
	if !ok {
		t.Fatalf("expected a legal move")
	}
	if move.Anchor != (Cell{Row: 0, Col: 7}) {
		t.Fatalf("expected anchor (0,7), got %v", move.Anchor)
	}
	if move.LinesCleared < 1 {
		t.Fatalf("expected at least one line cleared, got %d", move.LinesCleared)
	}
	for col := 0; col < 8; col++ {
		if move.Result.At(0, col) {
			t.Fatalf("expected row 0 empty after clear")
		}
	}
}

func TestFindBestMoveNoLegalMove(t *testing.T) {
	g := NewGrid(8)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			g.Set(row, col, true)
		}
	}
	g.Set(4, 4, false)
	domino := mustNewShape(t, "domino_h", Cell{0, 0}, Cell{0, 1})
	if _, ok := FindBestMove(g, []Shape{domino}, DefaultConfig()); ok {
		t.Fatalf("expected no legal move for a 2-cell piece with one free cell")
	}
}

func TestFindBestMoveDoesNotMutateInputGrid(t *testing.T) {
	g := gridWithCells(8, Cell{2, 2}, Cell{2, 3})
	snapshot := g.Clone()
	piece := mustNewShape(t, "l_3_1", Cell{0, 0}, Cell{1, 0}, Cell{1, 1})
	if _, ok := FindBestMove(g, []Shape{piece}, DefaultConfig()); !ok {
		t.Fatalf("expected a legal move")
	}
	if !g.Equals(snapshot) {
		t.Fatalf("search mutated the caller's grid")
	}
}

func TestFindBestMoveTieBreakIsFirstInEnumerationOrder(t *testing.T) {
	// All placements of a single cell on an empty board score the same,
	// so the winner must be the row-major first anchor of piece 0.
	g := NewGrid(8)
	single := mustNewShape(t, "single", Cell{0, 0})
	for i := 0; i < 10; i++ {
		move, ok := FindBestMove(g, []Shape{single, single}, DefaultConfig())
		if !ok {
			t.Fatalf("expected a legal move")
		}
		if move.PieceIndex != 0 || move.Anchor != (Cell{Row: 0, Col: 0}) {
			t.Fatalf("run %d: expected piece 0 at (0,0), got piece %d at %v", i, move.PieceIndex, move.Anchor)
		}
	}
}

func TestTopMovesSortedAndTruncated(t *testing.T) {
	g := gridWithCells(8, Cell{0, 0}, Cell{0, 1}, Cell{1, 0}, Cell{3, 3}, Cell{3, 4}, Cell{5, 5})
	pieces := []Shape{
		mustNewShape(t, "domino_h", Cell{0, 0}, Cell{0, 1}),
		mustNewShape(t, "single", Cell{0, 0}),
	}
	config := DefaultConfig()
	top := TopMoves(g, pieces, 5, config)
	if len(top) != 5 {
		t.Fatalf("expected 5 moves, got %d", len(top))
	}
	for i := 1; i < len(top); i++ {
		if top[i].Score > top[i-1].Score {
			t.Fatalf("top moves not sorted at %d: %f > %f", i, top[i].Score, top[i-1].Score)
		}
	}
	all := TopMoves(g, pieces, -1, config)
	if len(all) == 0 {
		t.Fatalf("expected candidates")
	}
	if best, _ := FindBestMove(g, pieces, config); best.Score != top[0].Score {
		t.Fatalf("top move %f disagrees with best move %f", top[0].Score, best.Score)
	}
}

func TestTopMovesFewerCandidatesThanRequested(t *testing.T) {
	g := NewGrid(8)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			g.Set(row, col, true)
		}
	}
	g.Set(0, 0, false)
	g.Set(7, 7, false)
	single := mustNewShape(t, "single", Cell{0, 0})
	top := TopMoves(g, []Shape{single}, 10, DefaultConfig())
	if len(top) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(top))
	}
}

func TestTopMovesStableForEqualScores(t *testing.T) {
	g := NewGrid(8)
	single := mustNewShape(t, "single", Cell{0, 0})
	top := TopMoves(g, []Shape{single}, 3, DefaultConfig())
	want := []Cell{{0, 0}, {0, 1}, {0, 2}}
	for i, anchor := range want {
		if top[i].Anchor != anchor {
			t.Fatalf("equal-score order broken at %d: expected %v, got %v", i, anchor, top[i].Anchor)
		}
	}
}

func TestParallelSearchMatchesSerial(t *testing.T) {
	g := gridWithCells(8, Cell{0, 0}, Cell{0, 1}, Cell{1, 0}, Cell{3, 3}, Cell{3, 4}, Cell{5, 5}, Cell{6, 1}, Cell{6, 2})
	pieces := []Shape{
		mustNewShape(t, "l_3_1", Cell{0, 0}, Cell{1, 0}, Cell{1, 1}),
		mustNewShape(t, "domino_h", Cell{0, 0}, Cell{0, 1}),
		mustNewShape(t, "t_4", Cell{0, 0}, Cell{0, 1}, Cell{0, 2}, Cell{1, 1}),
	}
	serial := DefaultConfig()
	serial.SolverWorkers = 1
	parallel := DefaultConfig()
	parallel.SolverWorkers = 4

	serialMoves, _ := enumerateMoves(g, pieces, serial)
	parallelMoves, _ := enumerateMoves(g, pieces, parallel)
	if len(serialMoves) != len(parallelMoves) {
		t.Fatalf("candidate counts differ: %d vs %d", len(serialMoves), len(parallelMoves))
	}
	for i := range serialMoves {
		s, p := serialMoves[i], parallelMoves[i]
		if s.PieceIndex != p.PieceIndex || s.Anchor != p.Anchor || s.Score != p.Score {
			t.Fatalf("candidate %d differs: serial %+v parallel %+v", i, s, p)
		}
	}

	bestSerial, _ := FindBestMove(g, pieces, serial)
	bestParallel, _ := FindBestMove(g, pieces, parallel)
	if bestSerial.Anchor != bestParallel.Anchor || bestSerial.PieceIndex != bestParallel.PieceIndex {
		t.Fatalf("parallel best %+v differs from serial %+v", bestParallel, bestSerial)
	}
}

func TestEnumerationPrefersLineClearingMove(t *testing.T) {
	// Row 0 missing two cells; a horizontal domino should close it and
	// outrank every non-clearing placement.
	g := NewGrid(8)
	for col := 0; col < 6; col++ {
		g.Set(0, col, true)
	}
	domino := mustNewShape(t, "domino_h", Cell{0, 0}, Cell{0, 1})
	move, ok := FindBestMove(g, []Shape{domino}, DefaultConfig())
	if !ok {
		t.Fatalf("expected a legal move")
	}
	if move.LinesCleared != 1 {
		t.Fatalf("expected the clearing placement to win, got %d clears at %v", move.LinesCleared, move.Anchor)
	}
	if move.Anchor != (Cell{Row: 0, Col: 6}) {
		t.Fatalf("expected anchor (0,6), got %v", move.Anchor)
	}
}
