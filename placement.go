package main

import "fmt"

// CanPlace reports whether every absolute cell of the piece, anchored
// at anchor, is inside the grid and unoccupied. A single violation
// makes the whole placement infeasible.
func (g Grid) CanPlace(cells []Cell, anchor Cell) bool {
	for _, c := range cells {
		if !g.IsEmpty(anchor.Row+c.Row, anchor.Col+c.Col) {
			return false
		}
	}
	return true
}

// ValidAnchors scans all size² anchors row-major and keeps the feasible
// ones. The search space is small, so there is no pruning.
func (g Grid) ValidAnchors(cells []Cell) []Cell {
	anchors := []Cell{}
	for row := 0; row < g.size; row++ {
		for col := 0; col < g.size; col++ {
			if g.CanPlace(cells, Cell{Row: row, Col: col}) {
				anchors = append(anchors, Cell{Row: row, Col: col})
			}
		}
	}
	return anchors
}

// Place returns a new grid with the piece's cells set. The caller must
// have validated feasibility via CanPlace; a bounds or collision fault
// here means CanPlace and Place disagree, which is a bug worth a crash
// rather than a silently corrupted board.
func (g Grid) Place(cells []Cell, anchor Cell) Grid {
	placed := g.Clone()
	for _, c := range cells {
		row, col := anchor.Row+c.Row, anchor.Col+c.Col
		if !placed.InBounds(row, col) {
			panic(fmt.Sprintf("place out of bounds at (%d,%d), anchor (%d,%d)", row, col, anchor.Row, anchor.Col))
		}
		if placed.At(row, col) {
			panic(fmt.Sprintf("place collision at (%d,%d), anchor (%d,%d)", row, col, anchor.Row, anchor.Col))
		}
		placed.Set(row, col, true)
	}
	return placed
}

// ClearFullLines removes every row and column that is complete in the
// receiver. Completeness is judged against the pre-clear snapshot, so a
// row and a column can both complete and both clear in the same call;
// clears never cascade within a single call.
func (g Grid) ClearFullLines() (Grid, int) {
	fullRows := []int{}
	for row := 0; row < g.size; row++ {
		full := true
		for col := 0; col < g.size; col++ {
			if !g.At(row, col) {
				full = false
				break
			}
		}
		if full {
			fullRows = append(fullRows, row)
		}
	}
	fullCols := []int{}
	for col := 0; col < g.size; col++ {
		full := true
		for row := 0; row < g.size; row++ {
			if !g.At(row, col) {
				full = false
				break
			}
		}
		if full {
			fullCols = append(fullCols, col)
		}
	}

	cleared := g.Clone()
	for _, row := range fullRows {
		for col := 0; col < g.size; col++ {
			cleared.Set(row, col, false)
		}
	}
	for _, col := range fullCols {
		for row := 0; row < g.size; row++ {
			cleared.Set(row, col, false)
		}
	}
	return cleared, len(fullRows) + len(fullCols)
}
