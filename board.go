package main

import (
	"errors"
	"fmt"
)

var ErrInvalidGrid = errors.New("invalid grid")

// Grid is a square boolean occupancy board. The solver never mutates a
// grid it was handed; every placement or clear produces a fresh copy.
type Grid struct {
	size  int
	cells []bool
}

func NewGrid(size int) Grid {
	return Grid{size: size, cells: make([]bool, size*size)}
}

// GridFromRows builds a grid from row-major rows, rejecting anything
// that is not a non-empty square matrix.
func GridFromRows(rows [][]bool) (Grid, error) {
	size := len(rows)
	if size == 0 {
		return Grid{}, fmt.Errorf("%w: empty", ErrInvalidGrid)
	}
	g := NewGrid(size)
	for r, row := range rows {
		if len(row) != size {
			return Grid{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidGrid, r, len(row), size)
		}
		for c, occupied := range row {
			g.cells[r*size+c] = occupied
		}
	}
	return g, nil
}

// GridFromFlat builds a grid from a flat row-major list of size*size
// booleans, the format the vision collaborator emits.
func GridFromFlat(cells []bool, size int) (Grid, error) {
	if size <= 0 || len(cells) != size*size {
		return Grid{}, fmt.Errorf("%w: got %d cells, want %d", ErrInvalidGrid, len(cells), size*size)
	}
	g := NewGrid(size)
	copy(g.cells, cells)
	return g, nil
}

func (g Grid) At(row, col int) bool {
	return g.cells[g.index(row, col)]
}

func (g *Grid) Set(row, col int, occupied bool) {
	g.cells[g.index(row, col)] = occupied
}

func (g Grid) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < g.size && col < g.size
}

func (g Grid) IsEmpty(row, col int) bool {
	return g.InBounds(row, col) && !g.At(row, col)
}

func (g Grid) CountOccupied() int {
	count := 0
	for _, occupied := range g.cells {
		if occupied {
			count++
		}
	}
	return count
}

func (g Grid) Size() int {
	return g.size
}

func (g Grid) Clone() Grid {
	clone := Grid{size: g.size}
	clone.cells = make([]bool, len(g.cells))
	copy(clone.cells, g.cells)
	return clone
}

func (g Grid) Rows() [][]bool {
	rows := make([][]bool, g.size)
	for r := 0; r < g.size; r++ {
		row := make([]bool, g.size)
		copy(row, g.cells[r*g.size:(r+1)*g.size])
		rows[r] = row
	}
	return rows
}

func (g Grid) Equals(other Grid) bool {
	if g.size != other.size {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

func (g Grid) index(row, col int) int {
	return row*g.size + col
}
