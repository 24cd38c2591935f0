package main

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var ErrInvalidPiece = errors.New("invalid piece")

// Cell is a board coordinate, or a relative offset when part of a shape.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Shape is a polyomino given as normalized relative cells: minimum row
// and column are zero, cells sorted lexicographically, no duplicates.
type Shape struct {
	Name  string `json:"name,omitempty"`
	Cells []Cell `json:"cells"`
}

func NewShape(cells []Cell, name string) (Shape, error) {
	if len(cells) == 0 {
		return Shape{}, fmt.Errorf("%w: no cells", ErrInvalidPiece)
	}
	return Shape{Name: name, Cells: normalizeCells(cells)}, nil
}

// ShapeFromPoints builds a shape from the vision collaborator's [x,y]
// pairs, which are column-first.
func ShapeFromPoints(points [][2]int) (Shape, error) {
	cells := make([]Cell, 0, len(points))
	for _, p := range points {
		cells = append(cells, Cell{Row: p[1], Col: p[0]})
	}
	return NewShape(cells, "")
}

func mustShape(name string, cells ...Cell) Shape {
	shape, err := NewShape(cells, name)
	if err != nil {
		panic(fmt.Sprintf("bad catalog shape %q: %v", name, err))
	}
	return shape
}

// normalizeCells shifts the minimum row and column to zero, sorts, and
// drops duplicate offsets.
func normalizeCells(cells []Cell) []Cell {
	minRow, minCol := cells[0].Row, cells[0].Col
	for _, c := range cells[1:] {
		if c.Row < minRow {
			minRow = c.Row
		}
		if c.Col < minCol {
			minCol = c.Col
		}
	}
	normalized := make([]Cell, 0, len(cells))
	for _, c := range cells {
		normalized = append(normalized, Cell{Row: c.Row - minRow, Col: c.Col - minCol})
	}
	sort.Slice(normalized, func(i, j int) bool {
		if normalized[i].Row != normalized[j].Row {
			return normalized[i].Row < normalized[j].Row
		}
		return normalized[i].Col < normalized[j].Col
	})
	deduped := normalized[:1]
	for _, c := range normalized[1:] {
		if c != deduped[len(deduped)-1] {
			deduped = append(deduped, c)
		}
	}
	return deduped
}

// cellsKey is the canonical identity of a normalized cell list, used to
// deduplicate orientations and to compare shapes.
func cellsKey(cells []Cell) string {
	var b strings.Builder
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(strconv.Itoa(c.Row))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(c.Col))
	}
	return b.String()
}

func (s Shape) Equals(other Shape) bool {
	return cellsKey(s.Cells) == cellsKey(other.Cells)
}

func (s Shape) Width() int {
	width := 0
	for _, c := range s.Cells {
		if c.Col+1 > width {
			width = c.Col + 1
		}
	}
	return width
}

func (s Shape) Height() int {
	height := 0
	for _, c := range s.Cells {
		if c.Row+1 > height {
			height = c.Row + 1
		}
	}
	return height
}

func (s Shape) transform(name string, f func(Cell) Cell) Shape {
	cells := make([]Cell, 0, len(s.Cells))
	for _, c := range s.Cells {
		cells = append(cells, f(c))
	}
	return Shape{Name: name, Cells: normalizeCells(cells)}
}

func (s Shape) Rotate90() Shape {
	return s.transform(s.Name+"_r90", func(c Cell) Cell { return Cell{Row: c.Col, Col: -c.Row} })
}

func (s Shape) Rotate180() Shape {
	return s.transform(s.Name+"_r180", func(c Cell) Cell { return Cell{Row: -c.Row, Col: -c.Col} })
}

func (s Shape) Rotate270() Shape {
	return s.transform(s.Name+"_r270", func(c Cell) Cell { return Cell{Row: -c.Col, Col: c.Row} })
}

func (s Shape) FlipHorizontal() Shape {
	return s.transform(s.Name+"_fh", func(c Cell) Cell { return Cell{Row: c.Row, Col: -c.Col} })
}

func (s Shape) FlipVertical() Shape {
	return s.transform(s.Name+"_fv", func(c Cell) Cell { return Cell{Row: -c.Row, Col: c.Col} })
}

// Orientations returns the distinct rotation/reflection variants of the
// shape, first-seen order. The order is fixed so that repeated searches
// over the same piece break score ties identically.
func (s Shape) Orientations() []Shape {
	candidates := []Shape{
		s,
		s.Rotate90(),
		s.Rotate180(),
		s.Rotate270(),
		s.FlipHorizontal(),
		s.FlipVertical(),
		s.FlipHorizontal().Rotate90(),
		s.FlipHorizontal().Rotate180(),
	}
	seen := make(map[string]struct{}, len(candidates))
	unique := make([]Shape, 0, len(candidates))
	for _, candidate := range candidates {
		key := cellsKey(candidate.Cells)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, candidate)
	}
	return unique
}
