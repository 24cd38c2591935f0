package main

// shapeCatalog lists the standard pieces in a fixed order so that
// MatchShapeName is deterministic when two entries share an orientation
// set (domino_h and domino_v, the lines, the corner family).
var shapeCatalog = []Shape{
	mustShape("single", Cell{0, 0}),

	mustShape("domino_h", Cell{0, 0}, Cell{0, 1}),
	mustShape("domino_v", Cell{0, 0}, Cell{1, 0}),

	mustShape("line_3_h", Cell{0, 0}, Cell{0, 1}, Cell{0, 2}),
	mustShape("line_3_v", Cell{0, 0}, Cell{1, 0}, Cell{2, 0}),

	mustShape("l_3_1", Cell{0, 0}, Cell{1, 0}, Cell{1, 1}),
	mustShape("l_3_2", Cell{0, 0}, Cell{0, 1}, Cell{1, 0}),
	mustShape("l_3_3", Cell{0, 0}, Cell{0, 1}, Cell{1, 1}),
	mustShape("l_3_4", Cell{0, 1}, Cell{1, 0}, Cell{1, 1}),

	mustShape("square_4", Cell{0, 0}, Cell{0, 1}, Cell{1, 0}, Cell{1, 1}),

	mustShape("line_4_h", Cell{0, 0}, Cell{0, 1}, Cell{0, 2}, Cell{0, 3}),
	mustShape("line_4_v", Cell{0, 0}, Cell{1, 0}, Cell{2, 0}, Cell{3, 0}),

	mustShape("t_4", Cell{0, 0}, Cell{0, 1}, Cell{0, 2}, Cell{1, 1}),

	mustShape("l_4_1", Cell{0, 0}, Cell{1, 0}, Cell{2, 0}, Cell{2, 1}),
	mustShape("l_4_2", Cell{0, 0}, Cell{1, 0}, Cell{2, 0}, Cell{0, 1}),

	mustShape("z_4_1", Cell{0, 0}, Cell{0, 1}, Cell{1, 1}, Cell{1, 2}),
	mustShape("z_4_2", Cell{0, 1}, Cell{0, 2}, Cell{1, 0}, Cell{1, 1}),

	mustShape("line_5_h", Cell{0, 0}, Cell{0, 1}, Cell{0, 2}, Cell{0, 3}, Cell{0, 4}),
	mustShape("line_5_v", Cell{0, 0}, Cell{1, 0}, Cell{2, 0}, Cell{3, 0}, Cell{4, 0}),

	mustShape("plus_5", Cell{0, 1}, Cell{1, 0}, Cell{1, 1}, Cell{1, 2}, Cell{2, 1}),

	mustShape("l_5_1", Cell{0, 0}, Cell{1, 0}, Cell{2, 0}, Cell{3, 0}, Cell{3, 1}),

	mustShape("t_5", Cell{0, 0}, Cell{0, 1}, Cell{0, 2}, Cell{1, 1}, Cell{2, 1}),
}

// StandardShapes returns the catalog. Callers must not mutate it.
func StandardShapes() []Shape {
	return shapeCatalog
}

func ShapeByName(name string) (Shape, bool) {
	for _, shape := range shapeCatalog {
		if shape.Name == name {
			return shape, true
		}
	}
	return Shape{}, false
}

// MatchShapeName returns the name of the first catalog piece any of
// whose orientations matches the given cells, or "custom".
func MatchShapeName(cells []Cell) string {
	if len(cells) == 0 {
		return "custom"
	}
	key := cellsKey(normalizeCells(cells))
	for _, shape := range shapeCatalog {
		for _, orientation := range shape.Orientations() {
			if cellsKey(orientation.Cells) == key {
				return shape.Name
			}
		}
	}
	return "custom"
}
