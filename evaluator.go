package main

// maxEmptyRegions is how many disjoint empty regions the board may
// split into before the fragmentation penalty kicks in.
const maxEmptyRegions = 3

// nearCompleteGap: a line missing at most this many cells earns the
// near-completion bonus.
const nearCompleteGap = 2

type ScoreWeights struct {
	LineClear     float64
	HolePenalty   float64
	Coverage      float64
	NearComplete  float64
	Fragmentation float64
}

func resolveScoreWeights(config Config) ScoreWeights {
	if config.Heuristics == (HeuristicConfig{}) {
		config.Heuristics = DefaultConfig().Heuristics
	}
	return ScoreWeights{
		LineClear:     config.Heuristics.LineClear,
		HolePenalty:   config.Heuristics.HolePenalty,
		Coverage:      config.Heuristics.Coverage,
		NearComplete:  config.Heuristics.NearComplete,
		Fragmentation: config.Heuristics.Fragmentation,
	}
}

// EvaluateGrid scores a post-move board. Pure: the same grid and clear
// count always score the same. Higher is better.
func EvaluateGrid(g Grid, linesCleared int, config Config) float64 {
	weights := resolveScoreWeights(config)
	score := 0.0

	// Line clears dominate everything else.
	score += float64(linesCleared) * weights.LineClear

	score += float64(countHoles(g)) * weights.HolePenalty

	score += (1.0 - coverage(g)) * weights.Coverage * 100.0

	// Lines one or two cells short of complete are worth nudging shut.
	threshold := g.Size() - nearCompleteGap
	for row := 0; row < g.Size(); row++ {
		occupied := 0
		for col := 0; col < g.Size(); col++ {
			if g.At(row, col) {
				occupied++
			}
		}
		if occupied >= threshold {
			score += float64(occupied-(threshold-1)) * weights.NearComplete
		}
	}
	for col := 0; col < g.Size(); col++ {
		occupied := 0
		for row := 0; row < g.Size(); row++ {
			if g.At(row, col) {
				occupied++
			}
		}
		if occupied >= threshold {
			score += float64(occupied-(threshold-1)) * weights.NearComplete
		}
	}

	if regions := countEmptyRegions(g); regions > maxEmptyRegions {
		score -= float64(regions-maxEmptyRegions) * weights.Fragmentation
	}

	return score
}

// countHoles counts empty cells with more than half of their in-bounds
// 8-neighbors occupied, a cheap local proxy for pockets no piece will
// ever fill rather than a full reachability analysis.
func countHoles(g Grid) int {
	holes := 0
	for row := 0; row < g.Size(); row++ {
		for col := 0; col < g.Size(); col++ {
			if g.At(row, col) {
				continue
			}
			occupied := 0
			total := 0
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					if !g.InBounds(row+dr, col+dc) {
						continue
					}
					total++
					if g.At(row+dr, col+dc) {
						occupied++
					}
				}
			}
			if total > 0 && 2*occupied > total {
				holes++
			}
		}
	}
	return holes
}

func coverage(g Grid) float64 {
	return float64(g.CountOccupied()) / float64(g.Size()*g.Size())
}

// countEmptyRegions counts 4-connected components of empty cells with
// an explicit stack so deep regions cannot blow the call stack.
func countEmptyRegions(g Grid) int {
	size := g.Size()
	visited := make([]bool, size*size)
	regions := 0
	stack := make([]Cell, 0, size*size)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if g.At(row, col) || visited[row*size+col] {
				continue
			}
			regions++
			stack = stack[:0]
			stack = append(stack, Cell{Row: row, Col: col})
			visited[row*size+col] = true
			for len(stack) > 0 {
				cur := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				for _, d := range [4]Cell{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
					nr, nc := cur.Row+d.Row, cur.Col+d.Col
					if !g.InBounds(nr, nc) || g.At(nr, nc) || visited[nr*size+nc] {
						continue
					}
					visited[nr*size+nc] = true
					stack = append(stack, Cell{Row: nr, Col: nc})
				}
			}
		}
	}
	return regions
}
