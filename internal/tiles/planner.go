package tiles

import (
	"github.com/pkg/errors"
)

// growth offsets of the anchor, in tie-break priority order:
// grow right/down, grow left, grow up, grow diagonally up-left.
var growthOffsets = [4]Cell{
	{X: 0, Y: 0},
	{X: -1, Y: 0},
	{X: 0, Y: -1},
	{X: -1, Y: -1},
}

// PlanSquareTargets simulates growing square one ring per level. At each
// level the candidate of size+1 with the fewest uncovered cells is adopted,
// and its uncovered cells are recorded at that level.
//
// The walk is greedy. A later anchor shift can leave earlier targets outside
// the final projected square; they stay in the map.
func PlanSquareTargets(cells CoverageSet, square Square, depth int) (TargetMap, error) {
	if depth <= 0 {
		return nil, errors.Wrapf(ErrInvalidDepth, "depth=%d", depth)
	}
	if square.Size < 1 {
		return nil, errors.Wrapf(ErrInvalidSquare, "size=%d", square.Size)
	}

	targets := make(TargetMap)
	current := square
	for level := 1; level <= depth; level++ {
		next := current.Size + 1

		var best Square
		var bestMissing []Cell
		for i, off := range growthOffsets {
			candidate := Square{
				TopLeft: Cell{X: current.TopLeft.X + off.X, Y: current.TopLeft.Y + off.Y},
				Size:    next,
			}
			missing := candidate.missing(cells)
			if i == 0 || len(missing) < len(bestMissing) {
				best, bestMissing = candidate, missing
			}
		}

		current = best
		for _, c := range bestMissing {
			targets.assign(c, level)
		}
	}
	return targets, nil
}

// PlanFrontierTargets runs breadth-first layers outward from the border of
// cluster ∪ filling. Layer k holds the uncovered cells first reached at
// step k. Planning stops early once a layer is empty.
func PlanFrontierTargets(cluster, filling CoverageSet, depth int) (TargetMap, error) {
	if depth <= 0 {
		return nil, errors.Wrapf(ErrInvalidDepth, "depth=%d", depth)
	}

	covered := cluster.Union(filling)
	targets := make(TargetMap)

	var border []Cell
	for _, c := range covered.Cells() {
		if !allCovered(covered, c.Neighbors()) {
			border = append(border, c)
		}
	}

	for level := 1; level <= depth && len(border) > 0; level++ {
		var next []Cell
		for _, c := range border {
			for _, n := range c.Neighbors() {
				if covered.Has(n) {
					continue
				}
				if targets.assign(n, level) {
					next = append(next, n)
				}
			}
		}
		border = next
	}
	return targets, nil
}
