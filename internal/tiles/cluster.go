package tiles

// LargestCluster returns the biggest 4-connected component of cells.
// Components are discovered from anchors in row-major order and the first
// one of maximal size wins.
func LargestCluster(cells CoverageSet) CoverageSet {
	visited := NewCoverageSet()
	best := NewCoverageSet()

	for _, start := range cells.Cells() {
		if visited.Has(start) {
			continue
		}
		component := floodFill(start, visited, cells.Has)
		if component.Len() > best.Len() {
			best = component
		}
	}
	return best
}

// floodFill collects every cell reachable from start through cells accepted
// by inside. Reached cells are recorded in visited.
func floodFill(start Cell, visited CoverageSet, inside func(Cell) bool) CoverageSet {
	component := NewCoverageSet(start)
	visited.Add(start)
	stack := []Cell{start}

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, n := range c.Neighbors() {
			if visited.Has(n) || !inside(n) {
				continue
			}
			visited.Add(n)
			component.Add(n)
			stack = append(stack, n)
		}
	}
	return component
}

// FillingCells returns the uncovered pockets enclosed by cluster: cells in
// its bounding box that cannot reach the one-cell padding ring without
// crossing a cluster cell.
func FillingCells(cluster CoverageSet) CoverageSet {
	min, max, ok := cluster.Extent()
	if !ok {
		return NewCoverageSet()
	}
	min = Cell{X: min.X - 1, Y: min.Y - 1}
	max = Cell{X: max.X + 1, Y: max.Y + 1}

	inBox := func(c Cell) bool {
		return c.X >= min.X && c.X <= max.X && c.Y >= min.Y && c.Y <= max.Y
	}
	exterior := NewCoverageSet()
	floodFill(min, exterior, func(c Cell) bool {
		return inBox(c) && !cluster.Has(c)
	})

	filling := NewCoverageSet()
	for y := min.Y + 1; y < max.Y; y++ {
		for x := min.X + 1; x < max.X; x++ {
			c := Cell{X: x, Y: y}
			if !cluster.Has(c) && !exterior.Has(c) {
				filling.Add(c)
			}
		}
	}
	return filling
}
