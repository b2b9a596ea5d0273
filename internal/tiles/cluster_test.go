package tiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLargestCluster(t *testing.T) {
	t.Run("rectangle is one cluster", func(t *testing.T) {
		cells := rect(0, 0, 3, 2)
		assert.Equal(t, cells, LargestCluster(cells))
	})

	t.Run("picks the biggest component", func(t *testing.T) {
		small := NewCoverageSet(Cell{0, 0}, Cell{1, 0})
		big := NewCoverageSet(Cell{5, 5}, Cell{5, 6}, Cell{6, 6})
		assert.Equal(t, big, LargestCluster(small.Union(big)))
	})

	t.Run("diagonal neighbors are not connected", func(t *testing.T) {
		cells := NewCoverageSet(Cell{0, 0}, Cell{1, 1}, Cell{2, 2})
		assert.Equal(t, 1, LargestCluster(cells).Len())
	})

	t.Run("ties resolve to first discovered", func(t *testing.T) {
		a := NewCoverageSet(Cell{0, 0}, Cell{1, 0})
		b := NewCoverageSet(Cell{10, 0}, Cell{11, 0})
		assert.Equal(t, a, LargestCluster(a.Union(b)))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, 0, LargestCluster(NewCoverageSet()).Len())
	})
}

func TestLargestClusterIsMaximal(t *testing.T) {
	cells := rect(0, 0, 4, 1).Union(rect(3, 1, 1, 3)).Union(rect(8, 8, 2, 2))
	cluster := LargestCluster(cells)
	assert.Equal(t, 7, cluster.Len())

	for c := range cluster {
		for _, n := range c.Neighbors() {
			if cells.Has(n) {
				assert.True(t, cluster.Has(n), "neighbor %s of %s excluded", n, c)
			}
		}
	}
}

func TestFillingCells(t *testing.T) {
	t.Run("ring encloses its centre", func(t *testing.T) {
		ring := rect(0, 0, 3, 3)
		ring.Remove(Cell{1, 1})
		assert.Equal(t, NewCoverageSet(Cell{1, 1}), FillingCells(ring))
	})

	t.Run("open ring encloses nothing", func(t *testing.T) {
		ring := rect(0, 0, 3, 3)
		ring.Remove(Cell{1, 1})
		ring.Remove(Cell{1, 2})
		assert.Equal(t, 0, FillingCells(ring).Len())
	})

	t.Run("larger pocket", func(t *testing.T) {
		ring := rect(0, 0, 5, 4)
		pocket := rect(1, 1, 3, 2)
		for c := range pocket {
			ring.Remove(c)
		}
		assert.Equal(t, pocket, FillingCells(ring))
	})

	t.Run("edge-enclosed centre of a diamond", func(t *testing.T) {
		// every edge neighbour of the middle is covered, so the outside flood never reaches it
		diamond := NewCoverageSet(Cell{1, 0}, Cell{0, 1}, Cell{2, 1}, Cell{1, 2})
		assert.Equal(t, NewCoverageSet(Cell{1, 1}), FillingCells(diamond))
	})

	t.Run("gap in a thick ring lets the outside in", func(t *testing.T) {
		ring := rect(0, 0, 5, 5)
		ring.Remove(Cell{2, 2})
		ring.Remove(Cell{2, 1})
		ring.Remove(Cell{2, 0})
		assert.Equal(t, 0, FillingCells(ring).Len())
	})

	t.Run("empty cluster", func(t *testing.T) {
		assert.Equal(t, 0, FillingCells(NewCoverageSet()).Len())
	})
}

func TestFillingCellsAreEnclosed(t *testing.T) {
	cluster := rect(0, 0, 7, 7)
	for _, c := range []Cell{{2, 2}, {3, 2}, {4, 4}, {1, 5}, {6, 3}} {
		cluster.Remove(c)
	}
	filling := FillingCells(cluster)
	// {6,3} sits on the edge and is open to the outside
	assert.Equal(t, NewCoverageSet(Cell{2, 2}, Cell{3, 2}, Cell{4, 4}, Cell{1, 5}), filling)

	min, max, _ := cluster.Extent()
	blocked := cluster.Union(filling)
	for c := range filling {
		reached := floodFill(c, NewCoverageSet(), func(n Cell) bool {
			return n.X >= min.X-1 && n.X <= max.X+1 && n.Y >= min.Y-1 && n.Y <= max.Y+1 && !cluster.Has(n)
		})
		for r := range reached {
			assert.False(t, r.X < min.X || r.X > max.X || r.Y < min.Y || r.Y > max.Y,
				"filling cell %s reaches the border via %s", c, r)
			assert.True(t, blocked.Has(r))
		}
	}
}
