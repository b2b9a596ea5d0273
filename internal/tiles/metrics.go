package tiles

import (
	"math"

	"github.com/jengzang/ridetiles/internal/spatial"
)

// CellArea returns the approximate ground area of one cell in km².
// The width shrinks with the cosine of the cell's mid latitude.
func CellArea(c Cell, zoom int) float64 {
	b := c.Bound(zoom)
	north, south := b.Top(), b.Bottom()
	heightKm := math.Abs(north-south) * spatial.KmPerDegree
	avgLatRad := (north + south) / 2 * math.Pi / 180
	widthKm := math.Abs(b.Left()-b.Right()) * spatial.KmPerDegree * math.Cos(avgLatRad)
	return heightKm * widthKm
}

// TotalArea sums CellArea over the set.
func TotalArea(cells CoverageSet, zoom int) float64 {
	var total float64
	for _, c := range cells.Cells() {
		total += CellArea(c, zoom)
	}
	return total
}

// CoreCells returns the cells whose four direct neighbors are all covered.
func CoreCells(cells CoverageSet) CoverageSet {
	core := NewCoverageSet()
	for c := range cells {
		if allCovered(cells, c.Neighbors()) {
			core.Add(c)
		}
	}
	return core
}

func allCovered(cells CoverageSet, neighbors [4]Cell) bool {
	for _, n := range neighbors {
		if !cells.Has(n) {
			return false
		}
	}
	return true
}
