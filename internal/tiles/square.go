package tiles

import (
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Square is an axis-aligned block of Size x Size cells anchored at TopLeft.
type Square struct {
	TopLeft Cell `json:"top_left"`
	Size    int  `json:"size"`
}

// Cells returns the cells the square denotes in row-major order.
func (q Square) Cells() []Cell {
	if q.Size <= 0 {
		return nil
	}
	cells := make([]Cell, 0, q.Size*q.Size)
	for j := 0; j < q.Size; j++ {
		for i := 0; i < q.Size; i++ {
			cells = append(cells, Cell{X: q.TopLeft.X + i, Y: q.TopLeft.Y + j})
		}
	}
	return cells
}

// ValidIn reports whether every cell of the square is covered by cells.
func (q Square) ValidIn(cells CoverageSet) bool {
	if q.Size <= 0 {
		return false
	}
	for _, c := range q.Cells() {
		if !cells.Has(c) {
			return false
		}
	}
	return true
}

// Bound returns the geographic bounds of the whole square.
func (q Square) Bound(zoom int) orb.Bound {
	nw := q.TopLeft.Bound(zoom)
	se := Cell{X: q.TopLeft.X + q.Size - 1, Y: q.TopLeft.Y + q.Size - 1}.Bound(zoom)
	return nw.Union(se)
}

// missing counts the cells of q that are not covered.
func (q Square) missing(cells CoverageSet) []Cell {
	var out []Cell
	for _, c := range q.Cells() {
		if !cells.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// MaxSquare returns the largest fully covered square. Each cell is tried as
// a top-left anchor and grown toward larger x and y one ring at a time.
// The first anchor in row-major order wins among equal sizes.
func MaxSquare(cells CoverageSet) (Square, bool) {
	var best Square
	for _, anchor := range cells.Cells() {
		size := growSquare(cells, anchor)
		if size > best.Size {
			best = Square{TopLeft: anchor, Size: size}
		}
	}
	return best, best.Size > 0
}

func growSquare(cells CoverageSet, anchor Cell) int {
	size := 1
	for canExtend(cells, anchor, size) {
		size++
	}
	return size
}

// canExtend checks the new right column and bottom row needed to reach size+1.
func canExtend(cells CoverageSet, anchor Cell, size int) bool {
	for i := 0; i <= size; i++ {
		if !cells.Has(Cell{X: anchor.X + size, Y: anchor.Y + i}) {
			return false
		}
		if !cells.Has(Cell{X: anchor.X + i, Y: anchor.Y + size}) {
			return false
		}
	}
	return true
}

// TopKSquares extracts up to k pairwise disjoint squares, largest first.
// After each square is found its cells are removed from a working copy.
func TopKSquares(cells CoverageSet, k int) ([]Square, error) {
	if k <= 0 {
		return nil, errors.Wrapf(ErrInvalidK, "k=%d", k)
	}

	working := cells.Clone()
	squares := make([]Square, 0, k)
	for len(squares) < k {
		sq, ok := MaxSquare(working)
		if !ok {
			break
		}
		squares = append(squares, sq)
		for _, c := range sq.Cells() {
			working.Remove(c)
		}
	}
	return squares, nil
}
