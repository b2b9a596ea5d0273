package tiles

import (
	"encoding/json"
)

// CoverageSet is a set of unique cells touched by a rider's tracks.
// Functions in this package never mutate a set they receive.
type CoverageSet map[Cell]struct{}

// NewCoverageSet returns a set holding the given cells.
func NewCoverageSet(cells ...Cell) CoverageSet {
	s := make(CoverageSet, len(cells))
	for _, c := range cells {
		s[c] = struct{}{}
	}
	return s
}

// Add inserts c and reports whether it was not already present.
func (s CoverageSet) Add(c Cell) bool {
	if _, ok := s[c]; ok {
		return false
	}
	s[c] = struct{}{}
	return true
}

// Has reports whether c is in the set.
func (s CoverageSet) Has(c Cell) bool {
	_, ok := s[c]
	return ok
}

// Remove deletes c from the set.
func (s CoverageSet) Remove(c Cell) {
	delete(s, c)
}

// Len returns the number of cells.
func (s CoverageSet) Len() int {
	return len(s)
}

// Clone returns an independent copy of the set.
func (s CoverageSet) Clone() CoverageSet {
	out := make(CoverageSet, len(s))
	for c := range s {
		out[c] = struct{}{}
	}
	return out
}

// Union returns a new set with the cells of both s and o.
func (s CoverageSet) Union(o CoverageSet) CoverageSet {
	out := make(CoverageSet, len(s)+len(o))
	for c := range s {
		out[c] = struct{}{}
	}
	for c := range o {
		out[c] = struct{}{}
	}
	return out
}

// Difference returns the cells of s that are not in o.
func (s CoverageSet) Difference(o CoverageSet) CoverageSet {
	out := make(CoverageSet)
	for c := range s {
		if !o.Has(c) {
			out[c] = struct{}{}
		}
	}
	return out
}

// Cells returns the members in row-major order. Every algorithm that
// depends on iteration order walks this slice, so results are reproducible.
func (s CoverageSet) Cells() []Cell {
	cells := make([]Cell, 0, len(s))
	for c := range s {
		cells = append(cells, c)
	}
	sortCells(cells)
	return cells
}

// Extent returns the minimum and maximum corners of the set.
// ok is false for an empty set.
func (s CoverageSet) Extent() (min, max Cell, ok bool) {
	first := true
	for c := range s {
		if first {
			min, max, first = c, c, false
			continue
		}
		if c.X < min.X {
			min.X = c.X
		}
		if c.Y < min.Y {
			min.Y = c.Y
		}
		if c.X > max.X {
			max.X = c.X
		}
		if c.Y > max.Y {
			max.Y = c.Y
		}
	}
	return min, max, !first
}

func (s CoverageSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Cells())
}

func (s *CoverageSet) UnmarshalJSON(data []byte) error {
	var cells []Cell
	if err := json.Unmarshal(data, &cells); err != nil {
		return err
	}
	*s = NewCoverageSet(cells...)
	return nil
}
