package tiles

import (
	"encoding/json"
	"sort"
)

// TargetMap assigns uncovered cells an urgency level, 1 being the next
// cell to visit. A cell keeps the first level it was given.
type TargetMap map[Cell]int

// Target is the serialized form of one TargetMap entry.
type Target struct {
	Cell
	Level int `json:"level"`
}

// assign records c at level unless it already has a level.
func (t TargetMap) assign(c Cell, level int) bool {
	if _, ok := t[c]; ok {
		return false
	}
	t[c] = level
	return true
}

// Level returns the level of c.
func (t TargetMap) Level(c Cell) (int, bool) {
	l, ok := t[c]
	return l, ok
}

// MaxLevel returns the deepest level present, 0 for an empty map.
func (t TargetMap) MaxLevel() int {
	max := 0
	for _, l := range t {
		if l > max {
			max = l
		}
	}
	return max
}

// AtLevel returns the cells assigned exactly level, in row-major order.
func (t TargetMap) AtLevel(level int) []Cell {
	var cells []Cell
	for c, l := range t {
		if l == level {
			cells = append(cells, c)
		}
	}
	sortCells(cells)
	return cells
}

// Targets returns every entry ordered by level, then row-major.
func (t TargetMap) Targets() []Target {
	out := make([]Target, 0, len(t))
	for c, l := range t {
		out = append(out, Target{Cell: c, Level: l})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Level != out[j].Level {
			return out[i].Level < out[j].Level
		}
		return out[i].Cell.Less(out[j].Cell)
	})
	return out
}

func (t TargetMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Targets())
}

func (t *TargetMap) UnmarshalJSON(data []byte) error {
	var targets []Target
	if err := json.Unmarshal(data, &targets); err != nil {
		return err
	}
	m := make(TargetMap, len(targets))
	for _, tg := range targets {
		m.assign(tg.Cell, tg.Level)
	}
	*t = m
	return nil
}
