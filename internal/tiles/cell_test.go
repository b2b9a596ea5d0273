package tiles

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellOf(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		zoom     int
		want     Cell
	}{
		{"origin", 0, 0, 14, Cell{X: 8192, Y: 8192}},
		{"west edge", 0, -180, 14, Cell{X: 0, Y: 8192}},
		{"east edge clamps", 0, 180, 14, Cell{X: 16383, Y: 8192}},
		{"north east quadrant", 45, 90, 1, Cell{X: 1, Y: 0}},
		{"south east quadrant", -45, 90, 1, Cell{X: 1, Y: 1}},
		{"zoom zero", 51.5, -0.12, 0, Cell{X: 0, Y: 0}},
		{"pole clamps to first row", 90, 10, 14, Cell{X: 8647, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CellOf(tt.lat, tt.lon, tt.zoom)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCellOfRejectsInvalidInput(t *testing.T) {
	_, err := CellOf(math.NaN(), 0, 14)
	assert.ErrorIs(t, err, ErrInvalidCoordinate)

	_, err = CellOf(0, math.Inf(1), 14)
	assert.ErrorIs(t, err, ErrInvalidCoordinate)

	_, err = CellOf(91, 0, 14)
	assert.ErrorIs(t, err, ErrInvalidCoordinate)

	_, err = CellOf(0, 0, -1)
	assert.ErrorIs(t, err, ErrInvalidZoom)

	_, err = CellOf(0, 0, 31)
	assert.ErrorIs(t, err, ErrInvalidZoom)
}

func TestCellBoundContainsPoint(t *testing.T) {
	lat, lon := 48.8566, 2.3522
	c, err := CellOf(lat, lon, 14)
	require.NoError(t, err)

	b := c.Bound(14)
	assert.LessOrEqual(t, b.Bottom(), lat)
	assert.GreaterOrEqual(t, b.Top(), lat)
	assert.LessOrEqual(t, b.Left(), lon)
	assert.GreaterOrEqual(t, b.Right(), lon)
}

func TestCellNeighbors(t *testing.T) {
	n := Cell{X: 3, Y: 7}.Neighbors()
	assert.ElementsMatch(t, []Cell{{2, 7}, {4, 7}, {3, 6}, {3, 8}}, n[:])
}

func TestCoverageSetJSON(t *testing.T) {
	s := NewCoverageSet(Cell{2, 1}, Cell{0, 0}, Cell{1, 0})

	data, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"x":0,"y":0},{"x":1,"y":0},{"x":2,"y":1}]`, string(data))

	var back CoverageSet
	require.NoError(t, back.UnmarshalJSON(data))
	assert.Equal(t, s, back)

	empty, err := CoverageSet(nil).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))
}
