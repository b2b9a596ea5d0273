package tiles

import (
	"encoding/json"
	"testing"

	"github.com/jengzang/ridetiles/internal/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeSet(t *testing.T) {
	opts := DefaultOptions()
	opts.TopK = 2
	opts.Depth = 2

	cells := rect(8192, 5000, 3, 2)
	report, err := AnalyzeSet(cells, opts)
	require.NoError(t, err)

	assert.Equal(t, 6, report.CellCount)
	assert.InDelta(t, TotalArea(cells, opts.Zoom), report.AreaKm2, 1e-9)
	assert.Equal(t, 0, report.Core.Len())
	assert.Equal(t, []Square{
		{TopLeft: Cell{8192, 5000}, Size: 2},
		{TopLeft: Cell{8194, 5000}, Size: 1},
	}, report.Squares)
	assert.Equal(t, cells, report.Cluster)
	assert.Equal(t, 0, report.Filling.Len())

	// growing the 2x2 square to 3x3 in place only needs the bottom row
	assert.ElementsMatch(t, []Cell{{8192, 5002}, {8193, 5002}, {8194, 5002}}, report.SquareTargets.AtLevel(1))
	assert.Equal(t, 2, report.FrontierTargets.MaxLevel())
	assert.Len(t, report.FrontierTargets.AtLevel(1), 10)
}

func TestAnalyzeSetEmpty(t *testing.T) {
	report, err := AnalyzeSet(nil, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 0, report.CellCount)
	assert.Empty(t, report.Squares)
	assert.Empty(t, report.SquareTargets)
	assert.Empty(t, report.FrontierTargets)
	_, ok := report.MaxSquare()
	assert.False(t, ok)

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"covered":[]`)
}

func TestAnalyzeRejectsBadOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.TopK = 0
	_, err := Analyze(nil, opts)
	assert.ErrorIs(t, err, ErrInvalidK)

	opts = DefaultOptions()
	opts.Depth = -2
	_, err = AnalyzeSet(NewCoverageSet(), opts)
	assert.ErrorIs(t, err, ErrInvalidDepth)
}

func TestAnalyzeCountsNewCellsPerTrack(t *testing.T) {
	track := []spatial.Point{{Lat: 0.001, Lon: 0.001}, {Lat: 0.001, Lon: 0.1}}
	longer := []spatial.Point{{Lat: 0.001, Lon: 0.001}, {Lat: 0.001, Lon: 0.12}}

	report, err := Analyze([][]spatial.Point{track, track, longer}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []int{5, 0, 1}, report.NewCellsPerTrack)
	assert.Equal(t, 6, report.CellCount)
}

func TestAnalyzeFromDoesNotModifyBase(t *testing.T) {
	base := NewCoverageSet(Cell{8192, 8191})
	track := []spatial.Point{{Lat: 0.001, Lon: 0.001}, {Lat: 0.001, Lon: 0.1}}

	report, err := AnalyzeFrom(base, [][]spatial.Point{track}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []int{4}, report.NewCellsPerTrack)
	assert.Equal(t, 1, base.Len())
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	cells := rect(0, 0, 6, 6)
	cells.Remove(Cell{2, 2})
	cells.Remove(Cell{5, 0})
	cells = cells.Union(rect(9, 9, 2, 3))

	first, err := AnalyzeSet(cells, DefaultOptions())
	require.NoError(t, err)
	second, err := AnalyzeSet(cells, DefaultOptions())
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestReportGeoJSON(t *testing.T) {
	ring := rect(100, 100, 3, 3)
	ring.Remove(Cell{101, 101})

	opts := DefaultOptions()
	opts.TopK = 1
	opts.Depth = 1
	report, err := AnalyzeSet(ring, opts)
	require.NoError(t, err)

	fc := ReportGeoJSON(report)
	kinds := map[string]int{}
	for _, f := range fc.Features {
		kinds[f.Properties["kind"].(string)]++
	}
	assert.Equal(t, 8, kinds[KindCovered])
	assert.Equal(t, 1, kinds[KindFilling])
	assert.Equal(t, 1, kinds[KindSquare])
	assert.Equal(t, len(report.SquareTargets), kinds[KindSquareTarget])
	assert.Equal(t, 12, kinds[KindFrontierTarget])

	_, err = fc.MarshalJSON()
	require.NoError(t, err)
}
