package tiles

import (
	"math"
	"math/rand"
	"testing"

	"github.com/jengzang/ridetiles/internal/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRasterize(t *testing.T) {
	opts := DefaultOptions()

	t.Run("empty input yields empty set", func(t *testing.T) {
		cells, err := Rasterize(nil, opts)
		require.NoError(t, err)
		assert.Equal(t, 0, cells.Len())
	})

	t.Run("single point", func(t *testing.T) {
		cells, err := Rasterize([]spatial.Point{{Lat: 0, Lon: 0}}, opts)
		require.NoError(t, err)
		assert.Equal(t, NewCoverageSet(Cell{8192, 8192}), cells)
	})

	t.Run("sparse samples are gap filled", func(t *testing.T) {
		// roughly 11 km along the equator, five cells wide at zoom 14
		track := []spatial.Point{{Lat: 0.001, Lon: 0.001}, {Lat: 0.001, Lon: 0.1}}
		cells, err := Rasterize(track, opts)
		require.NoError(t, err)

		want := NewCoverageSet()
		for x := 8192; x <= 8196; x++ {
			want.Add(Cell{X: x, Y: 8191})
		}
		assert.Equal(t, want, cells)
	})

	t.Run("close samples keep only endpoints", func(t *testing.T) {
		// about 22 m apart, straddling the x=8192 boundary
		track := []spatial.Point{{Lat: 0.001, Lon: -0.0001}, {Lat: 0.001, Lon: 0.0001}}
		cells, err := Rasterize(track, opts)
		require.NoError(t, err)
		assert.Equal(t, NewCoverageSet(Cell{8191, 8191}, Cell{8192, 8191}), cells)
	})

	t.Run("invalid point fails", func(t *testing.T) {
		track := []spatial.Point{{Lat: 0, Lon: 0}, {Lat: math.NaN(), Lon: 0}}
		_, err := Rasterize(track, opts)
		assert.ErrorIs(t, err, ErrInvalidCoordinate)
	})

	t.Run("invalid options fail", func(t *testing.T) {
		bad := opts
		bad.StepMeters = 0
		_, err := Rasterize([]spatial.Point{{Lat: 0, Lon: 0}}, bad)
		assert.ErrorIs(t, err, ErrInvalidOptions)
	})
}

func TestRasterizeCompleteness(t *testing.T) {
	opts := DefaultOptions()
	segments := []struct {
		name       string
		start, end spatial.Point
	}{
		{"east west", spatial.Point{Lat: 52.52, Lon: 13.30}, spatial.Point{Lat: 52.52, Lon: 13.60}},
		{"north south", spatial.Point{Lat: 52.40, Lon: 13.41}, spatial.Point{Lat: 52.60, Lon: 13.41}},
	}

	for _, seg := range segments {
		t.Run(seg.name, func(t *testing.T) {
			cells, err := Rasterize([]spatial.Point{seg.start, seg.end}, opts)
			require.NoError(t, err)

			// dense reference sampling of the same line
			for i := 0; i <= 5000; i++ {
				p := spatial.Interpolate(seg.start, seg.end, float64(i)/5000)
				c, err := CellOf(p.Lat, p.Lon, opts.Zoom)
				require.NoError(t, err)
				assert.True(t, cells.Has(c), "cell %s missing", c)
			}
		})
	}
}

// Points are spaced under one step apart, so the rasterized set can only miss
// cells the line clips for less than a step, next to a cell it did reach.
func TestRasterizeRandomSegments(t *testing.T) {
	opts := DefaultOptions()
	rng := rand.New(rand.NewSource(14))
	const samples = 20000

	missedSegments := 0
	for i := 0; i < 300; i++ {
		start := spatial.Point{Lat: 44.9 + rng.Float64()*0.2, Lon: 7.5 + rng.Float64()*0.2}
		end := spatial.Point{Lat: start.Lat + (rng.Float64()-0.5)*0.06, Lon: start.Lon + (rng.Float64()-0.5)*0.06}
		d := spatial.Distance(start, end)
		if d <= opts.GapThresholdMeters {
			continue
		}

		cells, err := Rasterize([]spatial.Point{start, end}, opts)
		require.NoError(t, err)

		hits := map[Cell]int{}
		for j := 0; j <= samples; j++ {
			p := spatial.Interpolate(start, end, float64(j)/samples)
			c, err := CellOf(p.Lat, p.Lon, opts.Zoom)
			require.NoError(t, err)
			if !cells.Has(c) {
				hits[c]++
			}
		}
		if len(hits) > 0 {
			missedSegments++
		}

		for c, n := range hits {
			chord := float64(n) * d / samples
			assert.LessOrEqual(t, chord, opts.StepMeters*1.05+2*d/samples, "segment %d clips %s for %.1fm", i, c, chord)

			near := false
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					near = near || cells.Has(Cell{X: c.X + dx, Y: c.Y + dy})
				}
			}
			assert.True(t, near, "segment %d missed %s away from every covered cell", i, c)
		}
	}
	assert.Less(t, missedSegments, 30)
}

func TestRasterizeTracksDoesNotBridgeTracks(t *testing.T) {
	opts := DefaultOptions()
	tracks := [][]spatial.Point{
		{{Lat: 0.001, Lon: 0.001}},
		{{Lat: 0.001, Lon: 0.1}},
	}

	cells, err := RasterizeTracks(tracks, opts)
	require.NoError(t, err)
	assert.Equal(t, NewCoverageSet(Cell{8192, 8191}, Cell{8196, 8191}), cells)
}

func TestNewCells(t *testing.T) {
	opts := DefaultOptions()
	base := NewCoverageSet(Cell{8192, 8191}, Cell{8193, 8191})
	track := []spatial.Point{{Lat: 0.001, Lon: 0.001}, {Lat: 0.001, Lon: 0.1}}

	added, err := NewCells(base, track, opts)
	require.NoError(t, err)
	assert.Equal(t, NewCoverageSet(Cell{8194, 8191}, Cell{8195, 8191}, Cell{8196, 8191}), added)
	assert.Equal(t, 2, base.Len())
}
