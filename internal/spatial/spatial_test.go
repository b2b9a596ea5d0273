package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineDistance(t *testing.T) {
	// one degree of longitude on the equator
	assert.InDelta(t, 111195, HaversineDistance(0, 0, 0, 1), 1)
	assert.Equal(t, 0.0, Distance(Point{Lat: 10, Lon: 10}, Point{Lat: 10, Lon: 10}))
}

func TestPathLength(t *testing.T) {
	path := []Point{{0, 0}, {0, 1}, {0, 2}}
	assert.InDelta(t, 2*111195, PathLength(path), 2)
	assert.Equal(t, 0.0, PathLength(path[:1]))
}

func TestInterpolate(t *testing.T) {
	mid := Interpolate(Point{Lat: 10, Lon: 20}, Point{Lat: 20, Lon: 40}, 0.5)
	assert.Equal(t, Point{Lat: 15, Lon: 30}, mid)
}

func TestPointValid(t *testing.T) {
	assert.True(t, Point{Lat: 45, Lon: -120}.Valid())
	assert.False(t, Point{Lat: math.NaN(), Lon: 0}.Valid())
	assert.False(t, Point{Lat: 0, Lon: math.Inf(-1)}.Valid())
	assert.False(t, Point{Lat: -90.5, Lon: 0}.Valid())
	assert.False(t, Point{Lat: 0, Lon: 180.1}.Valid())
}

func TestTileBound(t *testing.T) {
	b := TileBound(0, 0, 1)
	assert.InDelta(t, -180, b.Left(), 1e-9)
	assert.InDelta(t, 0, b.Right(), 1e-9)
	assert.InDelta(t, MaxLatitude, b.Top(), 1e-9)
	assert.InDelta(t, 0, b.Bottom(), 1e-9)

	// outside the grid the same projection is extrapolated
	out := TileBound(-1, 0, 1)
	assert.InDelta(t, -360, out.Left(), 1e-9)
	assert.InDelta(t, -180, out.Right(), 1e-9)
}

func TestTileXYRoundTrip(t *testing.T) {
	for _, p := range []Point{{52.52, 13.405}, {-33.86, 151.21}, {40.71, -74.0}} {
		x, y := TileXY(p.Lat, p.Lon, 14)
		b := TileBound(x, y, 14)
		assert.True(t, b.Contains([2]float64{p.Lon, p.Lat}), "%v not inside its tile", p)
	}
}

func TestTileXYEdges(t *testing.T) {
	x, y := TileXY(0, 180, 14)
	assert.Equal(t, 16383, x)
	assert.Equal(t, 8192, y)

	x, _ = TileXY(0, -180, 14)
	assert.Equal(t, 0, x)

	_, y = TileXY(89, 0, 14)
	assert.Equal(t, 0, y)
	_, y = TileXY(-89, 0, 14)
	assert.Equal(t, 16383, y)
}

func TestPolylineRoundTrip(t *testing.T) {
	points := []Point{{38.5, -120.2}, {40.7, -120.95}, {43.252, -126.453}}

	encoded := EncodePolyline(points)
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", encoded)

	decoded, err := DecodePolyline(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, len(points))
	for i := range points {
		assert.InDelta(t, points[i].Lat, decoded[i].Lat, 1e-5)
		assert.InDelta(t, points[i].Lon, decoded[i].Lon, 1e-5)
	}

	_, err = DecodePolyline("_p~iF~ps|U_")
	assert.Error(t, err)
}
