package spatial

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
)

const (
	// MaxZoom is the deepest zoom level whose tile indices fit comfortably in an int.
	MaxZoom = 30

	// MaxLatitude is the latitude at which the web mercator projection is cut off.
	MaxLatitude = 85.05112877980659
)

// TileXY maps a WGS84 coordinate to slippy-map tile indices at the given zoom.
// The coordinate must satisfy Point.Valid; latitudes beyond the mercator
// cut-off land in the first or last row, and lon 180 lands in the last column.
func TileXY(lat, lon float64, zoom int) (x, y int) {
	n := math.Exp2(float64(zoom))

	lat = math.Max(-MaxLatitude, math.Min(MaxLatitude, lat))
	latRad := lat * math.Pi / 180

	fx := math.Floor((lon + 180) / 360 * n)
	fy := math.Floor((1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2 * n)

	return clampIndex(fx, n), clampIndex(fy, n)
}

func clampIndex(v, n float64) int {
	if v < 0 {
		return 0
	}
	if v > n-1 {
		return int(n - 1)
	}
	return int(v)
}

// TileBound returns the geographic bounds of tile (x, y) at the given zoom.
// Indices outside the world grid are projected with the same inverse formulas,
// so padding cells around the edges still get a usable box.
func TileBound(x, y, zoom int) orb.Bound {
	n := 1 << uint(zoom)
	if x >= 0 && y >= 0 && x < n && y < n {
		return maptile.New(uint32(x), uint32(y), maptile.Zoom(zoom)).Bound()
	}

	fn := float64(n)
	return orb.Bound{
		Min: orb.Point{tileLon(x, fn), tileLat(y+1, fn)},
		Max: orb.Point{tileLon(x+1, fn), tileLat(y, fn)},
	}
}

func tileLon(x int, n float64) float64 {
	return float64(x)/n*360.0 - 180.0
}

func tileLat(y int, n float64) float64 {
	return 180.0 / math.Pi * math.Atan(math.Sinh(math.Pi*(1-2*float64(y)/n)))
}
