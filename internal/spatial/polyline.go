package spatial

import (
	"github.com/pkg/errors"
	"github.com/twpayne/go-polyline"
)

// EncodePolyline encodes points in the Google polyline format (5 decimal places).
func EncodePolyline(points []Point) string {
	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = []float64{p.Lat, p.Lon}
	}
	return string(polyline.EncodeCoords(coords))
}

// DecodePolyline decodes a Google polyline into points.
func DecodePolyline(encoded string) ([]Point, error) {
	coords, rest, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode polyline")
	}
	if len(rest) != 0 {
		return nil, errors.Errorf("failed to decode polyline: %d trailing bytes", len(rest))
	}

	points := make([]Point, len(coords))
	for i, c := range coords {
		points[i] = Point{Lat: c[0], Lon: c[1]}
	}
	return points, nil
}
