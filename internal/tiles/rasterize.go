package tiles

import (
	"math"

	"github.com/jengzang/ridetiles/internal/spatial"
	"github.com/pkg/errors"
)

// Rasterize expands an ordered track into the set of cells it passes through.
// Consecutive points further apart than the gap threshold get
// ceil(distance/step) interpolated points between them so sparse samples
// do not skip cells.
func Rasterize(points []spatial.Point, opts Options) (CoverageSet, error) {
	if err := opts.validateRaster(); err != nil {
		return nil, err
	}
	set := NewCoverageSet()
	if err := rasterizeInto(set, points, opts); err != nil {
		return nil, err
	}
	return set, nil
}

// RasterizeTracks unions the cells of independent tracks. Gaps are never
// filled across track boundaries.
func RasterizeTracks(tracks [][]spatial.Point, opts Options) (CoverageSet, error) {
	if err := opts.validateRaster(); err != nil {
		return nil, err
	}
	set := NewCoverageSet()
	for i, track := range tracks {
		if err := rasterizeInto(set, track, opts); err != nil {
			return nil, errors.Wrapf(err, "track %d", i)
		}
	}
	return set, nil
}

// NewCells returns the cells of track that are not already in base.
func NewCells(base CoverageSet, track []spatial.Point, opts Options) (CoverageSet, error) {
	cells, err := Rasterize(track, opts)
	if err != nil {
		return nil, err
	}
	return cells.Difference(base), nil
}

func rasterizeInto(set CoverageSet, points []spatial.Point, opts Options) error {
	for i, p := range points {
		c, err := CellOf(p.Lat, p.Lon, opts.Zoom)
		if err != nil {
			return errors.Wrapf(err, "point %d", i)
		}
		set.Add(c)
		if i == 0 {
			continue
		}

		prev := points[i-1]
		d := spatial.Distance(prev, p)
		if d <= opts.GapThresholdMeters {
			continue
		}
		n := int(math.Ceil(d / opts.StepMeters))
		for j := 1; j <= n; j++ {
			q := spatial.Interpolate(prev, p, float64(j)/float64(n+1))
			x, y := spatial.TileXY(q.Lat, q.Lon, opts.Zoom)
			set.Add(Cell{X: x, Y: y})
		}
	}
	return nil
}
