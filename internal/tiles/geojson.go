package tiles

import (
	"github.com/paulmach/orb/geojson"
)

// Feature kinds written to the "kind" property.
const (
	KindCovered        = "covered"
	KindFilling        = "filling"
	KindSquare         = "square"
	KindSquareTarget   = "square_target"
	KindFrontierTarget = "frontier_target"
)

// ReportGeoJSON renders a report as polygons in geographic coordinates.
// Covered cells carry "core" and "cluster" flags, squares their "rank"
// and targets their "level".
func ReportGeoJSON(r *Report) *geojson.FeatureCollection {
	zoom := r.Options.Zoom
	fc := geojson.NewFeatureCollection()

	for _, c := range r.Covered.Cells() {
		f := cellFeature(c, zoom, KindCovered)
		f.Properties["core"] = r.Core.Has(c)
		f.Properties["cluster"] = r.Cluster.Has(c)
		fc.Append(f)
	}
	for _, c := range r.Filling.Cells() {
		fc.Append(cellFeature(c, zoom, KindFilling))
	}
	for i, sq := range r.Squares {
		f := geojson.NewFeature(sq.Bound(zoom).ToPolygon())
		f.Properties["kind"] = KindSquare
		f.Properties["rank"] = i + 1
		f.Properties["size"] = sq.Size
		f.Properties["x"] = sq.TopLeft.X
		f.Properties["y"] = sq.TopLeft.Y
		fc.Append(f)
	}
	appendTargets(fc, r.SquareTargets, zoom, KindSquareTarget)
	appendTargets(fc, r.FrontierTargets, zoom, KindFrontierTarget)
	return fc
}

func appendTargets(fc *geojson.FeatureCollection, targets TargetMap, zoom int, kind string) {
	for _, t := range targets.Targets() {
		f := cellFeature(t.Cell, zoom, kind)
		f.Properties["level"] = t.Level
		fc.Append(f)
	}
}

func cellFeature(c Cell, zoom int, kind string) *geojson.Feature {
	f := geojson.NewFeature(c.Bound(zoom).ToPolygon())
	f.Properties["kind"] = kind
	f.Properties["x"] = c.X
	f.Properties["y"] = c.Y
	return f
}
