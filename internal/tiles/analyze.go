package tiles

import (
	"github.com/jengzang/ridetiles/internal/spatial"
	"github.com/pkg/errors"
)

// Report is the full output of one analysis pass.
type Report struct {
	Options   Options     `json:"options"`
	Covered   CoverageSet `json:"covered"`
	CellCount int         `json:"cell_count"`
	AreaKm2   float64     `json:"area_km2"`
	Core      CoverageSet `json:"core"`

	Squares []Square    `json:"squares"`
	Cluster CoverageSet `json:"cluster"`
	Filling CoverageSet `json:"filling"`

	SquareTargets   TargetMap `json:"square_targets"`
	FrontierTargets TargetMap `json:"frontier_targets"`

	// NewCellsPerTrack holds, per input track in order, how many cells that
	// track added to the coverage accumulated so far.
	NewCellsPerTrack []int `json:"new_cells_per_track,omitempty"`
}

// MaxSquare returns the largest square of the report, if any.
func (r *Report) MaxSquare() (Square, bool) {
	if len(r.Squares) == 0 {
		return Square{}, false
	}
	return r.Squares[0], true
}

// Analyze rasterizes tracks and runs every metric, shape and planner over
// the result.
func Analyze(tracks [][]spatial.Point, opts Options) (*Report, error) {
	return AnalyzeFrom(nil, tracks, opts)
}

// AnalyzeFrom extends base with tracks before analysing. base is not modified.
func AnalyzeFrom(base CoverageSet, tracks [][]spatial.Point, opts Options) (*Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	covered := base.Clone()
	perTrack := make([]int, 0, len(tracks))
	for i, track := range tracks {
		added, err := NewCells(covered, track, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "track %d", i)
		}
		for c := range added {
			covered.Add(c)
		}
		perTrack = append(perTrack, added.Len())
	}

	report, err := AnalyzeSet(covered, opts)
	if err != nil {
		return nil, err
	}
	if len(perTrack) > 0 {
		report.NewCellsPerTrack = perTrack
	}
	return report, nil
}

// AnalyzeSet runs the metric, shape and planning stages over an existing set.
func AnalyzeSet(covered CoverageSet, opts Options) (*Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if covered == nil {
		covered = NewCoverageSet()
	}

	squares, err := TopKSquares(covered, opts.TopK)
	if err != nil {
		return nil, err
	}
	cluster := LargestCluster(covered)
	filling := FillingCells(cluster)

	report := &Report{
		Options:       opts,
		Covered:       covered,
		CellCount:     covered.Len(),
		AreaKm2:       TotalArea(covered, opts.Zoom),
		Core:          CoreCells(covered),
		Squares:       squares,
		Cluster:       cluster,
		Filling:       filling,
		SquareTargets: make(TargetMap),
	}

	if best, ok := report.MaxSquare(); ok {
		report.SquareTargets, err = PlanSquareTargets(covered, best, opts.Depth)
		if err != nil {
			return nil, err
		}
	}
	report.FrontierTargets, err = PlanFrontierTargets(cluster, filling, opts.Depth)
	if err != nil {
		return nil, err
	}
	return report, nil
}
