package coverage

import (
	"context"
	"database/sql"

	"github.com/jengzang/ridetiles/internal/analysis"
	"github.com/jengzang/ridetiles/internal/metrics"
	"github.com/jengzang/ridetiles/internal/models"
	"github.com/jengzang/ridetiles/internal/repository"
	"github.com/jengzang/ridetiles/internal/stats"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// SkillName is the registered name of the tile coverage analyzer
const SkillName = "tile_coverage"

// TileCoverageAnalyzer computes tile reports for one rider, or every rider
// with stored tracks, as a background task.
type TileCoverageAnalyzer struct {
	*analysis.BaseAnalyzer
	settings analysis.Settings
	builder  *Builder
	tracks   *repository.TrackRepository
	log      *zap.Logger
}

// NewTileCoverageAnalyzer creates a new tile coverage analyzer
func NewTileCoverageAnalyzer(db *sql.DB, settings analysis.Settings) analysis.Analyzer {
	return &TileCoverageAnalyzer{
		BaseAnalyzer: analysis.NewBaseAnalyzer(db, SkillName),
		settings:     settings,
		builder:      NewBuilder(db),
		tracks:       repository.NewTrackRepository(db),
		log:          zap.L().With(zap.String("analyzer", SkillName)),
	}
}

// Summary is stored as the result_summary of a finished task
type Summary struct {
	Mode    string          `json:"mode"`
	Reports []ReportSummary `json:"reports"`
}

// ReportSummary describes one report produced by a task
type ReportSummary struct {
	ID          string `json:"id"`
	RiderID     string `json:"rider_id"`
	TrackCount  int    `json:"track_count"`
	CellCount   int    `json:"cell_count"`
	MaxSquare   int    `json:"max_square"`
	ClusterSize int    `json:"cluster_size"`

	// NewCells summarises the cells first visited by each track folded in
	NewCells stats.Summary `json:"new_cells"`
}

// Analyze computes the reports requested by the task params
func (a *TileCoverageAnalyzer) Analyze(ctx context.Context, taskID int64, mode string) error {
	log := a.log.With(zap.Int64("task_id", taskID), zap.String("mode", mode))
	log.Info("starting analysis")

	if err := a.MarkTaskAsRunning(ctx, taskID); err != nil {
		return err
	}

	var params models.TileTaskParams
	if err := a.LoadParams(ctx, taskID, &params); err != nil {
		return err
	}
	opts := Override(a.settings.Options, params.Zoom, params.K, params.Depth)
	if err := opts.Validate(); err != nil {
		return err
	}

	riders := []string{params.RiderID}
	if params.RiderID == "" {
		var err error
		if riders, err = a.tracks.Riders(ctx); err != nil {
			return err
		}
	}

	reqs := make([]Request, len(riders))
	for i, rider := range riders {
		reqs[i] = Request{
			RiderID:     rider,
			Start:       params.StartTime,
			End:         params.EndTime,
			Options:     opts,
			Incremental: mode == analysis.ModeIncremental,
			Source:      metrics.SourceTask,
		}
	}

	reports, err := a.builder.ComputeRiders(ctx, reqs, a.settings.Workers, func(done, total int) {
		if err := a.UpdateTaskProgress(ctx, taskID, done, total); err != nil {
			log.Warn("progress update failed", zap.Error(err))
		}
	})
	if err != nil {
		return errors.Wrap(err, "failed to compute reports")
	}

	summary := Summary{Mode: mode, Reports: make([]ReportSummary, len(reports))}
	for i, r := range reports {
		summary.Reports[i] = ReportSummary{
			ID:          r.ID,
			RiderID:     r.RiderID,
			TrackCount:  r.TrackCount,
			CellCount:   r.CellCount,
			MaxSquare:   r.MaxSquare,
			ClusterSize: r.ClusterSize,
			NewCells:    stats.SummarizeInts(r.Report.NewCellsPerTrack),
		}
	}

	log.Info("analysis completed", zap.Int("reports", len(reports)))
	return a.MarkTaskAsCompleted(ctx, taskID, summary)
}

func init() {
	analysis.RegisterAnalyzer(SkillName, NewTileCoverageAnalyzer)
}
