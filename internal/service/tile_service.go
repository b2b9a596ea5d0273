package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/jengzang/ridetiles/internal/analysis/coverage"
	"github.com/jengzang/ridetiles/internal/metrics"
	"github.com/jengzang/ridetiles/internal/models"
	"github.com/jengzang/ridetiles/internal/repository"
	"github.com/jengzang/ridetiles/internal/spatial"
	"github.com/jengzang/ridetiles/internal/tiles"
	"github.com/pkg/errors"
)

// TileService computes, stores and serves tile coverage reports
type TileService struct {
	reportRepo *repository.TileReportRepository
	builder    *coverage.Builder
	defaults   tiles.Options
	workers    int
}

// NewTileService creates a new tile service
func NewTileService(db *sql.DB, defaults tiles.Options, workers int) *TileService {
	return &TileService{
		reportRepo: repository.NewTileReportRepository(db),
		builder:    coverage.NewBuilder(db),
		defaults:   defaults,
		workers:    workers,
	}
}

// Defaults returns the configured engine options
func (s *TileService) Defaults() tiles.Options {
	return s.defaults
}

// Analyze runs the engine over inline tracks. Nothing is stored.
func (s *TileService) Analyze(req models.AnalyzeRequest) (*tiles.Report, error) {
	opts := s.defaults
	if req.Zoom != nil {
		opts.Zoom = *req.Zoom
	}
	if req.K != nil {
		opts.TopK = *req.K
	}
	if req.Depth != nil {
		opts.Depth = *req.Depth
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	tracks := make([][]spatial.Point, len(req.Tracks))
	for i, in := range req.Tracks {
		points, err := TrackPoints(in)
		if err != nil {
			return nil, errors.Wrapf(err, "track %d", i)
		}
		tracks[i] = points
	}

	started := time.Now()
	report, err := tiles.Analyze(tracks, opts)
	if err != nil {
		return nil, err
	}
	metrics.ObserveAnalysis(metrics.SourceInline, started, report.CellCount)
	return report, nil
}

// ComputeReport computes and stores a rider's report from stored tracks
func (s *TileService) ComputeReport(ctx context.Context, riderID string, q models.ReportQuery) (*models.TileReport, error) {
	if riderID == "" {
		return nil, errors.Wrap(ErrInvalidInput, "rider id is required")
	}
	if q.EndTime > 0 && q.StartTime > q.EndTime {
		return nil, errors.Wrap(ErrInvalidInput, "start is after end")
	}

	return s.builder.Compute(ctx, coverage.Request{
		RiderID: riderID,
		Start:   q.StartTime,
		End:     q.EndTime,
		Options: coverage.Override(s.defaults, q.Zoom, q.K, q.Depth),
		Source:  metrics.SourceRequest,
	})
}

// ComputeRiders computes and stores one report per rider over the same window
func (s *TileService) ComputeRiders(ctx context.Context, riderIDs []string, q models.ReportQuery) ([]*models.TileReport, error) {
	if len(riderIDs) == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "at least one rider is required")
	}
	for _, id := range riderIDs {
		if id == "" {
			return nil, errors.Wrap(ErrInvalidInput, "rider id is required")
		}
	}
	if q.EndTime > 0 && q.StartTime > q.EndTime {
		return nil, errors.Wrap(ErrInvalidInput, "start is after end")
	}
	opts := coverage.Override(s.defaults, q.Zoom, q.K, q.Depth)
	reqs := make([]coverage.Request, len(riderIDs))
	for i, id := range riderIDs {
		reqs[i] = coverage.Request{
			RiderID: id,
			Start:   q.StartTime,
			End:     q.EndTime,
			Options: opts,
			Source:  metrics.SourceRequest,
		}
	}
	return s.builder.ComputeRiders(ctx, reqs, s.workers, nil)
}

// GetReport retrieves a stored report
func (s *TileService) GetReport(ctx context.Context, id string) (*models.TileReport, error) {
	return s.reportRepo.GetByID(ctx, id)
}

// Cell locates the cell containing a coordinate. zoom 0 means the configured zoom.
func (s *TileService) Cell(lat, lon float64, zoom int) (*models.CellResponse, error) {
	if zoom == 0 {
		zoom = s.defaults.Zoom
	}
	cell, err := tiles.CellOf(lat, lon, zoom)
	if err != nil {
		return nil, err
	}

	b := cell.Bound(zoom)
	return &models.CellResponse{
		Zoom:   zoom,
		Cell:   cell,
		MinLat: b.Min.Lat(),
		MaxLat: b.Max.Lat(),
		MinLon: b.Min.Lon(),
		MaxLon: b.Max.Lon(),
		AreaKm: tiles.CellArea(cell, zoom),
	}, nil
}
