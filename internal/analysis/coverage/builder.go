package coverage

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jengzang/ridetiles/internal/metrics"
	"github.com/jengzang/ridetiles/internal/models"
	"github.com/jengzang/ridetiles/internal/repository"
	"github.com/jengzang/ridetiles/internal/spatial"
	"github.com/jengzang/ridetiles/internal/tiles"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Request describes one report to compute
type Request struct {
	RiderID string
	Start   int64 // Unix timestamp, 0 = open
	End     int64 // Unix timestamp, 0 = open
	Options tiles.Options

	// Incremental seeds the computation from the rider's latest report over
	// the same window and zoom, folding in only tracks stored after it.
	Incremental bool
	Source      string
}

// Override returns opts with every non-zero argument applied
func Override(opts tiles.Options, zoom, k, depth int) tiles.Options {
	if zoom != 0 {
		opts.Zoom = zoom
	}
	if k != 0 {
		opts.TopK = k
	}
	if depth != 0 {
		opts.Depth = depth
	}
	return opts
}

// Builder computes and stores tile reports from stored tracks
type Builder struct {
	tracks  *repository.TrackRepository
	reports *repository.TileReportRepository
	now     func() time.Time
}

// NewBuilder creates a builder over db
func NewBuilder(db *sql.DB) *Builder {
	return &Builder{
		tracks:  repository.NewTrackRepository(db),
		reports: repository.NewTileReportRepository(db),
		now:     time.Now,
	}
}

type job struct {
	req    Request
	base   *models.TileReport
	tracks []models.Track
}

func (b *Builder) prepare(ctx context.Context, req Request) (*job, error) {
	if err := req.Options.Validate(); err != nil {
		return nil, err
	}

	j := &job{req: req}
	if req.Incremental {
		latest, err := b.reports.Latest(ctx, req.RiderID, req.Options.Zoom)
		switch {
		case errors.Is(err, repository.ErrNotFound):
		case err != nil:
			return nil, err
		case latest.WindowStart == req.Start && latest.WindowEnd == req.End && latest.Report != nil:
			j.base = latest
		}
	}

	filter := models.TrackFilter{
		RiderID:   req.RiderID,
		StartTime: req.Start,
		EndTime:   req.End,
	}
	if j.base != nil {
		filter.AfterID = j.base.LastTrackID
	}

	tracks, err := b.tracks.List(ctx, filter, true)
	if err != nil {
		return nil, err
	}
	j.tracks = tracks
	return j, nil
}

func (b *Builder) run(ctx context.Context, j *job) (*models.TileReport, error) {
	started := b.now()

	var seed tiles.CoverageSet
	var lastID int64
	count := 0
	if j.base != nil {
		seed = j.base.Report.Covered
		lastID = j.base.LastTrackID
		count = j.base.TrackCount
	}

	points := make([][]spatial.Point, len(j.tracks))
	for i, t := range j.tracks {
		points[i] = t.Points
		if t.ID > lastID {
			lastID = t.ID
		}
	}

	report, err := tiles.AnalyzeFrom(seed, points, j.req.Options)
	if err != nil {
		return nil, errors.Wrapf(err, "rider %s", j.req.RiderID)
	}

	opts := j.req.Options
	rec := &models.TileReport{
		ID:          uuid.NewString(),
		RiderID:     j.req.RiderID,
		Zoom:        opts.Zoom,
		TopK:        opts.TopK,
		Depth:       opts.Depth,
		WindowStart: j.req.Start,
		WindowEnd:   j.req.End,
		LastTrackID: lastID,
		TrackCount:  count + len(j.tracks),
		CellCount:   report.CellCount,
		AreaKm2:     report.AreaKm2,
		ClusterSize: report.Cluster.Len(),
		CreatedAt:   b.now().Unix(),
		Report:      report,
	}
	if sq, ok := report.MaxSquare(); ok {
		rec.MaxSquare = sq.Size
	}

	if err := b.reports.Save(ctx, rec); err != nil {
		return nil, err
	}

	source := j.req.Source
	if source == "" {
		source = metrics.SourceRequest
	}
	metrics.ObserveAnalysis(source, started, rec.CellCount)
	return rec, nil
}

// Compute builds, stores and returns one report
func (b *Builder) Compute(ctx context.Context, req Request) (*models.TileReport, error) {
	j, err := b.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	return b.run(ctx, j)
}

// ProgressFunc is called after each report with the tracks processed so far
type ProgressFunc func(done, total int)

// ComputeRiders computes one report per request with at most workers running
// at once. Results are in request order. The first failure cancels the rest.
func (b *Builder) ComputeRiders(ctx context.Context, reqs []Request, workers int, progress ProgressFunc) ([]*models.TileReport, error) {
	jobs := make([]*job, len(reqs))
	total := 0
	for i, req := range reqs {
		j, err := b.prepare(ctx, req)
		if err != nil {
			return nil, err
		}
		jobs[i] = j
		total += len(j.tracks)
	}

	if workers <= 0 {
		workers = 1
	}

	results := make([]*models.TileReport, len(jobs))
	var mu sync.Mutex
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := b.run(gctx, j)
			if err != nil {
				return err
			}
			results[i] = rec

			if progress != nil {
				mu.Lock()
				done += len(j.tracks)
				progress(done, total)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
