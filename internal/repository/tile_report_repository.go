package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jengzang/ridetiles/internal/models"
	"github.com/jengzang/ridetiles/internal/tiles"
	"github.com/pkg/errors"
)

// TileReportRepository handles database operations for tile reports
type TileReportRepository struct {
	db *sql.DB
}

// NewTileReportRepository creates a new tile report repository
func NewTileReportRepository(db *sql.DB) *TileReportRepository {
	return &TileReportRepository{db: db}
}

const reportColumns = `id, rider_id, zoom, top_k, depth, window_start, window_end, last_track_id,
	track_count, cell_count, area_km2, max_square, cluster_size, report_json, created_at`

// Save inserts a report. The full report body is stored as JSON.
func (r *TileReportRepository) Save(ctx context.Context, report *models.TileReport) error {
	body, err := json.Marshal(report.Report)
	if err != nil {
		return errors.Wrap(err, "failed to encode report")
	}

	query := `INSERT INTO tile_reports (` + reportColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		report.ID, report.RiderID, report.Zoom, report.TopK, report.Depth,
		report.WindowStart, report.WindowEnd, report.LastTrackID,
		report.TrackCount, report.CellCount, report.AreaKm2, report.MaxSquare, report.ClusterSize,
		string(body), report.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "failed to save tile report")
	}
	return nil
}

// GetByID retrieves a report with its body
func (r *TileReportRepository) GetByID(ctx context.Context, id string) (*models.TileReport, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+reportColumns+` FROM tile_reports WHERE id = ?`, id)
	report, err := scanReport(row)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(ErrNotFound, "tile report %s", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tile report")
	}
	return report, nil
}

// Latest retrieves the newest report of a rider computed at zoom
func (r *TileReportRepository) Latest(ctx context.Context, riderID string, zoom int) (*models.TileReport, error) {
	query := `SELECT ` + reportColumns + ` FROM tile_reports
		WHERE rider_id = ? AND zoom = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1`

	report, err := scanReport(r.db.QueryRowContext(ctx, query, riderID, zoom))
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(ErrNotFound, "tile report for rider %s", riderID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get latest tile report")
	}
	return report, nil
}

func scanReport(s scanner) (*models.TileReport, error) {
	var rep models.TileReport
	var body string
	err := s.Scan(
		&rep.ID, &rep.RiderID, &rep.Zoom, &rep.TopK, &rep.Depth,
		&rep.WindowStart, &rep.WindowEnd, &rep.LastTrackID,
		&rep.TrackCount, &rep.CellCount, &rep.AreaKm2, &rep.MaxSquare, &rep.ClusterSize,
		&body, &rep.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	rep.Report = new(tiles.Report)
	if err := json.Unmarshal([]byte(body), rep.Report); err != nil {
		return nil, errors.Wrapf(err, "failed to decode tile report %s", rep.ID)
	}
	return &rep, nil
}
