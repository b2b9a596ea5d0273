package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jengzang/ridetiles/internal/models"
	"github.com/jengzang/ridetiles/internal/spatial"
	"github.com/pkg/errors"
)

// TrackRepository handles database operations for tracks
type TrackRepository struct {
	db *sql.DB
}

// NewTrackRepository creates a new track repository
func NewTrackRepository(db *sql.DB) *TrackRepository {
	return &TrackRepository{db: db}
}

const trackColumns = `id, rider_id, name, recorded_at, point_count, distance_m, polyline, created_at`

// Create stores a track and sets its ID, point count, distance and creation time
func (r *TrackRepository) Create(ctx context.Context, track *models.Track) error {
	track.PointCount = len(track.Points)
	track.DistanceM = spatial.PathLength(track.Points)
	track.CreatedAt = time.Now().Unix()

	query := `INSERT INTO tracks (rider_id, name, recorded_at, point_count, distance_m, polyline, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		track.RiderID,
		track.Name,
		track.RecordedAt,
		track.PointCount,
		track.DistanceM,
		spatial.EncodePolyline(track.Points),
		track.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "failed to create track")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "failed to get last insert id")
	}
	track.ID = id
	return nil
}

// GetByID retrieves a single track with its points
func (r *TrackRepository) GetByID(ctx context.Context, id int64) (*models.Track, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+trackColumns+` FROM tracks WHERE id = ?`, id)

	track, err := scanTrack(row, true)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(ErrNotFound, "track %d", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get track")
	}
	return track, nil
}

// List retrieves tracks matching filter, oldest first. Points are decoded
// only when withPoints is set.
func (r *TrackRepository) List(ctx context.Context, filter models.TrackFilter, withPoints bool) ([]models.Track, error) {
	where, args := trackWhere(filter)
	query := `SELECT ` + trackColumns + ` FROM tracks` + where
	query += " ORDER BY recorded_at ASC, id ASC"

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.PageSize, (page-1)*filter.PageSize)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query tracks")
	}
	defer rows.Close()

	var tracks []models.Track
	for rows.Next() {
		track, err := scanTrack(rows, withPoints)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan track")
		}
		tracks = append(tracks, *track)
	}
	return tracks, rows.Err()
}

// Count returns the number of tracks matching filter, ignoring pagination
func (r *TrackRepository) Count(ctx context.Context, filter models.TrackFilter) (int, error) {
	where, args := trackWhere(filter)
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tracks`+where, args...).Scan(&total); err != nil {
		return 0, errors.Wrap(err, "failed to count tracks")
	}
	return total, nil
}

func trackWhere(filter models.TrackFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.RiderID != "" {
		conditions = append(conditions, "rider_id = ?")
		args = append(args, filter.RiderID)
	}
	if filter.StartTime > 0 {
		conditions = append(conditions, "recorded_at >= ?")
		args = append(args, filter.StartTime)
	}
	if filter.EndTime > 0 {
		conditions = append(conditions, "recorded_at <= ?")
		args = append(args, filter.EndTime)
	}
	if filter.AfterID > 0 {
		conditions = append(conditions, "id > ?")
		args = append(args, filter.AfterID)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// Riders returns every rider that has at least one track
func (r *TrackRepository) Riders(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT rider_id FROM tracks ORDER BY rider_id`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query riders")
	}
	defer rows.Close()

	var riders []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "failed to scan rider")
		}
		riders = append(riders, id)
	}
	return riders, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTrack(s scanner, withPoints bool) (*models.Track, error) {
	var t models.Track
	var encoded string
	err := s.Scan(&t.ID, &t.RiderID, &t.Name, &t.RecordedAt, &t.PointCount, &t.DistanceM, &encoded, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	if withPoints {
		if t.Points, err = spatial.DecodePolyline(encoded); err != nil {
			return nil, errors.Wrapf(err, "track %d", t.ID)
		}
	}
	return &t, nil
}
