package service

import (
	"context"
	"math"

	"github.com/jengzang/ridetiles/internal/metrics"
	"github.com/jengzang/ridetiles/internal/models"
	"github.com/jengzang/ridetiles/internal/repository"
	"github.com/jengzang/ridetiles/internal/spatial"
	"github.com/pkg/errors"
)

// TrackService handles business logic for tracks
type TrackService struct {
	trackRepo *repository.TrackRepository
}

// NewTrackService creates a new track service
func NewTrackService(trackRepo *repository.TrackRepository) *TrackService {
	return &TrackService{
		trackRepo: trackRepo,
	}
}

// TracksResponse is a page of tracks
type TracksResponse struct {
	Data       []models.Track `json:"data"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// CreateTrack validates and stores a track
func (s *TrackService) CreateTrack(ctx context.Context, req models.CreateTrackRequest) (*models.Track, error) {
	points, err := TrackPoints(models.TrackInput{Points: req.Points, Polyline: req.Polyline})
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "track has no points")
	}

	track := &models.Track{
		RiderID:    req.RiderID,
		Name:       req.Name,
		RecordedAt: req.RecordedAt,
		Points:     points,
	}
	if err := s.trackRepo.Create(ctx, track); err != nil {
		return nil, err
	}

	metrics.TrackIngested()
	return track, nil
}

// GetTracks retrieves tracks with filtering and pagination. Points are omitted.
func (s *TrackService) GetTracks(ctx context.Context, filter models.TrackFilter) (*TracksResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}

	tracks, err := s.trackRepo.List(ctx, filter, false)
	if err != nil {
		return nil, err
	}
	total, err := s.trackRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &TracksResponse{
		Data:       tracks,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.PageSize))),
	}, nil
}

// GetTrackByID retrieves a single track with its points
func (s *TrackService) GetTrackByID(ctx context.Context, id int64) (*models.Track, error) {
	return s.trackRepo.GetByID(ctx, id)
}

// TrackPoints converts a wire track into points. Exactly one of the point
// list or the encoded polyline must be present, and every point must be a
// valid coordinate.
func TrackPoints(in models.TrackInput) ([]spatial.Point, error) {
	if len(in.Points) > 0 && in.Polyline != "" {
		return nil, errors.Wrap(ErrInvalidInput, "points and polyline are mutually exclusive")
	}

	var points []spatial.Point
	if in.Polyline != "" {
		decoded, err := spatial.DecodePolyline(in.Polyline)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidInput, err.Error())
		}
		points = decoded
	} else {
		points = make([]spatial.Point, len(in.Points))
		for i, p := range in.Points {
			points[i] = spatial.Point{Lat: p[0], Lon: p[1]}
		}
	}

	for i, p := range points {
		if !p.Valid() {
			return nil, errors.Wrapf(ErrInvalidInput, "point %d (%v, %v) out of range", i, p.Lat, p.Lon)
		}
	}
	return points, nil
}
