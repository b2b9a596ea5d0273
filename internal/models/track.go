package models

import "github.com/jengzang/ridetiles/internal/spatial"

// Track is one recorded activity of a rider
type Track struct {
	ID         int64           `json:"id" db:"id"`
	RiderID    string          `json:"rider_id" db:"rider_id"`
	Name       string          `json:"name" db:"name"`
	RecordedAt int64           `json:"recorded_at" db:"recorded_at"` // Unix timestamp in seconds
	PointCount int             `json:"point_count" db:"point_count"`
	DistanceM  float64         `json:"distance_m" db:"distance_m"`
	Points     []spatial.Point `json:"points,omitempty" db:"-"` // Stored as an encoded polyline
	CreatedAt  int64           `json:"created_at" db:"created_at"`
}

// CreateTrackRequest is the body of POST /api/v1/tracks.
// Exactly one of Points ([lat, lon] pairs) or Polyline must be set.
type CreateTrackRequest struct {
	RiderID    string       `json:"rider_id" binding:"required"`
	Name       string       `json:"name"`
	RecordedAt int64        `json:"recorded_at"`
	Points     [][2]float64 `json:"points"`
	Polyline   string       `json:"polyline"`
}

// TrackInput is an inline track for analysis requests
type TrackInput struct {
	Points   [][2]float64 `json:"points"`
	Polyline string       `json:"polyline"`
}
