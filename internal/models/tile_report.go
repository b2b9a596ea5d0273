package models

import "github.com/jengzang/ridetiles/internal/tiles"

// TileReport is a stored tile coverage report for one rider and time window
type TileReport struct {
	ID          string  `json:"id" db:"id"`
	RiderID     string  `json:"rider_id" db:"rider_id"`
	Zoom        int     `json:"zoom" db:"zoom"`
	TopK        int     `json:"top_k" db:"top_k"`
	Depth       int     `json:"depth" db:"depth"`
	WindowStart int64   `json:"window_start,omitempty" db:"window_start"` // Unix timestamp, 0 = open
	WindowEnd   int64   `json:"window_end,omitempty" db:"window_end"`     // Unix timestamp, 0 = open
	LastTrackID int64   `json:"last_track_id" db:"last_track_id"`         // Newest track folded into the report
	TrackCount  int     `json:"track_count" db:"track_count"`
	CellCount   int     `json:"cell_count" db:"cell_count"`
	AreaKm2     float64 `json:"area_km2" db:"area_km2"`
	MaxSquare   int     `json:"max_square" db:"max_square"`
	ClusterSize int     `json:"cluster_size" db:"cluster_size"`
	CreatedAt   int64   `json:"created_at" db:"created_at"`

	Report *tiles.Report `json:"report,omitempty" db:"report_json"`
}

// AnalyzeRequest is the body of POST /api/v1/tiles/analyze
type AnalyzeRequest struct {
	Tracks []TrackInput `json:"tracks"`
	Zoom   *int         `json:"zoom"`
	K      *int         `json:"k"`
	Depth  *int         `json:"depth"`
}

// BatchReportRequest is the body of POST /api/v1/tiles/reports
type BatchReportRequest struct {
	Riders    []string `json:"riders" binding:"required"`
	StartTime int64    `json:"start"`
	EndTime   int64    `json:"end"`
	Zoom      int      `json:"zoom"`
	K         int      `json:"k"`
	Depth     int      `json:"depth"`
}

// Query returns the shared window and overrides as a ReportQuery
func (r BatchReportRequest) Query() ReportQuery {
	return ReportQuery{StartTime: r.StartTime, EndTime: r.EndTime, Zoom: r.Zoom, K: r.K, Depth: r.Depth}
}

// CellResponse describes one cell and its geographic bounds
type CellResponse struct {
	Zoom   int        `json:"zoom"`
	Cell   tiles.Cell `json:"cell"`
	MinLat float64    `json:"min_lat"`
	MaxLat float64    `json:"max_lat"`
	MinLon float64    `json:"min_lon"`
	MaxLon float64    `json:"max_lon"`
	AreaKm float64    `json:"area_km2"`
}
