package models

// AnalysisTask represents a background analysis run
type AnalysisTask struct {
	ID int64 `json:"id" db:"id"`

	// Task identification
	SkillName string `json:"skill_name" db:"skill_name"` // Which analyzer to run
	TaskType  string `json:"task_type" db:"task_type"`   // INCREMENTAL, FULL_RECOMPUTE

	// Status
	Status          string `json:"status" db:"status"` // pending, running, completed, failed
	ProgressPercent int    `json:"progress_percent" db:"progress_percent"`

	// Input parameters
	ParamsJSON string `json:"params_json,omitempty" db:"params_json"`

	// Execution info
	TotalTracks     int   `json:"total_tracks" db:"total_tracks"`
	ProcessedTracks int   `json:"processed_tracks" db:"processed_tracks"`
	StartTime       int64 `json:"start_time,omitempty" db:"start_time"` // Unix timestamp
	EndTime         int64 `json:"end_time,omitempty" db:"end_time"`     // Unix timestamp

	// Results
	ResultSummary string `json:"result_summary,omitempty" db:"result_summary"` // JSON object with summary statistics
	ErrorMessage  string `json:"error_message,omitempty" db:"error_message"`

	// Metadata
	CreatedBy string `json:"created_by,omitempty" db:"created_by"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
	UpdatedAt int64  `json:"updated_at" db:"updated_at"`
}

// TileTaskParams are the params_json of a tile_coverage task
type TileTaskParams struct {
	RiderID   string `json:"rider_id"`
	StartTime int64  `json:"start,omitempty"`
	EndTime   int64  `json:"end,omitempty"`
	Zoom      int    `json:"zoom,omitempty"`
	K         int    `json:"k,omitempty"`
	Depth     int    `json:"depth,omitempty"`
}

// CreateTaskRequest represents the request body for creating an analysis task
type CreateTaskRequest struct {
	SkillName string         `json:"skill_name" binding:"required"`
	TaskType  string         `json:"task_type" binding:"required"` // INCREMENTAL or FULL_RECOMPUTE
	Params    TileTaskParams `json:"params"`
}

// TaskType constants
const (
	TaskTypeIncremental   = "INCREMENTAL"
	TaskTypeFullRecompute = "FULL_RECOMPUTE"
)

// TaskStatus constants
const (
	TaskStatusPending   = "pending"
	TaskStatusRunning   = "running"
	TaskStatusCompleted = "completed"
	TaskStatusFailed    = "failed"
)
