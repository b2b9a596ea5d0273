package models

// TrackFilter represents filter parameters for querying tracks
type TrackFilter struct {
	RiderID   string `form:"rider_id"`
	StartTime int64  `form:"start"`    // Unix timestamp
	EndTime   int64  `form:"end"`      // Unix timestamp
	AfterID   int64  `form:"after_id"` // Only tracks with a larger ID
	Page      int    `form:"page"`
	PageSize  int    `form:"pageSize"`
}

// ReportQuery represents query parameters for computing a rider's report
type ReportQuery struct {
	StartTime int64 `form:"start"` // Unix timestamp
	EndTime   int64 `form:"end"`   // Unix timestamp
	Zoom      int   `form:"zoom"`  // 0 = configured default
	K         int   `form:"k"`     // 0 = configured default
	Depth     int   `form:"depth"` // 0 = configured default
}

// TaskFilter represents filter parameters for listing analysis tasks
type TaskFilter struct {
	SkillName string `form:"skill_name"`
	Status    string `form:"status"`
	Limit     int    `form:"limit"`
	Offset    int    `form:"offset"`
}
