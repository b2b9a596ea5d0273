package analysis

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/jengzang/ridetiles/internal/models"
	"github.com/jengzang/ridetiles/internal/tiles"
	"github.com/pkg/errors"
)

// Analysis modes
const (
	ModeIncremental = "incremental"
	ModeFull        = "full"
)

// Analyzer is the interface that all analysis skills must implement
type Analyzer interface {
	// Analyze performs the analysis for a given task
	// taskID: the analysis task ID
	// mode: "incremental" or "full"
	Analyze(ctx context.Context, taskID int64, mode string) error

	// GetProgress returns the current progress of the analysis
	GetProgress(ctx context.Context, taskID int64) (*Progress, error)

	// GetName returns the name of the analyzer
	GetName() string
}

// Progress represents the progress of an analysis task
type Progress struct {
	Processed int     `json:"processed"` // Number of tracks processed
	Total     int     `json:"total"`     // Total number of tracks to process
	Percent   float64 `json:"percent"`   // Progress percentage (0-100)
	Status    string  `json:"status"`
}

// Settings are handed to every analyzer factory
type Settings struct {
	Options tiles.Options
	Workers int
}

// ModeFor maps a task type to an analysis mode
func ModeFor(taskType string) string {
	if taskType == models.TaskTypeFullRecompute {
		return ModeFull
	}
	return ModeIncremental
}

// BaseAnalyzer provides common functionality for all analyzers
type BaseAnalyzer struct {
	DB   *sql.DB
	Name string
}

// NewBaseAnalyzer creates a new base analyzer
func NewBaseAnalyzer(db *sql.DB, name string) *BaseAnalyzer {
	return &BaseAnalyzer{
		DB:   db,
		Name: name,
	}
}

// GetName returns the analyzer name
func (a *BaseAnalyzer) GetName() string {
	return a.Name
}

// UpdateTaskProgress updates the progress of an analysis task in the database
func (a *BaseAnalyzer) UpdateTaskProgress(ctx context.Context, taskID int64, processed, total int) error {
	percent := 0
	if total > 0 {
		percent = processed * 100 / total
	}

	query := `
		UPDATE analysis_tasks
		SET processed_tracks = ?,
		    total_tracks = ?,
		    progress_percent = ?,
		    updated_at = ?
		WHERE id = ?
	`

	_, err := a.DB.ExecContext(ctx, query, processed, total, percent, time.Now().Unix(), taskID)
	return errors.Wrap(err, "failed to update task progress")
}

// MarkTaskAsRunning marks a task as running
func (a *BaseAnalyzer) MarkTaskAsRunning(ctx context.Context, taskID int64) error {
	now := time.Now().Unix()
	query := `
		UPDATE analysis_tasks
		SET status = ?,
		    start_time = ?,
		    updated_at = ?
		WHERE id = ?
	`

	_, err := a.DB.ExecContext(ctx, query, models.TaskStatusRunning, now, now, taskID)
	return errors.Wrap(err, "failed to mark task as running")
}

// MarkTaskAsCompleted marks a task as completed and stores its summary
func (a *BaseAnalyzer) MarkTaskAsCompleted(ctx context.Context, taskID int64, summary interface{}) error {
	body, err := json.Marshal(summary)
	if err != nil {
		return errors.Wrap(err, "failed to encode task summary")
	}

	now := time.Now().Unix()
	query := `
		UPDATE analysis_tasks
		SET status = ?,
		    progress_percent = 100,
		    result_summary = ?,
		    end_time = ?,
		    updated_at = ?
		WHERE id = ?
	`

	_, err = a.DB.ExecContext(ctx, query, models.TaskStatusCompleted, string(body), now, now, taskID)
	return errors.Wrap(err, "failed to mark task as completed")
}

// GetProgress reads the stored progress of a task
func (a *BaseAnalyzer) GetProgress(ctx context.Context, taskID int64) (*Progress, error) {
	var p Progress
	var percent int
	err := a.DB.QueryRowContext(ctx,
		`SELECT processed_tracks, total_tracks, progress_percent, status FROM analysis_tasks WHERE id = ?`,
		taskID).Scan(&p.Processed, &p.Total, &percent, &p.Status)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get progress of task %d", taskID)
	}
	p.Percent = float64(percent)
	return &p, nil
}

// LoadParams decodes the params_json of a task into v. Empty params leave v untouched.
func (a *BaseAnalyzer) LoadParams(ctx context.Context, taskID int64, v interface{}) error {
	var raw string
	err := a.DB.QueryRowContext(ctx, `SELECT params_json FROM analysis_tasks WHERE id = ?`, taskID).Scan(&raw)
	if err != nil {
		return errors.Wrapf(err, "failed to load params of task %d", taskID)
	}
	if raw == "" {
		return nil
	}
	return errors.Wrap(json.Unmarshal([]byte(raw), v), "failed to decode task params")
}

// AnalyzerFactory is a function that creates an analyzer instance
type AnalyzerFactory func(db *sql.DB, settings Settings) Analyzer

var (
	registryMu sync.RWMutex
	registry   = make(map[string]AnalyzerFactory)
)

// RegisterAnalyzer registers an analyzer factory for a skill name
func RegisterAnalyzer(skillName string, factory AnalyzerFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[skillName] = factory
}

// GetAnalyzer retrieves an analyzer instance for a skill name, or nil
func GetAnalyzer(skillName string, db *sql.DB, settings Settings) Analyzer {
	registryMu.RLock()
	factory, ok := registry[skillName]
	registryMu.RUnlock()
	if !ok {
		return nil
	}
	return factory(db, settings)
}

// IsRegistered checks if a skill has an analyzer
func IsRegistered(skillName string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[skillName]
	return ok
}

// Skills lists the registered skill names
func Skills() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
