package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jengzang/ridetiles/internal/models"
	"github.com/pkg/errors"
)

// AnalysisTaskRepository handles database operations for analysis tasks
type AnalysisTaskRepository struct {
	db *sql.DB
}

// NewAnalysisTaskRepository creates a new analysis task repository
func NewAnalysisTaskRepository(db *sql.DB) *AnalysisTaskRepository {
	return &AnalysisTaskRepository{db: db}
}

const taskColumns = `id, skill_name, task_type, status, progress_percent, params_json,
	total_tracks, processed_tracks, result_summary, error_message, created_by,
	start_time, end_time, created_at, updated_at`

// Create creates a new analysis task
func (r *AnalysisTaskRepository) Create(ctx context.Context, task *models.AnalysisTask) error {
	now := time.Now().Unix()
	task.CreatedAt, task.UpdatedAt = now, now

	query := `
		INSERT INTO analysis_tasks (
			skill_name, task_type, status, progress_percent, params_json,
			total_tracks, processed_tracks, created_by, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		task.SkillName,
		task.TaskType,
		task.Status,
		task.ProgressPercent,
		task.ParamsJSON,
		task.TotalTracks,
		task.ProcessedTracks,
		task.CreatedBy,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "failed to create analysis task")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "failed to get last insert id")
	}

	task.ID = id
	return nil
}

// GetByID retrieves an analysis task by ID
func (r *AnalysisTaskRepository) GetByID(ctx context.Context, id int64) (*models.AnalysisTask, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM analysis_tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(ErrNotFound, "analysis task %d", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get analysis task")
	}
	return task, nil
}

// List retrieves analysis tasks with optional filters, newest first
func (r *AnalysisTaskRepository) List(ctx context.Context, filter models.TaskFilter) ([]*models.AnalysisTask, error) {
	query := `SELECT ` + taskColumns + ` FROM analysis_tasks WHERE 1=1`
	var args []interface{}

	if filter.SkillName != "" {
		query += " AND skill_name = ?"
		args = append(args, filter.SkillName)
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	query += " ORDER BY id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query analysis tasks")
	}
	defer rows.Close()

	var tasks []*models.AnalysisTask
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan analysis task")
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// MarkAsFailed marks a task as failed with an error message
func (r *AnalysisTaskRepository) MarkAsFailed(ctx context.Context, id int64, message string) error {
	now := time.Now().Unix()
	_, err := r.db.ExecContext(ctx, `
		UPDATE analysis_tasks
		SET status = ?, error_message = ?, end_time = ?, updated_at = ?
		WHERE id = ?`,
		models.TaskStatusFailed, message, now, now, id)
	if err != nil {
		return errors.Wrap(err, "failed to mark task as failed")
	}
	return nil
}

func scanTask(s scanner) (*models.AnalysisTask, error) {
	task := &models.AnalysisTask{}
	err := s.Scan(
		&task.ID,
		&task.SkillName,
		&task.TaskType,
		&task.Status,
		&task.ProgressPercent,
		&task.ParamsJSON,
		&task.TotalTracks,
		&task.ProcessedTracks,
		&task.ResultSummary,
		&task.ErrorMessage,
		&task.CreatedBy,
		&task.StartTime,
		&task.EndTime,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}
