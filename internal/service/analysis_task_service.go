package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"

	"github.com/jengzang/ridetiles/internal/analysis"
	"github.com/jengzang/ridetiles/internal/models"
	"github.com/jengzang/ridetiles/internal/repository"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// AnalysisTaskService handles analysis task business logic
type AnalysisTaskService struct {
	repo     *repository.AnalysisTaskRepository
	db       *sql.DB
	settings analysis.Settings
	log      *zap.Logger

	mu      sync.Mutex
	running map[int64]context.CancelFunc
	wg      sync.WaitGroup
}

// NewAnalysisTaskService creates a new analysis task service
func NewAnalysisTaskService(repo *repository.AnalysisTaskRepository, db *sql.DB, settings analysis.Settings) *AnalysisTaskService {
	return &AnalysisTaskService{
		repo:     repo,
		db:       db,
		settings: settings,
		log:      zap.L().With(zap.String("component", "analysis_task")),
		running:  make(map[int64]context.CancelFunc),
	}
}

// CreateTask creates a new analysis task and starts it in the background
func (s *AnalysisTaskService) CreateTask(ctx context.Context, req models.CreateTaskRequest, createdBy string) (*models.AnalysisTask, error) {
	if !analysis.IsRegistered(req.SkillName) {
		return nil, errors.Wrapf(ErrInvalidInput, "unknown skill: %s", req.SkillName)
	}
	if req.TaskType != models.TaskTypeIncremental && req.TaskType != models.TaskTypeFullRecompute {
		return nil, errors.Wrapf(ErrInvalidInput, "invalid task type: %s", req.TaskType)
	}

	params, err := json.Marshal(req.Params)
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize params")
	}

	task := &models.AnalysisTask{
		SkillName:  req.SkillName,
		TaskType:   req.TaskType,
		Status:     models.TaskStatusPending,
		ParamsJSON: string(params),
		CreatedBy:  createdBy,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.running[task.ID] = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go s.execute(runCtx, task.ID, req.SkillName, req.TaskType)

	return task, nil
}

// execute runs an analyzer and records failures on the task row
func (s *AnalysisTaskService) execute(ctx context.Context, taskID int64, skillName, taskType string) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		if cancel, ok := s.running[taskID]; ok {
			cancel()
			delete(s.running, taskID)
		}
		s.mu.Unlock()
	}()

	log := s.log.With(zap.Int64("task_id", taskID), zap.String("skill", skillName))

	analyzer := analysis.GetAnalyzer(skillName, s.db, s.settings)
	if analyzer == nil {
		log.Error("no analyzer registered")
		s.markFailed(taskID, "unknown skill: "+skillName)
		return
	}

	if err := analyzer.Analyze(ctx, taskID, analysis.ModeFor(taskType)); err != nil {
		log.Error("analysis failed", zap.Error(err))
		s.markFailed(taskID, err.Error())
		return
	}
	log.Info("analysis completed")
}

func (s *AnalysisTaskService) markFailed(taskID int64, message string) {
	if err := s.repo.MarkAsFailed(context.Background(), taskID, message); err != nil {
		s.log.Error("failed to record task failure", zap.Int64("task_id", taskID), zap.Error(err))
	}
}

// GetTask retrieves a task by ID
func (s *AnalysisTaskService) GetTask(ctx context.Context, id int64) (*models.AnalysisTask, error) {
	return s.repo.GetByID(ctx, id)
}

// ListTasks retrieves tasks with optional filters
func (s *AnalysisTaskService) ListTasks(ctx context.Context, filter models.TaskFilter) ([]*models.AnalysisTask, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

// CancelTask stops a pending or running task
func (s *AnalysisTaskService) CancelTask(ctx context.Context, id int64) error {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if task.Status != models.TaskStatusPending && task.Status != models.TaskStatusRunning {
		return errors.Wrapf(ErrInvalidInput, "task is not running (status: %s)", task.Status)
	}

	s.mu.Lock()
	if cancel, ok := s.running[id]; ok {
		cancel()
	}
	s.mu.Unlock()

	return s.repo.MarkAsFailed(ctx, id, "task cancelled by user")
}

// Wait blocks until every started task has returned
func (s *AnalysisTaskService) Wait() {
	s.wg.Wait()
}
