package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/convoycubano1-glitch/boostify-progress/internal/config"
	mq "github.com/convoycubano1-glitch/boostify-progress/internal/infra/queue"
	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/model"
	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/repo"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TaskService interface {
	CreateTask(ctx context.Context, in CreateTaskInput) (*TaskMutationOutput, error)
	ListTasks(ctx context.Context, ownerID string, phaseID uuid.UUID) ([]model.Task, error)
	ToggleTask(ctx context.Context, ownerID string, taskID uuid.UUID) (*TaskMutationOutput, error)
	DeleteTask(ctx context.Context, ownerID string, taskID uuid.UUID) (*model.Phase, error)
}

type taskService struct {
	r           repo.TaskRepo
	phaseRepo   repo.PhaseRepo
	projectRepo repo.ProjectRepo
	cache       *ProgressCache
	publisher   *mq.Publisher
	cfg         *config.Config
	log         *zap.Logger
}

func NewTaskService(r repo.TaskRepo, phaseRepo repo.PhaseRepo, projectRepo repo.ProjectRepo, cache *ProgressCache, publisher *mq.Publisher, cfg *config.Config, log *zap.Logger) TaskService {
	return &taskService{
		r:           r,
		phaseRepo:   phaseRepo,
		projectRepo: projectRepo,
		cache:       cache,
		publisher:   publisher,
		cfg:         cfg,
		log:         log,
	}
}

type CreateTaskInput struct {
	OwnerID string    `json:"owner_id"`
	PhaseID uuid.UUID `json:"phase_id"`
	Name    string    `json:"name"`
}

// TaskMutationOutput carries both the mutated task and the phase as it
// stands after the in-transaction progress recompute, so clients resync
// without a second round trip.
type TaskMutationOutput struct {
	Task  *model.Task  `json:"task,omitempty"`
	Phase *model.Phase `json:"phase"`
}

func (s *taskService) CreateTask(ctx context.Context, in CreateTaskInput) (*TaskMutationOutput, error) {
	ph, err := s.getOwnedPhase(ctx, in.OwnerID, in.PhaseID)
	if err != nil {
		return nil, err
	}

	t := &model.Task{
		PhaseID:   ph.ID,
		ProjectID: ph.ProjectID,
		Name:      in.Name,
	}
	updated, err := s.r.CreateWithRecompute(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.invalidate(ctx, ph.ProjectID)
	s.publishProgressChanged(ctx, ph.ProjectID, ph.ID, updated.Progress, SourceTaskCreate)
	return &TaskMutationOutput{Task: t, Phase: updated}, nil
}

func (s *taskService) ListTasks(ctx context.Context, ownerID string, phaseID uuid.UUID) ([]model.Task, error) {
	if _, err := s.getOwnedPhase(ctx, ownerID, phaseID); err != nil {
		return nil, err
	}
	return s.r.ListByPhase(ctx, phaseID)
}

func (s *taskService) ToggleTask(ctx context.Context, ownerID string, taskID uuid.UUID) (*TaskMutationOutput, error) {
	if err := s.requireOwnedTask(ctx, ownerID, taskID); err != nil {
		return nil, err
	}

	t, ph, err := s.r.Toggle(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to toggle task: %w", err)
	}

	s.invalidate(ctx, ph.ProjectID)
	s.publishProgressChanged(ctx, ph.ProjectID, ph.ID, ph.Progress, SourceTaskToggle)
	return &TaskMutationOutput{Task: t, Phase: ph}, nil
}

func (s *taskService) DeleteTask(ctx context.Context, ownerID string, taskID uuid.UUID) (*model.Phase, error) {
	if err := s.requireOwnedTask(ctx, ownerID, taskID); err != nil {
		return nil, err
	}

	ph, err := s.r.DeleteWithRecompute(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}

	s.invalidate(ctx, ph.ProjectID)
	s.publishProgressChanged(ctx, ph.ProjectID, ph.ID, ph.Progress, SourceTaskDelete)
	return ph, nil
}

func (s *taskService) getOwnedPhase(ctx context.Context, ownerID string, phaseID uuid.UUID) (*model.Phase, error) {
	ph, err := s.phaseRepo.Get(ctx, phaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhaseNotFound
		}
		return nil, fmt.Errorf("failed to get phase: %w", err)
	}
	ok, err := s.projectRepo.Owns(ctx, ownerID, ph.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to check project ownership: %w", err)
	}
	if !ok {
		return nil, ErrPhaseNotFound
	}
	return ph, nil
}

func (s *taskService) requireOwnedTask(ctx context.Context, ownerID string, taskID uuid.UUID) error {
	t, err := s.r.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to get task: %w", err)
	}
	ok, err := s.projectRepo.Owns(ctx, ownerID, t.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to check project ownership: %w", err)
	}
	if !ok {
		return ErrTaskNotFound
	}
	return nil
}

func (s *taskService) invalidate(ctx context.Context, projectID uuid.UUID) {
	if err := s.cache.Invalidate(ctx, projectID); err != nil {
		s.log.Warn("failed to invalidate progress cache", zap.Error(err), zap.String("project_id", projectID.String()))
	}
}

func (s *taskService) publishProgressChanged(ctx context.Context, projectID, phaseID uuid.UUID, pct int, source string) {
	if s.publisher == nil {
		return
	}
	evt := ProgressChangedMQ{
		ProjectID:     projectID,
		PhaseID:       phaseID,
		PhaseProgress: pct,
		Source:        source,
	}
	if err := s.publisher.PublishJSON(ctx, s.cfg.RabbitMQ.ExchangeName, s.cfg.RabbitMQ.RoutingKey.ProgressChanged, evt); err != nil {
		s.log.Error("failed to publish progress event", zap.Error(err), zap.String("project_id", projectID.String()))
	}
}
