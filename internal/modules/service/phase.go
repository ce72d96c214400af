package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/convoycubano1-glitch/boostify-progress/internal/config"
	mq "github.com/convoycubano1-glitch/boostify-progress/internal/infra/queue"
	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/model"
	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/repo"
	"github.com/convoycubano1-glitch/boostify-progress/internal/pkg/progress"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PhaseService interface {
	CreatePhase(ctx context.Context, in CreatePhaseInput) (*model.Phase, error)
	ListPhases(ctx context.Context, ownerID string, projectID uuid.UUID) ([]model.Phase, error)
	SetPhaseStatus(ctx context.Context, in SetPhaseStatusInput) (*model.Phase, error)
	SetPhaseProgress(ctx context.Context, in SetPhaseProgressInput) (*model.Phase, error)
	DeletePhase(ctx context.Context, ownerID string, phaseID uuid.UUID) error
}

type phaseService struct {
	r           repo.PhaseRepo
	projectRepo repo.ProjectRepo
	cache       *ProgressCache
	publisher   *mq.Publisher
	cfg         *config.Config
	log         *zap.Logger
}

func NewPhaseService(r repo.PhaseRepo, projectRepo repo.ProjectRepo, cache *ProgressCache, publisher *mq.Publisher, cfg *config.Config, log *zap.Logger) PhaseService {
	return &phaseService{
		r:           r,
		projectRepo: projectRepo,
		cache:       cache,
		publisher:   publisher,
		cfg:         cfg,
		log:         log,
	}
}

type CreatePhaseInput struct {
	OwnerID   string    `json:"owner_id"`
	ProjectID uuid.UUID `json:"project_id"`
	Name      string    `json:"name"`
	Priority  string    `json:"priority"`
	ETA       *string   `json:"eta"`
}

type SetPhaseStatusInput struct {
	OwnerID string    `json:"owner_id"`
	PhaseID uuid.UUID `json:"phase_id"`
	Status  string    `json:"status"`
}

type SetPhaseProgressInput struct {
	OwnerID  string    `json:"owner_id"`
	PhaseID  uuid.UUID `json:"phase_id"`
	Progress int       `json:"progress"`
}

func (s *phaseService) CreatePhase(ctx context.Context, in CreatePhaseInput) (*model.Phase, error) {
	if err := s.requireOwnedProject(ctx, in.OwnerID, in.ProjectID); err != nil {
		return nil, err
	}

	priority := in.Priority
	if priority == "" {
		priority = model.PhasePriorityMedium
	}
	ph := &model.Phase{
		ProjectID: in.ProjectID,
		Name:      in.Name,
		Status:    model.PhaseStatusPending,
		Progress:  0,
		Priority:  priority,
		ETA:       in.ETA,
	}
	if err := s.r.Create(ctx, ph); err != nil {
		return nil, fmt.Errorf("failed to create phase: %w", err)
	}

	// A new phase dilutes the project mean.
	s.invalidate(ctx, in.ProjectID)
	return ph, nil
}

func (s *phaseService) ListPhases(ctx context.Context, ownerID string, projectID uuid.UUID) ([]model.Phase, error) {
	if err := s.requireOwnedProject(ctx, ownerID, projectID); err != nil {
		return nil, err
	}
	return s.r.ListByProject(ctx, projectID)
}

// SetPhaseStatus transitions the status and keeps progress consistent:
// completing a phase forces progress to 100 and stamps the completion
// date once, so re-submitting completed keeps the original date. Any
// transition off completed clears the date but keeps the stored progress.
func (s *phaseService) SetPhaseStatus(ctx context.Context, in SetPhaseStatusInput) (*model.Phase, error) {
	ph, err := s.getOwnedPhase(ctx, in.OwnerID, in.PhaseID)
	if err != nil {
		return nil, err
	}

	pct := ph.Progress
	var completionDate *time.Time
	if in.Status == model.PhaseStatusCompleted {
		pct = 100
		completionDate = ph.CompletionDate
		if completionDate == nil {
			now := time.Now()
			completionDate = &now
		}
	}

	updated, err := s.r.SetStatusProgress(ctx, in.PhaseID, in.Status, pct, completionDate)
	if err != nil {
		return nil, fmt.Errorf("failed to update phase status: %w", err)
	}

	s.invalidate(ctx, ph.ProjectID)
	s.publishProgressChanged(ctx, ph.ProjectID, ph.ID, pct, SourcePhaseStatus)
	return updated, nil
}

// SetPhaseProgress writes a manual progress value. Reaching 100 promotes
// the phase to completed; writing below 100 demotes a completed phase back
// to in-progress. The raw pair is never patchable independently.
func (s *phaseService) SetPhaseProgress(ctx context.Context, in SetPhaseProgressInput) (*model.Phase, error) {
	ph, err := s.getOwnedPhase(ctx, in.OwnerID, in.PhaseID)
	if err != nil {
		return nil, err
	}

	pct := progress.Clamp(in.Progress)
	status := ph.Status
	completionDate := ph.CompletionDate
	switch {
	case pct == 100 && ph.Status != model.PhaseStatusCompleted:
		status = model.PhaseStatusCompleted
		now := time.Now()
		completionDate = &now
	case pct < 100 && ph.Status == model.PhaseStatusCompleted:
		status = model.PhaseStatusInProgress
		completionDate = nil
	}

	updated, err := s.r.SetStatusProgress(ctx, in.PhaseID, status, pct, completionDate)
	if err != nil {
		return nil, fmt.Errorf("failed to update phase progress: %w", err)
	}

	s.invalidate(ctx, ph.ProjectID)
	s.publishProgressChanged(ctx, ph.ProjectID, ph.ID, pct, SourcePhaseProgress)
	return updated, nil
}

func (s *phaseService) DeletePhase(ctx context.Context, ownerID string, phaseID uuid.UUID) error {
	ph, err := s.getOwnedPhase(ctx, ownerID, phaseID)
	if err != nil {
		return err
	}
	if err := s.r.DeleteWithDescendants(ctx, phaseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPhaseNotFound
		}
		return fmt.Errorf("failed to delete phase: %w", err)
	}
	s.invalidate(ctx, ph.ProjectID)
	s.publishProgressChanged(ctx, ph.ProjectID, phaseID, 0, SourcePhaseDelete)
	return nil
}

func (s *phaseService) requireOwnedProject(ctx context.Context, ownerID string, projectID uuid.UUID) error {
	ok, err := s.projectRepo.Owns(ctx, ownerID, projectID)
	if err != nil {
		return fmt.Errorf("failed to check project ownership: %w", err)
	}
	if !ok {
		return ErrProjectNotFound
	}
	return nil
}

func (s *phaseService) getOwnedPhase(ctx context.Context, ownerID string, phaseID uuid.UUID) (*model.Phase, error) {
	ph, err := s.r.Get(ctx, phaseID)
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

func (s *phaseService) invalidate(ctx context.Context, projectID uuid.UUID) {
	if err := s.cache.Invalidate(ctx, projectID); err != nil {
		s.log.Warn("failed to invalidate progress cache", zap.Error(err), zap.String("project_id", projectID.String()))
	}
}

func (s *phaseService) publishProgressChanged(ctx context.Context, projectID, phaseID uuid.UUID, pct int, source string) {
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
