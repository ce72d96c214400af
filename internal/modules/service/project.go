package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/model"
	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/repo"
	"github.com/convoycubano1-glitch/boostify-progress/internal/pkg/progress"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProjectService interface {
	CreateProject(ctx context.Context, in CreateProjectInput) (*model.Project, error)
	GetProject(ctx context.Context, ownerID string, projectID uuid.UUID) (*model.Project, error)
	ListProjects(ctx context.Context, ownerID string) ([]model.Project, error)
	UpdateProject(ctx context.Context, in UpdateProjectInput) (*model.Project, error)
	DeleteProject(ctx context.Context, ownerID string, projectID uuid.UUID) error
	GetProgress(ctx context.Context, ownerID string, projectID uuid.UUID) (*ProjectProgressSummary, error)
}

type projectService struct {
	r         repo.ProjectRepo
	phaseRepo repo.PhaseRepo
	cache     *ProgressCache
	log       *zap.Logger
}

func NewProjectService(r repo.ProjectRepo, phaseRepo repo.PhaseRepo, cache *ProgressCache, log *zap.Logger) ProjectService {
	return &projectService{
		r:         r,
		phaseRepo: phaseRepo,
		cache:     cache,
		log:       log,
	}
}

type CreateProjectInput struct {
	OwnerID              string                 `json:"owner_id"`
	Name                 string                 `json:"name"`
	Description          string                 `json:"description"`
	StartDate            time.Time              `json:"start_date"`
	TargetCompletionDate *time.Time             `json:"target_completion_date"`
	Metadata             map[string]interface{} `json:"metadata"`
}

type UpdateProjectInput struct {
	OwnerID   string    `json:"owner_id"`
	ProjectID uuid.UUID `json:"project_id"`

	Name                 *string    `json:"name"`
	Description          *string    `json:"description"`
	Status               *string    `json:"status"`
	StartDate            *time.Time `json:"start_date"`
	TargetCompletionDate *time.Time `json:"target_completion_date"`
}

func (s *projectService) CreateProject(ctx context.Context, in CreateProjectInput) (*model.Project, error) {
	p := &model.Project{
		OwnerID:              in.OwnerID,
		Name:                 in.Name,
		Description:          in.Description,
		Status:               model.ProjectStatusOnTrack,
		StartDate:            in.StartDate,
		TargetCompletionDate: in.TargetCompletionDate,
		Metadata:             datatypes.JSONMap(in.Metadata),
	}
	if err := s.r.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return p, nil
}

func (s *projectService) GetProject(ctx context.Context, ownerID string, projectID uuid.UUID) (*model.Project, error) {
	p, err := s.r.Get(ctx, ownerID, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

func (s *projectService) ListProjects(ctx context.Context, ownerID string) ([]model.Project, error) {
	return s.r.ListByOwner(ctx, ownerID)
}

// UpdateProject applies a shallow patch: only fields present in the input
// are written. Project status is a human judgement, so no cross-field
// checks apply here, unlike the phase status/progress pair.
func (s *projectService) UpdateProject(ctx context.Context, in UpdateProjectInput) (*model.Project, error) {
	p, err := s.GetProject(ctx, in.OwnerID, in.ProjectID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.StartDate != nil {
		p.StartDate = *in.StartDate
	}
	if in.TargetCompletionDate != nil {
		p.TargetCompletionDate = in.TargetCompletionDate
	}

	if err := s.r.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return p, nil
}

func (s *projectService) DeleteProject(ctx context.Context, ownerID string, projectID uuid.UUID) error {
	if err := s.r.DeleteWithDescendants(ctx, ownerID, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if err := s.cache.Invalidate(ctx, projectID); err != nil {
		s.log.Warn("failed to invalidate progress cache", zap.Error(err), zap.String("project_id", projectID.String()))
	}
	return nil
}

// GetProgress returns the project's aggregate completion. Cache hit serves
// the stored summary; on miss the summary is folded from live phase rows
// and written back with a TTL. Cache failures degrade to a recompute, they
// never fail the read.
func (s *projectService) GetProgress(ctx context.Context, ownerID string, projectID uuid.UUID) (*ProjectProgressSummary, error) {
	ok, err := s.r.Owns(ctx, ownerID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to check project ownership: %w", err)
	}
	if !ok {
		return nil, ErrProjectNotFound
	}

	if cached, err := s.cache.Get(ctx, projectID); err != nil {
		s.log.Warn("progress cache read failed", zap.Error(err), zap.String("project_id", projectID.String()))
	} else if cached != nil {
		return cached, nil
	}

	phases, err := s.phaseRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list phases: %w", err)
	}

	summary := &ProjectProgressSummary{
		ProjectID:  projectID,
		Progress:   progress.ProjectProgress(phases),
		PhaseCount: len(phases),
		CompletedPhases: lo.CountBy(phases, func(p model.Phase) bool {
			return p.Status == model.PhaseStatusCompleted
		}),
		ComputedAt: time.Now().UTC(),
	}

	if err := s.cache.Set(ctx, summary); err != nil {
		s.log.Warn("progress cache write failed", zap.Error(err), zap.String("project_id", projectID.String()))
	}
	return summary, nil
}
