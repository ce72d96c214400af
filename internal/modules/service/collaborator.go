package service

import (
	"context"
	"fmt"

	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/model"
	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/repo"
	"github.com/google/uuid"
)

type CollaboratorService interface {
	ListCollaborators(ctx context.Context, ownerID string, projectID uuid.UUID) ([]model.Collaborator, error)
}

type collaboratorService struct {
	r           repo.CollaboratorRepo
	projectRepo repo.ProjectRepo
}

func NewCollaboratorService(r repo.CollaboratorRepo, projectRepo repo.ProjectRepo) CollaboratorService {
	return &collaboratorService{r: r, projectRepo: projectRepo}
}

func (s *collaboratorService) ListCollaborators(ctx context.Context, ownerID string, projectID uuid.UUID) ([]model.Collaborator, error) {
	ok, err := s.projectRepo.Owns(ctx, ownerID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to check project ownership: %w", err)
	}
	if !ok {
		return nil, ErrProjectNotFound
	}
	return s.r.ListByProject(ctx, projectID)
}
