package repo

import (
	"context"

	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CollaboratorRepo is read-only here: invitations are written by the
// account service.
type CollaboratorRepo interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Collaborator, error)
}

type collaboratorRepo struct{ db *gorm.DB }

func NewCollaboratorRepo(db *gorm.DB) CollaboratorRepo {
	return &collaboratorRepo{db: db}
}

func (r *collaboratorRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Collaborator, error) {
	var items []model.Collaborator
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	return items, err
}
