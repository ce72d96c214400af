package repo

import (
	"context"
	"time"

	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PhaseRepo interface {
	Create(ctx context.Context, ph *model.Phase) error
	Get(ctx context.Context, phaseID uuid.UUID) (*model.Phase, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Phase, error)
	SetStatusProgress(ctx context.Context, phaseID uuid.UUID, status string, progressPct int, completionDate *time.Time) (*model.Phase, error)
	DeleteWithDescendants(ctx context.Context, phaseID uuid.UUID) error
}

type phaseRepo struct{ db *gorm.DB }

func NewPhaseRepo(db *gorm.DB) PhaseRepo {
	return &phaseRepo{db: db}
}

func (r *phaseRepo) Create(ctx context.Context, ph *model.Phase) error {
	return r.db.WithContext(ctx).Create(ph).Error
}

func (r *phaseRepo) Get(ctx context.Context, phaseID uuid.UUID) (*model.Phase, error) {
	var ph model.Phase
	if err := r.db.WithContext(ctx).First(&ph, "id = ?", phaseID).Error; err != nil {
		return nil, err
	}
	return &ph, nil
}

func (r *phaseRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Phase, error) {
	var items []model.Phase
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	return items, err
}

// SetStatusProgress writes status and progress together. It is the only
// write path for either field, which is what keeps the
// completed-implies-100 invariant from desynchronizing. completionDate may
// be nil to clear the column.
func (r *phaseRepo) SetStatusProgress(ctx context.Context, phaseID uuid.UUID, status string, progressPct int, completionDate *time.Time) (*model.Phase, error) {
	var ph model.Phase
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ph, "id = ?", phaseID).Error; err != nil {
			return err
		}
		updates := map[string]interface{}{
			"status":          status,
			"progress":        progressPct,
			"completion_date": completionDate,
		}
		return tx.Model(&ph).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &ph, nil
}

// DeleteWithDescendants removes the phase plus its tasks and notes in one
// transaction, mirroring the project-level composite delete.
func (r *phaseRepo) DeleteWithDescendants(ctx context.Context, phaseID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ph model.Phase
		if err := tx.First(&ph, "id = ?", phaseID).Error; err != nil {
			return err
		}
		if err := tx.Where("phase_id = ?", phaseID).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("phase_id = ?", phaseID).Delete(&model.Note{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ph).Error
	})
}
