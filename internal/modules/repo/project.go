package repo

import (
	"context"

	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *model.Project) error
	Get(ctx context.Context, ownerID string, projectID uuid.UUID) (*model.Project, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Project, error)
	Update(ctx context.Context, p *model.Project) error
	DeleteWithDescendants(ctx context.Context, ownerID string, projectID uuid.UUID) error
	Owns(ctx context.Context, ownerID string, projectID uuid.UUID) (bool, error)
}

type projectRepo struct{ db *gorm.DB }

func NewProjectRepo(db *gorm.DB) ProjectRepo {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, p *model.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *projectRepo) Get(ctx context.Context, ownerID string, projectID uuid.UUID) (*model.Project, error) {
	var p model.Project
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", projectID, ownerID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Project, error) {
	var items []model.Project
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	return items, err
}

func (r *projectRepo) Update(ctx context.Context, p *model.Project) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// DeleteWithDescendants removes the project and every dependent row in one
// transaction. The FK CASCADE constraints would catch strays, but the
// deletes are issued explicitly so the operation is all-or-nothing even
// against a schema migrated without constraints.
func (r *projectRepo) DeleteWithDescendants(ctx context.Context, ownerID string, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.Project
		if err := tx.Where("id = ? AND owner_id = ?", projectID, ownerID).First(&p).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&model.Note{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&model.Phase{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&model.Collaborator{}).Error; err != nil {
			return err
		}
		return tx.Delete(&p).Error
	})
}

func (r *projectRepo) Owns(ctx context.Context, ownerID string, projectID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ? AND owner_id = ?", projectID, ownerID).
		Count(&count).Error
	return count > 0, err
}
