package repo

import (
	"context"
	"time"

	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/model"
	"github.com/convoycubano1-glitch/boostify-progress/internal/pkg/progress"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepo interface {
	Get(ctx context.Context, taskID uuid.UUID) (*model.Task, error)
	ListByPhase(ctx context.Context, phaseID uuid.UUID) ([]model.Task, error)
	CreateWithRecompute(ctx context.Context, t *model.Task) (*model.Phase, error)
	Toggle(ctx context.Context, taskID uuid.UUID) (*model.Task, *model.Phase, error)
	DeleteWithRecompute(ctx context.Context, taskID uuid.UUID) (*model.Phase, error)
}

type taskRepo struct{ db *gorm.DB }

func NewTaskRepo(db *gorm.DB) TaskRepo {
	return &taskRepo{db: db}
}

func (r *taskRepo) Get(ctx context.Context, taskID uuid.UUID) (*model.Task, error) {
	var t model.Task
	if err := r.db.WithContext(ctx).First(&t, "id = ?", taskID).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taskRepo) ListByPhase(ctx context.Context, phaseID uuid.UUID) ([]model.Task, error) {
	var items []model.Task
	err := r.db.WithContext(ctx).
		Where("phase_id = ?", phaseID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	return items, err
}

// CreateWithRecompute inserts the task and re-derives the owning phase's
// progress in the same transaction, so a reader never observes a task
// count and a progress value from different points in time.
func (r *taskRepo) CreateWithRecompute(ctx context.Context, t *model.Task) (*model.Phase, error) {
	var ph *model.Phase
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		var err error
		ph, err = recomputePhaseProgress(tx, t.PhaseID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ph, nil
}

func (r *taskRepo) Toggle(ctx context.Context, taskID uuid.UUID) (*model.Task, *model.Phase, error) {
	var t model.Task
	var ph *model.Phase
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&t, "id = ?", taskID).Error; err != nil {
			return err
		}
		t.Completed = !t.Completed
		if err := tx.Model(&t).Update("completed", t.Completed).Error; err != nil {
			return err
		}
		var err error
		ph, err = recomputePhaseProgress(tx, t.PhaseID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return &t, ph, nil
}

func (r *taskRepo) DeleteWithRecompute(ctx context.Context, taskID uuid.UUID) (*model.Phase, error) {
	var ph *model.Phase
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t model.Task
		if err := tx.First(&t, "id = ?", taskID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&t).Error; err != nil {
			return err
		}
		var err error
		ph, err = recomputePhaseProgress(tx, t.PhaseID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ph, nil
}

// recomputePhaseProgress re-derives a phase's progress from its current
// task set and reconciles the status/progress pair: reaching 100 completes
// the phase, dropping below 100 demotes a completed phase back to
// in-progress and clears its completion date.
func recomputePhaseProgress(tx *gorm.DB, phaseID uuid.UUID) (*model.Phase, error) {
	var tasks []model.Task
	if err := tx.Where("phase_id = ?", phaseID).Find(&tasks).Error; err != nil {
		return nil, err
	}

	var ph model.Phase
	if err := tx.First(&ph, "id = ?", phaseID).Error; err != nil {
		return nil, err
	}

	pct := progress.PhaseCompletion(tasks)
	updates := map[string]interface{}{"progress": pct}
	switch {
	case pct == 100 && ph.Status != model.PhaseStatusCompleted:
		now := time.Now()
		updates["status"] = model.PhaseStatusCompleted
		updates["completion_date"] = &now
	case pct < 100 && ph.Status == model.PhaseStatusCompleted:
		updates["status"] = model.PhaseStatusInProgress
		updates["completion_date"] = nil
	}

	if err := tx.Model(&ph).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &ph, nil
}
