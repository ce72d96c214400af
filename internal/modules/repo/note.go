package repo

import (
	"context"
	"time"

	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteRepo interface {
	Create(ctx context.Context, n *model.Note) error
	Get(ctx context.Context, noteID uuid.UUID) (*model.Note, error)
	ListByPhaseWithCursor(ctx context.Context, phaseID uuid.UUID, afterCreatedAt time.Time, afterID uuid.UUID, limit int, timeDesc bool) ([]model.Note, error)
	Delete(ctx context.Context, noteID uuid.UUID) error
}

type noteRepo struct{ db *gorm.DB }

func NewNoteRepo(db *gorm.DB) NoteRepo {
	return &noteRepo{db: db}
}

func (r *noteRepo) Create(ctx context.Context, n *model.Note) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *noteRepo) Get(ctx context.Context, noteID uuid.UUID) (*model.Note, error) {
	var n model.Note
	if err := r.db.WithContext(ctx).First(&n, "id = ?", noteID).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *noteRepo) ListByPhaseWithCursor(ctx context.Context, phaseID uuid.UUID, afterCreatedAt time.Time, afterID uuid.UUID, limit int, timeDesc bool) ([]model.Note, error) {
	q := r.db.WithContext(ctx).Where("phase_id = ?", phaseID)

	if !afterCreatedAt.IsZero() && afterID != uuid.Nil {
		comparisonOp := ">"
		if timeDesc {
			comparisonOp = "<"
		}
		q = q.Where(
			"(created_at "+comparisonOp+" ?) OR (created_at = ? AND id "+comparisonOp+" ?)",
			afterCreatedAt, afterCreatedAt, afterID,
		)
	}

	orderBy := "created_at ASC, id ASC"
	if timeDesc {
		orderBy = "created_at DESC, id DESC"
	}

	var items []model.Note
	return items, q.Order(orderBy).Limit(limit).Find(&items).Error
}

func (r *noteRepo) Delete(ctx context.Context, noteID uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Note{}, "id = ?", noteID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
