package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/model"
	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/repo"
	"github.com/convoycubano1-glitch/boostify-progress/internal/pkg/paging"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteService interface {
	CreateNote(ctx context.Context, in CreateNoteInput) (*model.Note, error)
	ListNotes(ctx context.Context, in ListNotesInput) (*ListNotesOutput, error)
	DeleteNote(ctx context.Context, ownerID string, noteID uuid.UUID) error
}

type noteService struct {
	r           repo.NoteRepo
	phaseRepo   repo.PhaseRepo
	projectRepo repo.ProjectRepo
}

func NewNoteService(r repo.NoteRepo, phaseRepo repo.PhaseRepo, projectRepo repo.ProjectRepo) NoteService {
	return &noteService{
		r:           r,
		phaseRepo:   phaseRepo,
		projectRepo: projectRepo,
	}
}

type CreateNoteInput struct {
	OwnerID   string    `json:"owner_id"`
	OwnerName string    `json:"owner_name"`
	PhaseID   uuid.UUID `json:"phase_id"`
	Content   string    `json:"content"`
}

type ListNotesInput struct {
	OwnerID  string    `json:"owner_id"`
	PhaseID  uuid.UUID `json:"phase_id"`
	Limit    int       `json:"limit"`
	Cursor   string    `json:"cursor"`
	TimeDesc bool      `json:"time_desc"`
}

type ListNotesOutput struct {
	Items      []model.Note `json:"items"`
	NextCursor string       `json:"next_cursor,omitempty"`
	HasMore    bool         `json:"has_more"`
}

func (s *noteService) CreateNote(ctx context.Context, in CreateNoteInput) (*model.Note, error) {
	ph, err := s.getOwnedPhase(ctx, in.OwnerID, in.PhaseID)
	if err != nil {
		return nil, err
	}

	n := &model.Note{
		PhaseID:       ph.ID,
		ProjectID:     ph.ProjectID,
		Content:       in.Content,
		CreatedBy:     in.OwnerID,
		CreatedByName: in.OwnerName,
	}
	if err := s.r.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return n, nil
}

func (s *noteService) ListNotes(ctx context.Context, in ListNotesInput) (*ListNotesOutput, error) {
	if _, err := s.getOwnedPhase(ctx, in.OwnerID, in.PhaseID); err != nil {
		return nil, err
	}

	var afterT time.Time
	var afterID uuid.UUID
	var err error
	if in.Cursor != "" {
		afterT, afterID, err = paging.DecodeCursor(in.Cursor)
		if err != nil {
			return nil, err
		}
	}

	notes, err := s.r.ListByPhaseWithCursor(ctx, in.PhaseID, afterT, afterID, in.Limit+1, in.TimeDesc)
	if err != nil {
		return nil, err
	}

	out := &ListNotesOutput{
		Items:   notes,
		HasMore: false,
	}
	if len(notes) > in.Limit {
		out.HasMore = true
		out.Items = notes[:in.Limit]
		last := out.Items[len(out.Items)-1]
		out.NextCursor = paging.EncodeCursor(last.CreatedAt, last.ID)
	}
	return out, nil
}

func (s *noteService) DeleteNote(ctx context.Context, ownerID string, noteID uuid.UUID) error {
	n, err := s.r.Get(ctx, noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("failed to get note: %w", err)
	}
	ok, err := s.projectRepo.Owns(ctx, ownerID, n.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to check project ownership: %w", err)
	}
	if !ok {
		return ErrNoteNotFound
	}

	if err := s.r.Delete(ctx, noteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

func (s *noteService) getOwnedPhase(ctx context.Context, ownerID string, phaseID uuid.UUID) (*model.Phase, error) {
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
