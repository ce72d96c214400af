package repo

import (
	"context"
	"testing"
	"time"

	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPhaseRepo_SetStatusProgress(t *testing.T) {
	db := setupRepoTestDB(t)
	if db == nil {
		return // Test was skipped
	}

	repo := NewPhaseRepo(db)
	ctx := context.Background()

	project, phase := seedProjectAndPhase(t, db, model.PhaseStatusInProgress, 40)
	defer cleanupProjectRows(t, db, project.ID)

	t.Run("writes status, progress and date together", func(t *testing.T) {
		completedAt := time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC)
		_, err := repo.SetStatusProgress(ctx, phase.ID, model.PhaseStatusCompleted, 100, &completedAt)
		require.NoError(t, err)

		ph := reloadPhase(t, db, phase.ID)
		assert.Equal(t, model.PhaseStatusCompleted, ph.Status)
		assert.Equal(t, 100, ph.Progress)
		require.NotNil(t, ph.CompletionDate)
		assert.True(t, ph.CompletionDate.Equal(completedAt))
	})

	t.Run("nil date clears the column", func(t *testing.T) {
		_, err := repo.SetStatusProgress(ctx, phase.ID, model.PhaseStatusDelayed, 100, nil)
		require.NoError(t, err)

		ph := reloadPhase(t, db, phase.ID)
		assert.Equal(t, model.PhaseStatusDelayed, ph.Status)
		assert.Nil(t, ph.CompletionDate)
	})

	t.Run("missing phase returns record not found", func(t *testing.T) {
		_, err := repo.SetStatusProgress(ctx, uuid.New(), model.PhaseStatusDelayed, 10, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestPhaseRepo_DeleteWithDescendants(t *testing.T) {
	db := setupRepoTestDB(t)
	if db == nil {
		return // Test was skipped
	}

	repo := NewPhaseRepo(db)
	taskRepo := NewTaskRepo(db)
	noteRepo := NewNoteRepo(db)
	ctx := context.Background()

	project, phase := seedProjectAndPhase(t, db, model.PhaseStatusInProgress, 50)
	defer cleanupProjectRows(t, db, project.ID)

	// A sibling phase that must survive the delete.
	sibling := &model.Phase{
		ID:        uuid.New(),
		ProjectID: project.ID,
		Name:      "Mixing",
		Status:    model.PhaseStatusPending,
		Priority:  model.PhasePriorityLow,
	}
	require.NoError(t, db.Create(sibling).Error)
	siblingTask := &model.Task{ID: uuid.New(), PhaseID: sibling.ID, ProjectID: project.ID, Name: "Rough mix"}
	require.NoError(t, db.Create(siblingTask).Error)

	tasks := []model.Task{
		{ID: uuid.New(), PhaseID: phase.ID, ProjectID: project.ID, Name: "Track drums", Completed: true},
		{ID: uuid.New(), PhaseID: phase.ID, ProjectID: project.ID, Name: "Track bass"},
	}
	require.NoError(t, db.Create(&tasks).Error)
	note := &model.Note{
		ID:        uuid.New(),
		PhaseID:   phase.ID,
		ProjectID: project.ID,
		Content:   "Drums re-recorded on take 4",
		CreatedBy: "artist-integration",
	}
	require.NoError(t, db.Create(note).Error)

	t.Run("removes the phase with its tasks and notes", func(t *testing.T) {
		require.NoError(t, repo.DeleteWithDescendants(ctx, phase.ID))

		_, err := repo.Get(ctx, phase.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		remaining, err := taskRepo.ListByPhase(ctx, phase.ID)
		require.NoError(t, err)
		assert.Empty(t, remaining)

		notes, err := noteRepo.ListByPhaseWithCursor(ctx, phase.ID, time.Time{}, uuid.Nil, 20, false)
		require.NoError(t, err)
		assert.Empty(t, notes)
	})

	t.Run("leaves sibling phases untouched", func(t *testing.T) {
		_, err := repo.Get(ctx, sibling.ID)
		require.NoError(t, err)

		siblingTasks, err := taskRepo.ListByPhase(ctx, sibling.ID)
		require.NoError(t, err)
		assert.Len(t, siblingTasks, 1)
	})

	t.Run("missing phase returns record not found", func(t *testing.T) {
		err := repo.DeleteWithDescendants(ctx, phase.ID)
		require.Error(t, err)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
