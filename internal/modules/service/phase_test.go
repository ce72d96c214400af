package service

import (
	"context"
	"testing"
	"time"

	"github.com/convoycubano1-glitch/boostify-progress/internal/config"
	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MockProjectRepo and MockPhaseRepo are defined in project_test.go

func newPhaseService(r *MockPhaseRepo, pr *MockProjectRepo) PhaseService {
	return NewPhaseService(r, pr, nil, nil, &config.Config{}, zap.NewNop())
}

func TestPhaseService_CreatePhaseDefaults(t *testing.T) {
	projectID := uuid.New()
	r := new(MockPhaseRepo)
	pr := new(MockProjectRepo)
	svc := newPhaseService(r, pr)

	pr.On("Owns", mock.Anything, "artist-1", projectID).Return(true, nil)
	r.On("Create", mock.Anything, mock.MatchedBy(func(ph *model.Phase) bool {
		return ph.ProjectID == projectID &&
			ph.Status == model.PhaseStatusPending &&
			ph.Progress == 0 &&
			ph.Priority == model.PhasePriorityMedium
	})).Return(nil)

	ph, err := svc.CreatePhase(context.Background(), CreatePhaseInput{
		OwnerID:   "artist-1",
		ProjectID: projectID,
		Name:      "Recording",
	})
	require.NoError(t, err)
	assert.Equal(t, model.PhaseStatusPending, ph.Status)
	assert.Equal(t, 0, ph.Progress)
	r.AssertExpectations(t)
}

func TestPhaseService_CreatePhaseProjectNotOwned(t *testing.T) {
	projectID := uuid.New()
	r := new(MockPhaseRepo)
	pr := new(MockProjectRepo)
	svc := newPhaseService(r, pr)

	pr.On("Owns", mock.Anything, "stranger", projectID).Return(false, nil)

	_, err := svc.CreatePhase(context.Background(), CreatePhaseInput{
		OwnerID:   "stranger",
		ProjectID: projectID,
		Name:      "Recording",
	})
	assert.ErrorIs(t, err, ErrProjectNotFound)
	r.AssertNotCalled(t, "Create")
}

func TestPhaseService_SetPhaseStatusCompletedForcesFullProgress(t *testing.T) {
	projectID := uuid.New()
	phaseID := uuid.New()
	r := new(MockPhaseRepo)
	pr := new(MockProjectRepo)
	svc := newPhaseService(r, pr)

	r.On("Get", mock.Anything, phaseID).Return(&model.Phase{
		ID:        phaseID,
		ProjectID: projectID,
		Status:    model.PhaseStatusInProgress,
		Progress:  50,
	}, nil)
	pr.On("Owns", mock.Anything, "artist-1", projectID).Return(true, nil)
	r.On("SetStatusProgress", mock.Anything, phaseID, model.PhaseStatusCompleted, 100,
		mock.MatchedBy(func(d *time.Time) bool { return d != nil })).
		Return(&model.Phase{
			ID:        phaseID,
			ProjectID: projectID,
			Status:    model.PhaseStatusCompleted,
			Progress:  100,
		}, nil)

	ph, err := svc.SetPhaseStatus(context.Background(), SetPhaseStatusInput{
		OwnerID: "artist-1",
		PhaseID: phaseID,
		Status:  model.PhaseStatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, 100, ph.Progress)
	assert.Equal(t, model.PhaseStatusCompleted, ph.Status)
	r.AssertExpectations(t)
}

func TestPhaseService_SetPhaseStatusDelayedKeepsProgress(t *testing.T) {
	projectID := uuid.New()
	phaseID := uuid.New()
	r := new(MockPhaseRepo)
	pr := new(MockProjectRepo)
	svc := newPhaseService(r, pr)

	r.On("Get", mock.Anything, phaseID).Return(&model.Phase{
		ID:        phaseID,
		ProjectID: projectID,
		Status:    model.PhaseStatusInProgress,
		Progress:  40,
	}, nil)
	pr.On("Owns", mock.Anything, "artist-1", projectID).Return(true, nil)
	r.On("SetStatusProgress", mock.Anything, phaseID, model.PhaseStatusDelayed, 40, (*time.Time)(nil)).
		Return(&model.Phase{
			ID:        phaseID,
			ProjectID: projectID,
			Status:    model.PhaseStatusDelayed,
			Progress:  40,
		}, nil)

	ph, err := svc.SetPhaseStatus(context.Background(), SetPhaseStatusInput{
		OwnerID: "artist-1",
		PhaseID: phaseID,
		Status:  model.PhaseStatusDelayed,
	})
	require.NoError(t, err)
	assert.Equal(t, 40, ph.Progress)
	r.AssertExpectations(t)
}

func TestPhaseService_SetPhaseStatusRecompleteKeepsDate(t *testing.T) {
	projectID := uuid.New()
	phaseID := uuid.New()
	firstCompleted := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	r := new(MockPhaseRepo)
	pr := new(MockProjectRepo)
	svc := newPhaseService(r, pr)

	r.On("Get", mock.Anything, phaseID).Return(&model.Phase{
		ID:             phaseID,
		ProjectID:      projectID,
		Status:         model.PhaseStatusCompleted,
		Progress:       100,
		CompletionDate: &firstCompleted,
	}, nil)
	pr.On("Owns", mock.Anything, "artist-1", projectID).Return(true, nil)
	r.On("SetStatusProgress", mock.Anything, phaseID, model.PhaseStatusCompleted, 100,
		mock.MatchedBy(func(d *time.Time) bool { return d != nil && d.Equal(firstCompleted) })).
		Return(&model.Phase{
			ID:             phaseID,
			ProjectID:      projectID,
			Status:         model.PhaseStatusCompleted,
			Progress:       100,
			CompletionDate: &firstCompleted,
		}, nil)

	ph, err := svc.SetPhaseStatus(context.Background(), SetPhaseStatusInput{
		OwnerID: "artist-1",
		PhaseID: phaseID,
		Status:  model.PhaseStatusCompleted,
	})
	require.NoError(t, err)
	require.NotNil(t, ph.CompletionDate)
	assert.True(t, ph.CompletionDate.Equal(firstCompleted))
	r.AssertExpectations(t)
}

func TestPhaseService_SetPhaseStatusDemotionClearsDate(t *testing.T) {
	projectID := uuid.New()
	phaseID := uuid.New()
	completedAt := time.Now()
	r := new(MockPhaseRepo)
	pr := new(MockProjectRepo)
	svc := newPhaseService(r, pr)

	r.On("Get", mock.Anything, phaseID).Return(&model.Phase{
		ID:             phaseID,
		ProjectID:      projectID,
		Status:         model.PhaseStatusCompleted,
		Progress:       100,
		CompletionDate: &completedAt,
	}, nil)
	pr.On("Owns", mock.Anything, "artist-1", projectID).Return(true, nil)
	r.On("SetStatusProgress", mock.Anything, phaseID, model.PhaseStatusDelayed, 100, (*time.Time)(nil)).
		Return(&model.Phase{
			ID:        phaseID,
			ProjectID: projectID,
			Status:    model.PhaseStatusDelayed,
			Progress:  100,
		}, nil)

	ph, err := svc.SetPhaseStatus(context.Background(), SetPhaseStatusInput{
		OwnerID: "artist-1",
		PhaseID: phaseID,
		Status:  model.PhaseStatusDelayed,
	})
	require.NoError(t, err)
	assert.Equal(t, 100, ph.Progress)
	assert.Nil(t, ph.CompletionDate)
	r.AssertExpectations(t)
}

func TestPhaseService_SetPhaseProgress(t *testing.T) {
	projectID := uuid.New()
	phaseID := uuid.New()
	completedAt := time.Now()

	tests := []struct {
		name         string
		current      model.Phase
		input        int
		wantStatus   string
		wantProgress int
		wantDateNil  bool
	}{
		{
			name:         "full progress promotes to completed",
			current:      model.Phase{Status: model.PhaseStatusInProgress, Progress: 80},
			input:        100,
			wantStatus:   model.PhaseStatusCompleted,
			wantProgress: 100,
			wantDateNil:  false,
		},
		{
			name:         "partial progress demotes completed phase",
			current:      model.Phase{Status: model.PhaseStatusCompleted, Progress: 100, CompletionDate: &completedAt},
			input:        30,
			wantStatus:   model.PhaseStatusInProgress,
			wantProgress: 30,
			wantDateNil:  true,
		},
		{
			name:         "partial progress keeps pending status",
			current:      model.Phase{Status: model.PhaseStatusPending, Progress: 0},
			input:        25,
			wantStatus:   model.PhaseStatusPending,
			wantProgress: 25,
			wantDateNil:  true,
		},
		{
			name:         "out of range input is clamped",
			current:      model.Phase{Status: model.PhaseStatusInProgress, Progress: 10},
			input:        250,
			wantStatus:   model.PhaseStatusCompleted,
			wantProgress: 100,
			wantDateNil:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := new(MockPhaseRepo)
			pr := new(MockProjectRepo)
			svc := newPhaseService(r, pr)

			current := tt.current
			current.ID = phaseID
			current.ProjectID = projectID

			r.On("Get", mock.Anything, phaseID).Return(&current, nil)
			pr.On("Owns", mock.Anything, "artist-1", projectID).Return(true, nil)
			r.On("SetStatusProgress", mock.Anything, phaseID, tt.wantStatus, tt.wantProgress,
				mock.MatchedBy(func(d *time.Time) bool { return (d == nil) == tt.wantDateNil })).
				Return(&model.Phase{
					ID:        phaseID,
					ProjectID: projectID,
					Status:    tt.wantStatus,
					Progress:  tt.wantProgress,
				}, nil)

			ph, err := svc.SetPhaseProgress(context.Background(), SetPhaseProgressInput{
				OwnerID:  "artist-1",
				PhaseID:  phaseID,
				Progress: tt.input,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, ph.Status)
			assert.Equal(t, tt.wantProgress, ph.Progress)
			r.AssertExpectations(t)
		})
	}
}

func TestPhaseService_SetPhaseStatusNotFound(t *testing.T) {
	phaseID := uuid.New()
	r := new(MockPhaseRepo)
	pr := new(MockProjectRepo)
	svc := newPhaseService(r, pr)

	r.On("Get", mock.Anything, phaseID).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.SetPhaseStatus(context.Background(), SetPhaseStatusInput{
		OwnerID: "artist-1",
		PhaseID: phaseID,
		Status:  model.PhaseStatusDelayed,
	})
	assert.ErrorIs(t, err, ErrPhaseNotFound)
}

func TestPhaseService_DeletePhase(t *testing.T) {
	projectID := uuid.New()
	phaseID := uuid.New()
	r := new(MockPhaseRepo)
	pr := new(MockProjectRepo)
	svc := newPhaseService(r, pr)

	r.On("Get", mock.Anything, phaseID).Return(&model.Phase{ID: phaseID, ProjectID: projectID}, nil)
	pr.On("Owns", mock.Anything, "artist-1", projectID).Return(true, nil)
	r.On("DeleteWithDescendants", mock.Anything, phaseID).Return(nil)

	require.NoError(t, svc.DeletePhase(context.Background(), "artist-1", phaseID))
	r.AssertExpectations(t)
}

func TestPhaseService_DeletePhaseNotOwned(t *testing.T) {
	projectID := uuid.New()
	phaseID := uuid.New()
	r := new(MockPhaseRepo)
	pr := new(MockProjectRepo)
	svc := newPhaseService(r, pr)

	r.On("Get", mock.Anything, phaseID).Return(&model.Phase{ID: phaseID, ProjectID: projectID}, nil)
	pr.On("Owns", mock.Anything, "stranger", projectID).Return(false, nil)

	err := svc.DeletePhase(context.Background(), "stranger", phaseID)
	assert.ErrorIs(t, err, ErrPhaseNotFound)
	r.AssertNotCalled(t, "DeleteWithDescendants")
}
