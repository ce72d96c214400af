package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/model"
	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/serializer"
	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/service"
	"github.com/convoycubano1-glitch/boostify-progress/internal/pkg/paging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockNoteService struct {
	mock.Mock
}

func (m *MockNoteService) CreateNote(ctx context.Context, in service.CreateNoteInput) (*model.Note, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteService) ListNotes(ctx context.Context, in service.ListNotesInput) (*service.ListNotesOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListNotesOutput), args.Error(1)
}

func (m *MockNoteService) DeleteNote(ctx context.Context, ownerID string, noteID uuid.UUID) error {
	args := m.Called(ctx, ownerID, noteID)
	return args.Error(0)
}

func TestNoteHandler_CreateNote(t *testing.T) {
	gin.SetMode(gin.TestMode)
	serializer.SetLogger(zap.NewNop())

	phaseID := uuid.New()

	tests := []struct {
		name           string
		body           string
		setup          func(*MockNoteService)
		expectedStatus int
	}{
		{
			name: "success - author comes from auth context",
			body: `{"content":"Re-tracked the bridge vocals"}`,
			setup: func(svc *MockNoteService) {
				svc.On("CreateNote", mock.Anything, mock.MatchedBy(func(in service.CreateNoteInput) bool {
					return in.PhaseID == phaseID && in.OwnerID == "artist-1" &&
						in.OwnerName == "Test Owner" && in.Content == "Re-tracked the bridge vocals"
				})).Return(&model.Note{
					ID:        uuid.New(),
					PhaseID:   phaseID,
					Content:   "Re-tracked the bridge vocals",
					CreatedBy: "artist-1",
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "error - empty content",
			body:           `{}`,
			setup:          func(svc *MockNoteService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockNoteService{}
			tt.setup(svc)

			handler := NewNoteHandler(svc)

			w := httptest.NewRecorder()
			_, r := gin.CreateTestContext(w)
			r.POST("/phase/:phase_id/note", withOwner("artist-1", handler.CreateNote))

			req := httptest.NewRequest(http.MethodPost, "/phase/"+phaseID.String()+"/note", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestNoteHandler_GetNotes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	serializer.SetLogger(zap.NewNop())

	phaseID := uuid.New()

	tests := []struct {
		name           string
		queryParams    string
		setup          func(*MockNoteService)
		expectedStatus int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:        "success - default limit",
			queryParams: "",
			setup: func(svc *MockNoteService) {
				svc.On("ListNotes", mock.Anything, mock.MatchedBy(func(in service.ListNotesInput) bool {
					return in.PhaseID == phaseID && in.Limit == 20 && in.Cursor == "" && !in.TimeDesc
				})).Return(&service.ListNotesOutput{
					Items:   []model.Note{{ID: uuid.New(), PhaseID: phaseID}},
					HasMore: false,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp serializer.Response
				assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				data, ok := resp.Data.(map[string]interface{})
				assert.True(t, ok)
				assert.False(t, data["has_more"].(bool))
				assert.Len(t, data["items"].([]interface{}), 1)
			},
		},
		{
			name:        "success - cursor and descending order",
			queryParams: "?limit=10&cursor=abc&time_desc=true",
			setup: func(svc *MockNoteService) {
				svc.On("ListNotes", mock.Anything, mock.MatchedBy(func(in service.ListNotesInput) bool {
					return in.Limit == 10 && in.Cursor == "abc" && in.TimeDesc
				})).Return(&service.ListNotesOutput{
					Items:      []model.Note{},
					NextCursor: "def",
					HasMore:    true,
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "error - invalid cursor",
			queryParams: "?cursor=garbage",
			setup: func(svc *MockNoteService) {
				svc.On("ListNotes", mock.Anything, mock.Anything).
					Return(nil, paging.ErrInvalidCursor)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "error - limit too high",
			queryParams:    "?limit=500",
			setup:          func(svc *MockNoteService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "error - limit too low",
			queryParams:    "?limit=0",
			setup:          func(svc *MockNoteService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockNoteService{}
			tt.setup(svc)

			handler := NewNoteHandler(svc)

			w := httptest.NewRecorder()
			_, r := gin.CreateTestContext(w)
			r.GET("/phase/:phase_id/note", withOwner("artist-1", handler.GetNotes))

			req := httptest.NewRequest(http.MethodGet, "/phase/"+phaseID.String()+"/note"+tt.queryParams, nil)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestNoteHandler_DeleteNote(t *testing.T) {
	gin.SetMode(gin.TestMode)
	serializer.SetLogger(zap.NewNop())

	noteID := uuid.New()

	tests := []struct {
		name           string
		setup          func(*MockNoteService)
		expectedStatus int
	}{
		{
			name: "success",
			setup: func(svc *MockNoteService) {
				svc.On("DeleteNote", mock.Anything, "artist-1", noteID).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "error - not found",
			setup: func(svc *MockNoteService) {
				svc.On("DeleteNote", mock.Anything, "artist-1", noteID).
					Return(service.ErrNoteNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockNoteService{}
			tt.setup(svc)

			handler := NewNoteHandler(svc)

			w := httptest.NewRecorder()
			_, r := gin.CreateTestContext(w)
			r.DELETE("/note/:note_id", withOwner("artist-1", handler.DeleteNote))

			req := httptest.NewRequest(http.MethodDelete, "/note/"+noteID.String(), nil)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}
