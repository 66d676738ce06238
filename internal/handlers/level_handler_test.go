// internal/handlers/level_handler_test.go
package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"mylang_backend/internal/handlers"
	"mylang_backend/internal/middleware"
	"mylang_backend/internal/model"
	"mylang_backend/internal/service/mocks"
)

// newLevelTestRouter は本番のルーティングに合わせ、参照系は公開、
// 書き込み系は認証ミドルウェアの内側に登録します。
func newLevelTestRouter(levelHandler *handlers.LevelHandler) *chi.Mux {
	router := chi.NewRouter()
	router.Route("/api/v1/levels", func(r chi.Router) {
		r.Get("/", levelHandler.GetLevels)
		r.Get("/{level_id}", levelHandler.GetLevel)
		r.Group(func(r chi.Router) {
			r.Use(middleware.DevUserContextMiddleware)
			r.Post("/", levelHandler.PostLevel)
			r.Put("/{level_id}", levelHandler.PutLevel)
			r.Patch("/{level_id}", levelHandler.PatchLevel)
			r.Delete("/{level_id}", levelHandler.DeleteLevel)
		})
	})
	return router
}

func TestLevelHandler_PostLevel(t *testing.T) {
	// --- セットアップ ---
	staffUser := &model.User{UserID: uuid.New(), Username: "admin", IsStaff: true}
	normalUser := &model.User{UserID: uuid.New(), Username: "alice", IsStaff: false}

	mockLevelService := mocks.NewLevelService(t)
	mockUserService := mocks.NewUserService(t)
	levelHandler := handlers.NewLevelHandler(mockLevelService, mockUserService, nil)
	router := newLevelTestRouter(levelHandler)
	// ------------------

	validReqBody := model.PostLevelRequest{Code: "B1", Name: "Intermediate", Description: "自立した言語使用者"}
	expectedLevel := &model.Level{
		LevelID:     uuid.New(),
		Code:        validReqBody.Code,
		Name:        validReqBody.Name,
		Description: validReqBody.Description,
	}

	tests := []struct {
		name           string
		userID         *uuid.UUID
		body           interface{}
		setupMock      func()
		expectedStatus int
		expectedBody   *model.Level
	}{
		{
			name:   "Success - Staff creates level",
			userID: &staffUser.UserID,
			body:   validReqBody,
			setupMock: func() {
				mockUserService.On("GetUser", mock.AnythingOfType("*context.valueCtx"), staffUser.UserID).
					Return(staffUser, nil).Once()
				mockLevelService.On("CreateLevel", mock.AnythingOfType("*context.valueCtx"), &validReqBody).
					Return(expectedLevel, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   expectedLevel,
		},
		{
			name:   "Fail - Non-staff user is forbidden",
			userID: &normalUser.UserID,
			body:   validReqBody,
			setupMock: func() {
				mockUserService.On("GetUser", mock.AnythingOfType("*context.valueCtx"), normalUser.UserID).
					Return(normalUser, nil).Once()
				// LevelServiceは呼ばれない
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "Fail - Missing user ID",
			userID:         nil,
			body:           validReqBody,
			setupMock:      func() { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "Fail - Invalid code",
			userID: &staffUser.UserID,
			body:   model.PostLevelRequest{Code: "Z9", Name: "??"},
			setupMock: func() {
				mockUserService.On("GetUser", mock.AnythingOfType("*context.valueCtx"), staffUser.UserID).
					Return(staffUser, nil).Once()
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "Fail - Duplicate code returns conflict",
			userID: &staffUser.UserID,
			body:   validReqBody,
			setupMock: func() {
				mockUserService.On("GetUser", mock.AnythingOfType("*context.valueCtx"), staffUser.UserID).
					Return(staffUser, nil).Once()
				mockLevelService.On("CreateLevel", mock.AnythingOfType("*context.valueCtx"), &validReqBody).
					Return(nil, model.NewAppError("DUPLICATE_CODE", "このレベルコードは既に登録されています。", "code", model.ErrConflict)).Once()
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()

			req := createRequest(t, "POST", "/api/v1/levels", tc.body, tc.userID)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedBody != nil && tc.expectedStatus == http.StatusCreated {
				var resp model.Level
				err := json.Unmarshal(rr.Body.Bytes(), &resp)
				assert.NoError(t, err)
				assert.Equal(t, tc.expectedBody.LevelID, resp.LevelID)
				assert.Equal(t, tc.expectedBody.Code, resp.Code)
			}
			mockLevelService.AssertExpectations(t)
			mockUserService.AssertExpectations(t)
		})
	}
}

func TestLevelHandler_GetLevels(t *testing.T) {
	// --- セットアップ ---
	mockLevelService := mocks.NewLevelService(t)
	mockUserService := mocks.NewUserService(t)
	levelHandler := handlers.NewLevelHandler(mockLevelService, mockUserService, nil)
	router := newLevelTestRouter(levelHandler)
	// ------------------

	levelA1 := &model.Level{LevelID: uuid.New(), Code: "A1", Name: "Beginner"}
	levelB1 := &model.Level{LevelID: uuid.New(), Code: "B1", Name: "Intermediate"}

	tests := []struct {
		name           string
		url            string
		setupMock      func()
		expectedStatus int
		expectedCount  int
	}{
		{
			name: "Success - List all levels without auth",
			url:  "/api/v1/levels",
			setupMock: func() {
				mockLevelService.On("ListLevels", mock.Anything, &model.LevelFilter{}).
					Return([]*model.Level{levelA1, levelB1}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name: "Success - Filter by code",
			url:  "/api/v1/levels?code=B1",
			setupMock: func() {
				mockLevelService.On("ListLevels", mock.Anything, &model.LevelFilter{Code: "B1"}).
					Return([]*model.Level{levelB1}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedCount:  1,
		},
		{
			name: "Success - Empty result returns empty array",
			url:  "/api/v1/levels?q=nonexistent",
			setupMock: func() {
				mockLevelService.On("ListLevels", mock.Anything, &model.LevelFilter{Query: "nonexistent"}).
					Return(nil, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()

			req := createRequest(t, "GET", tc.url, nil, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedStatus == http.StatusOK {
				var resp []model.Level
				err := json.Unmarshal(rr.Body.Bytes(), &resp)
				assert.NoError(t, err)
				assert.Len(t, resp, tc.expectedCount)
			}
			mockLevelService.AssertExpectations(t)
		})
	}
}

func TestLevelHandler_GetLevel(t *testing.T) {
	// --- セットアップ ---
	mockLevelService := mocks.NewLevelService(t)
	mockUserService := mocks.NewUserService(t)
	levelHandler := handlers.NewLevelHandler(mockLevelService, mockUserService, nil)
	router := newLevelTestRouter(levelHandler)
	// ------------------

	level := &model.Level{LevelID: uuid.New(), Code: "C1", Name: "Advanced"}

	tests := []struct {
		name           string
		levelIDParam   string
		setupMock      func()
		expectedStatus int
	}{
		{
			name:         "Success - Get existing level",
			levelIDParam: level.LevelID.String(),
			setupMock: func() {
				mockLevelService.On("GetLevel", mock.Anything, level.LevelID).
					Return(level, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:         "Fail - Level not found",
			levelIDParam: uuid.New().String(),
			setupMock: func() {
				mockLevelService.On("GetLevel", mock.Anything, mock.AnythingOfType("uuid.UUID")).
					Return(nil, model.NewAppError("LEVEL_NOT_FOUND", "指定されたレベルが見つかりません。", "", model.ErrNotFound)).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Fail - Invalid UUID format",
			levelIDParam:   "not-a-uuid",
			setupMock:      func() { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()

			url := fmt.Sprintf("/api/v1/levels/%s", tc.levelIDParam)
			req := createRequest(t, "GET", url, nil, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedStatus == http.StatusOK {
				var resp model.Level
				err := json.Unmarshal(rr.Body.Bytes(), &resp)
				assert.NoError(t, err)
				assert.Equal(t, level.LevelID, resp.LevelID)
				assert.Equal(t, level.Code, resp.Code)
			}
			mockLevelService.AssertExpectations(t)
		})
	}
}

func TestLevelHandler_DeleteLevel(t *testing.T) {
	// --- セットアップ ---
	staffUser := &model.User{UserID: uuid.New(), Username: "admin", IsStaff: true}

	mockLevelService := mocks.NewLevelService(t)
	mockUserService := mocks.NewUserService(t)
	levelHandler := handlers.NewLevelHandler(mockLevelService, mockUserService, nil)
	router := newLevelTestRouter(levelHandler)
	// ------------------

	levelID := uuid.New()

	tests := []struct {
		name           string
		userID         *uuid.UUID
		levelIDParam   string
		setupMock      func()
		expectedStatus int
	}{
		{
			name:         "Success - Staff deletes level",
			userID:       &staffUser.UserID,
			levelIDParam: levelID.String(),
			setupMock: func() {
				mockUserService.On("GetUser", mock.AnythingOfType("*context.valueCtx"), staffUser.UserID).
					Return(staffUser, nil).Once()
				mockLevelService.On("DeleteLevel", mock.AnythingOfType("*context.valueCtx"), levelID).
					Return(nil).Once()
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:         "Fail - Level not found",
			userID:       &staffUser.UserID,
			levelIDParam: uuid.New().String(),
			setupMock: func() {
				mockUserService.On("GetUser", mock.AnythingOfType("*context.valueCtx"), staffUser.UserID).
					Return(staffUser, nil).Once()
				mockLevelService.On("DeleteLevel", mock.AnythingOfType("*context.valueCtx"), mock.AnythingOfType("uuid.UUID")).
					Return(model.NewAppError("LEVEL_NOT_FOUND", "指定されたレベルが見つかりません。", "", model.ErrNotFound)).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Fail - Missing user ID",
			userID:         nil,
			levelIDParam:   levelID.String(),
			setupMock:      func() { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()

			url := fmt.Sprintf("/api/v1/levels/%s", tc.levelIDParam)
			req := createRequest(t, "DELETE", url, nil, tc.userID)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedStatus == http.StatusNoContent {
				assert.Empty(t, rr.Body.Bytes())
			}
			mockLevelService.AssertExpectations(t)
			mockUserService.AssertExpectations(t)
		})
	}
}
