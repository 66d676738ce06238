// internal/handlers/chat_handler_test.go
package handlers_test

import (
	"encoding/json"
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

func TestChatHandler_PostChat(t *testing.T) {
	// --- セットアップ ---
	testUserID := uuid.New()
	existingConvID := uuid.New()

	mockChatService := mocks.NewChatService(t)
	chatHandler := handlers.NewChatHandler(mockChatService, nil)
	router := chi.NewRouter()
	router.Use(middleware.DevUserContextMiddleware)
	router.Post("/api/v1/chat", chatHandler.PostChat)
	// ------------------

	validReqBody := model.ChatRequest{Message: "Bonjour, comment ça va ?"}
	continueReqBody := model.ChatRequest{
		Message:        "Et toi ?",
		ConversationID: &existingConvID,
	}

	tests := []struct {
		name           string
		userID         *uuid.UUID
		body           interface{}
		setupMock      func()
		expectedStatus int
		expectedBody   *model.ChatResponse
	}{
		{
			name:   "Success - New conversation",
			userID: &testUserID,
			body:   validReqBody,
			setupMock: func() {
				mockChatService.On("SubmitTurn", mock.AnythingOfType("*context.valueCtx"), testUserID, &validReqBody).
					Return(&model.ChatResponse{ConversationID: existingConvID, Response: "Ça va bien, merci !"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   &model.ChatResponse{ConversationID: existingConvID, Response: "Ça va bien, merci !"},
		},
		{
			name:   "Success - Continue existing conversation",
			userID: &testUserID,
			body:   continueReqBody,
			setupMock: func() {
				mockChatService.On("SubmitTurn", mock.AnythingOfType("*context.valueCtx"), testUserID, &continueReqBody).
					Return(&model.ChatResponse{ConversationID: existingConvID, Response: "Très bien !"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   &model.ChatResponse{ConversationID: existingConvID, Response: "Très bien !"},
		},
		{
			name:           "Fail - Missing user ID",
			userID:         nil,
			body:           validReqBody,
			setupMock:      func() { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Fail - Missing message",
			userID:         &testUserID,
			body:           model.ChatRequest{},
			setupMock:      func() { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Fail - Invalid request body (bad json)",
			userID:         &testUserID,
			body:           `{"message": "bad json`,
			setupMock:      func() { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "Fail - Conversation not found",
			userID: &testUserID,
			body:   continueReqBody,
			setupMock: func() {
				mockChatService.On("SubmitTurn", mock.AnythingOfType("*context.valueCtx"), testUserID, &continueReqBody).
					Return(nil, model.NewAppError("CONVERSATION_NOT_FOUND", "指定された会話が見つかりません。", "conversation_id", model.ErrNotFound)).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "Fail - Generation provider error returns 502",
			userID: &testUserID,
			body:   validReqBody,
			setupMock: func() {
				mockChatService.On("SubmitTurn", mock.AnythingOfType("*context.valueCtx"), testUserID, &validReqBody).
					Return(nil, model.NewAppError("GENERATION_FAILED", "応答の生成に失敗しました。時間をおいて再度お試しください。", "", model.ErrGeneration)).Once()
			},
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()

			req := createRequest(t, "POST", "/api/v1/chat", tc.body, tc.userID)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedBody != nil && tc.expectedStatus == http.StatusOK {
				var resp model.ChatResponse
				err := json.Unmarshal(rr.Body.Bytes(), &resp)
				assert.NoError(t, err)
				assert.Equal(t, tc.expectedBody.ConversationID, resp.ConversationID)
				assert.Equal(t, tc.expectedBody.Response, resp.Response)
			}
			mockChatService.AssertExpectations(t)
		})
	}
}
