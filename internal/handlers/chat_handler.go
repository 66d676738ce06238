// internal/handlers/chat_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"mylang_backend/internal/middleware"
	"mylang_backend/internal/model"
	"mylang_backend/internal/service"
	"mylang_backend/internal/webutil"

	"github.com/go-playground/validator/v10"
)

type ChatHandler struct {
	service service.ChatService
	logger  *slog.Logger
}

func NewChatHandler(s service.ChatService, logger *slog.Logger) *ChatHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatHandler{
		service: s,
		logger:  logger,
	}
}

// PostChat は1ターン分のチャットを処理するハンドラ。
// conversation_id 省略時は新しい会話を開始します。
func (h *ChatHandler) PostChat(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostChat"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.ChatRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()))
			appErr := webutil.NewValidationErrorResponse(validationErrors)
			webutil.HandleError(w, logger, appErr)
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	resp, err := h.service.SubmitTurn(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, model.ErrGeneration) {
			logger.Warn("Generation provider failed", slog.Any("error", err))
		} else {
			logger.Error("Error submitting chat turn in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Chat turn processed successfully", slog.String("conversation_id", resp.ConversationID.String()))
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}
