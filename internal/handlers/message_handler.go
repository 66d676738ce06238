// internal/handlers/message_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"mylang_backend/internal/model"
	"mylang_backend/internal/service"
	"mylang_backend/internal/webutil"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// MessageHandler はメッセージ単体のCRUDを提供します。
// 通常のチャットのやり取りは ChatHandler 側が記録するため、
// こちらはインポートや管理用途の直接操作を想定しています。
type MessageHandler struct {
	service service.ConversationService
	logger  *slog.Logger
}

func NewMessageHandler(s service.ConversationService, logger *slog.Logger) *MessageHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MessageHandler{
		service: s,
		logger:  logger,
	}
}

// PostMessage は会話にメッセージを直接追加します
func (h *MessageHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostMessage"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}

	var req model.PostMessageRequest
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
			webutil.HandleError(w, logger, webutil.NewValidationErrorResponse(validationErrors))
		} else {
			webutil.HandleError(w, logger, err)
		}
		return
	}

	msg, err := h.service.CreateMessage(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Conversation not found for message", slog.String("conversation_id", req.ConversationID.String()))
		} else {
			logger.Error("Error creating message in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Message created successfully", slog.String("message_id", msg.MessageID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, msg, logger)
}

// GetMessage はメッセージ単体を返します
func (h *MessageHandler) GetMessage(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetMessage"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}

	messageID, ok := parseUUIDParam(w, r, logger, "message_id")
	if !ok {
		return
	}

	msg, err := h.service.GetMessage(r.Context(), userID, messageID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Message not found", slog.String("message_id", messageID.String()))
		} else {
			logger.Error("Error getting message from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, msg, logger)
}

// GetMessageList は自分の全会話のメッセージを横断して返します。
// conversation_id と sender での絞り込みに対応します
func (h *MessageHandler) GetMessageList(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetMessageList"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}

	filter := &model.MessageFilter{
		Sender: r.URL.Query().Get("sender"),
	}
	if convIDStr := r.URL.Query().Get("conversation_id"); convIDStr != "" {
		convID, err := uuid.Parse(convIDStr)
		if err != nil {
			logger.Warn("Invalid conversation_id query param", slog.String("value", convIDStr))
			appErr := model.NewAppError("INVALID_QUERY_PARAM", "conversation_idの形式が正しくありません。", "conversation_id", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
		filter.ConversationID = &convID
	}

	messages, err := h.service.ListUserMessages(r.Context(), userID, filter)
	if err != nil {
		logger.Error("Error listing user messages in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if messages == nil {
		messages = []*model.Message{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, messages, logger)
}

// GetMessages は会話のメッセージを古い順で返します
func (h *MessageHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetMessages"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}

	conversationID, ok := parseUUIDParam(w, r, logger, "conversation_id")
	if !ok {
		return
	}

	messages, err := h.service.ListMessages(r.Context(), userID, conversationID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Conversation not found", slog.String("conversation_id", conversationID.String()))
		} else {
			logger.Error("Error listing messages in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	if messages == nil {
		messages = []*model.Message{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, messages, logger)
}

// DeleteMessage はメッセージを削除します
func (h *MessageHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteMessage"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}

	messageID, ok := parseUUIDParam(w, r, logger, "message_id")
	if !ok {
		return
	}

	if err := h.service.DeleteMessage(r.Context(), userID, messageID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Message not found", slog.String("message_id", messageID.String()))
		} else {
			logger.Error("Error deleting message in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Message deleted successfully", slog.String("message_id", messageID.String()))
	w.WriteHeader(http.StatusNoContent)
}
