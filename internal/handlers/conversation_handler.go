// internal/handlers/conversation_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"mylang_backend/internal/model"
	"mylang_backend/internal/service"
	"mylang_backend/internal/webutil"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ConversationHandler struct {
	service service.ConversationService
	logger  *slog.Logger
}

func NewConversationHandler(s service.ConversationService, logger *slog.Logger) *ConversationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConversationHandler{
		service: s,
		logger:  logger,
	}
}

// PostConversation は新しい会話を作成します
func (h *ConversationHandler) PostConversation(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostConversation"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}

	var req model.PostConversationRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			webutil.HandleError(w, logger, webutil.NewValidationErrorResponse(validationErrors))
		} else {
			webutil.HandleError(w, logger, err)
		}
		return
	}

	conv, err := h.service.CreateConversation(r.Context(), userID, &req)
	if err != nil {
		logger.Error("Error creating conversation in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Conversation created successfully", slog.String("conversation_id", conv.ConversationID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, conv, logger)
}

// GetConversations は自分の会話一覧を新しい順で返します。
// level_id と created_after での絞り込みに対応します
func (h *ConversationHandler) GetConversations(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetConversations"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}

	filter := &model.ConversationFilter{}
	if levelIDStr := r.URL.Query().Get("level_id"); levelIDStr != "" {
		id, err := uuid.Parse(levelIDStr)
		if err != nil {
			appErr := model.NewAppError("INVALID_QUERY_PARAM", "level_idの形式が正しくありません。", "level_id", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
		filter.LevelID = &id
	}
	if afterStr := r.URL.Query().Get("created_after"); afterStr != "" {
		after, err := time.Parse(time.RFC3339, afterStr)
		if err != nil {
			appErr := model.NewAppError("INVALID_QUERY_PARAM", "created_afterはRFC3339形式で指定してください。", "created_after", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
		filter.CreatedAfter = &after
	}

	convs, err := h.service.ListConversations(r.Context(), userID, filter)
	if err != nil {
		logger.Error("Error listing conversations in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if convs == nil {
		convs = []*model.Conversation{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, convs, logger)
}

// GetConversation は特定の会話をメッセージ付きで返します
func (h *ConversationHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetConversation"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}

	conversationID, ok := parseUUIDParam(w, r, logger, "conversation_id")
	if !ok {
		return
	}

	conv, err := h.service.GetConversation(r.Context(), userID, conversationID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Conversation not found", slog.String("conversation_id", conversationID.String()))
		} else {
			logger.Error("Error getting conversation from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, conv, logger)
}

// PatchConversation は会話のタイトルを更新します
func (h *ConversationHandler) PatchConversation(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchConversation"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}

	conversationID, ok := parseUUIDParam(w, r, logger, "conversation_id")
	if !ok {
		return
	}

	var req model.PatchConversationRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			webutil.HandleError(w, logger, webutil.NewValidationErrorResponse(validationErrors))
		} else {
			webutil.HandleError(w, logger, err)
		}
		return
	}

	conv, err := h.service.PatchConversation(r.Context(), userID, conversationID, &req)
	if err != nil {
		logger.Error("Error patching conversation in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, conv, logger)
}

// DeleteConversation は会話をメッセージごと削除します
func (h *ConversationHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteConversation"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}

	conversationID, ok := parseUUIDParam(w, r, logger, "conversation_id")
	if !ok {
		return
	}

	if err := h.service.DeleteConversation(r.Context(), userID, conversationID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Conversation not found", slog.String("conversation_id", conversationID.String()))
		} else {
			logger.Error("Error deleting conversation in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Conversation deleted successfully", slog.String("conversation_id", conversationID.String()))
	w.WriteHeader(http.StatusNoContent)
}
