// internal/handlers/user_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"mylang_backend/internal/model"
	"mylang_backend/internal/service"
	"mylang_backend/internal/webutil"

	"github.com/go-playground/validator/v10"
)

type UserHandler struct {
	service service.UserService
	logger  *slog.Logger
}

func NewUserHandler(s service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		service: s,
		logger:  logger,
	}
}

// GetMe は認証済みユーザー自身の情報を返します
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetMe"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, user.ToResponse(), logger)
}

// GetUsers はユーザーの一覧を返します
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetUsers"))

	if _, ok := requireUserID(w, r, logger); !ok {
		return
	}

	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		logger.Error("Error listing users in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	responses := make([]*model.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}
	webutil.RespondWithJSON(w, http.StatusOK, responses, logger)
}

// GetUser は特定のユーザーを返します
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetUser"))

	if _, ok := requireUserID(w, r, logger); !ok {
		return
	}

	targetID, ok := parseUUIDParam(w, r, logger, "user_id")
	if !ok {
		return
	}

	user, err := h.service.GetUser(r.Context(), targetID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("User not found", slog.String("user_id", targetID.String()))
		} else {
			logger.Error("Error getting user from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, user.ToResponse(), logger)
}

// PatchUser はユーザー情報の一部を更新します。自分自身のみ更新できます
func (h *UserHandler) PatchUser(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchUser"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}

	targetID, ok := parseUUIDParam(w, r, logger, "user_id")
	if !ok {
		return
	}
	if targetID != userID {
		logger.Warn("User attempted to patch another user", slog.String("target_id", targetID.String()))
		appErr := model.NewAppError("FORBIDDEN", "自分以外のユーザーは更新できません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	var req model.PatchUserRequest
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

	user, err := h.service.PatchUser(r.Context(), targetID, &req)
	if err != nil {
		logger.Error("Error patching user in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, user.ToResponse(), logger)
}

// DeleteUser はユーザーを削除 (論理削除) します。自分自身のみ削除できます
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteUser"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}

	targetID, ok := parseUUIDParam(w, r, logger, "user_id")
	if !ok {
		return
	}
	if targetID != userID {
		logger.Warn("User attempted to delete another user", slog.String("target_id", targetID.String()))
		appErr := model.NewAppError("FORBIDDEN", "自分以外のユーザーは削除できません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := h.service.DeleteUser(r.Context(), targetID); err != nil {
		logger.Error("Error deleting user in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("User deleted successfully", slog.String("user_id", targetID.String()))
	w.WriteHeader(http.StatusNoContent)
}
