// internal/handlers/level_handler.go
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

type LevelHandler struct {
	service     service.LevelService
	userService service.UserService // スタッフ権限チェック用
	logger      *slog.Logger
}

func NewLevelHandler(s service.LevelService, userService service.UserService, logger *slog.Logger) *LevelHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LevelHandler{
		service:     s,
		userService: userService,
		logger:      logger,
	}
}

// PostLevel は新しいレベルを作成します (スタッフ専用)
func (h *LevelHandler) PostLevel(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostLevel"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}
	if !requireStaff(r.Context(), w, logger, h.userService, userID) {
		return
	}

	var req model.PostLevelRequest
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
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	level, err := h.service.CreateLevel(r.Context(), &req)
	if err != nil {
		logger.Error("Error creating level in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Level created successfully", slog.String("level_id", level.LevelID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, level, logger)
}

// GetLevels はレベルの一覧を返します。code と q での絞り込みに対応します
func (h *LevelHandler) GetLevels(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetLevels"))

	filter := &model.LevelFilter{
		Code:  r.URL.Query().Get("code"),
		Query: r.URL.Query().Get("q"),
	}

	levels, err := h.service.ListLevels(r.Context(), filter)
	if err != nil {
		logger.Error("Error listing levels in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if levels == nil {
		levels = []*model.Level{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, levels, logger)
}

// GetLevel は特定のレベルを返します
func (h *LevelHandler) GetLevel(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetLevel"))

	levelID, ok := parseUUIDParam(w, r, logger, "level_id")
	if !ok {
		return
	}

	level, err := h.service.GetLevel(r.Context(), levelID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Level not found", slog.String("level_id", levelID.String()))
		} else {
			logger.Error("Error getting level from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, level, logger)
}

// PutLevel はレベルを完全に置き換えます (スタッフ専用)
func (h *LevelHandler) PutLevel(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutLevel"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}
	if !requireStaff(r.Context(), w, logger, h.userService, userID) {
		return
	}

	levelID, ok := parseUUIDParam(w, r, logger, "level_id")
	if !ok {
		return
	}

	var req model.PutLevelRequest
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

	level, err := h.service.ReplaceLevel(r.Context(), levelID, &req)
	if err != nil {
		logger.Error("Error replacing level in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, level, logger)
}

// PatchLevel はレベルの一部を更新します (スタッフ専用)
func (h *LevelHandler) PatchLevel(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchLevel"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}
	if !requireStaff(r.Context(), w, logger, h.userService, userID) {
		return
	}

	levelID, ok := parseUUIDParam(w, r, logger, "level_id")
	if !ok {
		return
	}

	var req model.PatchLevelRequest
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

	level, err := h.service.PatchLevel(r.Context(), levelID, &req)
	if err != nil {
		logger.Error("Error patching level in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, level, logger)
}

// DeleteLevel はレベルを削除します (スタッフ専用)
func (h *LevelHandler) DeleteLevel(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteLevel"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}
	if !requireStaff(r.Context(), w, logger, h.userService, userID) {
		return
	}

	levelID, ok := parseUUIDParam(w, r, logger, "level_id")
	if !ok {
		return
	}

	if err := h.service.DeleteLevel(r.Context(), levelID); err != nil {
		logger.Error("Error deleting level in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Level deleted successfully", slog.String("level_id", levelID.String()))
	w.WriteHeader(http.StatusNoContent)
}
