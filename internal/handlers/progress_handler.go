// internal/handlers/progress_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"mylang_backend/internal/model"
	"mylang_backend/internal/service"
	"mylang_backend/internal/webutil"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ProgressHandler struct {
	service service.ProgressService
	logger  *slog.Logger
}

func NewProgressHandler(s service.ProgressService, logger *slog.Logger) *ProgressHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressHandler{
		service: s,
		logger:  logger,
	}
}

// PostProgress は進捗を記録します。同じレッスンの記録が既にあれば更新されます
func (h *ProgressHandler) PostProgress(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostProgress"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}

	var req model.PostProgressRequest
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

	progress, err := h.service.UpsertProgress(r.Context(), userID, &req)
	if err != nil {
		logger.Error("Error upserting progress in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Progress recorded successfully", slog.String("progress_id", progress.ProgressID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, progress, logger)
}

// GetProgressList は自分の進捗一覧を返します。
// lesson_id と completed での絞り込みに対応します
func (h *ProgressHandler) GetProgressList(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetProgressList"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}

	filter := &model.ProgressFilter{}
	if lessonIDStr := r.URL.Query().Get("lesson_id"); lessonIDStr != "" {
		id, err := uuid.Parse(lessonIDStr)
		if err != nil {
			appErr := model.NewAppError("INVALID_QUERY_PARAM", "lesson_idの形式が正しくありません。", "lesson_id", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
		filter.LessonID = &id
	}
	if completedStr := r.URL.Query().Get("completed"); completedStr != "" {
		completed, err := strconv.ParseBool(completedStr)
		if err != nil {
			appErr := model.NewAppError("INVALID_QUERY_PARAM", "completedはtrue/falseで指定してください。", "completed", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
		filter.Completed = &completed
	}

	list, err := h.service.ListProgress(r.Context(), userID, filter)
	if err != nil {
		logger.Error("Error listing progress in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if list == nil {
		list = []*model.Progress{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, list, logger)
}

// GetProgress は特定の進捗を返します
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetProgress"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}

	progressID, ok := parseUUIDParam(w, r, logger, "progress_id")
	if !ok {
		return
	}

	progress, err := h.service.GetProgress(r.Context(), userID, progressID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Progress not found", slog.String("progress_id", progressID.String()))
		} else {
			logger.Error("Error getting progress from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, progress, logger)
}

// PatchProgress は進捗の一部を更新します
func (h *ProgressHandler) PatchProgress(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchProgress"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}

	progressID, ok := parseUUIDParam(w, r, logger, "progress_id")
	if !ok {
		return
	}

	var req model.PatchProgressRequest
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

	progress, err := h.service.PatchProgress(r.Context(), userID, progressID, &req)
	if err != nil {
		logger.Error("Error patching progress in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, progress, logger)
}

// DeleteProgress は進捗を削除します
func (h *ProgressHandler) DeleteProgress(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteProgress"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}

	progressID, ok := parseUUIDParam(w, r, logger, "progress_id")
	if !ok {
		return
	}

	if err := h.service.DeleteProgress(r.Context(), userID, progressID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Progress not found", slog.String("progress_id", progressID.String()))
		} else {
			logger.Error("Error deleting progress in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Progress deleted successfully", slog.String("progress_id", progressID.String()))
	w.WriteHeader(http.StatusNoContent)
}
