// internal/handlers/lesson_handler.go
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

type LessonHandler struct {
	service     service.LessonService
	userService service.UserService // スタッフ権限チェック用
	logger      *slog.Logger
}

func NewLessonHandler(s service.LessonService, userService service.UserService, logger *slog.Logger) *LessonHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LessonHandler{
		service:     s,
		userService: userService,
		logger:      logger,
	}
}

// PostLesson は新しいレッスンを作成します (スタッフ専用)
func (h *LessonHandler) PostLesson(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostLesson"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}
	if !requireStaff(r.Context(), w, logger, h.userService, userID) {
		return
	}

	var req model.PostLessonRequest
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

	lesson, err := h.service.CreateLesson(r.Context(), &req)
	if err != nil {
		logger.Error("Error creating lesson in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Lesson created successfully", slog.String("lesson_id", lesson.LessonID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, lesson, logger)
}

// GetLessons はレッスンの一覧を返します。level_id と q での絞り込みに対応します
func (h *LessonHandler) GetLessons(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetLessons"))

	filter := &model.LessonFilter{
		Query: r.URL.Query().Get("q"),
	}
	if levelIDStr := r.URL.Query().Get("level_id"); levelIDStr != "" {
		levelID, err := uuid.Parse(levelIDStr)
		if err != nil {
			appErr := model.NewAppError("INVALID_QUERY_PARAM", "level_idの形式が正しくありません。", "level_id", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
		filter.LevelID = &levelID
	}

	lessons, err := h.service.ListLessons(r.Context(), filter)
	if err != nil {
		logger.Error("Error listing lessons in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if lessons == nil {
		lessons = []*model.Lesson{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, lessons, logger)
}

// GetLesson は特定のレッスンを返します
func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetLesson"))

	lessonID, ok := parseUUIDParam(w, r, logger, "lesson_id")
	if !ok {
		return
	}

	lesson, err := h.service.GetLesson(r.Context(), lessonID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Lesson not found", slog.String("lesson_id", lessonID.String()))
		} else {
			logger.Error("Error getting lesson from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, lesson, logger)
}

// PutLesson はレッスンを完全に置き換えます (スタッフ専用)
func (h *LessonHandler) PutLesson(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutLesson"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}
	if !requireStaff(r.Context(), w, logger, h.userService, userID) {
		return
	}

	lessonID, ok := parseUUIDParam(w, r, logger, "lesson_id")
	if !ok {
		return
	}

	var req model.PutLessonRequest
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

	lesson, err := h.service.ReplaceLesson(r.Context(), lessonID, &req)
	if err != nil {
		logger.Error("Error replacing lesson in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, lesson, logger)
}

// PatchLesson はレッスンの一部を更新します (スタッフ専用)
func (h *LessonHandler) PatchLesson(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchLesson"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}
	if !requireStaff(r.Context(), w, logger, h.userService, userID) {
		return
	}

	lessonID, ok := parseUUIDParam(w, r, logger, "lesson_id")
	if !ok {
		return
	}

	var req model.PatchLessonRequest
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

	lesson, err := h.service.PatchLesson(r.Context(), lessonID, &req)
	if err != nil {
		logger.Error("Error patching lesson in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, lesson, logger)
}

// DeleteLesson はレッスンを削除します (スタッフ専用)
func (h *LessonHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteLesson"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}
	if !requireStaff(r.Context(), w, logger, h.userService, userID) {
		return
	}

	lessonID, ok := parseUUIDParam(w, r, logger, "lesson_id")
	if !ok {
		return
	}

	if err := h.service.DeleteLesson(r.Context(), lessonID); err != nil {
		logger.Error("Error deleting lesson in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Lesson deleted successfully", slog.String("lesson_id", lessonID.String()))
	w.WriteHeader(http.StatusNoContent)
}
