// internal/handlers/profile_handler.go
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

type ProfileHandler struct {
	service service.ProfileService
	logger  *slog.Logger
}

func NewProfileHandler(s service.ProfileService, logger *slog.Logger) *ProfileHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileHandler{
		service: s,
		logger:  logger,
	}
}

// PostProfile は新しいプロフィールを作成します。
// 対象は自分自身のみです (user_id が自分と一致しない場合は 403)。
func (h *ProfileHandler) PostProfile(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostProfile"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}

	var req model.PostProfileRequest
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

	if req.UserID != userID {
		logger.Warn("User attempted to create a profile for another user", slog.String("target_id", req.UserID.String()))
		appErr := model.NewAppError("FORBIDDEN", "自分以外のユーザーのプロフィールは作成できません。", "user_id", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	profile, err := h.service.CreateProfile(r.Context(), &req)
	if err != nil {
		logger.Error("Error creating profile in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Profile created successfully", slog.String("profile_id", profile.ProfileID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, profile, logger)
}

// GetProfiles はプロフィールの一覧を返します。level と q での絞り込みに対応します
func (h *ProfileHandler) GetProfiles(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetProfiles"))

	if _, ok := requireUserID(w, r, logger); !ok {
		return
	}

	filter := &model.ProfileFilter{
		LevelCode: r.URL.Query().Get("level"),
		Query:     r.URL.Query().Get("q"),
	}

	profiles, err := h.service.ListProfiles(r.Context(), filter)
	if err != nil {
		logger.Error("Error listing profiles in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if profiles == nil {
		profiles = []*model.UserProfile{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, profiles, logger)
}

// GetMyProfile は認証済みユーザー自身のプロフィールを返します
func (h *ProfileHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetMyProfile"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}

	profile, err := h.service.GetProfileByUser(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, profile, logger)
}

// GetProfile は特定のプロフィールを返します
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetProfile"))

	if _, ok := requireUserID(w, r, logger); !ok {
		return
	}

	profileID, ok := parseUUIDParam(w, r, logger, "profile_id")
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(r.Context(), profileID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Profile not found", slog.String("profile_id", profileID.String()))
		} else {
			logger.Error("Error getting profile from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, profile, logger)
}

// PutProfile はプロフィールを完全に置き換えます。自分のプロフィールのみ更新できます
func (h *ProfileHandler) PutProfile(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutProfile"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}

	profileID, ok := parseUUIDParam(w, r, logger, "profile_id")
	if !ok {
		return
	}

	// 所有者チェック: 対象プロフィールが自分のものか確認する
	existing, err := h.service.GetProfile(r.Context(), profileID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if existing.UserID != userID {
		logger.Warn("User attempted to replace another user's profile", slog.String("profile_id", profileID.String()))
		appErr := model.NewAppError("FORBIDDEN", "自分以外のプロフィールは更新できません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	var req model.PutProfileRequest
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

	profile, err := h.service.ReplaceProfile(r.Context(), profileID, &req)
	if err != nil {
		logger.Error("Error replacing profile in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, profile, logger)
}

// PatchProfile はプロフィールの一部を更新します。自分のプロフィールのみ更新できます
func (h *ProfileHandler) PatchProfile(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchProfile"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}

	profileID, ok := parseUUIDParam(w, r, logger, "profile_id")
	if !ok {
		return
	}

	// 所有者チェック: 対象プロフィールが自分のものか確認する
	existing, err := h.service.GetProfile(r.Context(), profileID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if existing.UserID != userID {
		logger.Warn("User attempted to patch another user's profile", slog.String("profile_id", profileID.String()))
		appErr := model.NewAppError("FORBIDDEN", "自分以外のプロフィールは更新できません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	var req model.PatchProfileRequest
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

	profile, err := h.service.PatchProfile(r.Context(), profileID, &req)
	if err != nil {
		logger.Error("Error patching profile in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, profile, logger)
}

// DeleteProfile はプロフィールを削除します。自分のプロフィールのみ削除できます
func (h *ProfileHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteProfile"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}

	profileID, ok := parseUUIDParam(w, r, logger, "profile_id")
	if !ok {
		return
	}

	existing, err := h.service.GetProfile(r.Context(), profileID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if existing.UserID != userID {
		logger.Warn("User attempted to delete another user's profile", slog.String("profile_id", profileID.String()))
		appErr := model.NewAppError("FORBIDDEN", "自分以外のプロフィールは削除できません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := h.service.DeleteProfile(r.Context(), profileID); err != nil {
		logger.Error("Error deleting profile in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Profile deleted successfully", slog.String("profile_id", profileID.String()))
	w.WriteHeader(http.StatusNoContent)
}
