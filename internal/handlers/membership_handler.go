// internal/handlers/membership_handler.go
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

type MembershipHandler struct {
	service     service.MembershipService
	userService service.UserService // スタッフ権限チェック用
	logger      *slog.Logger
}

func NewMembershipHandler(s service.MembershipService, userService service.UserService, logger *slog.Logger) *MembershipHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MembershipHandler{
		service:     s,
		userService: userService,
		logger:      logger,
	}
}

// PostMembership はメンバーシップ履歴を手動追加します (スタッフ専用)。
// 通常の履歴はプロフィールのレベル変更時に自動で記録されます。
func (h *MembershipHandler) PostMembership(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostMembership"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}
	if !requireStaff(r.Context(), w, logger, h.userService, userID) {
		return
	}

	var req model.PostMembershipRequest
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

	membership, err := h.service.CreateMembership(r.Context(), &req)
	if err != nil {
		logger.Error("Error creating membership in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Membership created successfully", slog.String("membership_id", membership.MembershipID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, membership, logger)
}

// GetMemberships はメンバーシップ履歴の一覧を返します。
// user_id と level_id での絞り込みに対応します
func (h *MembershipHandler) GetMemberships(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetMemberships"))

	if _, ok := requireUserID(w, r, logger); !ok {
		return
	}

	filter := &model.MembershipFilter{}
	if userIDStr := r.URL.Query().Get("user_id"); userIDStr != "" {
		id, err := uuid.Parse(userIDStr)
		if err != nil {
			appErr := model.NewAppError("INVALID_QUERY_PARAM", "user_idの形式が正しくありません。", "user_id", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
		filter.UserID = &id
	}
	if levelIDStr := r.URL.Query().Get("level_id"); levelIDStr != "" {
		id, err := uuid.Parse(levelIDStr)
		if err != nil {
			appErr := model.NewAppError("INVALID_QUERY_PARAM", "level_idの形式が正しくありません。", "level_id", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
		filter.LevelID = &id
	}

	memberships, err := h.service.ListMemberships(r.Context(), filter)
	if err != nil {
		logger.Error("Error listing memberships in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if memberships == nil {
		memberships = []*model.LevelMembership{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, memberships, logger)
}

// GetMembership は特定のメンバーシップを返します
func (h *MembershipHandler) GetMembership(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetMembership"))

	if _, ok := requireUserID(w, r, logger); !ok {
		return
	}

	membershipID, ok := parseUUIDParam(w, r, logger, "membership_id")
	if !ok {
		return
	}

	membership, err := h.service.GetMembership(r.Context(), membershipID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Membership not found", slog.String("membership_id", membershipID.String()))
		} else {
			logger.Error("Error getting membership from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, membership, logger)
}

// DeleteMembership はメンバーシップ履歴を削除します (スタッフ専用)
func (h *MembershipHandler) DeleteMembership(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteMembership"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}
	if !requireStaff(r.Context(), w, logger, h.userService, userID) {
		return
	}

	membershipID, ok := parseUUIDParam(w, r, logger, "membership_id")
	if !ok {
		return
	}

	if err := h.service.DeleteMembership(r.Context(), membershipID); err != nil {
		logger.Error("Error deleting membership in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Membership deleted successfully", slog.String("membership_id", membershipID.String()))
	w.WriteHeader(http.StatusNoContent)
}
