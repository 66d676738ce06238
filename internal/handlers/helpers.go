// internal/handlers/helpers.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"mylang_backend/internal/middleware"
	"mylang_backend/internal/model"
	"mylang_backend/internal/service"
	"mylang_backend/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// requireUserID はコンテキストから認証済みユーザーIDを取り出します。
// 取得できない場合はエラーレスポンスを書き込み、false を返します。
func requireUserID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, false
	}
	return userID, true
}

// parseUUIDParam はURLパラメータをUUIDとして解釈します。
// 不正な形式の場合はエラーレスポンスを書き込み、false を返します。
func parseUUIDParam(w http.ResponseWriter, r *http.Request, logger *slog.Logger, name string) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, name)
	id, err := uuid.Parse(idStr)
	if err != nil {
		logger.Warn("Invalid UUID format in URL", slog.String("param", name), slog.String("value", idStr))
		appErr := model.NewAppError("INVALID_URL_PARAM", name+"の形式が正しくありません。", name, model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, false
	}
	return id, true
}

// requireStaff は呼び出しユーザーがスタッフであることを確認します。
// 参照データ (レベル・レッスン) の書き込み系で使います。
func requireStaff(ctx context.Context, w http.ResponseWriter, logger *slog.Logger, users service.UserService, userID uuid.UUID) bool {
	user, err := users.GetUser(ctx, userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return false
	}
	if !user.IsStaff {
		logger.Warn("Non-staff user attempted a staff operation", slog.String("user_id", userID.String()))
		appErr := model.NewAppError("FORBIDDEN", "この操作を行う権限がありません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return false
	}
	return true
}
