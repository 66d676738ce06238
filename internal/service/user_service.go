// internal/service/user_service.go
package service

import (
	"context"
	"errors"

	"mylang_backend/internal/middleware"
	"mylang_backend/internal/model"
	"mylang_backend/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockery --name UserService --output ./mocks --outpkg mocks

// UserService はユーザー情報の参照・更新・削除を提供します。
// 登録は AuthService.Register が担当します。
type UserService interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	PatchUser(ctx context.Context, userID uuid.UUID, req *model.PatchUserRequest) (*model.User, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
}

func NewUserService(db *gorm.DB, userRepo repository.UserRepository) UserService {
	return &userService{db: db, userRepo: userRepo}
}

func (s *userService) GetUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("USER_NOT_FOUND", "指定されたユーザーが見つかりません。", "", model.ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.List(ctx, s.db)
}

func (s *userService) PatchUser(ctx context.Context, userID uuid.UUID, req *model.PatchUserRequest) (*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var updated *model.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if req.Email != nil {
			// 変更先のメールアドレスが他ユーザーで使われていないか確認
			existing, err := s.userRepo.FindByEmail(ctx, tx, *req.Email)
			if err == nil && existing.UserID != userID {
				return model.NewAppError("DUPLICATE_EMAIL", "このメールアドレスは既に使用されています。", "email", model.ErrConflict)
			}
			if err != nil && !errors.Is(err, model.ErrNotFound) {
				return err
			}
			updates["email"] = *req.Email
		}
		if req.FirstName != nil {
			updates["first_name"] = *req.FirstName
		}
		if req.LastName != nil {
			updates["last_name"] = *req.LastName
		}
		if req.Password != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
			if err != nil {
				logger.Error("Failed to hash password", "error", err)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "パスワードの処理中にエラーが発生しました。", "", err)
			}
			updates["password_hash"] = string(hashedPassword)
		}
		if len(updates) > 0 {
			if err := s.userRepo.Update(ctx, tx, userID, updates); err != nil {
				if errors.Is(err, model.ErrNotFound) {
					return model.NewAppError("USER_NOT_FOUND", "指定されたユーザーが見つかりません。", "", model.ErrNotFound)
				}
				return err
			}
		}
		var err error
		updated, err = s.userRepo.FindByID(ctx, tx, userID)
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("USER_NOT_FOUND", "指定されたユーザーが見つかりません。", "", model.ErrNotFound)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.userRepo.Delete(ctx, tx, userID)
	})
	if errors.Is(err, model.ErrNotFound) {
		return model.NewAppError("USER_NOT_FOUND", "指定されたユーザーが見つかりません。", "", model.ErrNotFound)
	}
	return err
}
