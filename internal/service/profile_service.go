// internal/service/profile_service.go
package service

import (
	"context"
	"errors"
	"time"

	"mylang_backend/internal/middleware"
	"mylang_backend/internal/model"
	"mylang_backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockery --name ProfileService --output ./mocks --outpkg mocks

// ProfileService はユーザープロフィールのCRUDを提供します。
// レベル変更時はメンバーシップ履歴 (level_memberships) も同一トランザクションで更新します。
type ProfileService interface {
	CreateProfile(ctx context.Context, req *model.PostProfileRequest) (*model.UserProfile, error)
	GetProfile(ctx context.Context, profileID uuid.UUID) (*model.UserProfile, error)
	GetProfileByUser(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error)
	ListProfiles(ctx context.Context, filter *model.ProfileFilter) ([]*model.UserProfile, error)
	ReplaceProfile(ctx context.Context, profileID uuid.UUID, req *model.PutProfileRequest) (*model.UserProfile, error)
	PatchProfile(ctx context.Context, profileID uuid.UUID, req *model.PatchProfileRequest) (*model.UserProfile, error)
	DeleteProfile(ctx context.Context, profileID uuid.UUID) error
}

type profileService struct {
	db             *gorm.DB
	profileRepo    repository.ProfileRepository
	userRepo       repository.UserRepository
	levelRepo      repository.LevelRepository
	membershipRepo repository.MembershipRepository
	now            func() time.Time
}

func NewProfileService(
	db *gorm.DB,
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
	levelRepo repository.LevelRepository,
	membershipRepo repository.MembershipRepository,
) ProfileService {
	return &profileService{
		db:             db,
		profileRepo:    profileRepo,
		userRepo:       userRepo,
		levelRepo:      levelRepo,
		membershipRepo: membershipRepo,
		now:            time.Now,
	}
}

func (s *profileService) CreateProfile(ctx context.Context, req *model.PostProfileRequest) (*model.UserProfile, error) {
	logger := middleware.GetLogger(ctx)
	var created *model.UserProfile

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// ユーザーの存在チェック
		if _, err := s.userRepo.FindByID(ctx, tx, req.UserID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("USER_NOT_FOUND", "指定されたユーザーが見つかりません。", "user_id", model.ErrInvalidInput)
			}
			return err
		}

		// 1ユーザー1プロフィール
		if _, err := s.profileRepo.FindByUserID(ctx, tx, req.UserID); err == nil {
			return model.NewAppError("DUPLICATE_PROFILE", "このユーザーのプロフィールは既に存在します。", "user_id", model.ErrConflict)
		} else if !errors.Is(err, model.ErrNotFound) {
			return err
		}

		if req.LevelID != nil {
			if _, err := s.levelRepo.FindByID(ctx, tx, *req.LevelID); err != nil {
				if errors.Is(err, model.ErrNotFound) {
					return model.NewAppError("LEVEL_NOT_FOUND", "指定されたレベルが見つかりません。", "level_id", model.ErrInvalidInput)
				}
				return err
			}
		}

		now := s.now()
		profile := &model.UserProfile{
			ProfileID:      uuid.New(),
			UserID:         req.UserID,
			LevelID:        req.LevelID,
			MembershipDate: now,
			Bio:            req.Bio,
			IsTutor:        req.IsTutor,
			AvatarURL:      req.AvatarURL,
		}
		if err := s.profileRepo.Create(ctx, tx, profile); err != nil {
			logger.Error("Failed to create profile", "error", err)
			return err
		}

		// 初期レベルが指定されていればメンバーシップ履歴も開始する
		if req.LevelID != nil {
			membership := &model.LevelMembership{
				MembershipID: uuid.New(),
				UserID:       req.UserID,
				LevelID:      *req.LevelID,
				StartDate:    now,
			}
			if err := s.membershipRepo.Create(ctx, tx, membership); err != nil {
				return err
			}
		}

		created = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *profileService) GetProfile(ctx context.Context, profileID uuid.UUID) (*model.UserProfile, error) {
	profile, err := s.profileRepo.FindByID(ctx, s.db, profileID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("PROFILE_NOT_FOUND", "指定されたプロフィールが見つかりません。", "", model.ErrNotFound)
		}
		return nil, err
	}
	return profile, nil
}

func (s *profileService) GetProfileByUser(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("PROFILE_NOT_FOUND", "指定されたプロフィールが見つかりません。", "", model.ErrNotFound)
		}
		return nil, err
	}
	return profile, nil
}

func (s *profileService) ListProfiles(ctx context.Context, filter *model.ProfileFilter) ([]*model.UserProfile, error) {
	return s.profileRepo.List(ctx, s.db, filter)
}

// ReplaceProfile は user_id 以外の全フィールドを置き換えます (PUT)。
// レベルが変わる場合 (外す場合を含む) はメンバーシップ履歴も更新します。
func (s *profileService) ReplaceProfile(ctx context.Context, profileID uuid.UUID, req *model.PutProfileRequest) (*model.UserProfile, error) {
	var updated *model.UserProfile

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := s.profileRepo.FindByID(ctx, tx, profileID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("PROFILE_NOT_FOUND", "指定されたプロフィールが見つかりません。", "", model.ErrNotFound)
			}
			return err
		}

		updates := map[string]interface{}{
			"bio":        req.Bio,
			"is_tutor":   req.IsTutor,
			"avatar_url": req.AvatarURL,
		}
		if req.LevelID != nil {
			if _, err := s.levelRepo.FindByID(ctx, tx, *req.LevelID); err != nil {
				if errors.Is(err, model.ErrNotFound) {
					return model.NewAppError("LEVEL_NOT_FOUND", "指定されたレベルが見つかりません。", "level_id", model.ErrInvalidInput)
				}
				return err
			}
			if profile.LevelID == nil || *profile.LevelID != *req.LevelID {
				if err := s.recordLevelChange(ctx, tx, profile.UserID, *req.LevelID); err != nil {
					return err
				}
				updates["level_id"] = *req.LevelID
				updates["membership_date"] = s.now()
			}
		} else if profile.LevelID != nil {
			// レベルを外す場合は現在のメンバーシップを終了する
			if err := s.closeCurrentMembership(ctx, tx, profile.UserID); err != nil {
				return err
			}
			updates["level_id"] = nil
		}

		if err := s.profileRepo.Update(ctx, tx, profileID, updates); err != nil {
			return err
		}
		updated, err = s.profileRepo.FindByID(ctx, tx, profileID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *profileService) PatchProfile(ctx context.Context, profileID uuid.UUID, req *model.PatchProfileRequest) (*model.UserProfile, error) {
	var updated *model.UserProfile

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := s.profileRepo.FindByID(ctx, tx, profileID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("PROFILE_NOT_FOUND", "指定されたプロフィールが見つかりません。", "", model.ErrNotFound)
			}
			return err
		}

		updates := map[string]interface{}{}
		if req.LevelID != nil {
			if _, err := s.levelRepo.FindByID(ctx, tx, *req.LevelID); err != nil {
				if errors.Is(err, model.ErrNotFound) {
					return model.NewAppError("LEVEL_NOT_FOUND", "指定されたレベルが見つかりません。", "level_id", model.ErrInvalidInput)
				}
				return err
			}
			// レベルが実際に変わる場合のみ履歴を更新する
			if profile.LevelID == nil || *profile.LevelID != *req.LevelID {
				if err := s.recordLevelChange(ctx, tx, profile.UserID, *req.LevelID); err != nil {
					return err
				}
				updates["level_id"] = *req.LevelID
				updates["membership_date"] = s.now()
			}
		}
		if req.Bio != nil {
			updates["bio"] = *req.Bio
		}
		if req.IsTutor != nil {
			updates["is_tutor"] = *req.IsTutor
		}
		if req.AvatarURL != nil {
			updates["avatar_url"] = *req.AvatarURL
		}
		if len(updates) > 0 {
			if err := s.profileRepo.Update(ctx, tx, profileID, updates); err != nil {
				return err
			}
		}
		updated, err = s.profileRepo.FindByID(ctx, tx, profileID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *profileService) DeleteProfile(ctx context.Context, profileID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.profileRepo.Delete(ctx, tx, profileID)
	})
	if errors.Is(err, model.ErrNotFound) {
		return model.NewAppError("PROFILE_NOT_FOUND", "指定されたプロフィールが見つかりません。", "", model.ErrNotFound)
	}
	return err
}

// closeCurrentMembership は現在進行中のメンバーシップがあれば終了させます
func (s *profileService) closeCurrentMembership(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	current, err := s.membershipRepo.FindCurrentByUser(ctx, tx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.membershipRepo.Close(ctx, tx, current.MembershipID, s.now())
}

// recordLevelChange は現在のメンバーシップを終了させ、新しいレベルの履歴を開始します。
// 履歴は追記専用で、過去のレコードの開始日は変更しません。
func (s *profileService) recordLevelChange(ctx context.Context, tx *gorm.DB, userID, newLevelID uuid.UUID) error {
	now := s.now()

	if err := s.closeCurrentMembership(ctx, tx, userID); err != nil {
		return err
	}

	membership := &model.LevelMembership{
		MembershipID: uuid.New(),
		UserID:       userID,
		LevelID:      newLevelID,
		StartDate:    now,
	}
	return s.membershipRepo.Create(ctx, tx, membership)
}
