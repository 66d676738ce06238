// internal/service/membership_service.go
package service

import (
	"context"
	"errors"
	"time"

	"mylang_backend/internal/model"
	"mylang_backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockery --name MembershipService --output ./mocks --outpkg mocks

// MembershipService はレベル所属履歴の参照と手動追加を提供します。
// 通常の履歴はプロフィールのレベル変更時に自動で記録されるため、
// 作成APIは過去データの取り込みなどの管理用途を想定しています。
type MembershipService interface {
	CreateMembership(ctx context.Context, req *model.PostMembershipRequest) (*model.LevelMembership, error)
	GetMembership(ctx context.Context, membershipID uuid.UUID) (*model.LevelMembership, error)
	ListMemberships(ctx context.Context, filter *model.MembershipFilter) ([]*model.LevelMembership, error)
	DeleteMembership(ctx context.Context, membershipID uuid.UUID) error
}

type membershipService struct {
	db             *gorm.DB
	membershipRepo repository.MembershipRepository
	userRepo       repository.UserRepository
	levelRepo      repository.LevelRepository
}

func NewMembershipService(db *gorm.DB, membershipRepo repository.MembershipRepository, userRepo repository.UserRepository, levelRepo repository.LevelRepository) MembershipService {
	return &membershipService{
		db:             db,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
		levelRepo:      levelRepo,
	}
}

func (s *membershipService) CreateMembership(ctx context.Context, req *model.PostMembershipRequest) (*model.LevelMembership, error) {
	var created *model.LevelMembership

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.userRepo.FindByID(ctx, tx, req.UserID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("USER_NOT_FOUND", "指定されたユーザーが見つかりません。", "user_id", model.ErrInvalidInput)
			}
			return err
		}
		if _, err := s.levelRepo.FindByID(ctx, tx, req.LevelID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("LEVEL_NOT_FOUND", "指定されたレベルが見つかりません。", "level_id", model.ErrInvalidInput)
			}
			return err
		}

		startDate := time.Now()
		if req.StartDate != nil {
			startDate = *req.StartDate
		}
		if req.EndDate != nil && req.EndDate.Before(startDate) {
			return model.NewAppError("INVALID_PERIOD", "終了日は開始日より後である必要があります。", "end_date", model.ErrInvalidInput)
		}

		membership := &model.LevelMembership{
			MembershipID: uuid.New(),
			UserID:       req.UserID,
			LevelID:      req.LevelID,
			StartDate:    startDate,
			EndDate:      req.EndDate,
		}
		if err := s.membershipRepo.Create(ctx, tx, membership); err != nil {
			return err
		}
		created = membership
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *membershipService) GetMembership(ctx context.Context, membershipID uuid.UUID) (*model.LevelMembership, error) {
	membership, err := s.membershipRepo.FindByID(ctx, s.db, membershipID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("MEMBERSHIP_NOT_FOUND", "指定されたメンバーシップが見つかりません。", "", model.ErrNotFound)
		}
		return nil, err
	}
	return membership, nil
}

func (s *membershipService) ListMemberships(ctx context.Context, filter *model.MembershipFilter) ([]*model.LevelMembership, error) {
	return s.membershipRepo.List(ctx, s.db, filter)
}

func (s *membershipService) DeleteMembership(ctx context.Context, membershipID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.membershipRepo.Delete(ctx, tx, membershipID)
	})
	if errors.Is(err, model.ErrNotFound) {
		return model.NewAppError("MEMBERSHIP_NOT_FOUND", "指定されたメンバーシップが見つかりません。", "", model.ErrNotFound)
	}
	return err
}
