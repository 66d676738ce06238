//go:generate mockery --name MembershipRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mylang_backend/internal/middleware"
	"mylang_backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipRepository interface {
	Create(ctx context.Context, tx *gorm.DB, membership *model.LevelMembership) error
	FindByID(ctx context.Context, db *gorm.DB, membershipID uuid.UUID) (*model.LevelMembership, error)
	FindCurrentByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.LevelMembership, error)
	List(ctx context.Context, db *gorm.DB, filter *model.MembershipFilter) ([]*model.LevelMembership, error)
	Close(ctx context.Context, tx *gorm.DB, membershipID uuid.UUID, endDate time.Time) error
	Delete(ctx context.Context, tx *gorm.DB, membershipID uuid.UUID) error
}

type gormMembershipRepository struct{}

func NewGormMembershipRepository() MembershipRepository {
	return &gormMembershipRepository{}
}

func (r *gormMembershipRepository) Create(ctx context.Context, tx *gorm.DB, membership *model.LevelMembership) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(membership)
	if result.Error != nil {
		logger.Error("Error creating membership in DB",
			"error", result.Error,
			"user_id", membership.UserID.String(),
		)
		return fmt.Errorf("gormMembershipRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormMembershipRepository) FindByID(ctx context.Context, db *gorm.DB, membershipID uuid.UUID) (*model.LevelMembership, error) {
	logger := middleware.GetLogger(ctx)
	var membership model.LevelMembership
	result := db.WithContext(ctx).Preload("Level").Where("membership_id = ?", membershipID).First(&membership)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding membership by ID in DB",
			"error", result.Error,
			"membership_id", membershipID.String(),
		)
		return nil, fmt.Errorf("gormMembershipRepository.FindByID: %w", result.Error)
	}
	return &membership, nil
}

// FindCurrentByUser は終了日が未設定の（= 現在所属中の）メンバーシップを返します。
func (r *gormMembershipRepository) FindCurrentByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.LevelMembership, error) {
	logger := middleware.GetLogger(ctx)
	var membership model.LevelMembership
	result := db.WithContext(ctx).
		Where("user_id = ? AND end_date IS NULL", userID).
		Order("start_date DESC").
		First(&membership)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding current membership in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormMembershipRepository.FindCurrentByUser: %w", result.Error)
	}
	return &membership, nil
}

// List は開始日の降順（新しい順）でメンバーシップ履歴を返します。
func (r *gormMembershipRepository) List(ctx context.Context, db *gorm.DB, filter *model.MembershipFilter) ([]*model.LevelMembership, error) {
	logger := middleware.GetLogger(ctx)
	var memberships []*model.LevelMembership
	query := db.WithContext(ctx).Model(&model.LevelMembership{}).Preload("Level")
	if filter != nil {
		if filter.UserID != nil {
			query = query.Where("user_id = ?", *filter.UserID)
		}
		if filter.LevelID != nil {
			query = query.Where("level_id = ?", *filter.LevelID)
		}
	}
	result := query.Order("start_date DESC").Find(&memberships)
	if result.Error != nil {
		logger.Error("Error listing memberships in DB", "error", result.Error)
		return nil, fmt.Errorf("gormMembershipRepository.List: %w", result.Error)
	}
	return memberships, nil
}

// Close はメンバーシップの終了日を設定します。履歴は削除せず閉じるだけです。
func (r *gormMembershipRepository) Close(ctx context.Context, tx *gorm.DB, membershipID uuid.UUID, endDate time.Time) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(&model.LevelMembership{}).
		Where("membership_id = ? AND end_date IS NULL", membershipID).
		Update("end_date", endDate)
	if result.Error != nil {
		logger.Error("Error closing membership in DB",
			"error", result.Error,
			"membership_id", membershipID.String(),
		)
		return fmt.Errorf("gormMembershipRepository.Close: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormMembershipRepository) Delete(ctx context.Context, tx *gorm.DB, membershipID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("membership_id = ?", membershipID).Delete(&model.LevelMembership{})
	if result.Error != nil {
		logger.Error("Error deleting membership in DB",
			"error", result.Error,
			"membership_id", membershipID.String(),
		)
		return fmt.Errorf("gormMembershipRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
