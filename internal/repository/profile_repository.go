//go:generate mockery --name ProfileRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"mylang_backend/internal/middleware"
	"mylang_backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	Create(ctx context.Context, tx *gorm.DB, profile *model.UserProfile) error
	FindByID(ctx context.Context, db *gorm.DB, profileID uuid.UUID) (*model.UserProfile, error)
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.UserProfile, error)
	List(ctx context.Context, db *gorm.DB, filter *model.ProfileFilter) ([]*model.UserProfile, error)
	Update(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) error
}

type gormProfileRepository struct{}

func NewGormProfileRepository() ProfileRepository {
	return &gormProfileRepository{}
}

func (r *gormProfileRepository) Create(ctx context.Context, tx *gorm.DB, profile *model.UserProfile) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return model.ErrConflict
		}
		logger.Error("Error creating profile in DB",
			"error", result.Error,
			"user_id", profile.UserID.String(),
		)
		return fmt.Errorf("gormProfileRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormProfileRepository) FindByID(ctx context.Context, db *gorm.DB, profileID uuid.UUID) (*model.UserProfile, error) {
	logger := middleware.GetLogger(ctx)
	var profile model.UserProfile
	result := db.WithContext(ctx).Preload("User").Preload("Level").Where("profile_id = ?", profileID).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding profile by ID in DB",
			"error", result.Error,
			"profile_id", profileID.String(),
		)
		return nil, fmt.Errorf("gormProfileRepository.FindByID: %w", result.Error)
	}
	return &profile, nil
}

func (r *gormProfileRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.UserProfile, error) {
	logger := middleware.GetLogger(ctx)
	var profile model.UserProfile
	result := db.WithContext(ctx).Preload("User").Preload("Level").Where("user_id = ?", userID).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding profile by user ID in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormProfileRepository.FindByUserID: %w", result.Error)
	}
	return &profile, nil
}

func (r *gormProfileRepository) List(ctx context.Context, db *gorm.DB, filter *model.ProfileFilter) ([]*model.UserProfile, error) {
	logger := middleware.GetLogger(ctx)
	var profiles []*model.UserProfile
	query := db.WithContext(ctx).Model(&model.UserProfile{}).Preload("User").Preload("Level")
	if filter != nil {
		if filter.LevelCode != "" {
			query = query.Joins("JOIN levels ON levels.level_id = user_profiles.level_id").
				Where("levels.code = ?", filter.LevelCode)
		}
		if filter.Query != "" {
			like := "%" + filter.Query + "%"
			query = query.Joins("JOIN users ON users.user_id = user_profiles.user_id").
				Where("users.username LIKE ? OR users.first_name LIKE ? OR users.last_name LIKE ?", like, like, like)
		}
	}
	result := query.Order("user_profiles.created_at ASC").Find(&profiles)
	if result.Error != nil {
		logger.Error("Error listing profiles in DB", "error", result.Error)
		return nil, fmt.Errorf("gormProfileRepository.List: %w", result.Error)
	}
	return profiles, nil
}

func (r *gormProfileRepository) Update(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.UserProfile{}).Where("profile_id = ?", profileID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating profile in DB",
			"error", result.Error,
			"profile_id", profileID.String(),
		)
		return fmt.Errorf("gormProfileRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormProfileRepository) Delete(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("profile_id = ?", profileID).Delete(&model.UserProfile{})
	if result.Error != nil {
		logger.Error("Error deleting profile in DB",
			"error", result.Error,
			"profile_id", profileID.String(),
		)
		return fmt.Errorf("gormProfileRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
