//go:generate mockery --name LevelRepository --output ./mocks --outpkg mocks --case=underscore
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

type LevelRepository interface {
	Create(ctx context.Context, tx *gorm.DB, level *model.Level) error
	FindByID(ctx context.Context, db *gorm.DB, levelID uuid.UUID) (*model.Level, error)
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*model.Level, error)
	List(ctx context.Context, db *gorm.DB, filter *model.LevelFilter) ([]*model.Level, error)
	Update(ctx context.Context, tx *gorm.DB, levelID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, levelID uuid.UUID) error
}

type gormLevelRepository struct{}

func NewGormLevelRepository() LevelRepository {
	return &gormLevelRepository{}
}

func (r *gormLevelRepository) Create(ctx context.Context, tx *gorm.DB, level *model.Level) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(level)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return model.ErrConflict
		}
		logger.Error("Error creating level in DB",
			"error", result.Error,
			"code", level.Code,
		)
		return fmt.Errorf("gormLevelRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormLevelRepository) FindByID(ctx context.Context, db *gorm.DB, levelID uuid.UUID) (*model.Level, error) {
	logger := middleware.GetLogger(ctx)
	var level model.Level
	result := db.WithContext(ctx).Where("level_id = ?", levelID).First(&level)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding level by ID in DB",
			"error", result.Error,
			"level_id", levelID.String(),
		)
		return nil, fmt.Errorf("gormLevelRepository.FindByID: %w", result.Error)
	}
	return &level, nil
}

func (r *gormLevelRepository) FindByCode(ctx context.Context, db *gorm.DB, code string) (*model.Level, error) {
	logger := middleware.GetLogger(ctx)
	var level model.Level
	result := db.WithContext(ctx).Where("code = ?", code).First(&level)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding level by code in DB",
			"error", result.Error,
			"code", code,
		)
		return nil, fmt.Errorf("gormLevelRepository.FindByCode: %w", result.Error)
	}
	return &level, nil
}

func (r *gormLevelRepository) List(ctx context.Context, db *gorm.DB, filter *model.LevelFilter) ([]*model.Level, error) {
	logger := middleware.GetLogger(ctx)
	var levels []*model.Level
	query := db.WithContext(ctx).Model(&model.Level{})
	if filter != nil {
		if filter.Code != "" {
			query = query.Where("code = ?", filter.Code)
		}
		if filter.Query != "" {
			like := "%" + filter.Query + "%"
			query = query.Where("code LIKE ? OR name LIKE ? OR description LIKE ?", like, like, like)
		}
	}
	result := query.Order("code ASC").Find(&levels)
	if result.Error != nil {
		logger.Error("Error listing levels in DB", "error", result.Error)
		return nil, fmt.Errorf("gormLevelRepository.List: %w", result.Error)
	}
	return levels, nil
}

func (r *gormLevelRepository) Update(ctx context.Context, tx *gorm.DB, levelID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Level{}).Where("level_id = ?", levelID).Updates(updates)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return model.ErrConflict
		}
		logger.Error("Error updating level in DB",
			"error", result.Error,
			"level_id", levelID.String(),
		)
		return fmt.Errorf("gormLevelRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormLevelRepository) Delete(ctx context.Context, tx *gorm.DB, levelID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("level_id = ?", levelID).Delete(&model.Level{})
	if result.Error != nil {
		logger.Error("Error deleting level in DB",
			"error", result.Error,
			"level_id", levelID.String(),
		)
		return fmt.Errorf("gormLevelRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
