//go:generate mockery --name ProgressRepository --output ./mocks --outpkg mocks --case=underscore
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

type ProgressRepository interface {
	Create(ctx context.Context, tx *gorm.DB, progress *model.Progress) error
	FindByID(ctx context.Context, db *gorm.DB, progressID uuid.UUID) (*model.Progress, error)
	FindByUserAndLesson(ctx context.Context, db *gorm.DB, userID, lessonID uuid.UUID) (*model.Progress, error)
	ListByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, filter *model.ProgressFilter) ([]*model.Progress, error)
	Update(ctx context.Context, tx *gorm.DB, progressID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, progressID uuid.UUID) error
}

type gormProgressRepository struct{}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

func (r *gormProgressRepository) Create(ctx context.Context, tx *gorm.DB, progress *model.Progress) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(progress)
	if result.Error != nil {
		// (user, lesson) の複合ユニーク制約違反
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return model.ErrConflict
		}
		logger.Error("Error creating progress in DB",
			"error", result.Error,
			"user_id", progress.UserID.String(),
			"lesson_id", progress.LessonID.String(),
		)
		return fmt.Errorf("gormProgressRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormProgressRepository) FindByID(ctx context.Context, db *gorm.DB, progressID uuid.UUID) (*model.Progress, error) {
	logger := middleware.GetLogger(ctx)
	var progress model.Progress
	result := db.WithContext(ctx).Preload("Lesson").Where("progress_id = ?", progressID).First(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding progress by ID in DB",
			"error", result.Error,
			"progress_id", progressID.String(),
		)
		return nil, fmt.Errorf("gormProgressRepository.FindByID: %w", result.Error)
	}
	return &progress, nil
}

func (r *gormProgressRepository) FindByUserAndLesson(ctx context.Context, db *gorm.DB, userID, lessonID uuid.UUID) (*model.Progress, error) {
	logger := middleware.GetLogger(ctx)
	var progress model.Progress
	result := db.WithContext(ctx).Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding progress by user and lesson in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"lesson_id", lessonID.String(),
		)
		return nil, fmt.Errorf("gormProgressRepository.FindByUserAndLesson: %w", result.Error)
	}
	return &progress, nil
}

func (r *gormProgressRepository) ListByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, filter *model.ProgressFilter) ([]*model.Progress, error) {
	logger := middleware.GetLogger(ctx)
	var progresses []*model.Progress
	query := db.WithContext(ctx).Model(&model.Progress{}).Preload("Lesson").Where("user_id = ?", userID)
	if filter != nil {
		if filter.LessonID != nil {
			query = query.Where("lesson_id = ?", *filter.LessonID)
		}
		if filter.Completed != nil {
			query = query.Where("completed = ?", *filter.Completed)
		}
	}
	result := query.Order("created_at ASC").Find(&progresses)
	if result.Error != nil {
		logger.Error("Error listing progress in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormProgressRepository.ListByUser: %w", result.Error)
	}
	return progresses, nil
}

func (r *gormProgressRepository) Update(ctx context.Context, tx *gorm.DB, progressID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Progress{}).Where("progress_id = ?", progressID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating progress in DB",
			"error", result.Error,
			"progress_id", progressID.String(),
		)
		return fmt.Errorf("gormProgressRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormProgressRepository) Delete(ctx context.Context, tx *gorm.DB, progressID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("progress_id = ?", progressID).Delete(&model.Progress{})
	if result.Error != nil {
		logger.Error("Error deleting progress in DB",
			"error", result.Error,
			"progress_id", progressID.String(),
		)
		return fmt.Errorf("gormProgressRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
