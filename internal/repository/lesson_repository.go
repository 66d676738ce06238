//go:generate mockery --name LessonRepository --output ./mocks --outpkg mocks --case=underscore
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

type LessonRepository interface {
	Create(ctx context.Context, tx *gorm.DB, lesson *model.Lesson) error
	FindByID(ctx context.Context, db *gorm.DB, lessonID uuid.UUID) (*model.Lesson, error)
	List(ctx context.Context, db *gorm.DB, filter *model.LessonFilter) ([]*model.Lesson, error)
	Update(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) error
}

type gormLessonRepository struct{}

func NewGormLessonRepository() LessonRepository {
	return &gormLessonRepository{}
}

func (r *gormLessonRepository) Create(ctx context.Context, tx *gorm.DB, lesson *model.Lesson) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(lesson)
	if result.Error != nil {
		logger.Error("Error creating lesson in DB",
			"error", result.Error,
			"title", lesson.Title,
		)
		return fmt.Errorf("gormLessonRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormLessonRepository) FindByID(ctx context.Context, db *gorm.DB, lessonID uuid.UUID) (*model.Lesson, error) {
	logger := middleware.GetLogger(ctx)
	var lesson model.Lesson
	result := db.WithContext(ctx).Preload("Level").Where("lesson_id = ?", lessonID).First(&lesson)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding lesson by ID in DB",
			"error", result.Error,
			"lesson_id", lessonID.String(),
		)
		return nil, fmt.Errorf("gormLessonRepository.FindByID: %w", result.Error)
	}
	return &lesson, nil
}

// List は (level, position) 順でレッスンを返します。
func (r *gormLessonRepository) List(ctx context.Context, db *gorm.DB, filter *model.LessonFilter) ([]*model.Lesson, error) {
	logger := middleware.GetLogger(ctx)
	var lessons []*model.Lesson
	query := db.WithContext(ctx).Model(&model.Lesson{}).Preload("Level")
	if filter != nil {
		if filter.LevelID != nil {
			query = query.Where("level_id = ?", *filter.LevelID)
		}
		if filter.Query != "" {
			like := "%" + filter.Query + "%"
			query = query.Where("title LIKE ? OR content LIKE ?", like, like)
		}
	}
	result := query.Order("level_id ASC, position ASC").Find(&lessons)
	if result.Error != nil {
		logger.Error("Error listing lessons in DB", "error", result.Error)
		return nil, fmt.Errorf("gormLessonRepository.List: %w", result.Error)
	}
	return lessons, nil
}

func (r *gormLessonRepository) Update(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Lesson{}).Where("lesson_id = ?", lessonID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating lesson in DB",
			"error", result.Error,
			"lesson_id", lessonID.String(),
		)
		return fmt.Errorf("gormLessonRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormLessonRepository) Delete(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("lesson_id = ?", lessonID).Delete(&model.Lesson{})
	if result.Error != nil {
		logger.Error("Error deleting lesson in DB",
			"error", result.Error,
			"lesson_id", lessonID.String(),
		)
		return fmt.Errorf("gormLessonRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
