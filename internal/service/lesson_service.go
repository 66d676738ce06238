// internal/service/lesson_service.go
package service

import (
	"context"
	"errors"

	"mylang_backend/internal/middleware"
	"mylang_backend/internal/model"
	"mylang_backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockery --name LessonService --output ./mocks --outpkg mocks

type LessonService interface {
	CreateLesson(ctx context.Context, req *model.PostLessonRequest) (*model.Lesson, error)
	GetLesson(ctx context.Context, lessonID uuid.UUID) (*model.Lesson, error)
	ListLessons(ctx context.Context, filter *model.LessonFilter) ([]*model.Lesson, error)
	ReplaceLesson(ctx context.Context, lessonID uuid.UUID, req *model.PutLessonRequest) (*model.Lesson, error)
	PatchLesson(ctx context.Context, lessonID uuid.UUID, req *model.PatchLessonRequest) (*model.Lesson, error)
	DeleteLesson(ctx context.Context, lessonID uuid.UUID) error
}

type lessonService struct {
	db         *gorm.DB
	lessonRepo repository.LessonRepository
	levelRepo  repository.LevelRepository
}

func NewLessonService(db *gorm.DB, lessonRepo repository.LessonRepository, levelRepo repository.LevelRepository) LessonService {
	return &lessonService{db: db, lessonRepo: lessonRepo, levelRepo: levelRepo}
}

func (s *lessonService) CreateLesson(ctx context.Context, req *model.PostLessonRequest) (*model.Lesson, error) {
	logger := middleware.GetLogger(ctx)
	var created *model.Lesson

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 所属先レベルの存在チェック
		if _, err := s.levelRepo.FindByID(ctx, tx, req.LevelID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("LEVEL_NOT_FOUND", "指定されたレベルが見つかりません。", "level_id", model.ErrInvalidInput)
			}
			return err
		}

		lesson := &model.Lesson{
			LessonID: uuid.New(),
			LevelID:  req.LevelID,
			Title:    req.Title,
			Content:  req.Content,
			Position: req.Order,
		}
		if err := s.lessonRepo.Create(ctx, tx, lesson); err != nil {
			logger.Error("Failed to create lesson", "error", err)
			return err
		}
		created = lesson
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *lessonService) GetLesson(ctx context.Context, lessonID uuid.UUID) (*model.Lesson, error) {
	lesson, err := s.lessonRepo.FindByID(ctx, s.db, lessonID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("LESSON_NOT_FOUND", "指定されたレッスンが見つかりません。", "", model.ErrNotFound)
		}
		return nil, err
	}
	return lesson, nil
}

func (s *lessonService) ListLessons(ctx context.Context, filter *model.LessonFilter) ([]*model.Lesson, error) {
	return s.lessonRepo.List(ctx, s.db, filter)
}

// ReplaceLesson は全フィールドを置き換えます (PUT)
func (s *lessonService) ReplaceLesson(ctx context.Context, lessonID uuid.UUID, req *model.PutLessonRequest) (*model.Lesson, error) {
	var updated *model.Lesson
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.levelRepo.FindByID(ctx, tx, req.LevelID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("LEVEL_NOT_FOUND", "指定されたレベルが見つかりません。", "level_id", model.ErrInvalidInput)
			}
			return err
		}
		updates := map[string]interface{}{
			"level_id": req.LevelID,
			"title":    req.Title,
			"content":  req.Content,
			"position": req.Order,
		}
		if err := s.lessonRepo.Update(ctx, tx, lessonID, updates); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("LESSON_NOT_FOUND", "指定されたレッスンが見つかりません。", "", model.ErrNotFound)
			}
			return err
		}
		var err error
		updated, err = s.lessonRepo.FindByID(ctx, tx, lessonID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *lessonService) PatchLesson(ctx context.Context, lessonID uuid.UUID, req *model.PatchLessonRequest) (*model.Lesson, error) {
	var updated *model.Lesson
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if req.LevelID != nil {
			// 移動先レベルの存在チェック
			if _, err := s.levelRepo.FindByID(ctx, tx, *req.LevelID); err != nil {
				if errors.Is(err, model.ErrNotFound) {
					return model.NewAppError("LEVEL_NOT_FOUND", "指定されたレベルが見つかりません。", "level_id", model.ErrInvalidInput)
				}
				return err
			}
			updates["level_id"] = *req.LevelID
		}
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.Content != nil {
			updates["content"] = *req.Content
		}
		if req.Order != nil {
			updates["position"] = *req.Order
		}
		if len(updates) > 0 {
			if err := s.lessonRepo.Update(ctx, tx, lessonID, updates); err != nil {
				if errors.Is(err, model.ErrNotFound) {
					return model.NewAppError("LESSON_NOT_FOUND", "指定されたレッスンが見つかりません。", "", model.ErrNotFound)
				}
				return err
			}
		}
		var err error
		updated, err = s.lessonRepo.FindByID(ctx, tx, lessonID)
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("LESSON_NOT_FOUND", "指定されたレッスンが見つかりません。", "", model.ErrNotFound)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *lessonService) DeleteLesson(ctx context.Context, lessonID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.lessonRepo.Delete(ctx, tx, lessonID)
	})
	if errors.Is(err, model.ErrNotFound) {
		return model.NewAppError("LESSON_NOT_FOUND", "指定されたレッスンが見つかりません。", "", model.ErrNotFound)
	}
	return err
}
