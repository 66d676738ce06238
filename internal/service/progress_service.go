// internal/service/progress_service.go
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

//go:generate mockery --name ProgressService --output ./mocks --outpkg mocks

// ProgressService はユーザー自身のレッスン進捗を管理します。
// (user, lesson) の組は一意で、既存レコードがある場合の作成は上書き更新になります。
type ProgressService interface {
	UpsertProgress(ctx context.Context, userID uuid.UUID, req *model.PostProgressRequest) (*model.Progress, error)
	GetProgress(ctx context.Context, userID, progressID uuid.UUID) (*model.Progress, error)
	ListProgress(ctx context.Context, userID uuid.UUID, filter *model.ProgressFilter) ([]*model.Progress, error)
	PatchProgress(ctx context.Context, userID, progressID uuid.UUID, req *model.PatchProgressRequest) (*model.Progress, error)
	DeleteProgress(ctx context.Context, userID, progressID uuid.UUID) error
}

type progressService struct {
	db           *gorm.DB
	progressRepo repository.ProgressRepository
	lessonRepo   repository.LessonRepository
	now          func() time.Time
}

func NewProgressService(db *gorm.DB, progressRepo repository.ProgressRepository, lessonRepo repository.LessonRepository) ProgressService {
	return &progressService{
		db:           db,
		progressRepo: progressRepo,
		lessonRepo:   lessonRepo,
		now:          time.Now,
	}
}

// UpsertProgress は進捗を記録します。同じレッスンの記録が既にあれば更新します。
func (s *progressService) UpsertProgress(ctx context.Context, userID uuid.UUID, req *model.PostProgressRequest) (*model.Progress, error) {
	var result *model.Progress

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// レッスンの存在チェック
		if _, err := s.lessonRepo.FindByID(ctx, tx, req.LessonID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("LESSON_NOT_FOUND", "指定されたレッスンが見つかりません。", "lesson_id", model.ErrInvalidInput)
			}
			return err
		}

		existing, err := s.progressRepo.FindByUserAndLesson(ctx, tx, userID, req.LessonID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return err
		}

		if err == nil {
			// 既存レコードを更新 (一意制約違反を避ける)
			updates := map[string]interface{}{
				"completed": req.Completed,
				"score":     req.Score,
			}
			updates["completed_at"] = s.completedAt(req.Completed, existing.CompletedAt)
			if err := s.progressRepo.Update(ctx, tx, existing.ProgressID, updates); err != nil {
				return err
			}
			result, err = s.progressRepo.FindByID(ctx, tx, existing.ProgressID)
			return err
		}

		progress := &model.Progress{
			ProgressID:  uuid.New(),
			UserID:      userID,
			LessonID:    req.LessonID,
			Completed:   req.Completed,
			Score:       req.Score,
			CompletedAt: s.completedAt(req.Completed, nil),
		}
		if err := s.progressRepo.Create(ctx, tx, progress); err != nil {
			return err
		}
		result = progress
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *progressService) GetProgress(ctx context.Context, userID, progressID uuid.UUID) (*model.Progress, error) {
	progress, err := s.findOwned(ctx, s.db, userID, progressID)
	if err != nil {
		return nil, err
	}
	return progress, nil
}

func (s *progressService) ListProgress(ctx context.Context, userID uuid.UUID, filter *model.ProgressFilter) ([]*model.Progress, error) {
	return s.progressRepo.ListByUser(ctx, s.db, userID, filter)
}

func (s *progressService) PatchProgress(ctx context.Context, userID, progressID uuid.UUID, req *model.PatchProgressRequest) (*model.Progress, error) {
	var updated *model.Progress

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.findOwned(ctx, tx, userID, progressID)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if req.Completed != nil {
			updates["completed"] = *req.Completed
			updates["completed_at"] = s.completedAt(*req.Completed, existing.CompletedAt)
		}
		if req.Score != nil {
			updates["score"] = *req.Score
		}
		if len(updates) > 0 {
			if err := s.progressRepo.Update(ctx, tx, progressID, updates); err != nil {
				return err
			}
		}
		updated, err = s.progressRepo.FindByID(ctx, tx, progressID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *progressService) DeleteProgress(ctx context.Context, userID, progressID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.findOwned(ctx, tx, userID, progressID); err != nil {
			return err
		}
		return s.progressRepo.Delete(ctx, tx, progressID)
	})
}

// findOwned は進捗を取得し、他人のレコードは存在しない扱いにします
func (s *progressService) findOwned(ctx context.Context, db *gorm.DB, userID, progressID uuid.UUID) (*model.Progress, error) {
	progress, err := s.progressRepo.FindByID(ctx, db, progressID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("PROGRESS_NOT_FOUND", "指定された進捗が見つかりません。", "", model.ErrNotFound)
		}
		return nil, err
	}
	if progress.UserID != userID {
		return nil, model.NewAppError("PROGRESS_NOT_FOUND", "指定された進捗が見つかりません。", "", model.ErrNotFound)
	}
	return progress, nil
}

// completedAt は完了フラグに応じて completed_at を決めます。
// 未完了→完了で現在時刻を設定し、完了→未完了でクリアします。既に完了済みなら元の時刻を保ちます。
func (s *progressService) completedAt(completed bool, previous *time.Time) *time.Time {
	if !completed {
		return nil
	}
	if previous != nil {
		return previous
	}
	now := s.now()
	return &now
}
