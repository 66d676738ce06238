// internal/service/level_service.go
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

//go:generate mockery --name LevelService --output ./mocks --outpkg mocks

// LevelService はCEFRレベル (参照データ) のCRUDを提供します。
// 書き込み系はスタッフ権限が前提で、権限チェックはハンドラ側で行います。
type LevelService interface {
	CreateLevel(ctx context.Context, req *model.PostLevelRequest) (*model.Level, error)
	GetLevel(ctx context.Context, levelID uuid.UUID) (*model.Level, error)
	ListLevels(ctx context.Context, filter *model.LevelFilter) ([]*model.Level, error)
	ReplaceLevel(ctx context.Context, levelID uuid.UUID, req *model.PutLevelRequest) (*model.Level, error)
	PatchLevel(ctx context.Context, levelID uuid.UUID, req *model.PatchLevelRequest) (*model.Level, error)
	DeleteLevel(ctx context.Context, levelID uuid.UUID) error
}

type levelService struct {
	db        *gorm.DB
	levelRepo repository.LevelRepository
}

func NewLevelService(db *gorm.DB, levelRepo repository.LevelRepository) LevelService {
	return &levelService{db: db, levelRepo: levelRepo}
}

func (s *levelService) CreateLevel(ctx context.Context, req *model.PostLevelRequest) (*model.Level, error) {
	logger := middleware.GetLogger(ctx)
	var created *model.Level

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// コードの重複チェック (A1〜C2 は一意)
		_, err := s.levelRepo.FindByCode(ctx, tx, req.Code)
		if err == nil {
			return model.NewAppError("DUPLICATE_CODE", "このレベルコードは既に登録されています。", "code", model.ErrConflict)
		}
		if !errors.Is(err, model.ErrNotFound) {
			return err
		}

		level := &model.Level{
			LevelID:     uuid.New(),
			Code:        req.Code,
			Name:        req.Name,
			Description: req.Description,
		}
		if err := s.levelRepo.Create(ctx, tx, level); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return model.NewAppError("DUPLICATE_CODE", "このレベルコードは既に登録されています。", "code", model.ErrConflict)
			}
			logger.Error("Failed to create level", "error", err)
			return err
		}
		created = level
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *levelService) GetLevel(ctx context.Context, levelID uuid.UUID) (*model.Level, error) {
	level, err := s.levelRepo.FindByID(ctx, s.db, levelID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("LEVEL_NOT_FOUND", "指定されたレベルが見つかりません。", "", model.ErrNotFound)
		}
		return nil, err
	}
	return level, nil
}

func (s *levelService) ListLevels(ctx context.Context, filter *model.LevelFilter) ([]*model.Level, error) {
	return s.levelRepo.List(ctx, s.db, filter)
}

// ReplaceLevel は全フィールドを置き換えます (PUT)
func (s *levelService) ReplaceLevel(ctx context.Context, levelID uuid.UUID, req *model.PutLevelRequest) (*model.Level, error) {
	var updated *model.Level
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ensureCodeAvailable(ctx, tx, req.Code, levelID); err != nil {
			return err
		}
		updates := map[string]interface{}{
			"code":        req.Code,
			"name":        req.Name,
			"description": req.Description,
		}
		if err := s.levelRepo.Update(ctx, tx, levelID, updates); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("LEVEL_NOT_FOUND", "指定されたレベルが見つかりません。", "", model.ErrNotFound)
			}
			return err
		}
		var err error
		updated, err = s.levelRepo.FindByID(ctx, tx, levelID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// PatchLevel は指定されたフィールドのみ更新します (PATCH)
func (s *levelService) PatchLevel(ctx context.Context, levelID uuid.UUID, req *model.PatchLevelRequest) (*model.Level, error) {
	var updated *model.Level
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if req.Code != nil {
			if err := s.ensureCodeAvailable(ctx, tx, *req.Code, levelID); err != nil {
				return err
			}
			updates["code"] = *req.Code
		}
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if len(updates) > 0 {
			if err := s.levelRepo.Update(ctx, tx, levelID, updates); err != nil {
				if errors.Is(err, model.ErrNotFound) {
					return model.NewAppError("LEVEL_NOT_FOUND", "指定されたレベルが見つかりません。", "", model.ErrNotFound)
				}
				return err
			}
		}
		var err error
		updated, err = s.levelRepo.FindByID(ctx, tx, levelID)
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("LEVEL_NOT_FOUND", "指定されたレベルが見つかりません。", "", model.ErrNotFound)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *levelService) DeleteLevel(ctx context.Context, levelID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.levelRepo.Delete(ctx, tx, levelID)
	})
	if errors.Is(err, model.ErrNotFound) {
		return model.NewAppError("LEVEL_NOT_FOUND", "指定されたレベルが見つかりません。", "", model.ErrNotFound)
	}
	return err
}

// ensureCodeAvailable は code が他のレベルで使われていないことを確認します
func (s *levelService) ensureCodeAvailable(ctx context.Context, tx *gorm.DB, code string, selfID uuid.UUID) error {
	existing, err := s.levelRepo.FindByCode(ctx, tx, code)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.LevelID != selfID {
		return model.NewAppError("DUPLICATE_CODE", "このレベルコードは既に登録されています。", "code", model.ErrConflict)
	}
	return nil
}
