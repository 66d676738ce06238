// internal/service/level_service_test.go
package service

import (
	"context"
	"testing"

	"mylang_backend/internal/model"
	"mylang_backend/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func Test_levelService_CreateLevel(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBChat()

	tests := []struct {
		name      string
		req       *model.PostLevelRequest
		setupMock func(levelRepo *mocks.LevelRepository)
		wantErr   error
	}{
		{
			name: "正常系: レベル作成成功",
			req:  &model.PostLevelRequest{Code: "B1", Name: "Intermediate", Description: "中級"},
			setupMock: func(levelRepo *mocks.LevelRepository) {
				levelRepo.On("FindByCode", ctx, mock.AnythingOfType("*gorm.DB"), "B1").
					Return(nil, model.ErrNotFound).Once()
				levelRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Level")).
					Run(func(args mock.Arguments) {
						level := args.Get(2).(*model.Level)
						assert.Equal(t, "B1", level.Code)
						assert.Equal(t, "Intermediate", level.Name)
						assert.NotEqual(t, uuid.Nil, level.LevelID)
					}).Return(nil).Once()
			},
			wantErr: nil,
		},
		{
			name: "異常系: コード重複",
			req:  &model.PostLevelRequest{Code: "B1", Name: "Intermediate"},
			setupMock: func(levelRepo *mocks.LevelRepository) {
				levelRepo.On("FindByCode", ctx, mock.AnythingOfType("*gorm.DB"), "B1").
					Return(&model.Level{LevelID: uuid.New(), Code: "B1"}, nil).Once()
			},
			wantErr: model.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockLevelRepo := new(mocks.LevelRepository)
			tt.setupMock(mockLevelRepo)
			svc := NewLevelService(db, mockLevelRepo)

			level, err := svc.CreateLevel(ctx, tt.req)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, level)
			} else {
				require.NoError(t, err)
				require.NotNil(t, level)
				assert.Equal(t, tt.req.Code, level.Code)
			}
			mockLevelRepo.AssertExpectations(t)
		})
	}
}

func Test_levelService_PatchLevel(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBChat()
	levelID := uuid.New()

	t.Run("正常系: 名前のみ更新", func(t *testing.T) {
		mockLevelRepo := new(mocks.LevelRepository)
		newName := "Upper Intermediate"
		updated := &model.Level{LevelID: levelID, Code: "B2", Name: newName}

		mockLevelRepo.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), levelID,
			map[string]interface{}{"name": newName}).Return(nil).Once()
		mockLevelRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), levelID).
			Return(updated, nil).Once()

		svc := NewLevelService(db, mockLevelRepo)
		level, err := svc.PatchLevel(ctx, levelID, &model.PatchLevelRequest{Name: &newName})
		require.NoError(t, err)
		assert.Equal(t, newName, level.Name)
		mockLevelRepo.AssertExpectations(t)
	})

	t.Run("異常系: 存在しないレベル", func(t *testing.T) {
		mockLevelRepo := new(mocks.LevelRepository)
		newName := "X"
		mockLevelRepo.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), levelID,
			map[string]interface{}{"name": newName}).Return(model.ErrNotFound).Once()

		svc := NewLevelService(db, mockLevelRepo)
		level, err := svc.PatchLevel(ctx, levelID, &model.PatchLevelRequest{Name: &newName})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Nil(t, level)
		mockLevelRepo.AssertExpectations(t)
	})

	t.Run("異常系: 他レベルと重複するコードへの変更", func(t *testing.T) {
		mockLevelRepo := new(mocks.LevelRepository)
		newCode := "C1"
		mockLevelRepo.On("FindByCode", ctx, mock.AnythingOfType("*gorm.DB"), newCode).
			Return(&model.Level{LevelID: uuid.New(), Code: newCode}, nil).Once()

		svc := NewLevelService(db, mockLevelRepo)
		level, err := svc.PatchLevel(ctx, levelID, &model.PatchLevelRequest{Code: &newCode})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrConflict)
		assert.Nil(t, level)
		mockLevelRepo.AssertExpectations(t)
	})
}

func Test_levelService_DeleteLevel(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBChat()
	levelID := uuid.New()

	t.Run("正常系: 削除成功", func(t *testing.T) {
		mockLevelRepo := new(mocks.LevelRepository)
		mockLevelRepo.On("Delete", ctx, mock.AnythingOfType("*gorm.DB"), levelID).Return(nil).Once()

		svc := NewLevelService(db, mockLevelRepo)
		err := svc.DeleteLevel(ctx, levelID)
		require.NoError(t, err)
		mockLevelRepo.AssertExpectations(t)
	})

	t.Run("異常系: 存在しないレベル", func(t *testing.T) {
		mockLevelRepo := new(mocks.LevelRepository)
		mockLevelRepo.On("Delete", ctx, mock.AnythingOfType("*gorm.DB"), levelID).
			Return(model.ErrNotFound).Once()

		svc := NewLevelService(db, mockLevelRepo)
		err := svc.DeleteLevel(ctx, levelID)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
		mockLevelRepo.AssertExpectations(t)
	})
}
