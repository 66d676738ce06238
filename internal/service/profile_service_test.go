// internal/service/profile_service_test.go
package service

import (
	"context"
	"testing"

	"mylang_backend/internal/model"
	"mylang_backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		UserID:       uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func Test_profileService_ReplaceProfile(t *testing.T) {
	ctx := context.Background()
	db := setupMigratedTestDB(t)
	svc := NewProfileService(
		db,
		repository.NewGormProfileRepository(),
		repository.NewGormUserRepository(),
		repository.NewGormLevelRepository(),
		repository.NewGormMembershipRepository(),
	)

	user := seedUser(t, db, "alice")
	levelA1 := seedLevel(t, db, "A1")
	levelB1 := seedLevel(t, db, "B1")

	profile, err := svc.CreateProfile(ctx, &model.PostProfileRequest{
		UserID:  user.UserID,
		LevelID: &levelA1.LevelID,
		Bio:     "old bio",
	})
	require.NoError(t, err)

	t.Run("正常系: レベル変更で履歴も更新される", func(t *testing.T) {
		updated, err := svc.ReplaceProfile(ctx, profile.ProfileID, &model.PutProfileRequest{
			LevelID: &levelB1.LevelID,
			Bio:     "new bio",
			IsTutor: true,
		})
		require.NoError(t, err)
		require.NotNil(t, updated.LevelID)
		assert.Equal(t, levelB1.LevelID, *updated.LevelID)
		assert.Equal(t, "new bio", updated.Bio)
		assert.True(t, updated.IsTutor)

		// A1の履歴が閉じてB1の履歴が開いている
		var memberships []model.LevelMembership
		require.NoError(t, db.Where("user_id = ?", user.UserID).Order("start_date ASC").Find(&memberships).Error)
		require.Len(t, memberships, 2)
		assert.Equal(t, levelA1.LevelID, memberships[0].LevelID)
		assert.NotNil(t, memberships[0].EndDate)
		assert.Equal(t, levelB1.LevelID, memberships[1].LevelID)
		assert.Nil(t, memberships[1].EndDate)
	})

	t.Run("正常系: レベルを外すと現在の履歴が閉じる", func(t *testing.T) {
		updated, err := svc.ReplaceProfile(ctx, profile.ProfileID, &model.PutProfileRequest{
			LevelID: nil,
			Bio:     "no level now",
		})
		require.NoError(t, err)
		assert.Nil(t, updated.LevelID)
		assert.Equal(t, "no level now", updated.Bio)
		assert.False(t, updated.IsTutor) // PUTなので未指定フィールドも既定値に戻る

		var memberships []model.LevelMembership
		require.NoError(t, db.Where("user_id = ?", user.UserID).Order("start_date ASC").Find(&memberships).Error)
		require.Len(t, memberships, 2) // 新しい履歴は増えない
		assert.NotNil(t, memberships[1].EndDate)
	})

	t.Run("異常系: 存在しないプロフィール", func(t *testing.T) {
		updated, err := svc.ReplaceProfile(ctx, uuid.New(), &model.PutProfileRequest{Bio: "x"})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Nil(t, updated)
	})

	t.Run("異常系: 存在しないレベル", func(t *testing.T) {
		bad := uuid.New()
		updated, err := svc.ReplaceProfile(ctx, profile.ProfileID, &model.PutProfileRequest{LevelID: &bad})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		assert.Nil(t, updated)
	})
}
