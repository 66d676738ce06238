// internal/service/lesson_service_test.go
package service

import (
	"context"
	"testing"

	"mylang_backend/internal/model"
	"mylang_backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupMigratedTestDB は全テーブルをマイグレートしたインメモリDBを返します。
// 実リポジトリを通して動かすテスト用です。
func setupMigratedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	return db
}

func seedLevel(t *testing.T, db *gorm.DB, code string) *model.Level {
	t.Helper()
	level := &model.Level{LevelID: uuid.New(), Code: code, Name: code}
	require.NoError(t, db.Create(level).Error)
	return level
}

func Test_lessonService_ReplaceLesson(t *testing.T) {
	ctx := context.Background()
	db := setupMigratedTestDB(t)
	svc := NewLessonService(db, repository.NewGormLessonRepository(), repository.NewGormLevelRepository())

	levelA1 := seedLevel(t, db, "A1")
	levelB1 := seedLevel(t, db, "B1")

	lesson := &model.Lesson{
		LessonID: uuid.New(),
		LevelID:  levelA1.LevelID,
		Title:    "Greetings",
		Content:  "Bonjour, salut",
		Position: 1,
	}
	require.NoError(t, db.Create(lesson).Error)

	t.Run("正常系: 全フィールドが置き換わる", func(t *testing.T) {
		req := &model.PutLessonRequest{
			LevelID: levelB1.LevelID,
			Title:   "Ordering food",
			Content: "",
			Order:   5,
		}
		updated, err := svc.ReplaceLesson(ctx, lesson.LessonID, req)
		require.NoError(t, err)
		assert.Equal(t, levelB1.LevelID, updated.LevelID)
		assert.Equal(t, "Ordering food", updated.Title)
		assert.Equal(t, "", updated.Content) // PATCHと違い未指定扱いにならず空で上書き
		assert.Equal(t, 5, updated.Position)
	})

	t.Run("異常系: 存在しないレベルへの移動", func(t *testing.T) {
		req := &model.PutLessonRequest{
			LevelID: uuid.New(),
			Title:   "x",
		}
		updated, err := svc.ReplaceLesson(ctx, lesson.LessonID, req)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		assert.Nil(t, updated)
	})

	t.Run("異常系: 存在しないレッスン", func(t *testing.T) {
		req := &model.PutLessonRequest{
			LevelID: levelA1.LevelID,
			Title:   "x",
		}
		updated, err := svc.ReplaceLesson(ctx, uuid.New(), req)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Nil(t, updated)
	})
}
