// internal/repository/conversation_repository_test.go
package repository_test

import (
	"context"
	"testing"
	"time"

	"mylang_backend/internal/model"
	"mylang_backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB はテストごとに独立したインメモリDBを用意します
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *model.User {
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

func createTestConversation(t *testing.T, db *gorm.DB, userID uuid.UUID, title string, updatedAt time.Time) *model.Conversation {
	t.Helper()
	conv := &model.Conversation{
		ConversationID: uuid.New(),
		UserID:         userID,
		Title:          title,
		CreatedAt:      updatedAt,
		UpdatedAt:      updatedAt,
	}
	require.NoError(t, db.Create(conv).Error)
	return conv
}

func createTestMessage(t *testing.T, db *gorm.DB, convID uuid.UUID, sender, text string, createdAt time.Time) *model.Message {
	t.Helper()
	msg := &model.Message{
		MessageID:      uuid.New(),
		ConversationID: convID,
		Sender:         sender,
		Text:           text,
		CreatedAt:      createdAt,
	}
	require.NoError(t, db.Create(msg).Error)
	return msg
}

func TestGormConversationRepository_FindByIDAndUser(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := repository.NewGormConversationRepository()

	owner := createTestUser(t, db, "owner")
	other := createTestUser(t, db, "other")
	conv := createTestConversation(t, db, owner.UserID, "French practice", time.Now())

	t.Run("所有者は取得できる", func(t *testing.T) {
		got, err := repo.FindByIDAndUser(ctx, db, conv.ConversationID, owner.UserID)
		require.NoError(t, err)
		assert.Equal(t, conv.ConversationID, got.ConversationID)
		assert.Equal(t, "French practice", got.Title)
	})

	t.Run("他人の会話は存在しない扱いになる", func(t *testing.T) {
		got, err := repo.FindByIDAndUser(ctx, db, conv.ConversationID, other.UserID)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Nil(t, got)
	})

	t.Run("存在しない会話", func(t *testing.T) {
		got, err := repo.FindByIDAndUser(ctx, db, uuid.New(), owner.UserID)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Nil(t, got)
	})
}

func TestGormConversationRepository_FindDetailByIDAndUser(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := repository.NewGormConversationRepository()

	owner := createTestUser(t, db, "owner")
	other := createTestUser(t, db, "other")

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	conv := createTestConversation(t, db, owner.UserID, "with messages", base)
	createTestMessage(t, db, conv.ConversationID, "assistant", "second", base.Add(time.Minute))
	createTestMessage(t, db, conv.ConversationID, "user", "first", base)

	t.Run("メッセージが作成時刻順で埋め込まれる", func(t *testing.T) {
		got, err := repo.FindDetailByIDAndUser(ctx, db, conv.ConversationID, owner.UserID)
		require.NoError(t, err)
		require.Len(t, got.Messages, 2)
		assert.Equal(t, "first", got.Messages[0].Text)
		assert.Equal(t, "second", got.Messages[1].Text)
	})

	t.Run("メッセージのない会話でも取得できる", func(t *testing.T) {
		empty := createTestConversation(t, db, owner.UserID, "empty", base)
		got, err := repo.FindDetailByIDAndUser(ctx, db, empty.ConversationID, owner.UserID)
		require.NoError(t, err)
		assert.Empty(t, got.Messages)
	})

	t.Run("他人の会話は存在しない扱いになる", func(t *testing.T) {
		got, err := repo.FindDetailByIDAndUser(ctx, db, conv.ConversationID, other.UserID)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Nil(t, got)
	})
}

func TestGormConversationRepository_ListByUser(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := repository.NewGormConversationRepository()

	user := createTestUser(t, db, "alice")
	other := createTestUser(t, db, "bob")

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	oldConv := createTestConversation(t, db, user.UserID, "old", base)
	newConv := createTestConversation(t, db, user.UserID, "new", base.Add(2*time.Hour))
	midConv := createTestConversation(t, db, user.UserID, "mid", base.Add(time.Hour))
	createTestConversation(t, db, other.UserID, "not mine", base.Add(3*time.Hour))

	t.Run("更新日時の降順で自分の会話のみ返る", func(t *testing.T) {
		convs, err := repo.ListByUser(ctx, db, user.UserID, nil)
		require.NoError(t, err)
		require.Len(t, convs, 3)
		assert.Equal(t, newConv.ConversationID, convs[0].ConversationID)
		assert.Equal(t, midConv.ConversationID, convs[1].ConversationID)
		assert.Equal(t, oldConv.ConversationID, convs[2].ConversationID)
	})

	t.Run("created_afterで絞り込める", func(t *testing.T) {
		after := base.Add(30 * time.Minute)
		convs, err := repo.ListByUser(ctx, db, user.UserID, &model.ConversationFilter{CreatedAfter: &after})
		require.NoError(t, err)
		require.Len(t, convs, 2)
		assert.Equal(t, newConv.ConversationID, convs[0].ConversationID)
		assert.Equal(t, midConv.ConversationID, convs[1].ConversationID)
	})

	t.Run("メッセージは作成時刻の昇順で埋め込まれる", func(t *testing.T) {
		createTestMessage(t, db, oldConv.ConversationID, "assistant", "second", base.Add(time.Minute))
		createTestMessage(t, db, oldConv.ConversationID, "user", "first", base)

		convs, err := repo.ListByUser(ctx, db, user.UserID, nil)
		require.NoError(t, err)
		var target *model.Conversation
		for _, c := range convs {
			if c.ConversationID == oldConv.ConversationID {
				target = c
			}
		}
		require.NotNil(t, target)
		require.Len(t, target.Messages, 2)
		assert.Equal(t, "first", target.Messages[0].Text)
		assert.Equal(t, "second", target.Messages[1].Text)
	})
}

func TestGormConversationRepository_Touch(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := repository.NewGormConversationRepository()

	user := createTestUser(t, db, "alice")
	conv := createTestConversation(t, db, user.UserID, "touch me", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))

	t.Run("更新日時が進む", func(t *testing.T) {
		require.NoError(t, repo.Touch(ctx, db, conv.ConversationID))

		var got model.Conversation
		require.NoError(t, db.First(&got, "conversation_id = ?", conv.ConversationID).Error)
		assert.True(t, got.UpdatedAt.After(conv.UpdatedAt))
	})

	t.Run("存在しない会話はErrNotFound", func(t *testing.T) {
		err := repo.Touch(ctx, db, uuid.New())
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestGormConversationRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := repository.NewGormConversationRepository()

	user := createTestUser(t, db, "alice")
	conv := createTestConversation(t, db, user.UserID, "to delete", time.Now())
	createTestMessage(t, db, conv.ConversationID, "user", "bye", time.Now())

	t.Run("会話とメッセージがまとめて消える", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, db, conv.ConversationID))

		var convCount, msgCount int64
		db.Model(&model.Conversation{}).Where("conversation_id = ?", conv.ConversationID).Count(&convCount)
		db.Model(&model.Message{}).Where("conversation_id = ?", conv.ConversationID).Count(&msgCount)
		assert.EqualValues(t, 0, convCount)
		assert.EqualValues(t, 0, msgCount)
	})

	t.Run("存在しない会話はErrNotFound", func(t *testing.T) {
		err := repo.Delete(ctx, db, uuid.New())
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestGormMessageRepository_ListRecentByConversation(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := repository.NewGormMessageRepository()

	user := createTestUser(t, db, "alice")
	conv := createTestConversation(t, db, user.UserID, "history", time.Now())

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	texts := []string{"m1", "m2", "m3", "m4", "m5"}
	for i, text := range texts {
		sender := "user"
		if i%2 == 1 {
			sender = "assistant"
		}
		createTestMessage(t, db, conv.ConversationID, sender, text, base.Add(time.Duration(i)*time.Minute))
	}

	t.Run("直近limit件を古い順で返す", func(t *testing.T) {
		msgs, err := repo.ListRecentByConversation(ctx, db, conv.ConversationID, 3)
		require.NoError(t, err)
		require.Len(t, msgs, 3)
		assert.Equal(t, "m3", msgs[0].Text)
		assert.Equal(t, "m4", msgs[1].Text)
		assert.Equal(t, "m5", msgs[2].Text)
	})

	t.Run("limitが件数より大きければ全件", func(t *testing.T) {
		msgs, err := repo.ListRecentByConversation(ctx, db, conv.ConversationID, 100)
		require.NoError(t, err)
		require.Len(t, msgs, 5)
		assert.Equal(t, "m1", msgs[0].Text)
		assert.Equal(t, "m5", msgs[4].Text)
	})

	t.Run("メッセージのない会話は空", func(t *testing.T) {
		msgs, err := repo.ListRecentByConversation(ctx, db, uuid.New(), 10)
		require.NoError(t, err)
		assert.Empty(t, msgs)
	})
}
