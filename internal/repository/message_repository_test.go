// internal/repository/message_repository_test.go
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
)

func TestGormMessageRepository_ListByUser(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := repository.NewGormMessageRepository()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	conv1 := createTestConversation(t, db, alice.UserID, "first chat", base)
	conv2 := createTestConversation(t, db, alice.UserID, "second chat", base.Add(time.Hour))
	bobConv := createTestConversation(t, db, bob.UserID, "not alice's", base)

	createTestMessage(t, db, conv1.ConversationID, "user", "hello", base)
	createTestMessage(t, db, conv1.ConversationID, "assistant", "hi there", base.Add(time.Minute))
	createTestMessage(t, db, conv2.ConversationID, "user", "new topic", base.Add(time.Hour))
	createTestMessage(t, db, bobConv.ConversationID, "user", "bob's secret", base)

	t.Run("自分の全会話のメッセージを作成時刻順で返す", func(t *testing.T) {
		msgs, err := repo.ListByUser(ctx, db, alice.UserID, nil)
		require.NoError(t, err)
		require.Len(t, msgs, 3)
		assert.Equal(t, "hello", msgs[0].Text)
		assert.Equal(t, "hi there", msgs[1].Text)
		assert.Equal(t, "new topic", msgs[2].Text)
	})

	t.Run("他人の会話のメッセージは含まれない", func(t *testing.T) {
		msgs, err := repo.ListByUser(ctx, db, alice.UserID, nil)
		require.NoError(t, err)
		for _, msg := range msgs {
			assert.NotEqual(t, "bob's secret", msg.Text)
		}
	})

	t.Run("conversation_idで絞り込める", func(t *testing.T) {
		msgs, err := repo.ListByUser(ctx, db, alice.UserID, &model.MessageFilter{ConversationID: &conv2.ConversationID})
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, "new topic", msgs[0].Text)
	})

	t.Run("senderで絞り込める", func(t *testing.T) {
		msgs, err := repo.ListByUser(ctx, db, alice.UserID, &model.MessageFilter{Sender: "assistant"})
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, "hi there", msgs[0].Text)
	})

	t.Run("会話を持たないユーザーは空", func(t *testing.T) {
		msgs, err := repo.ListByUser(ctx, db, uuid.New(), nil)
		require.NoError(t, err)
		assert.Empty(t, msgs)
	})
}

func TestGormMessageRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := repository.NewGormMessageRepository()

	user := createTestUser(t, db, "alice")
	conv := createTestConversation(t, db, user.UserID, "chat", time.Now())
	msg := createTestMessage(t, db, conv.ConversationID, "user", "hello", time.Now())

	t.Run("正常系: IDで取得", func(t *testing.T) {
		got, err := repo.FindByID(ctx, db, msg.MessageID)
		require.NoError(t, err)
		assert.Equal(t, msg.MessageID, got.MessageID)
		assert.Equal(t, "hello", got.Text)
	})

	t.Run("異常系: 存在しないメッセージ", func(t *testing.T) {
		got, err := repo.FindByID(ctx, db, uuid.New())
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Nil(t, got)
	})
}
