// internal/service/conversation_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"mylang_backend/internal/model"
	"mylang_backend/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func Test_conversationService_GetConversation(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBChat()
	userID := uuid.New()
	convID := uuid.New()

	t.Run("正常系: メッセージ込みで返す", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockConvRepo := new(mocks.ConversationRepository)
		mockMsgRepo := new(mocks.MessageRepository)

		detail := &model.Conversation{
			ConversationID: convID,
			UserID:         userID,
			Title:          "French practice",
			Messages: []model.Message{
				{MessageID: uuid.New(), ConversationID: convID, Sender: "user", Text: "Bonjour", CreatedAt: time.Now()},
				{MessageID: uuid.New(), ConversationID: convID, Sender: "assistant", Text: "Salut !", CreatedAt: time.Now()},
			},
		}
		mockConvRepo.On("FindDetailByIDAndUser", ctx, mock.AnythingOfType("*gorm.DB"), convID, userID).
			Return(detail, nil).Once()

		svc := NewConversationService(db, mockUserRepo, mockConvRepo, mockMsgRepo)
		got, err := svc.GetConversation(ctx, userID, convID)
		require.NoError(t, err)
		require.Len(t, got.Messages, 2)
		assert.Equal(t, "Bonjour", got.Messages[0].Text)
		mockConvRepo.AssertExpectations(t)
	})

	t.Run("異常系: 他人の会話は存在しない扱い", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockConvRepo := new(mocks.ConversationRepository)
		mockMsgRepo := new(mocks.MessageRepository)

		mockConvRepo.On("FindDetailByIDAndUser", ctx, mock.AnythingOfType("*gorm.DB"), convID, userID).
			Return(nil, model.ErrNotFound).Once()

		svc := NewConversationService(db, mockUserRepo, mockConvRepo, mockMsgRepo)
		got, err := svc.GetConversation(ctx, userID, convID)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Nil(t, got)
		mockConvRepo.AssertExpectations(t)
	})
}

func Test_conversationService_GetMessage(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBChat()
	userID := uuid.New()
	convID := uuid.New()
	messageID := uuid.New()

	msg := &model.Message{
		MessageID:      messageID,
		ConversationID: convID,
		Sender:         "user",
		Text:           "hello",
	}

	t.Run("正常系: 自分の会話のメッセージ", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockConvRepo := new(mocks.ConversationRepository)
		mockMsgRepo := new(mocks.MessageRepository)

		mockMsgRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), messageID).
			Return(msg, nil).Once()
		mockConvRepo.On("FindByIDAndUser", ctx, mock.AnythingOfType("*gorm.DB"), convID, userID).
			Return(&model.Conversation{ConversationID: convID, UserID: userID}, nil).Once()

		svc := NewConversationService(db, mockUserRepo, mockConvRepo, mockMsgRepo)
		got, err := svc.GetMessage(ctx, userID, messageID)
		require.NoError(t, err)
		assert.Equal(t, messageID, got.MessageID)
		assert.Equal(t, "hello", got.Text)
		mockMsgRepo.AssertExpectations(t)
		mockConvRepo.AssertExpectations(t)
	})

	t.Run("異常系: 他人の会話のメッセージは存在しない扱い", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockConvRepo := new(mocks.ConversationRepository)
		mockMsgRepo := new(mocks.MessageRepository)

		mockMsgRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), messageID).
			Return(msg, nil).Once()
		// 親会話の所有者チェックで弾かれる
		mockConvRepo.On("FindByIDAndUser", ctx, mock.AnythingOfType("*gorm.DB"), convID, userID).
			Return(nil, model.ErrNotFound).Once()

		svc := NewConversationService(db, mockUserRepo, mockConvRepo, mockMsgRepo)
		got, err := svc.GetMessage(ctx, userID, messageID)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Nil(t, got)
		mockMsgRepo.AssertExpectations(t)
		mockConvRepo.AssertExpectations(t)
	})

	t.Run("異常系: 存在しないメッセージ", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockConvRepo := new(mocks.ConversationRepository)
		mockMsgRepo := new(mocks.MessageRepository)

		mockMsgRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), messageID).
			Return(nil, model.ErrNotFound).Once()

		svc := NewConversationService(db, mockUserRepo, mockConvRepo, mockMsgRepo)
		got, err := svc.GetMessage(ctx, userID, messageID)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Nil(t, got)
		mockConvRepo.AssertNotCalled(t, "FindByIDAndUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockMsgRepo.AssertExpectations(t)
	})
}

func Test_conversationService_ListUserMessages(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBChat()
	userID := uuid.New()

	mockUserRepo := new(mocks.UserRepository)
	mockConvRepo := new(mocks.ConversationRepository)
	mockMsgRepo := new(mocks.MessageRepository)

	filter := &model.MessageFilter{Sender: "assistant"}
	expected := []*model.Message{
		{MessageID: uuid.New(), Sender: "assistant", Text: "reply"},
	}
	mockMsgRepo.On("ListByUser", ctx, mock.AnythingOfType("*gorm.DB"), userID, filter).
		Return(expected, nil).Once()

	svc := NewConversationService(db, mockUserRepo, mockConvRepo, mockMsgRepo)
	msgs, err := svc.ListUserMessages(ctx, userID, filter)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "reply", msgs[0].Text)
	mockMsgRepo.AssertExpectations(t)
}
