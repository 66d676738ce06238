// internal/service/chat_service_test.go
package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mylang_backend/internal/model"
	"mylang_backend/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テストヘルパー関数 ---
func setupTestDBChat() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect database for testing: " + err.Error())
	}
	return db
}

// fakeGenerator は渡されたプロンプトを記録するテスト用のジェネレータです
type fakeGenerator struct {
	reply     string
	err       error
	gotSystem string
	gotPrompt string
	calls     int
}

func (f *fakeGenerator) Generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	f.calls++
	f.gotSystem = systemInstruction
	f.gotPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func Test_chatService_SubmitTurn_NewConversation(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBChat()
	mockUserRepo := new(mocks.UserRepository)
	mockProfileRepo := new(mocks.ProfileRepository)
	mockConvRepo := new(mocks.ConversationRepository)
	mockMsgRepo := new(mocks.MessageRepository)
	gen := &fakeGenerator{reply: "Bonjour ! Comment ça va ?"}

	svc := NewChatService(db, mockUserRepo, mockProfileRepo, mockConvRepo, mockMsgRepo, gen, 10).(*chatService)
	fixedNow := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixedNow }

	userID := uuid.New()
	user := &model.User{UserID: userID, Username: "alice"}

	// 新規会話: ユーザー取得 → プロフィールなし → 会話作成
	mockUserRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), userID).Return(user, nil).Once()
	mockProfileRepo.On("FindByUserID", ctx, mock.AnythingOfType("*gorm.DB"), userID).Return(nil, model.ErrNotFound).Once()

	var createdConvID uuid.UUID
	mockConvRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Conversation")).
		Run(func(args mock.Arguments) {
			conv := args.Get(2).(*model.Conversation)
			assert.Equal(t, userID, conv.UserID)
			assert.Nil(t, conv.LevelID)
			assert.Equal(t, "Chat alice 2024-05-01", conv.Title)
			assert.NotEqual(t, uuid.Nil, conv.ConversationID)
			createdConvID = conv.ConversationID
		}).Return(nil).Once()

	// 履歴なし (会話を作った直後なので当然空)
	mockMsgRepo.On("ListRecentByConversation", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("uuid.UUID"), 10).
		Return([]*model.Message{}, nil).Once()

	// ユーザー発話とアシスタント応答の2回保存される
	var savedMessages []*model.Message
	mockMsgRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Message")).
		Run(func(args mock.Arguments) {
			savedMessages = append(savedMessages, args.Get(2).(*model.Message))
		}).Return(nil).Twice()
	mockConvRepo.On("Touch", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("uuid.UUID")).
		Return(nil).Twice()

	resp, err := svc.SubmitTurn(ctx, userID, &model.ChatRequest{Message: "  Bonjour !  "})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, createdConvID, resp.ConversationID)
	assert.Equal(t, "Bonjour ! Comment ça va ?", resp.Response)

	// 保存されたメッセージの検証 (前後の空白は除去される)
	require.Len(t, savedMessages, 2)
	assert.Equal(t, model.SenderUser, savedMessages[0].Sender)
	assert.Equal(t, "Bonjour !", savedMessages[0].Text)
	assert.Equal(t, model.SenderAssistant, savedMessages[1].Sender)
	assert.Equal(t, "Bonjour ! Comment ça va ?", savedMessages[1].Text)

	// レベル未設定の場合、指示文では unknown として扱う
	assert.Contains(t, gen.gotSystem, "unknown")
	assert.Equal(t, "USER: Bonjour !\nASSISTANT:", gen.gotPrompt)

	mockUserRepo.AssertExpectations(t)
	mockProfileRepo.AssertExpectations(t)
	mockConvRepo.AssertExpectations(t)
	mockMsgRepo.AssertExpectations(t)
}

func Test_chatService_SubmitTurn_ExistingConversationWithHistory(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBChat()
	mockUserRepo := new(mocks.UserRepository)
	mockProfileRepo := new(mocks.ProfileRepository)
	mockConvRepo := new(mocks.ConversationRepository)
	mockMsgRepo := new(mocks.MessageRepository)
	gen := &fakeGenerator{reply: "Très bien !"}

	svc := NewChatService(db, mockUserRepo, mockProfileRepo, mockConvRepo, mockMsgRepo, gen, 10).(*chatService)

	userID := uuid.New()
	convID := uuid.New()
	levelID := uuid.New()
	conv := &model.Conversation{
		ConversationID: convID,
		UserID:         userID,
		LevelID:        &levelID,
		Level:          &model.Level{LevelID: levelID, Code: "B1"},
		Title:          "Chat alice 2024-05-01",
	}

	mockConvRepo.On("FindByIDAndUser", ctx, mock.AnythingOfType("*gorm.DB"), convID, userID).
		Return(conv, nil).Once()

	// 履歴は古い順で返る。今回の発話は保存前に読むため履歴には含まれない
	history := []*model.Message{
		{ConversationID: convID, Sender: model.SenderUser, Text: "Bonjour"},
		{ConversationID: convID, Sender: model.SenderAssistant, Text: "Bonjour ! Ça va ?"},
	}
	mockMsgRepo.On("ListRecentByConversation", ctx, mock.AnythingOfType("*gorm.DB"), convID, 10).
		Return(history, nil).Once()

	mockMsgRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Message")).
		Return(nil).Twice()
	mockConvRepo.On("Touch", ctx, mock.AnythingOfType("*gorm.DB"), convID).Return(nil).Twice()

	resp, err := svc.SubmitTurn(ctx, userID, &model.ChatRequest{Message: "Ça va bien", ConversationID: &convID})
	require.NoError(t, err)
	assert.Equal(t, convID, resp.ConversationID)

	// プロンプトは履歴 + 今回の発話 + ASSISTANTマーカーの形式になる
	wantPrompt := "USER: Bonjour\nASSISTANT: Bonjour ! Ça va ?\nUSER: Ça va bien\nASSISTANT:"
	assert.Equal(t, wantPrompt, gen.gotPrompt)
	// 会話に紐づくレベルが指示文に反映される
	assert.Contains(t, gen.gotSystem, "B1")

	mockConvRepo.AssertExpectations(t)
	mockMsgRepo.AssertExpectations(t)
}

func Test_chatService_SubmitTurn_ConversationNotOwned(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBChat()
	mockUserRepo := new(mocks.UserRepository)
	mockProfileRepo := new(mocks.ProfileRepository)
	mockConvRepo := new(mocks.ConversationRepository)
	mockMsgRepo := new(mocks.MessageRepository)
	gen := &fakeGenerator{reply: "should not be called"}

	svc := NewChatService(db, mockUserRepo, mockProfileRepo, mockConvRepo, mockMsgRepo, gen, 10)

	userID := uuid.New()
	convID := uuid.New()

	// 他人の会話 (または存在しない会話) は区別せず NotFound になる
	mockConvRepo.On("FindByIDAndUser", ctx, mock.AnythingOfType("*gorm.DB"), convID, userID).
		Return(nil, model.ErrNotFound).Once()

	resp, err := svc.SubmitTurn(ctx, userID, &model.ChatRequest{Message: "hello", ConversationID: &convID})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, model.ErrNotFound)

	// 書き込みも生成も一切行われない
	mockMsgRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 0, gen.calls)
	mockConvRepo.AssertExpectations(t)
}

func Test_chatService_SubmitTurn_EmptyMessage(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBChat()
	mockUserRepo := new(mocks.UserRepository)
	mockProfileRepo := new(mocks.ProfileRepository)
	mockConvRepo := new(mocks.ConversationRepository)
	mockMsgRepo := new(mocks.MessageRepository)
	gen := &fakeGenerator{}

	svc := NewChatService(db, mockUserRepo, mockProfileRepo, mockConvRepo, mockMsgRepo, gen, 10)

	tests := []struct {
		name    string
		message string
	}{
		{name: "空文字", message: ""},
		{name: "空白のみ", message: "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.SubmitTurn(ctx, uuid.New(), &model.ChatRequest{Message: tt.message})
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, model.ErrInvalidInput)
		})
	}

	// ストアには一切触れない
	mockConvRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	mockMsgRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 0, gen.calls)
}

func Test_chatService_SubmitTurn_GeneratorFailureKeepsUserMessage(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBChat()
	mockUserRepo := new(mocks.UserRepository)
	mockProfileRepo := new(mocks.ProfileRepository)
	mockConvRepo := new(mocks.ConversationRepository)
	mockMsgRepo := new(mocks.MessageRepository)
	gen := &fakeGenerator{err: errors.New("provider unavailable")}

	svc := NewChatService(db, mockUserRepo, mockProfileRepo, mockConvRepo, mockMsgRepo, gen, 10)

	userID := uuid.New()
	convID := uuid.New()
	conv := &model.Conversation{ConversationID: convID, UserID: userID}

	mockConvRepo.On("FindByIDAndUser", ctx, mock.AnythingOfType("*gorm.DB"), convID, userID).
		Return(conv, nil).Once()
	mockMsgRepo.On("ListRecentByConversation", ctx, mock.AnythingOfType("*gorm.DB"), convID, 10).
		Return([]*model.Message{}, nil).Once()

	// ユーザー発話の保存は1回だけ行われる (アシスタント応答は保存されない)
	var savedMsg *model.Message
	mockMsgRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Message")).
		Run(func(args mock.Arguments) {
			savedMsg = args.Get(2).(*model.Message)
		}).Return(nil).Once()
	mockConvRepo.On("Touch", ctx, mock.AnythingOfType("*gorm.DB"), convID).Return(nil).Once()

	resp, err := svc.SubmitTurn(ctx, userID, &model.ChatRequest{Message: "hello", ConversationID: &convID})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, model.ErrGeneration)

	// ユーザー発話はプロバイダ障害後も残る
	require.NotNil(t, savedMsg)
	assert.Equal(t, model.SenderUser, savedMsg.Sender)
	assert.Equal(t, "hello", savedMsg.Text)

	mockMsgRepo.AssertNumberOfCalls(t, "Create", 1)
	mockConvRepo.AssertExpectations(t)
	mockMsgRepo.AssertExpectations(t)
}

func Test_chatService_SubmitTurn_HistoryWindowRespectsLimit(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBChat()
	mockUserRepo := new(mocks.UserRepository)
	mockProfileRepo := new(mocks.ProfileRepository)
	mockConvRepo := new(mocks.ConversationRepository)
	mockMsgRepo := new(mocks.MessageRepository)
	gen := &fakeGenerator{reply: "ok"}

	// historyLimit=3 で初期化
	svc := NewChatService(db, mockUserRepo, mockProfileRepo, mockConvRepo, mockMsgRepo, gen, 3)

	userID := uuid.New()
	convID := uuid.New()
	conv := &model.Conversation{ConversationID: convID, UserID: userID}

	mockConvRepo.On("FindByIDAndUser", ctx, mock.AnythingOfType("*gorm.DB"), convID, userID).
		Return(conv, nil).Once()

	// リポジトリには limit=3 がそのまま渡る
	history := []*model.Message{
		{Sender: model.SenderAssistant, Text: "m8"},
		{Sender: model.SenderUser, Text: "m9"},
		{Sender: model.SenderAssistant, Text: "m10"},
	}
	mockMsgRepo.On("ListRecentByConversation", ctx, mock.AnythingOfType("*gorm.DB"), convID, 3).
		Return(history, nil).Once()

	mockMsgRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Message")).
		Return(nil).Twice()
	mockConvRepo.On("Touch", ctx, mock.AnythingOfType("*gorm.DB"), convID).Return(nil).Twice()

	_, err := svc.SubmitTurn(ctx, userID, &model.ChatRequest{Message: "m11", ConversationID: &convID})
	require.NoError(t, err)

	// プロンプトには直近3件だけが含まれる
	wantPrompt := "ASSISTANT: m8\nUSER: m9\nASSISTANT: m10\nUSER: m11\nASSISTANT:"
	assert.Equal(t, wantPrompt, gen.gotPrompt)

	mockMsgRepo.AssertExpectations(t)
	mockConvRepo.AssertExpectations(t)
}
