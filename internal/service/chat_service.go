// internal/service/chat_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mylang_backend/internal/middleware"
	"mylang_backend/internal/model"
	"mylang_backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockery --name ChatService --output ./mocks --outpkg mocks

// ChatService は会話ターンの受付からアシスタント応答の永続化までを担います。
type ChatService interface {
	SubmitTurn(ctx context.Context, userID uuid.UUID, req *model.ChatRequest) (*model.ChatResponse, error)
}

type chatService struct {
	db           *gorm.DB
	userRepo     repository.UserRepository
	profileRepo  repository.ProfileRepository
	convRepo     repository.ConversationRepository
	msgRepo      repository.MessageRepository
	generator    TextGenerator
	historyLimit int
	now          func() time.Time // テストで時刻を固定できるようにするため
}

func NewChatService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	convRepo repository.ConversationRepository,
	msgRepo repository.MessageRepository,
	generator TextGenerator,
	historyLimit int,
) ChatService {
	return &chatService{
		db:           db,
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		convRepo:     convRepo,
		msgRepo:      msgRepo,
		generator:    generator,
		historyLimit: historyLimit,
		now:          time.Now,
	}
}

// SubmitTurn は1ターン分のチャットを処理します。
//
// 処理の流れ:
//  1. 会話を特定する (conversation_id 省略時は新規作成)
//  2. プロンプト用の履歴を読み込む (今回のユーザー発話を保存する「前」に読む)
//  3. ユーザー発話を保存する
//  4. 生成プロバイダを呼び出す
//  5. アシスタント応答を保存し、会話の updated_at を進める
//
// 生成が失敗してもユーザー発話は残します。再送すれば会話を続けられるためです。
func (s *chatService) SubmitTurn(ctx context.Context, userID uuid.UUID, req *model.ChatRequest) (*model.ChatResponse, error) {
	logger := middleware.GetLogger(ctx)

	text := strings.TrimSpace(req.Message)
	if text == "" {
		return nil, model.NewAppError("INVALID_INPUT", "メッセージを入力してください", "message", model.ErrInvalidInput)
	}

	// --- 1. 会話の特定 (新規 or 既存) ---
	var conv *model.Conversation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		if req.ConversationID != nil {
			// 既存会話: 所有者チェックはリポジトリ側で行う (他人の会話は NotFound になる)
			conv, txErr = s.convRepo.FindByIDAndUser(ctx, tx, *req.ConversationID, userID)
			if txErr != nil {
				if errors.Is(txErr, model.ErrNotFound) {
					return model.NewAppError("CONVERSATION_NOT_FOUND", "指定された会話が見つかりません", "conversation_id", model.ErrNotFound)
				}
				return txErr
			}
			return nil
		}

		// 新規会話: タイトルとレベルのスナップショットを付けて作成する
		user, txErr := s.userRepo.FindByID(ctx, tx, userID)
		if txErr != nil {
			return fmt.Errorf("failed to find user for new conversation: %w", txErr)
		}

		// プロフィールの現在レベルを会話に引き写す。プロフィール未作成でもチャットは可能
		var levelID *uuid.UUID
		profile, txErr := s.profileRepo.FindByUserID(ctx, tx, userID)
		if txErr == nil {
			levelID = profile.LevelID
		} else if !errors.Is(txErr, model.ErrNotFound) {
			return txErr
		}

		now := s.now()
		conv = &model.Conversation{
			ConversationID: uuid.New(),
			UserID:         userID,
			LevelID:        levelID,
			Title:          fmt.Sprintf("Chat %s %s", user.Username, now.Format("2006-01-02")),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if txErr := s.convRepo.Create(ctx, tx, conv); txErr != nil {
			return fmt.Errorf("failed to create conversation: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// --- 2. 履歴の読み込み ---
	// 今回の発話を保存する前に読むことで、プロンプト内で同じ発話が二重に
	// 登場しないようにしています (履歴 + 明示的な USER 行で1回だけ)。
	history, err := s.msgRepo.ListRecentByConversation(ctx, s.db, conv.ConversationID, s.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation history: %w", err)
	}

	// --- 3. ユーザー発話の保存 ---
	userMsg := &model.Message{
		MessageID:      uuid.New(),
		ConversationID: conv.ConversationID,
		Sender:         model.SenderUser,
		Text:           text,
		CreatedAt:      s.now(),
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if txErr := s.msgRepo.Create(ctx, tx, userMsg); txErr != nil {
			return fmt.Errorf("failed to save user message: %w", txErr)
		}
		return s.convRepo.Touch(ctx, tx, conv.ConversationID)
	})
	if err != nil {
		return nil, err
	}

	// --- 4. 生成プロバイダの呼び出し ---
	systemInstruction := s.buildSystemInstruction(ctx, conv)
	prompt := buildPrompt(history, text)

	reply, err := s.generator.Generate(ctx, systemInstruction, prompt)
	if err != nil {
		// ユーザー発話は保存済みのまま残す。クライアントは再送で継続できる
		logger.Error("Text generation failed", "error", err, "conversation_id", conv.ConversationID)
		return nil, model.NewAppError("GENERATION_FAILED", "応答の生成に失敗しました", "", model.ErrGeneration)
	}

	// --- 5. アシスタント応答の保存 ---
	assistantMsg := &model.Message{
		MessageID:      uuid.New(),
		ConversationID: conv.ConversationID,
		Sender:         model.SenderAssistant,
		Text:           reply,
		CreatedAt:      s.now(),
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if txErr := s.msgRepo.Create(ctx, tx, assistantMsg); txErr != nil {
			return fmt.Errorf("failed to save assistant message: %w", txErr)
		}
		return s.convRepo.Touch(ctx, tx, conv.ConversationID)
	})
	if err != nil {
		return nil, err
	}

	return &model.ChatResponse{
		ConversationID: conv.ConversationID,
		Response:       reply,
	}, nil
}

// buildSystemInstruction は会話に紐づくレベルに合わせた指示文を組み立てます。
// レベルが未設定・取得失敗の場合は "unknown" として扱います。
func (s *chatService) buildSystemInstruction(ctx context.Context, conv *model.Conversation) string {
	levelCode := "unknown"
	if conv.Level != nil {
		levelCode = conv.Level.Code
	} else if conv.LevelID != nil {
		var level model.Level
		if err := s.db.WithContext(ctx).First(&level, "level_id = ?", *conv.LevelID).Error; err == nil {
			levelCode = level.Code
		}
	}
	return fmt.Sprintf(
		"You are a friendly language tutor. The learner's CEFR level is %s. "+
			"Reply in the language the learner is practicing, keep your vocabulary and "+
			"grammar appropriate for that level, and gently correct mistakes.",
		levelCode,
	)
}

// buildPrompt は履歴と今回のユーザー発話をテキストプロンプトに変換します。
// 形式: "SENDER: text" の行を古い順に並べ、最後に今回の発話と
// "ASSISTANT:" マーカーを付けて続きを生成させます。
func buildPrompt(history []*model.Message, userText string) string {
	var b strings.Builder
	for _, msg := range history {
		b.WriteString(strings.ToUpper(msg.Sender))
		b.WriteString(": ")
		b.WriteString(msg.Text)
		b.WriteString("\n")
	}
	b.WriteString("USER: ")
	b.WriteString(userText)
	b.WriteString("\nASSISTANT:")
	return b.String()
}
