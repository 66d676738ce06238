// internal/service/conversation_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mylang_backend/internal/middleware"
	"mylang_backend/internal/model"
	"mylang_backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockery --name ConversationService --output ./mocks --outpkg mocks

// ConversationService は会話とメッセージのCRUDを提供します。
// すべての操作は呼び出したユーザー自身の会話に限定されます。
// 他人の会話は存在しないものとして扱い、NotFound を返します。
type ConversationService interface {
	CreateConversation(ctx context.Context, userID uuid.UUID, req *model.PostConversationRequest) (*model.Conversation, error)
	GetConversation(ctx context.Context, userID, conversationID uuid.UUID) (*model.Conversation, error)
	ListConversations(ctx context.Context, userID uuid.UUID, filter *model.ConversationFilter) ([]*model.Conversation, error)
	PatchConversation(ctx context.Context, userID, conversationID uuid.UUID, req *model.PatchConversationRequest) (*model.Conversation, error)
	DeleteConversation(ctx context.Context, userID, conversationID uuid.UUID) error

	CreateMessage(ctx context.Context, userID uuid.UUID, req *model.PostMessageRequest) (*model.Message, error)
	GetMessage(ctx context.Context, userID, messageID uuid.UUID) (*model.Message, error)
	ListMessages(ctx context.Context, userID, conversationID uuid.UUID) ([]*model.Message, error)
	ListUserMessages(ctx context.Context, userID uuid.UUID, filter *model.MessageFilter) ([]*model.Message, error)
	DeleteMessage(ctx context.Context, userID, messageID uuid.UUID) error
}

type conversationService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
	convRepo repository.ConversationRepository
	msgRepo  repository.MessageRepository
	now      func() time.Time
}

func NewConversationService(db *gorm.DB, userRepo repository.UserRepository, convRepo repository.ConversationRepository, msgRepo repository.MessageRepository) ConversationService {
	return &conversationService{
		db:       db,
		userRepo: userRepo,
		convRepo: convRepo,
		msgRepo:  msgRepo,
		now:      time.Now,
	}
}

func (s *conversationService) CreateConversation(ctx context.Context, userID uuid.UUID, req *model.PostConversationRequest) (*model.Conversation, error) {
	logger := middleware.GetLogger(ctx)
	var created *model.Conversation

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := s.now()
		title := req.Title
		if title == "" {
			// チャットAPIと同じ既定形式でタイトルを補完する
			user, err := s.userRepo.FindByID(ctx, tx, userID)
			if err != nil {
				return fmt.Errorf("failed to find user for conversation title: %w", err)
			}
			title = fmt.Sprintf("Chat %s %s", user.Username, now.Format("2006-01-02"))
		}

		conv := &model.Conversation{
			ConversationID: uuid.New(),
			UserID:         userID,
			LevelID:        req.LevelID,
			Title:          title,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := s.convRepo.Create(ctx, tx, conv); err != nil {
			logger.Error("Failed to create conversation", "error", err)
			return err
		}
		created = conv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetConversation は会話をメッセージ込みで返します (一覧と同じ埋め込み形式)。
func (s *conversationService) GetConversation(ctx context.Context, userID, conversationID uuid.UUID) (*model.Conversation, error) {
	conv, err := s.convRepo.FindDetailByIDAndUser(ctx, s.db, conversationID, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("CONVERSATION_NOT_FOUND", "指定された会話が見つかりません。", "", model.ErrNotFound)
		}
		return nil, err
	}
	return conv, nil
}

func (s *conversationService) ListConversations(ctx context.Context, userID uuid.UUID, filter *model.ConversationFilter) ([]*model.Conversation, error) {
	return s.convRepo.ListByUser(ctx, s.db, userID, filter)
}

func (s *conversationService) PatchConversation(ctx context.Context, userID, conversationID uuid.UUID, req *model.PatchConversationRequest) (*model.Conversation, error) {
	var updated *model.Conversation

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 所有者チェック
		if _, err := s.convRepo.FindByIDAndUser(ctx, tx, conversationID, userID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("CONVERSATION_NOT_FOUND", "指定された会話が見つかりません。", "", model.ErrNotFound)
			}
			return err
		}

		if req.Title != nil {
			updates := map[string]interface{}{"title": *req.Title}
			if err := s.convRepo.Update(ctx, tx, conversationID, updates); err != nil {
				return err
			}
		}
		var err error
		updated, err = s.convRepo.FindDetailByIDAndUser(ctx, tx, conversationID, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *conversationService) DeleteConversation(ctx context.Context, userID, conversationID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.convRepo.FindByIDAndUser(ctx, tx, conversationID, userID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("CONVERSATION_NOT_FOUND", "指定された会話が見つかりません。", "", model.ErrNotFound)
			}
			return err
		}
		return s.convRepo.Delete(ctx, tx, conversationID)
	})
}

// CreateMessage は会話にメッセージを手動追加します (インポートやメモ用途)。
// 通常のチャットのやり取りはチャットAPI側が記録します。
func (s *conversationService) CreateMessage(ctx context.Context, userID uuid.UUID, req *model.PostMessageRequest) (*model.Message, error) {
	var created *model.Message

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 追加先の会話が自分のものであることを確認する
		if _, err := s.convRepo.FindByIDAndUser(ctx, tx, req.ConversationID, userID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("CONVERSATION_NOT_FOUND", "指定された会話が見つかりません。", "conversation_id", model.ErrNotFound)
			}
			return err
		}

		msg := &model.Message{
			MessageID:      uuid.New(),
			ConversationID: req.ConversationID,
			Sender:         req.Sender,
			Text:           req.Text,
			CreatedAt:      s.now(),
		}
		if err := s.msgRepo.Create(ctx, tx, msg); err != nil {
			return err
		}
		if err := s.convRepo.Touch(ctx, tx, req.ConversationID); err != nil {
			return err
		}
		created = msg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetMessage はメッセージ単体を返します。親会話が自分のものでなければ
// 存在しない扱いにします (DeleteMessage と同じ所有者ルール)。
func (s *conversationService) GetMessage(ctx context.Context, userID, messageID uuid.UUID) (*model.Message, error) {
	msg, err := s.msgRepo.FindByID(ctx, s.db, messageID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("MESSAGE_NOT_FOUND", "指定されたメッセージが見つかりません。", "", model.ErrNotFound)
		}
		return nil, err
	}
	if _, err := s.convRepo.FindByIDAndUser(ctx, s.db, msg.ConversationID, userID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("MESSAGE_NOT_FOUND", "指定されたメッセージが見つかりません。", "", model.ErrNotFound)
		}
		return nil, err
	}
	return msg, nil
}

func (s *conversationService) ListMessages(ctx context.Context, userID, conversationID uuid.UUID) ([]*model.Message, error) {
	// 所有者チェックを兼ねて会話を引く
	if _, err := s.convRepo.FindByIDAndUser(ctx, s.db, conversationID, userID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("CONVERSATION_NOT_FOUND", "指定された会話が見つかりません。", "", model.ErrNotFound)
		}
		return nil, err
	}
	return s.msgRepo.ListByConversation(ctx, s.db, conversationID)
}

// ListUserMessages は自分の全会話のメッセージを横断して返します。
// リポジトリ側で所有者の会話に絞り込むため、ここでの所有者チェックは不要です。
func (s *conversationService) ListUserMessages(ctx context.Context, userID uuid.UUID, filter *model.MessageFilter) ([]*model.Message, error) {
	return s.msgRepo.ListByUser(ctx, s.db, userID, filter)
}

func (s *conversationService) DeleteMessage(ctx context.Context, userID, messageID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		msg, err := s.msgRepo.FindByID(ctx, tx, messageID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("MESSAGE_NOT_FOUND", "指定されたメッセージが見つかりません。", "", model.ErrNotFound)
			}
			return err
		}
		// メッセージの親会話が自分のものでなければ存在しない扱いにする
		if _, err := s.convRepo.FindByIDAndUser(ctx, tx, msg.ConversationID, userID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("MESSAGE_NOT_FOUND", "指定されたメッセージが見つかりません。", "", model.ErrNotFound)
			}
			return err
		}
		return s.msgRepo.Delete(ctx, tx, messageID)
	})
}
