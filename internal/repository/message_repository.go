//go:generate mockery --name MessageRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"mylang_backend/internal/middleware"
	"mylang_backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(ctx context.Context, tx *gorm.DB, msg *model.Message) error
	FindByID(ctx context.Context, db *gorm.DB, messageID uuid.UUID) (*model.Message, error)
	ListByConversation(ctx context.Context, db *gorm.DB, conversationID uuid.UUID) ([]*model.Message, error)
	// ListRecentByConversation は直近 limit 件を古い順で返します (プロンプト組み立て用)。
	ListRecentByConversation(ctx context.Context, db *gorm.DB, conversationID uuid.UUID, limit int) ([]*model.Message, error)
	// ListByUser はユーザーが所有する全会話のメッセージを横断して返します。
	ListByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, filter *model.MessageFilter) ([]*model.Message, error)
	Delete(ctx context.Context, tx *gorm.DB, messageID uuid.UUID) error
}

type gormMessageRepository struct{}

func NewGormMessageRepository() MessageRepository {
	return &gormMessageRepository{}
}

func (r *gormMessageRepository) Create(ctx context.Context, tx *gorm.DB, msg *model.Message) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(msg)
	if result.Error != nil {
		logger.Error("Error creating message in DB",
			"error", result.Error,
			"conversation_id", msg.ConversationID.String(),
			"sender", msg.Sender,
		)
		return fmt.Errorf("gormMessageRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormMessageRepository) FindByID(ctx context.Context, db *gorm.DB, messageID uuid.UUID) (*model.Message, error) {
	logger := middleware.GetLogger(ctx)
	var msg model.Message
	result := db.WithContext(ctx).Where("message_id = ?", messageID).First(&msg)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding message by ID in DB",
			"error", result.Error,
			"message_id", messageID.String(),
		)
		return nil, fmt.Errorf("gormMessageRepository.FindByID: %w", result.Error)
	}
	return &msg, nil
}

func (r *gormMessageRepository) ListByConversation(ctx context.Context, db *gorm.DB, conversationID uuid.UUID) ([]*model.Message, error) {
	logger := middleware.GetLogger(ctx)
	var msgs []*model.Message
	result := db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&msgs)
	if result.Error != nil {
		logger.Error("Error listing messages in DB",
			"error", result.Error,
			"conversation_id", conversationID.String(),
		)
		return nil, fmt.Errorf("gormMessageRepository.ListByConversation: %w", result.Error)
	}
	return msgs, nil
}

func (r *gormMessageRepository) ListRecentByConversation(ctx context.Context, db *gorm.DB, conversationID uuid.UUID, limit int) ([]*model.Message, error) {
	logger := middleware.GetLogger(ctx)
	var msgs []*model.Message
	// 新しい順で limit 件取り、古い順に並べ直して返す
	result := db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Limit(limit).
		Find(&msgs)
	if result.Error != nil {
		logger.Error("Error listing recent messages in DB",
			"error", result.Error,
			"conversation_id", conversationID.String(),
		)
		return nil, fmt.Errorf("gormMessageRepository.ListRecentByConversation: %w", result.Error)
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

func (r *gormMessageRepository) ListByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, filter *model.MessageFilter) ([]*model.Message, error) {
	logger := middleware.GetLogger(ctx)
	var msgs []*model.Message
	// 所有者の会話に属するメッセージのみ。会話をまたいで作成時刻順
	query := db.WithContext(ctx).Model(&model.Message{}).
		Joins("JOIN conversations ON conversations.conversation_id = messages.conversation_id").
		Where("conversations.user_id = ?", userID)
	if filter != nil {
		if filter.ConversationID != nil {
			query = query.Where("messages.conversation_id = ?", *filter.ConversationID)
		}
		if filter.Sender != "" {
			query = query.Where("messages.sender = ?", filter.Sender)
		}
	}
	result := query.Order("messages.created_at ASC").Find(&msgs)
	if result.Error != nil {
		logger.Error("Error listing messages by user in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormMessageRepository.ListByUser: %w", result.Error)
	}
	return msgs, nil
}

func (r *gormMessageRepository) Delete(ctx context.Context, tx *gorm.DB, messageID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("message_id = ?", messageID).Delete(&model.Message{})
	if result.Error != nil {
		logger.Error("Error deleting message in DB",
			"error", result.Error,
			"message_id", messageID.String(),
		)
		return fmt.Errorf("gormMessageRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
