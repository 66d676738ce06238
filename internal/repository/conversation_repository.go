//go:generate mockery --name ConversationRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mylang_backend/internal/middleware"
	"mylang_backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConversationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, conv *model.Conversation) error
	// FindByIDAndUser は所有者が一致する会話のみ返します。
	// 存在しない場合と所有者が異なる場合はどちらも ErrNotFound です
	// (他人の会話の存在を推測できないようにするため)。
	FindByIDAndUser(ctx context.Context, db *gorm.DB, conversationID, userID uuid.UUID) (*model.Conversation, error)
	// FindDetailByIDAndUser は FindByIDAndUser と同じ所有者チェック付きで、
	// メッセージを作成時刻順で埋め込んで返します (詳細表示用)。
	FindDetailByIDAndUser(ctx context.Context, db *gorm.DB, conversationID, userID uuid.UUID) (*model.Conversation, error)
	ListByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, filter *model.ConversationFilter) ([]*model.Conversation, error)
	Touch(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID) error
	Update(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID) error
}

type gormConversationRepository struct{}

func NewGormConversationRepository() ConversationRepository {
	return &gormConversationRepository{}
}

func (r *gormConversationRepository) Create(ctx context.Context, tx *gorm.DB, conv *model.Conversation) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(conv)
	if result.Error != nil {
		logger.Error("Error creating conversation in DB",
			"error", result.Error,
			"user_id", conv.UserID.String(),
		)
		return fmt.Errorf("gormConversationRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormConversationRepository) FindByIDAndUser(ctx context.Context, db *gorm.DB, conversationID, userID uuid.UUID) (*model.Conversation, error) {
	logger := middleware.GetLogger(ctx)
	var conv model.Conversation
	result := db.WithContext(ctx).Preload("Level").
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		First(&conv)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding conversation in DB",
			"error", result.Error,
			"conversation_id", conversationID.String(),
		)
		return nil, fmt.Errorf("gormConversationRepository.FindByIDAndUser: %w", result.Error)
	}
	return &conv, nil
}

func (r *gormConversationRepository) FindDetailByIDAndUser(ctx context.Context, db *gorm.DB, conversationID, userID uuid.UUID) (*model.Conversation, error) {
	logger := middleware.GetLogger(ctx)
	var conv model.Conversation
	result := db.WithContext(ctx).Preload("Level").
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("messages.created_at ASC")
		}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		First(&conv)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding conversation detail in DB",
			"error", result.Error,
			"conversation_id", conversationID.String(),
		)
		return nil, fmt.Errorf("gormConversationRepository.FindDetailByIDAndUser: %w", result.Error)
	}
	return &conv, nil
}

// ListByUser は更新日時の降順（新しい順）で会話一覧を返します。メッセージは作成時刻順で埋め込みます。
func (r *gormConversationRepository) ListByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, filter *model.ConversationFilter) ([]*model.Conversation, error) {
	logger := middleware.GetLogger(ctx)
	var convs []*model.Conversation
	query := db.WithContext(ctx).Model(&model.Conversation{}).
		Preload("Level").
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("messages.created_at ASC")
		}).
		Where("user_id = ?", userID)
	if filter != nil {
		if filter.LevelID != nil {
			query = query.Where("level_id = ?", *filter.LevelID)
		}
		if filter.CreatedAfter != nil {
			query = query.Where("created_at >= ?", *filter.CreatedAfter)
		}
	}
	result := query.Order("updated_at DESC").Find(&convs)
	if result.Error != nil {
		logger.Error("Error listing conversations in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormConversationRepository.ListByUser: %w", result.Error)
	}
	return convs, nil
}

// Touch は会話の更新日時を現在時刻に更新します。メッセージ追加時に呼びます。
func (r *gormConversationRepository) Touch(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(&model.Conversation{}).
		Where("conversation_id = ?", conversationID).
		Update("updated_at", time.Now())
	if result.Error != nil {
		logger.Error("Error touching conversation in DB",
			"error", result.Error,
			"conversation_id", conversationID.String(),
		)
		return fmt.Errorf("gormConversationRepository.Touch: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormConversationRepository) Update(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Conversation{}).
		Where("conversation_id = ?", conversationID).
		Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating conversation in DB",
			"error", result.Error,
			"conversation_id", conversationID.String(),
		)
		return fmt.Errorf("gormConversationRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormConversationRepository) Delete(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	// 先にメッセージを消してから会話本体を消す (FK制約)
	if err := tx.WithContext(ctx).Where("conversation_id = ?", conversationID).Delete(&model.Message{}).Error; err != nil {
		logger.Error("Error deleting conversation messages in DB",
			"error", err,
			"conversation_id", conversationID.String(),
		)
		return fmt.Errorf("gormConversationRepository.Delete: %w", err)
	}
	result := tx.WithContext(ctx).Where("conversation_id = ?", conversationID).Delete(&model.Conversation{})
	if result.Error != nil {
		logger.Error("Error deleting conversation in DB",
			"error", result.Error,
			"conversation_id", conversationID.String(),
		)
		return fmt.Errorf("gormConversationRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
