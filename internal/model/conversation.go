// internal/model/conversation.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Message の送信者種別
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
	SenderSystem    = "system"
)

// Conversation はユーザーとチューターの会話です。
// Level は会話作成時点のプロフィールレベルのスナップショット（未設定の場合あり）。
// メッセージが追加されるたびに UpdatedAt が更新されます。
type Conversation struct {
	ConversationID uuid.UUID  `gorm:"type:uuid;primaryKey" json:"conversation_id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	LevelID        *uuid.UUID `gorm:"type:uuid" json:"level_id,omitempty"`
	Title          string     `json:"title"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `gorm:"index" json:"updated_at"`

	// 関連 (Preload用)
	Level    *Level    `gorm:"foreignKey:LevelID;references:LevelID" json:"level,omitempty"`
	Messages []Message `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
}

func (Conversation) TableName() string {
	return "conversations"
}

// Message は会話内の1発言です。作成時刻順・追記専用で、書き込み後は不変です。
type Message struct {
	MessageID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"message_id"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index" json:"conversation_id"`
	Sender         string    `gorm:"type:varchar(10);not null" json:"sender"` // user / assistant / system
	Text           string    `gorm:"not null" json:"text"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}

// 会話作成リクエストDTO
type PostConversationRequest struct {
	Title   string     `json:"title" validate:"omitempty,max=255"`
	LevelID *uuid.UUID `json:"level_id,omitempty"`
}

// 会話更新（部分）リクエストDTO (タイトルのみ変更可能。履歴は不変)
type PatchConversationRequest struct {
	Title *string `json:"title,omitempty" validate:"omitempty,max=255"`
}

// メッセージ作成リクエストDTO
type PostMessageRequest struct {
	ConversationID uuid.UUID `json:"conversation_id" validate:"required"`
	Sender         string    `json:"sender" validate:"required,oneof=user assistant system"`
	Text           string    `json:"text" validate:"required"`
}

// ConversationFilter は会話一覧の絞り込み条件
type ConversationFilter struct {
	LevelID      *uuid.UUID
	CreatedAfter *time.Time
}

// MessageFilter はメッセージ一覧 (フラット表現) の絞り込み条件
type MessageFilter struct {
	ConversationID *uuid.UUID
	Sender         string
}
