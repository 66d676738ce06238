// internal/model/chat.go
package model

import (
	"github.com/google/uuid"
)

// ChatRequest はチャットAPIのリクエストボディ。
// ConversationID を省略すると新しい会話が作成されます。
type ChatRequest struct {
	Message        string     `json:"message" validate:"required"`
	ConversationID *uuid.UUID `json:"conversation_id,omitempty"`
}

// ChatResponse はチャットAPIのレスポンス
type ChatResponse struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	Response       string    `json:"response"`
}
