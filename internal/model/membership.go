// internal/model/membership.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// LevelMembership はユーザーがあるレベルに属していた期間の履歴です。
// 追記専用で、開始日の降順（新しい順）で扱います。
type LevelMembership struct {
	MembershipID uuid.UUID  `gorm:"type:uuid;primaryKey" json:"membership_id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	LevelID      uuid.UUID  `gorm:"type:uuid;not null" json:"level_id"`
	StartDate    time.Time  `gorm:"not null" json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"` // nil = 現在も所属中
	CreatedAt    time.Time  `json:"created_at"`

	// 関連 (Preload用)
	Level *Level `gorm:"foreignKey:LevelID;references:LevelID" json:"level,omitempty"`
}

func (LevelMembership) TableName() string {
	return "level_memberships"
}

// メンバーシップ作成リクエストDTO
type PostMembershipRequest struct {
	UserID    uuid.UUID  `json:"user_id" validate:"required"`
	LevelID   uuid.UUID  `json:"level_id" validate:"required"`
	StartDate *time.Time `json:"start_date,omitempty"` // 省略時は現在日
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// MembershipFilter はメンバーシップ一覧の絞り込み条件
type MembershipFilter struct {
	UserID  *uuid.UUID
	LevelID *uuid.UUID
}
