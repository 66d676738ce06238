// internal/model/level.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Level はCEFRのレベル (A1〜C2) を表します。管理者が管理する参照データです。
type Level struct {
	LevelID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"level_id"`
	Code        string    `gorm:"type:varchar(2);unique;not null" json:"code"` // A1, A2, B1, B2, C1, C2
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// 関連 (Preload用)
	Lessons []Lesson `gorm:"foreignKey:LevelID" json:"-"`
}

func (Level) TableName() string {
	return "levels"
}

// レベル作成リクエストDTO
type PostLevelRequest struct {
	Code        string `json:"code" validate:"required,oneof=A1 A2 B1 B2 C1 C2"`
	Name        string `json:"name" validate:"omitempty,max=100"`
	Description string `json:"description"`
}

// レベル更新（全体）リクエストDTO
type PutLevelRequest struct {
	Code        string `json:"code" validate:"required,oneof=A1 A2 B1 B2 C1 C2"`
	Name        string `json:"name" validate:"omitempty,max=100"`
	Description string `json:"description"`
}

// レベル更新（部分）リクエストDTO
type PatchLevelRequest struct {
	Code        *string `json:"code,omitempty" validate:"omitempty,oneof=A1 A2 B1 B2 C1 C2"`
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty"`
}

// LevelFilter はレベル一覧の絞り込み条件
type LevelFilter struct {
	Code  string // 完全一致
	Query string // code/name/description の部分一致検索
}
