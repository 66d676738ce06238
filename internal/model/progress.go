// internal/model/progress.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Progress は (ユーザー, レッスン) ごとの学習進捗を表します。組み合わせは一意です。
type Progress struct {
	ProgressID  uuid.UUID  `gorm:"type:uuid;primaryKey" json:"progress_id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_lesson,unique" json:"user_id"`
	LessonID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_lesson,unique" json:"lesson_id"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	Score       *float64   `json:"score,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// 関連 (Preload用)
	Lesson *Lesson `gorm:"foreignKey:LessonID;references:LessonID" json:"-"`
}

func (Progress) TableName() string {
	return "progress"
}

// 進捗作成リクエストDTO
type PostProgressRequest struct {
	LessonID  uuid.UUID `json:"lesson_id" validate:"required"`
	Completed bool      `json:"completed"`
	Score     *float64  `json:"score,omitempty" validate:"omitempty,min=0,max=100"`
}

// 進捗更新（部分）リクエストDTO
type PatchProgressRequest struct {
	Completed *bool    `json:"completed,omitempty"`
	Score     *float64 `json:"score,omitempty" validate:"omitempty,min=0,max=100"`
}

// ProgressFilter は進捗一覧の絞り込み条件
type ProgressFilter struct {
	LessonID  *uuid.UUID
	Completed *bool
}
