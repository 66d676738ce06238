// internal/model/lesson.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Lesson はレベルに属する教材を表します。(level, position) 順で並びます。
type Lesson struct {
	LessonID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"lesson_id"`
	LevelID   uuid.UUID `gorm:"type:uuid;not null;index" json:"level_id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `json:"content"`
	Position  int       `gorm:"not null;default:0" json:"order"` // SQLの予約語 order を避けてカラム名は position
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 関連 (Preload用)
	Level *Level `gorm:"foreignKey:LevelID;references:LevelID" json:"level,omitempty"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// レッスン作成リクエストDTO
type PostLessonRequest struct {
	LevelID uuid.UUID `json:"level_id" validate:"required"`
	Title   string    `json:"title" validate:"required,max=200"`
	Content string    `json:"content"`
	Order   int       `json:"order" validate:"omitempty,min=0"`
}

// レッスン更新（全体）リクエストDTO
type PutLessonRequest struct {
	LevelID uuid.UUID `json:"level_id" validate:"required"`
	Title   string    `json:"title" validate:"required,max=200"`
	Content string    `json:"content"`
	Order   int       `json:"order" validate:"omitempty,min=0"`
}

// レッスン更新（部分）リクエストDTO
type PatchLessonRequest struct {
	LevelID *uuid.UUID `json:"level_id,omitempty"`
	Title   *string    `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content *string    `json:"content,omitempty"`
	Order   *int       `json:"order,omitempty" validate:"omitempty,min=0"`
}

// LessonFilter はレッスン一覧の絞り込み条件
type LessonFilter struct {
	LevelID *uuid.UUID // レベルで絞り込み
	Query   string     // title/content の部分一致検索
}
