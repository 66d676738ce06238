// internal/model/profile.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile はユーザーと1対1の学習プロフィールです。
// Level は学習者の現在のレベルで、進級に応じて更新されます。
type UserProfile struct {
	ProfileID      uuid.UUID  `gorm:"type:uuid;primaryKey" json:"profile_id"`
	UserID         uuid.UUID  `gorm:"type:uuid;unique;not null" json:"user_id"`
	LevelID        *uuid.UUID `gorm:"type:uuid" json:"level_id,omitempty"` // 未設定の場合あり
	MembershipDate time.Time  `gorm:"not null" json:"membership_date"`
	Bio            string     `json:"bio"`
	IsTutor        bool       `gorm:"default:false" json:"is_tutor"`
	AvatarURL      string     `json:"avatar_url"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// 関連 (Preload用)
	User  *User  `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
	Level *Level `gorm:"foreignKey:LevelID;references:LevelID" json:"level,omitempty"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// プロフィール作成リクエストDTO
type PostProfileRequest struct {
	UserID    uuid.UUID  `json:"user_id" validate:"required"`
	LevelID   *uuid.UUID `json:"level_id,omitempty"`
	Bio       string     `json:"bio"`
	IsTutor   bool       `json:"is_tutor"`
	AvatarURL string     `json:"avatar_url" validate:"omitempty,url"`
}

// プロフィール更新（全体）リクエストDTO (user_id は変更不可)
type PutProfileRequest struct {
	LevelID   *uuid.UUID `json:"level_id,omitempty"`
	Bio       string     `json:"bio"`
	IsTutor   bool       `json:"is_tutor"`
	AvatarURL string     `json:"avatar_url" validate:"omitempty,url"`
}

// プロフィール更新（部分）リクエストDTO
type PatchProfileRequest struct {
	LevelID   *uuid.UUID `json:"level_id,omitempty"`
	Bio       *string    `json:"bio,omitempty"`
	IsTutor   *bool      `json:"is_tutor,omitempty"`
	AvatarURL *string    `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

// ProfileFilter はプロフィール一覧の絞り込み条件
type ProfileFilter struct {
	LevelCode string // 現在レベルのCEFRコードで絞り込み
	Query     string // username/first_name/last_name の部分一致検索
}
