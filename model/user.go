package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User 用户表
// Password 为空表示 OAuth 账号（无本地密码）
type User struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Username  string    `json:"username" gorm:"type:varchar(30);not null;uniqueIndex"`
	Email     string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	Password  *string   `json:"-" gorm:"type:varchar(255)"` // bcrypt 哈希，永不返回给前端
	Avatar    *string   `json:"avatar,omitempty" gorm:"type:text"`
	Bio       *string   `json:"bio,omitempty" gorm:"type:varchar(150)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate 在应用层生成 UUID，不依赖数据库扩展
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserSummary 用户摘要（嵌入帖子/评论响应的作者信息）
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Avatar   *string   `json:"avatar,omitempty"`
}

// Summary 提取用户摘要
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Username: u.Username,
		Avatar:   u.Avatar,
	}
}

// UserProfile 个人主页（含帖子网格）
type UserProfile struct {
	ID        uuid.UUID     `json:"id"`
	Username  string        `json:"username"`
	Avatar    *string       `json:"avatar,omitempty"`
	Bio       *string       `json:"bio,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	Count     ProfileCounts `json:"_count"`
	Posts     []ProfilePost `json:"posts"`
}

// ProfileCounts 个人主页聚合计数
type ProfileCounts struct {
	Posts int `json:"posts"`
}

// ProfileUser 资料编辑表单用到的字段
type ProfileUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Bio      *string   `json:"bio,omitempty"`
	Avatar   *string   `json:"avatar,omitempty"`
}
