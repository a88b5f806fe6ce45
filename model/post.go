package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post 帖子表
type Post struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	ImageURL  string    `json:"image_url" gorm:"type:text;not null"`
	Caption   *string   `json:"caption,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Post) TableName() string {
	return "posts"
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PostCounts 帖子聚合计数
type PostCounts struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
}

// FeedPost 首页信息流中的帖子（含作者、计数、当前用户的点赞）
type FeedPost struct {
	ID        uuid.UUID         `json:"id"`
	ImageURL  string            `json:"image_url"`
	Caption   *string           `json:"caption,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	User      UserSummary       `json:"user"`
	Count     PostCounts        `json:"_count"`
	Likes     []Like            `json:"likes"` // 仅当前用户自己的点赞行，匿名时为空
	Comments  []CommentWithUser `json:"comments"`
}

// ProfilePost 个人主页网格中的帖子（不含评论）
type ProfilePost struct {
	ID        uuid.UUID  `json:"id"`
	ImageURL  string     `json:"image_url"`
	Caption   *string    `json:"caption,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	Count     PostCounts `json:"_count"`
	Likes     []Like     `json:"likes"`
}
