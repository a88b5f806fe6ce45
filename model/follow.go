package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Follow 关注关系表（有方向）
// (follower_id, following_id) 组合唯一
type Follow struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	FollowerID  uuid.UUID `json:"follower_id" gorm:"type:uuid;not null;uniqueIndex:idx_follows_pair"`
	FollowingID uuid.UUID `json:"following_id" gorm:"type:uuid;not null;uniqueIndex:idx_follows_pair"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Follow) TableName() string {
	return "follows"
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
