package service

import (
	"errors"

	"pixelgram/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LikeService struct {
	db    *gorm.DB
	cache *CacheService
}

func NewLikeService(db *gorm.DB, cache *CacheService) *LikeService {
	return &LikeService{db: db, cache: cache}
}

// Toggle 点赞开关：已点赞则取消，未点赞则创建
// 返回操作后的状态（true=已点赞）
//
// check-then-act 之间没有锁：同一用户并发双击时两个请求可能都走到创建分支，
// (user_id, post_id) 唯一索引会拒绝后到者，该请求以存储错误返回
func (s *LikeService) Toggle(userID, postID uuid.UUID) (bool, error) {
	var existing model.Like
	err := s.db.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error

	var liked bool
	switch {
	case err == nil:
		if err := s.db.Delete(&model.Like{}, "id = ?", existing.ID).Error; err != nil {
			return false, InternalErr("Failed to toggle like", err)
		}
		liked = false
	case errors.Is(err, gorm.ErrRecordNotFound):
		like := &model.Like{UserID: userID, PostID: postID}
		if err := s.db.Create(like).Error; err != nil {
			return false, InternalErr("Failed to toggle like", err)
		}
		liked = true
	default:
		return false, InternalErr("Failed to toggle like", err)
	}

	s.cache.InvalidateLayout()
	return liked, nil
}
