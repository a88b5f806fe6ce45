package service

import (
	"errors"

	"pixelgram/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FollowService struct {
	db    *gorm.DB
	cache *CacheService
}

func NewFollowService(db *gorm.DB, cache *CacheService) *FollowService {
	return &FollowService{db: db, cache: cache}
}

// Toggle 关注开关：已关注则取关，未关注则创建
// 返回操作后的状态（true=已关注）
func (s *FollowService) Toggle(userID, targetUserID uuid.UUID) (bool, error) {
	// 不能关注自己，任何存储操作之前先拦截
	if userID == targetUserID {
		return false, ValidationErr("general", "Cannot follow yourself")
	}

	var existing model.Follow
	err := s.db.Where("follower_id = ? AND following_id = ?", userID, targetUserID).First(&existing).Error

	var following bool
	switch {
	case err == nil:
		if err := s.db.Delete(&model.Follow{}, "id = ?", existing.ID).Error; err != nil {
			return false, InternalErr("Failed to toggle follow", err)
		}
		following = false
	case errors.Is(err, gorm.ErrRecordNotFound):
		follow := &model.Follow{FollowerID: userID, FollowingID: targetUserID}
		if err := s.db.Create(follow).Error; err != nil {
			return false, InternalErr("Failed to toggle follow", err)
		}
		following = true
	default:
		return false, InternalErr("Failed to toggle follow", err)
	}

	s.cache.InvalidateLayout()
	return following, nil
}
