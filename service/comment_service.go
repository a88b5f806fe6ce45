package service

import (
	"errors"
	"strings"

	"pixelgram/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentService struct {
	db    *gorm.DB
	cache *CacheService
}

func NewCommentService(db *gorm.DB, cache *CacheService) *CommentService {
	return &CommentService{db: db, cache: cache}
}

// Create 发表评论
// 内容两端空白会被去掉（内部换行保留原样），去掉后为空则拒绝
// 返回的评论带作者摘要，前端无需再查一次
func (s *CommentService) Create(userID, postID uuid.UUID, content string) (*model.CommentWithUser, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ValidationErr("content", "Comment cannot be empty")
	}

	var author model.User
	if err := s.db.First(&author, "id = ?", userID).Error; err != nil {
		return nil, InternalErr("Failed to create comment", err)
	}

	comment := &model.Comment{
		UserID:  userID,
		PostID:  postID,
		Content: content,
	}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, InternalErr("Failed to create comment", err)
	}

	s.cache.InvalidateLayout()

	return &model.CommentWithUser{
		Comment: *comment,
		User:    author.Summary(),
	}, nil
}

// Delete 删除评论，只有作者本人可以删
func (s *CommentService) Delete(userID, commentID uuid.UUID) error {
	var comment model.Comment
	err := s.db.First(&comment, "id = ?", commentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFoundErr("Comment not found")
	}
	if err != nil {
		return InternalErr("Failed to delete comment", err)
	}

	if comment.UserID != userID {
		return ForbiddenErr("You can only delete your own comments")
	}

	if err := s.db.Delete(&model.Comment{}, "id = ?", comment.ID).Error; err != nil {
		return InternalErr("Failed to delete comment", err)
	}

	s.cache.InvalidateLayout()
	return nil
}
