package service

import (
	"errors"
	"fmt"

	"pixelgram/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 首页信息流一次返回的帖子数量
const feedPageSize = 20

type PostService struct {
	db    *gorm.DB
	cache *CacheService
}

func NewPostService(db *gorm.DB, cache *CacheService) *PostService {
	return &PostService{db: db, cache: cache}
}

// Create 发布帖子（图片已由客户端直传对象存储，这里只记录 URL）
func (s *PostService) Create(userID uuid.UUID, imageURL string, caption *string) (*model.Post, error) {
	post := &model.Post{
		UserID:   userID,
		ImageURL: imageURL,
		Caption:  caption,
	}
	if err := s.db.Create(post).Error; err != nil {
		return nil, InternalErr("Failed to create post", err)
	}

	s.cache.InvalidateLayout()
	return post, nil
}

// Delete 删除帖子，只有发布者本人可以删
func (s *PostService) Delete(userID, postID uuid.UUID) error {
	var post model.Post
	err := s.db.First(&post, "id = ?", postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFoundErr("Post not found")
	}
	if err != nil {
		return InternalErr("Failed to delete post", err)
	}

	if post.UserID != userID {
		return ForbiddenErr("You can only delete your own posts")
	}

	if err := s.db.Delete(&model.Post{}, "id = ?", post.ID).Error; err != nil {
		return InternalErr("Failed to delete post", err)
	}

	s.cache.InvalidateLayout()
	return nil
}

// GetFeed 获取首页信息流（最新 20 条）
// viewerID 可为 nil（匿名访问），此时每个帖子的 likes 列表为空
func (s *PostService) GetFeed(viewerID *uuid.UUID) ([]model.FeedPost, error) {
	var posts []model.Post
	if err := s.db.Order("created_at DESC").Limit(feedPageSize).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	if len(posts) == 0 {
		return []model.FeedPost{}, nil
	}

	postIDs := make([]uuid.UUID, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	// 批量查点赞和评论，避免 N+1
	var likes []model.Like
	if err := s.db.Where("post_id IN ?", postIDs).Find(&likes).Error; err != nil {
		return nil, fmt.Errorf("failed to query likes: %w", err)
	}

	var comments []model.Comment
	if err := s.db.Where("post_id IN ?", postIDs).Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}

	// 收集作者ID（帖子作者 + 评论作者），一次查全
	userIDSet := make(map[uuid.UUID]struct{})
	for _, p := range posts {
		userIDSet[p.UserID] = struct{}{}
	}
	for _, c := range comments {
		userIDSet[c.UserID] = struct{}{}
	}
	userMap, err := s.loadUserSummaries(userIDSet)
	if err != nil {
		return nil, err
	}

	// 按帖子分组
	likesByPost := make(map[uuid.UUID][]model.Like)
	for _, l := range likes {
		likesByPost[l.PostID] = append(likesByPost[l.PostID], l)
	}
	commentsByPost := make(map[uuid.UUID][]model.CommentWithUser)
	for _, c := range comments {
		commentsByPost[c.PostID] = append(commentsByPost[c.PostID], model.CommentWithUser{
			Comment: c,
			User:    userMap[c.UserID],
		})
	}

	feed := make([]model.FeedPost, len(posts))
	for i, p := range posts {
		postLikes := likesByPost[p.ID]
		postComments := commentsByPost[p.ID]
		if postComments == nil {
			postComments = []model.CommentWithUser{}
		}

		feed[i] = model.FeedPost{
			ID:        p.ID,
			ImageURL:  p.ImageURL,
			Caption:   p.Caption,
			CreatedAt: p.CreatedAt,
			User:      userMap[p.UserID],
			Count: model.PostCounts{
				Likes:    len(postLikes),
				Comments: len(postComments),
			},
			Likes:    filterViewerLikes(postLikes, viewerID),
			Comments: postComments,
		}
	}
	return feed, nil
}

func (s *PostService) loadUserSummaries(idSet map[uuid.UUID]struct{}) (map[uuid.UUID]model.UserSummary, error) {
	ids := make([]uuid.UUID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	var users []model.User
	if err := s.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}

	userMap := make(map[uuid.UUID]model.UserSummary, len(users))
	for _, u := range users {
		userMap[u.ID] = u.Summary()
	}
	return userMap, nil
}

// filterViewerLikes 只保留当前用户自己的点赞行，匿名时返回空列表
func filterViewerLikes(likes []model.Like, viewerID *uuid.UUID) []model.Like {
	viewerLikes := []model.Like{}
	if viewerID == nil {
		return viewerLikes
	}
	for _, l := range likes {
		if l.UserID == *viewerID {
			viewerLikes = append(viewerLikes, l)
		}
	}
	return viewerLikes
}
