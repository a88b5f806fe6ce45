package service

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"pixelgram/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// local@domain.tld，域名部分必须带点
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// 3-30 位，字母/数字/下划线
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,30}$`)
)

// bio 最大长度
const bioMaxLen = 150

type UserService struct {
	db    *gorm.DB
	cache *CacheService
}

func NewUserService(db *gorm.DB, cache *CacheService) *UserService {
	return &UserService{db: db, cache: cache}
}

// ProfileUpdateInput 资料更新入参
type ProfileUpdateInput struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Bio      *string `json:"bio"`
	Avatar   *string `json:"avatar"`
}

// ProfileUpdateResult 资料更新结果
// 与其它接口不同，资料更新从不抛错：校验失败时 Success=false，
// Field 标记出错的表单字段，前端据此在对应输入框下展示错误
type ProfileUpdateResult struct {
	Success bool               `json:"success"`
	User    *model.ProfileUser `json:"user,omitempty"`
	Error   string             `json:"error,omitempty"`
	Field   string             `json:"field,omitempty"`
}

func profileFailure(field, message string) ProfileUpdateResult {
	return ProfileUpdateResult{Success: false, Error: message, Field: field}
}

// UpdateProfile 更新个人资料
// 校验按固定顺序执行，任何一步失败立即返回；
// 用户名/邮箱只在发生变化时才做唯一性检查，原样重复提交是合法的空操作
func (s *UserService) UpdateProfile(actorID uuid.UUID, input ProfileUpdateInput) ProfileUpdateResult {
	// 1. 必须已登录
	if actorID == uuid.Nil {
		return profileFailure("general", "Unauthorized")
	}

	// 2. 去空白，必填检查
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	if username == "" || email == "" {
		return profileFailure("general", "Username and email are required")
	}

	// 3. 邮箱格式
	if !emailPattern.MatchString(email) {
		return profileFailure("email", "Invalid email format")
	}

	// 4. 用户名格式
	if !usernamePattern.MatchString(username) {
		return profileFailure("username", "Username must be 3-30 characters (letters, numbers, underscores)")
	}

	// 5. bio 长度
	var bio *string
	if input.Bio != nil {
		trimmed := strings.TrimSpace(*input.Bio)
		if len(trimmed) > bioMaxLen {
			return profileFailure("bio", "Bio must be 150 characters or less")
		}
		bio = &trimmed
	}

	// 6. 加载当前资料
	var current model.User
	err := s.db.First(&current, "id = ?", actorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return profileFailure("general", "User not found")
	}
	if err != nil {
		log.Printf("[ERROR] Failed to load user %s: %v", actorID, err)
		return profileFailure("general", "Failed to update profile")
	}

	// 7. 用户名变了才查重
	if username != current.Username {
		taken, err := s.usernameTaken(username)
		if err != nil {
			log.Printf("[ERROR] Failed to check username: %v", err)
			return profileFailure("general", "Failed to update profile")
		}
		if taken {
			return profileFailure("username", "Username is already taken")
		}
	}

	// 8. 邮箱同理
	if email != current.Email {
		taken, err := s.emailTaken(email)
		if err != nil {
			log.Printf("[ERROR] Failed to check email: %v", err)
			return profileFailure("general", "Failed to update profile")
		}
		if taken {
			return profileFailure("email", "Email is already in use")
		}
	}

	// 9. 落库，单条 UPDATE，不需要事务
	updates := map[string]interface{}{
		"username": username,
		"email":    email,
		"bio":      bio,
	}
	if input.Avatar != nil {
		updates["avatar"] = input.Avatar
	}
	if err := s.db.Model(&model.User{}).Where("id = ?", actorID).Updates(updates).Error; err != nil {
		log.Printf("[ERROR] Failed to update user %s: %v", actorID, err)
		return profileFailure("general", "Failed to update profile")
	}

	// 10. 缓存失效
	s.cache.InvalidateLayout()

	avatar := current.Avatar
	if input.Avatar != nil {
		avatar = input.Avatar
	}

	return ProfileUpdateResult{
		Success: true,
		User: &model.ProfileUser{
			ID:       actorID,
			Username: username,
			Email:    email,
			Bio:      bio,
			Avatar:   avatar,
		},
	}
}

func (s *UserService) usernameTaken(username string) (bool, error) {
	var count int64
	err := s.db.Model(&model.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (s *UserService) emailTaken(email string) (bool, error) {
	var count int64
	err := s.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// GetCurrentUser 获取当前登录用户的可编辑资料
func (s *UserService) GetCurrentUser(userID uuid.UUID) (*model.ProfileUser, error) {
	var user model.User
	err := s.db.First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFoundErr("User not found")
	}
	if err != nil {
		return nil, InternalErr("Failed to load user", err)
	}

	return &model.ProfileUser{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Bio:      user.Bio,
		Avatar:   user.Avatar,
	}, nil
}

// GetProfileByUsername 获取个人主页（帖子倒序，含点赞计数）
// viewerID 可为 nil，此时每个帖子的 likes 列表为空
func (s *UserService) GetProfileByUsername(username string, viewerID *uuid.UUID) (*model.UserProfile, error) {
	var user model.User
	err := s.db.First(&user, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFoundErr("User not found")
	}
	if err != nil {
		return nil, InternalErr("Failed to load profile", err)
	}

	var posts []model.Post
	if err := s.db.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}

	profilePosts := make([]model.ProfilePost, len(posts))
	if len(posts) > 0 {
		postIDs := make([]uuid.UUID, len(posts))
		for i, p := range posts {
			postIDs[i] = p.ID
		}

		var likes []model.Like
		if err := s.db.Where("post_id IN ?", postIDs).Find(&likes).Error; err != nil {
			return nil, fmt.Errorf("failed to query likes: %w", err)
		}
		likesByPost := make(map[uuid.UUID][]model.Like)
		for _, l := range likes {
			likesByPost[l.PostID] = append(likesByPost[l.PostID], l)
		}

		for i, p := range posts {
			postLikes := likesByPost[p.ID]
			profilePosts[i] = model.ProfilePost{
				ID:        p.ID,
				ImageURL:  p.ImageURL,
				Caption:   p.Caption,
				CreatedAt: p.CreatedAt,
				Count:     model.PostCounts{Likes: len(postLikes)},
				Likes:     filterViewerLikes(postLikes, viewerID),
			}
		}
	}

	return &model.UserProfile{
		ID:        user.ID,
		Username:  user.Username,
		Avatar:    user.Avatar,
		Bio:       user.Bio,
		CreatedAt: user.CreatedAt,
		Count:     model.ProfileCounts{Posts: len(posts)},
		Posts:     profilePosts,
	}, nil
}

// IsOwnProfile 判断某个主页是否属于当前访问者
func (s *UserService) IsOwnProfile(username string, viewerID *uuid.UUID) (bool, error) {
	if viewerID == nil {
		return false, nil
	}

	var user model.User
	err := s.db.Select("id").First(&user, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, InternalErr("Failed to load user", err)
	}
	return user.ID == *viewerID, nil
}
