package service

import (
	"fmt"
	"testing"

	"pixelgram/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB 每个测试一个独立的内存库
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
		&model.Like{},
		&model.Follow{},
	))
	return db
}

// newTestCache 无 Redis 的缓存服务（失效操作为空操作）
func newTestCache() *CacheService {
	return NewCacheService(nil)
}

// seedUser 插入测试用户
func seedUser(t *testing.T, db *gorm.DB, username, email string) *model.User {
	t.Helper()

	user := &model.User{
		Username: username,
		Email:    email,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// seedPost 插入测试帖子
func seedPost(t *testing.T, db *gorm.DB, userID uuid.UUID) *model.Post {
	t.Helper()

	post := &model.Post{
		UserID:   userID,
		ImageURL: "https://example.com/img.jpg",
	}
	require.NoError(t, db.Create(post).Error)
	return post
}
