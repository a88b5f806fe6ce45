package service

import (
	"testing"

	"pixelgram/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLikeToggle_CreateThenRemove 首次点赞创建记录，再次点赞删除记录
func TestLikeToggle_CreateThenRemove(t *testing.T) {
	db := openTestDB(t)
	svc := NewLikeService(db, newTestCache())

	user := seedUser(t, db, "alice", "alice@example.com")
	post := seedPost(t, db, user.ID)

	// 无点赞记录时 → 创建，状态 liked=true
	liked, err := svc.Toggle(user.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	var count int64
	db.Model(&model.Like{}).Where("user_id = ? AND post_id = ?", user.ID, post.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	// 再点一次 → 删除，状态 liked=false
	liked, err = svc.Toggle(user.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	db.Model(&model.Like{}).Where("user_id = ? AND post_id = ?", user.ID, post.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

// TestLikeToggle_RoundTripRestoresState 连续两次开关回到初始状态
func TestLikeToggle_RoundTripRestoresState(t *testing.T) {
	db := openTestDB(t)
	svc := NewLikeService(db, newTestCache())

	user := seedUser(t, db, "bob", "bob@example.com")
	post := seedPost(t, db, user.ID)

	// 预置一条点赞
	_, err := svc.Toggle(user.ID, post.ID)
	require.NoError(t, err)

	var before int64
	db.Model(&model.Like{}).Count(&before)

	_, err = svc.Toggle(user.ID, post.ID)
	require.NoError(t, err)
	_, err = svc.Toggle(user.ID, post.ID)
	require.NoError(t, err)

	var after int64
	db.Model(&model.Like{}).Count(&after)
	assert.Equal(t, before, after)
}

// TestLikeToggle_IndependentPerUser 不同用户对同一帖子的点赞互不影响
func TestLikeToggle_IndependentPerUser(t *testing.T) {
	db := openTestDB(t)
	svc := NewLikeService(db, newTestCache())

	alice := seedUser(t, db, "alice", "alice@example.com")
	bob := seedUser(t, db, "bob", "bob@example.com")
	post := seedPost(t, db, alice.ID)

	liked, err := svc.Toggle(alice.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = svc.Toggle(bob.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	// alice 取消后 bob 的点赞仍在
	liked, err = svc.Toggle(alice.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	var count int64
	db.Model(&model.Like{}).Where("user_id = ?", bob.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}
