package service

import (
	"strings"
	"testing"

	"pixelgram/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUpdateProfile_Unauthorized 未登录时返回结构化错误，不写库
func TestUpdateProfile_Unauthorized(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db, newTestCache())
	seedUser(t, db, "alice", "alice@example.com")

	result := svc.UpdateProfile(uuid.Nil, ProfileUpdateInput{
		Username: "newname",
		Email:    "new@example.com",
	})

	assert.False(t, result.Success)
	assert.Equal(t, "Unauthorized", result.Error)
	assert.Equal(t, "general", result.Field)

	var user model.User
	require.NoError(t, db.First(&user, "username = ?", "alice").Error)
}

// TestUpdateProfile_RequiredFields 用户名/邮箱去空白后为空都算缺失
func TestUpdateProfile_RequiredFields(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db, newTestCache())
	alice := seedUser(t, db, "alice", "alice@example.com")

	for _, input := range []ProfileUpdateInput{
		{Username: "", Email: "a@b.com"},
		{Username: "   ", Email: "a@b.com"},
		{Username: "alice", Email: ""},
		{Username: "alice", Email: "  "},
	} {
		result := svc.UpdateProfile(alice.ID, input)
		assert.False(t, result.Success)
		assert.Equal(t, "Username and email are required", result.Error)
		assert.Equal(t, "general", result.Field)
	}
}

// TestUpdateProfile_EmailFormat 邮箱必须是 local@domain.tld
func TestUpdateProfile_EmailFormat(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db, newTestCache())
	alice := seedUser(t, db, "alice", "alice@example.com")

	for _, email := range []string{"invalid-email", "test@invalid", "@example.com", "a b@example.com"} {
		result := svc.UpdateProfile(alice.ID, ProfileUpdateInput{
			Username: "alice",
			Email:    email,
		})
		assert.False(t, result.Success, "email %q should be rejected", email)
		assert.Equal(t, "Invalid email format", result.Error)
		assert.Equal(t, "email", result.Field)
	}

	result := svc.UpdateProfile(alice.ID, ProfileUpdateInput{
		Username: "alice",
		Email:    "valid@example.com",
	})
	assert.True(t, result.Success)
}

// TestUpdateProfile_UsernameFormat 用户名 3-30 位，字母/数字/下划线
// 边界：2 拒绝，3 接受，30 接受，31 拒绝
func TestUpdateProfile_UsernameFormat(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db, newTestCache())
	alice := seedUser(t, db, "alice", "alice@example.com")

	rejected := []string{
		strings.Repeat("a", 2),
		strings.Repeat("a", 31),
		"test-user!",
		"test user",
		"名字",
	}
	for _, username := range rejected {
		result := svc.UpdateProfile(alice.ID, ProfileUpdateInput{
			Username: username,
			Email:    "alice@example.com",
		})
		assert.False(t, result.Success, "username %q should be rejected", username)
		assert.Equal(t, "Username must be 3-30 characters (letters, numbers, underscores)", result.Error)
		assert.Equal(t, "username", result.Field)
	}

	accepted := []string{
		strings.Repeat("a", 3),
		strings.Repeat("a", 30),
		"user_name_42",
	}
	for _, username := range accepted {
		result := svc.UpdateProfile(alice.ID, ProfileUpdateInput{
			Username: username,
			Email:    "alice@example.com",
		})
		assert.True(t, result.Success, "username %q should be accepted", username)
	}
}

// TestUpdateProfile_BioBoundary 150 字符刚好可以，151 拒绝
func TestUpdateProfile_BioBoundary(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db, newTestCache())
	alice := seedUser(t, db, "alice", "alice@example.com")

	bio150 := strings.Repeat("x", 150)
	result := svc.UpdateProfile(alice.ID, ProfileUpdateInput{
		Username: "alice",
		Email:    "alice@example.com",
		Bio:      &bio150,
	})
	assert.True(t, result.Success)
	require.NotNil(t, result.User.Bio)
	assert.Len(t, *result.User.Bio, 150)

	bio151 := strings.Repeat("x", 151)
	result = svc.UpdateProfile(alice.ID, ProfileUpdateInput{
		Username: "alice",
		Email:    "alice@example.com",
		Bio:      &bio151,
	})
	assert.False(t, result.Success)
	assert.Equal(t, "Bio must be 150 characters or less", result.Error)
	assert.Equal(t, "bio", result.Field)
}

// TestUpdateProfile_UniquenessConflicts 改成已被占用的用户名/邮箱
func TestUpdateProfile_UniquenessConflicts(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db, newTestCache())
	alice := seedUser(t, db, "alice", "alice@example.com")
	seedUser(t, db, "bob", "bob@example.com")

	result := svc.UpdateProfile(alice.ID, ProfileUpdateInput{
		Username: "bob",
		Email:    "alice@example.com",
	})
	assert.False(t, result.Success)
	assert.Equal(t, "Username is already taken", result.Error)
	assert.Equal(t, "username", result.Field)

	result = svc.UpdateProfile(alice.ID, ProfileUpdateInput{
		Username: "alice",
		Email:    "bob@example.com",
	})
	assert.False(t, result.Success)
	assert.Equal(t, "Email is already in use", result.Error)
	assert.Equal(t, "email", result.Field)
}

// TestUpdateProfile_UnchangedSkipsUniquenessCheck 原样重提是合法空操作：
// 用户名/邮箱没变时不查重，自己的名字"被占用"也不报冲突
func TestUpdateProfile_UnchangedSkipsUniquenessCheck(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db, newTestCache())
	alice := seedUser(t, db, "alice", "alice@example.com")

	result := svc.UpdateProfile(alice.ID, ProfileUpdateInput{
		Username: "alice",
		Email:    "alice@example.com",
	})
	assert.True(t, result.Success)
	assert.Equal(t, "alice", result.User.Username)
}

// TestUpdateProfile_UserGone 会话指向的用户已不存在
func TestUpdateProfile_UserGone(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db, newTestCache())

	result := svc.UpdateProfile(uuid.New(), ProfileUpdateInput{
		Username: "ghost",
		Email:    "ghost@example.com",
	})
	assert.False(t, result.Success)
	assert.Equal(t, "User not found", result.Error)
	assert.Equal(t, "general", result.Field)
}

// TestUpdateProfile_PersistsAllFields 成功路径落库检查（含头像）
func TestUpdateProfile_PersistsAllFields(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db, newTestCache())
	alice := seedUser(t, db, "alice", "alice@example.com")

	bio := "hello there"
	avatar := "https://example.com/avatar.jpg"
	result := svc.UpdateProfile(alice.ID, ProfileUpdateInput{
		Username: "alice_2",
		Email:    "alice2@example.com",
		Bio:      &bio,
		Avatar:   &avatar,
	})
	require.True(t, result.Success)

	var stored model.User
	require.NoError(t, db.First(&stored, "id = ?", alice.ID).Error)
	assert.Equal(t, "alice_2", stored.Username)
	assert.Equal(t, "alice2@example.com", stored.Email)
	require.NotNil(t, stored.Bio)
	assert.Equal(t, "hello there", *stored.Bio)
	require.NotNil(t, stored.Avatar)
	assert.Equal(t, avatar, *stored.Avatar)
}

// TestGetProfileByUsername 主页包含倒序帖子和点赞计数
func TestGetProfileByUsername(t *testing.T) {
	db := openTestDB(t)
	userSvc := NewUserService(db, newTestCache())
	likeSvc := NewLikeService(db, newTestCache())

	alice := seedUser(t, db, "alice", "alice@example.com")
	bob := seedUser(t, db, "bob", "bob@example.com")
	post := seedPost(t, db, alice.ID)
	seedPost(t, db, alice.ID)

	_, err := likeSvc.Toggle(bob.ID, post.ID)
	require.NoError(t, err)

	profile, err := userSvc.GetProfileByUsername("alice", &bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, 2, profile.Count.Posts)
	require.Len(t, profile.Posts, 2)

	// 未知用户
	_, err = userSvc.GetProfileByUsername("nobody", nil)
	require.Error(t, err)
	svcErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, svcErr.Kind)
}

// TestIsOwnProfile 匿名恒为 false
func TestIsOwnProfile(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db, newTestCache())
	alice := seedUser(t, db, "alice", "alice@example.com")
	bob := seedUser(t, db, "bob", "bob@example.com")

	isOwn, err := svc.IsOwnProfile("alice", &alice.ID)
	require.NoError(t, err)
	assert.True(t, isOwn)

	isOwn, err = svc.IsOwnProfile("alice", &bob.ID)
	require.NoError(t, err)
	assert.False(t, isOwn)

	isOwn, err = svc.IsOwnProfile("alice", nil)
	require.NoError(t, err)
	assert.False(t, isOwn)
}
