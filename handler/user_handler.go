package handler

import (
	"net/http"

	"pixelgram/middleware"
	"pixelgram/service"
	"pixelgram/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	userSvc *service.UserService
}

func NewUserHandler(userSvc *service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// UpdateProfile 更新个人资料
// 这个接口从不返回非 200：校验失败也是 200 + {success:false, error, field}，
// 前端按 field 在表单对应位置展示错误
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	actorID := uuid.Nil
	if userID, exists := middleware.GetUserID(c); exists {
		actorID = userID
	}

	var input service.ProfileUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusOK, service.ProfileUpdateResult{
			Success: false,
			Error:   "Failed to update profile",
			Field:   "general",
		})
		return
	}

	result := h.userSvc.UpdateProfile(actorID, input)
	c.JSON(http.StatusOK, result)
}

// GetCurrentUser 当前登录用户的资料（编辑表单回填用）
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	user, err := h.userSvc.GetCurrentUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user})
}

// GetProfile 个人主页（匿名可访问）
func (h *UserHandler) GetProfile(c *gin.Context) {
	var viewerID *uuid.UUID
	if userID, exists := middleware.GetUserID(c); exists {
		viewerID = &userID
	}

	profile, err := h.userSvc.GetProfileByUsername(c.Param("username"), viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"profile": profile})
}

// CheckIsOwnProfile 判断主页归属（匿名时恒为 false）
func (h *UserHandler) CheckIsOwnProfile(c *gin.Context) {
	var viewerID *uuid.UUID
	if userID, exists := middleware.GetUserID(c); exists {
		viewerID = &userID
	}

	isOwn, err := h.userSvc.IsOwnProfile(c.Param("username"), viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"is_own_profile": isOwn})
}
