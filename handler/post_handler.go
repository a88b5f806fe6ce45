package handler

import (
	"pixelgram/middleware"
	"pixelgram/service"
	"pixelgram/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PostHandler struct {
	postSvc *service.PostService
	metrics *middleware.Metrics
}

func NewPostHandler(postSvc *service.PostService, metrics *middleware.Metrics) *PostHandler {
	return &PostHandler{postSvc: postSvc, metrics: metrics}
}

// CreatePost 发布帖子
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req struct {
		ImageURL string  `json:"image_url" binding:"required"`
		Caption  *string `json:"caption"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	post, err := h.postSvc.Create(userID, req.ImageURL, req.Caption)
	if err != nil {
		respondError(c, err)
		return
	}

	h.metrics.PostsCreated.Inc()
	utils.CreatedResponse(c, gin.H{"post": post})
}

// DeletePost 删除帖子
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "invalid post id")
		return
	}

	if err := h.postSvc.Delete(userID, postID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"success": true})
}

// GetFeed 首页信息流（匿名可访问）
func (h *PostHandler) GetFeed(c *gin.Context) {
	var viewerID *uuid.UUID
	if userID, exists := middleware.GetUserID(c); exists {
		viewerID = &userID
	}

	feed, err := h.postSvc.GetFeed(viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"posts": feed})
}
