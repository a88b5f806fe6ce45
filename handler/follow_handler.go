package handler

import (
	"pixelgram/middleware"
	"pixelgram/service"
	"pixelgram/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FollowHandler struct {
	followSvc *service.FollowService
	metrics   *middleware.Metrics
}

func NewFollowHandler(followSvc *service.FollowService, metrics *middleware.Metrics) *FollowHandler {
	return &FollowHandler{followSvc: followSvc, metrics: metrics}
}

// ToggleFollow 关注/取消关注
func (h *FollowHandler) ToggleFollow(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req struct {
		TargetUserID uuid.UUID `json:"target_user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	following, err := h.followSvc.Toggle(userID, req.TargetUserID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.metrics.FollowsToggled.Inc()
	utils.SuccessResponse(c, gin.H{"success": true, "following": following})
}
