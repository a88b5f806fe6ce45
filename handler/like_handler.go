package handler

import (
	"pixelgram/middleware"
	"pixelgram/service"
	"pixelgram/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LikeHandler struct {
	likeSvc *service.LikeService
	metrics *middleware.Metrics
}

func NewLikeHandler(likeSvc *service.LikeService, metrics *middleware.Metrics) *LikeHandler {
	return &LikeHandler{likeSvc: likeSvc, metrics: metrics}
}

// ToggleLike 点赞/取消点赞
func (h *LikeHandler) ToggleLike(c *gin.Context) {
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

	liked, err := h.likeSvc.Toggle(userID, postID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.metrics.LikesToggled.Inc()
	utils.SuccessResponse(c, gin.H{"success": true, "liked": liked})
}
