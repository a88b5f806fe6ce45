package handler

import (
	"pixelgram/middleware"
	"pixelgram/service"
	"pixelgram/utils"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	uploadSvc *service.UploadService
}

func NewUploadHandler(uploadSvc *service.UploadService) *UploadHandler {
	return &UploadHandler{uploadSvc: uploadSvc}
}

// PresignPostUpload 签发帖子图片的直传 URL
func (h *UploadHandler) PresignPostUpload(c *gin.Context) {
	h.presign(c, service.UploadPrefixPosts)
}

// PresignAvatarUpload 签发头像的直传 URL
func (h *UploadHandler) PresignAvatarUpload(c *gin.Context) {
	h.presign(c, service.UploadPrefixAvatars)
}

func (h *UploadHandler) presign(c *gin.Context, prefix string) {
	_, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req struct {
		Filename    string `json:"filename" binding:"required"`
		ContentType string `json:"content_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	ticket, err := h.uploadSvc.PresignUpload(c.Request.Context(), prefix, req.Filename, req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, ticket)
}
