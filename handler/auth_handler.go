package handler

import (
	"time"

	"pixelgram/middleware"
	"pixelgram/service"
	"pixelgram/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authSvc   *service.AuthService
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthHandler(authSvc *service.AuthService, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authSvc:   authSvc,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Signup 注册
func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	user, err := h.authSvc.Signup(req.Email, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"success": true, "user": user})
}

// Login 密码登录，成功后签发 Bearer Token
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	user, err := h.authSvc.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := middleware.GenerateToken(h.jwtSecret, user.ID, h.tokenTTL)
	if err != nil {
		respondError(c, service.InternalErr("Failed to log in", err))
		return
	}

	utils.SuccessResponse(c, gin.H{
		"token": token,
		"user":  user.Summary(),
	})
}
