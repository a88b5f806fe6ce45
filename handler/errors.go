package handler

import (
	"log"

	"pixelgram/service"
	"pixelgram/utils"

	"github.com/gin-gonic/gin"
)

// respondError 把业务错误类别映射到 HTTP 状态码
// Internal 类错误对外只给通用消息，底层错误只进日志
func respondError(c *gin.Context, err error) {
	svcErr, ok := service.AsError(err)
	if !ok {
		log.Printf("[ERROR] Unexpected error: %v", err)
		utils.InternalServerError(c, "internal server error")
		return
	}

	switch svcErr.Kind {
	case service.KindUnauthorized:
		utils.Unauthorized(c, svcErr.Message)
	case service.KindValidation:
		utils.BadRequest(c, svcErr.Message)
	case service.KindNotFound:
		utils.NotFound(c, svcErr.Message)
	case service.KindForbidden:
		utils.Forbidden(c, svcErr.Message)
	case service.KindConflict:
		utils.Conflict(c, svcErr.Message)
	default:
		if svcErr.Err != nil {
			log.Printf("[ERROR] %s: %v", svcErr.Message, svcErr.Err)
		}
		utils.InternalServerError(c, svcErr.Message)
	}
}
