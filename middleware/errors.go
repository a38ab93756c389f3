package middleware

import (
	"bimber/response"
	"bimber/services/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler ghi log lỗi gắn vào context, trả 500 nếu handler chưa trả response
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		requestID, _ := c.Get(requestIDKey)
		for _, e := range c.Errors {
			log.Error("request %v %s %s: %v", requestID, c.Request.Method, c.FullPath(), e.Err)
		}
		if !c.Writer.Written() {
			response.ServerError(c)
		}
	}
}

// Recovery bắt panic, ghi log và trả 500
func Recovery(log logger.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, rec interface{}) {
		log.Error("panic on %s %s: %v", c.Request.Method, c.Request.URL.Path, rec)
		response.ServerError(c)
		c.Abort()
	})
}
