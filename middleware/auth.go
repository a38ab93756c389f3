package middleware

import (
	"net/http"
	"strings"

	"bimber/constants"
	apperrors "bimber/errors"
	"bimber/response"

	"github.com/gin-gonic/gin"
)

// TokenVerifier đọc user id và role từ JWT
type TokenVerifier interface {
	GetUserIDFromToken(token string) (uint, string, error)
}

// AuthMiddleware xử lý authentication
func AuthMiddleware(tokens TokenVerifier, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		userID, userRole, err := tokens.GetUserIDFromToken(tokenString)
		if err != nil {
			if apperrors.HasCode(err, apperrors.ErrCodeExpiredToken) {
				response.Error(c, http.StatusUnauthorized, "Token has expired")
			} else {
				response.Unauthorized(c)
			}
			c.Abort()
			return
		}

		// Kiểm tra role nếu có yêu cầu
		if len(roles) > 0 && !hasRole(userRole, roles) {
			response.Forbidden(c)
			c.Abort()
			return
		}

		// Lưu thông tin user vào context
		c.Set(constants.CtxUserID, userID)
		c.Set(constants.CtxUserRole, userRole)
		c.Next()
	}
}

// RoleMiddleware kiểm tra role của user, đặt sau AuthMiddleware
func RoleMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(constants.CtxUserRole)
		if !exists {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		role, _ := userRole.(string)
		if !hasRole(role, roles) {
			response.Forbidden(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

func hasRole(role string, roles []string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// CurrentUser trả về user đã xác thực trong request
func CurrentUser(c *gin.Context) (uint, string, bool) {
	id, ok := c.Get(constants.CtxUserID)
	if !ok {
		return 0, "", false
	}
	userID, ok := id.(uint)
	if !ok {
		return 0, "", false
	}
	role, _ := c.Get(constants.CtxUserRole)
	roleStr, _ := role.(string)
	return userID, roleStr, true
}
