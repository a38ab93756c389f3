package controllers

import (
	"strings"

	"bimber/middleware"
	"bimber/response"
	"bimber/services/logger"
	"bimber/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

// WebSocketController nâng cấp kết nối /ws và gắn user id vào session
type WebSocketController struct {
	m      *melody.Melody
	tokens middleware.TokenVerifier
	logger logger.Logger
}

func NewWebSocketController(m *melody.Melody, tokens middleware.TokenVerifier, log logger.Logger) *WebSocketController {
	wc := &WebSocketController{m: m, tokens: tokens, logger: log}
	m.HandleConnect(func(s *melody.Session) {
		id, _ := s.Get(notification.SessionUserKey)
		log.Debug("websocket connected user=%v", id)
	})
	m.HandleDisconnect(func(s *melody.Session) {
		id, _ := s.Get(notification.SessionUserKey)
		log.Debug("websocket disconnected user=%v", id)
	})
	m.HandleError(func(s *melody.Session, err error) {
		log.Error("websocket error: %v", err)
	})
	return wc
}

// Connect: trình duyệt không gửi được header khi mở websocket nên token đi qua ?token=
func (wc *WebSocketController) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
	}
	if token == "" {
		response.Unauthorized(c)
		return
	}
	userID, _, err := wc.tokens.GetUserIDFromToken(token)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	keys := map[string]interface{}{notification.SessionUserKey: userID}
	if err := wc.m.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
		wc.logger.Error("websocket upgrade failed for user %d: %v", userID, err)
	}
}
