package services

import (
	"errors"
	"fmt"
	"time"

	apperrors "bimber/errors"

	"github.com/dgrijalva/jwt-go"
)

type UserInfo struct {
	UserId uint   `json:"userid"`
	Role   string `json:"role"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

// TokenService ký và kiểm tra JWT HS256
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *TokenService) GenerateToken(userInfo UserInfo) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := &Claims{
		UserInfo: userInfo,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: expiresAt.Unix(),
			Subject:   fmt.Sprintf("%d", userInfo.UserId),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// GetUserIDFromToken kiểm tra chữ ký rồi lấy userID và role
func (s *TokenService) GetUserIDFromToken(tokenString string) (uint, string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return 0, "", apperrors.NewAppError(apperrors.ErrCodeExpiredToken, "Token has expired", err)
		}
		return 0, "", apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Invalid token", err)
	}
	if !token.Valid || claims.UserInfo.UserId == 0 || claims.UserInfo.Role == "" {
		return 0, "", apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Token is missing user information", nil)
	}
	return claims.UserInfo.UserId, claims.UserInfo.Role, nil
}
