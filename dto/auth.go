package dto

import "time"

type RegisterRequest struct {
	Username string `json:"username" binding:"required,notblank,min=6,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required,notblank"`
	Password   string `json:"password" binding:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// RegisterResponse không trả token, tài khoản cần kích hoạt qua email
type RegisterResponse struct {
	User    UserResponse `json:"user"`
	Message string       `json:"message"`
}
