package dto

import (
	"time"

	"bimber/models"
)

// UserResponse định nghĩa response cho user
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Balance   float64   `json:"balance"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		Balance:   u.Balance,
		Enabled:   u.Enabled,
		CreatedAt: u.CreatedAt,
	}
}

func NewUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}

// UpdateUserRequest: trường nil thì giữ nguyên
type UpdateUserRequest struct {
	Username *string `json:"username" binding:"omitempty,notblank,min=6,max=64"`
	Email    *string `json:"email" binding:"omitempty,email"`
}

type FundAccountRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0,lte=999999999999.99"`
}

type BalanceResponse struct {
	UserID  uint    `json:"userId"`
	Balance float64 `json:"balance"`
}
