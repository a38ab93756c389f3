package models

import (
	"time"

	"bimber/constants"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Username  string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"size:16;not null;index" json:"role"`
	Balance   float64   `gorm:"type:decimal(14,2);not null;default:0" json:"balance"`
	Enabled   bool      `gorm:"not null" json:"enabled"`
	Provider  string    `gorm:"size:16;not null;default:local" json:"provider"`
}

func (u *User) IsAdmin() bool {
	return u.Role == constants.RoleAdmin
}
