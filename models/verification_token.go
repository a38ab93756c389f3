package models

import "time"

// VerificationToken là mã kích hoạt gửi qua email khi đăng ký
type VerificationToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"uniqueIndex;size:64;not null" json:"token"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expiresAt"`
	Used      bool      `gorm:"not null" json:"used"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (t *VerificationToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
