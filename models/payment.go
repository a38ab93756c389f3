package models

import "time"

// Payment là một dòng trong sổ giao dịch của user
type Payment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	BookingID *uint     `gorm:"index" json:"bookingId,omitempty"`
	Amount    float64   `gorm:"type:decimal(14,2);not null" json:"amount"`
	Kind      string    `gorm:"size:16;not null;index" json:"kind"`
	Success   bool      `gorm:"not null" json:"success"`
	Reference string    `gorm:"uniqueIndex;size:64;not null" json:"reference"`
}
