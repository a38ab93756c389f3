package models

import "time"

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UserID    uint      `gorm:"uniqueIndex:idx_comment_user_hotel;not null" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	HotelID   uint      `gorm:"uniqueIndex:idx_comment_user_hotel;index;not null" json:"hotelId"`
	Content   string    `gorm:"type:text;not null" json:"content"`
}
