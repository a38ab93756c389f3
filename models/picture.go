package models

import "time"

// Picture là ảnh của khách sạn, file nằm trên kho ảnh (Cloudinary)
type Picture struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	HotelID   uint      `gorm:"index;not null" json:"hotelId"`
	FileName  string    `gorm:"size:255" json:"fileName"`
	FileType  string    `gorm:"size:64" json:"fileType"`
	URL       string    `gorm:"not null" json:"url"`
	PublicID  string    `gorm:"size:255" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

type RoomPicture struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoomID    uint      `gorm:"index;not null" json:"roomId"`
	FileName  string    `gorm:"size:255" json:"fileName"`
	FileType  string    `gorm:"size:64" json:"fileType"`
	URL       string    `gorm:"not null" json:"url"`
	PublicID  string    `gorm:"size:255" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
