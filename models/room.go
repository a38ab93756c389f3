package models

import (
	"fmt"
	"time"

	"bimber/constants"
)

// Room luôn được tạo với Available = true, không dùng default của gorm cho bool
type Room struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
	HotelID   uint          `gorm:"index;not null" json:"hotelId"`
	Hotel     *Hotel        `gorm:"foreignKey:HotelID" json:"-"`
	RoomType  string        `gorm:"size:16;not null;index" json:"roomType"`
	Price     float64       `gorm:"type:decimal(14,2);not null" json:"price"`
	Available bool          `gorm:"not null;index" json:"available"`
	Pictures  []RoomPicture `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"pictures,omitempty"`
}

var roomTypes = []string{
	constants.RoomTypeSingle,
	constants.RoomTypeDouble,
	constants.RoomTypeSuite,
	constants.RoomTypeDeluxe,
}

func IsValidRoomType(t string) bool {
	for _, rt := range roomTypes {
		if rt == t {
			return true
		}
	}
	return false
}

func (r *Room) ValidateType() error {
	if !IsValidRoomType(r.RoomType) {
		return fmt.Errorf("invalid room type: %s", r.RoomType)
	}
	return nil
}
