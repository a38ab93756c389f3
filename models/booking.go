package models

import "time"

// Booking: StartDate/EndDate là ngày lịch, chuẩn hóa về 00:00 UTC
type Booking struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	HotelID   uint      `gorm:"index;not null" json:"hotelId"`
	Hotel     *Hotel    `gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE" json:"-"`
	RoomID    uint      `gorm:"index;not null" json:"roomId"`
	Room      *Room     `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"-"`
	StartDate time.Time `gorm:"not null;index" json:"startDate"`
	EndDate   time.Time `gorm:"not null;index" json:"endDate"`
	Status    string    `gorm:"size:16;not null;index" json:"status"`
	Paid      bool      `gorm:"not null" json:"paid"`
	Amount    float64   `gorm:"type:decimal(14,2);not null;default:0" json:"amount"`
}

// Nights là số đêm giữa hai ngày
func (b *Booking) Nights() int {
	return int(b.EndDate.Sub(b.StartDate).Hours() / 24)
}

// Overlaps dùng khoảng nửa mở [start, end)
func (b *Booking) Overlaps(start, end time.Time) bool {
	return start.Before(b.EndDate) && end.After(b.StartDate)
}
