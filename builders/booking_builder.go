package builders

import (
	"time"

	"bimber/constants"
	"bimber/models"
)

// BookingBuilder giúp tạo booking theo từng bước
type BookingBuilder struct {
	booking *models.Booking
}

// NewBookingBuilder tạo builder với trạng thái PENDING
func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		booking: &models.Booking{Status: constants.BookingStatusPending},
	}
}

// WithUser thêm thông tin user
func (b *BookingBuilder) WithUser(userID uint) *BookingBuilder {
	b.booking.UserID = userID
	return b
}

// WithRoom gắn phòng cùng khách sạn chứa nó
func (b *BookingBuilder) WithRoom(hotelID, roomID uint) *BookingBuilder {
	b.booking.HotelID = hotelID
	b.booking.RoomID = roomID
	return b
}

// WithDates thêm ngày nhận và trả phòng
func (b *BookingBuilder) WithDates(start, end time.Time) *BookingBuilder {
	b.booking.StartDate = start
	b.booking.EndDate = end
	return b
}

// WithAmount thêm số tiền đã trừ và đánh dấu đã thanh toán
func (b *BookingBuilder) WithAmount(amount float64) *BookingBuilder {
	b.booking.Amount = amount
	b.booking.Paid = amount > 0
	return b
}

// Build tạo booking hoàn chỉnh
func (b *BookingBuilder) Build() *models.Booking {
	return b.booking
}

// RoomBuilder tạo phòng mới, phòng mới luôn trống
type RoomBuilder struct {
	room *models.Room
}

func NewRoomBuilder(hotelID uint) *RoomBuilder {
	return &RoomBuilder{
		room: &models.Room{HotelID: hotelID, Available: true},
	}
}

func (b *RoomBuilder) WithType(roomType string) *RoomBuilder {
	b.room.RoomType = roomType
	return b
}

func (b *RoomBuilder) WithPrice(price float64) *RoomBuilder {
	b.room.Price = price
	return b
}

func (b *RoomBuilder) Build() *models.Room {
	return b.room
}
