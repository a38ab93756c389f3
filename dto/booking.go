package dto

import (
	"bimber/models"
	"bimber/utils"
)

// BookingRequest: ngày dạng YYYY-MM-DD
type BookingRequest struct {
	HotelID   uint   `json:"hotelId" binding:"required"`
	RoomID    uint   `json:"roomId" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

type UpdateBookingRequest struct {
	RoomID    uint   `json:"roomId" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

type BookingResponse struct {
	ID        uint    `json:"id"`
	UserID    uint    `json:"userId"`
	HotelID   uint    `json:"hotelId"`
	RoomID    uint    `json:"roomId"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	Status    string  `json:"status"`
	Paid      bool    `json:"paid"`
	Amount    float64 `json:"amount"`
}

func NewBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		HotelID:   b.HotelID,
		RoomID:    b.RoomID,
		StartDate: b.StartDate.UTC().Format(utils.DateLayout),
		EndDate:   b.EndDate.UTC().Format(utils.DateLayout),
		Status:    b.Status,
		Paid:      b.Paid,
		Amount:    b.Amount,
	}
}

func NewBookingResponses(bookings []models.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, NewBookingResponse(&bookings[i]))
	}
	return out
}
