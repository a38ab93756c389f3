package dto

import (
	"strings"

	"bimber/models"
)

type CreateRoomRequest struct {
	RoomType string  `json:"roomType" form:"roomType" binding:"required,roomtype"`
	Price    float64 `json:"price" form:"price" binding:"required,gt=0,lte=999999999999.99"`
}

// NormalizedType trả về loại phòng viết hoa
func (r CreateRoomRequest) NormalizedType() string {
	return strings.ToUpper(strings.TrimSpace(r.RoomType))
}

type UpdateRoomRequest struct {
	RoomType *string  `json:"roomType" binding:"omitempty,roomtype"`
	Price    *float64 `json:"price" binding:"omitempty,gt=0,lte=999999999999.99"`
}

type PictureResponse struct {
	ID       uint   `json:"id"`
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
}

type RoomResponse struct {
	ID        uint              `json:"id"`
	HotelID   uint              `json:"hotelId"`
	RoomType  string            `json:"roomType"`
	Price     float64           `json:"price"`
	Available bool              `json:"available"`
	Pictures  []PictureResponse `json:"pictures,omitempty"`
}

type RoomAvailabilityResponse struct {
	RoomID    uint `json:"roomId"`
	Available bool `json:"available"`
}

func NewRoomResponse(r *models.Room) RoomResponse {
	resp := RoomResponse{
		ID:        r.ID,
		HotelID:   r.HotelID,
		RoomType:  r.RoomType,
		Price:     r.Price,
		Available: r.Available,
	}
	for _, p := range r.Pictures {
		resp.Pictures = append(resp.Pictures, PictureResponse{ID: p.ID, URL: p.URL, FileName: p.FileName, FileType: p.FileType})
	}
	return resp
}

func NewRoomResponses(rooms []models.Room) []RoomResponse {
	out := make([]RoomResponse, 0, len(rooms))
	for i := range rooms {
		out = append(out, NewRoomResponse(&rooms[i]))
	}
	return out
}
