package dto

import (
	"time"

	"bimber/models"
)

type CreateHotelRequest struct {
	Name        string              `json:"name" binding:"required,notblank,max=255"`
	State       string              `json:"state" binding:"required,notblank"`
	Location    string              `json:"location" binding:"required,notblank"`
	Amenities   []string            `json:"amenities"`
	Description string              `json:"description"`
	Rooms       []CreateRoomRequest `json:"rooms" binding:"omitempty,dive"`
}

// UpdateHotelRequest: trường nil thì giữ nguyên
type UpdateHotelRequest struct {
	Name        *string   `json:"name" binding:"omitempty,notblank,max=255"`
	State       *string   `json:"state" binding:"omitempty,notblank"`
	Location    *string   `json:"location" binding:"omitempty,notblank"`
	Amenities   *[]string `json:"amenities"`
	Description *string   `json:"description"`
}

type HotelResponse struct {
	ID          uint              `json:"id"`
	Name        string            `json:"name"`
	State       models.State      `json:"state"`
	StateName   string            `json:"stateName"`
	Location    string            `json:"location"`
	Amenities   []string          `json:"amenities"`
	Description string            `json:"description"`
	Rooms       []RoomResponse    `json:"rooms,omitempty"`
	Pictures    []PictureResponse `json:"pictures,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

type HotelRankResponse struct {
	Hotel    HotelResponse `json:"hotel"`
	Bookings int64         `json:"bookings"`
}

type StateCountResponse struct {
	State models.State `json:"state"`
	Count int64        `json:"count"`
}

func NewHotelResponse(h *models.Hotel) HotelResponse {
	resp := HotelResponse{
		ID:          h.ID,
		Name:        h.Name,
		State:       h.State,
		StateName:   h.State.DisplayName(),
		Location:    h.Location,
		Amenities:   []string(h.Amenities),
		Description: h.Description,
		CreatedAt:   h.CreatedAt,
	}
	if resp.Amenities == nil {
		resp.Amenities = []string{}
	}
	if len(h.Rooms) > 0 {
		resp.Rooms = NewRoomResponses(h.Rooms)
	}
	for _, p := range h.Pictures {
		resp.Pictures = append(resp.Pictures, PictureResponse{ID: p.ID, URL: p.URL, FileName: p.FileName, FileType: p.FileType})
	}
	return resp
}

func NewHotelResponses(hotels []models.Hotel) []HotelResponse {
	out := make([]HotelResponse, 0, len(hotels))
	for i := range hotels {
		out = append(out, NewHotelResponse(&hotels[i]))
	}
	return out
}
