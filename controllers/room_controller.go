package controllers

import (
	"strconv"

	"bimber/dto"
	"bimber/response"
	"bimber/services"
	"bimber/validator"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) *RoomController {
	return &RoomController{rooms: rooms}
}

// CreateRoom nhận JSON, hoặc multipart với roomType, price và các file "pictures"
// @Summary  Add a room to a hotel
// @Tags     rooms
// @Security BearerAuth
// @Param    id path int true "hotel id"
// @Success  201 {object} response.Response{data=dto.RoomResponse}
// @Router   /hotels/{id}/rooms [post]
func (rc *RoomController) CreateRoom(c *gin.Context) {
	hotelID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateRoomRequest
	if err := c.ShouldBind(&req); err != nil {
		response.FromError(c, validator.BindingError(err))
		return
	}
	files, closeAll, err := pictureFiles(c, "pictures")
	if err != nil {
		response.FromError(c, err)
		return
	}
	defer closeAll()

	room, err := rc.rooms.CreateRoom(c.Request.Context(), hotelID, req, files)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, room)
}

func (rc *RoomController) EditRoom(c *gin.Context) {
	roomID, ok := parseID(c, "roomId")
	if !ok {
		return
	}
	var req dto.UpdateRoomRequest
	if !bindJSON(c, &req) {
		return
	}
	room, err := rc.rooms.EditRoom(c.Request.Context(), roomID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, room)
}

func (rc *RoomController) DeleteRoom(c *gin.Context) {
	roomID, ok := parseID(c, "roomId")
	if !ok {
		return
	}
	if err := rc.rooms.DeleteRoom(c.Request.Context(), roomID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.IDResponse{ID: roomID})
}

// RoomsByHotel lọc theo ?type= hoặc ?available=true
// @Summary  List rooms of a hotel
// @Tags     rooms
// @Param    id        path  int    true  "hotel id"
// @Param    type      query string false "SINGLE, DOUBLE, SUITE or DELUXE"
// @Param    available query bool   false "only available rooms"
// @Success  200 {object} response.Response{data=[]dto.RoomResponse}
// @Router   /hotels/{id}/rooms [get]
func (rc *RoomController) RoomsByHotel(c *gin.Context) {
	hotelID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var (
		rooms []dto.RoomResponse
		err   error
	)
	switch {
	case c.Query("type") != "":
		rooms, err = rc.rooms.FilterRoomsByType(c.Request.Context(), hotelID, c.Query("type"))
	case c.Query("available") == "true":
		rooms, err = rc.rooms.AvailableRoomsByHotel(c.Request.Context(), hotelID)
	default:
		rooms, err = rc.rooms.RoomsByHotel(c.Request.Context(), hotelID)
	}
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, rooms)
}

func (rc *RoomController) IsAvailable(c *gin.Context) {
	roomID, ok := parseID(c, "roomId")
	if !ok {
		return
	}
	resp, err := rc.rooms.IsRoomAvailable(c.Request.Context(), roomID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, resp)
}

func (rc *RoomController) Activate(c *gin.Context) {
	rc.setAvailability(c, true)
}

func (rc *RoomController) Deactivate(c *gin.Context) {
	rc.setAvailability(c, false)
}

func (rc *RoomController) setAvailability(c *gin.Context, available bool) {
	hotelID, ok := parseID(c, "id")
	if !ok {
		return
	}
	roomID, ok := parseID(c, "roomId")
	if !ok {
		return
	}
	var (
		room *dto.RoomResponse
		err  error
	)
	if available {
		room, err = rc.rooms.ActivateRoom(c.Request.Context(), hotelID, roomID)
	} else {
		room, err = rc.rooms.DeactivateRoom(c.Request.Context(), hotelID, roomID)
	}
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, room)
}

// Search lọc phòng theo ?min=&max=&state=
// @Summary  Search rooms by price range within a state
// @Tags     rooms
// @Param    min   query number true "min price"
// @Param    max   query number true "max price"
// @Param    state query string true "state"
// @Success  200 {object} response.Response{data=[]dto.RoomResponse}
// @Router   /rooms/search [get]
func (rc *RoomController) Search(c *gin.Context) {
	minPrice, err := strconv.ParseFloat(c.Query("min"), 64)
	if err != nil {
		response.BadRequest(c, "Invalid min price")
		return
	}
	maxPrice, err := strconv.ParseFloat(c.Query("max"), 64)
	if err != nil {
		response.BadRequest(c, "Invalid max price")
		return
	}
	rooms, err := rc.rooms.FilterRoomsByPriceAndState(c.Request.Context(), minPrice, maxPrice, c.Query("state"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, rooms)
}

func (rc *RoomController) UploadPictures(c *gin.Context) {
	roomID, ok := parseID(c, "roomId")
	if !ok {
		return
	}
	files, closeAll, err := pictureFiles(c, "pictures")
	if err != nil {
		response.FromError(c, err)
		return
	}
	defer closeAll()

	pictures, err := rc.rooms.UploadRoomPictures(c.Request.Context(), roomID, files)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, pictures)
}
