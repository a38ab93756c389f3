package controllers

import (
	"bimber/dto"
	"bimber/response"
	"bimber/services"

	"github.com/gin-gonic/gin"
)

type HotelController struct {
	hotels *services.HotelService
}

func NewHotelController(hotels *services.HotelService) *HotelController {
	return &HotelController{hotels: hotels}
}

// CreateHotel godoc
// @Summary  Create a hotel with optional rooms
// @Tags     hotels
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    body body dto.CreateHotelRequest true "hotel"
// @Success  201 {object} response.Response{data=dto.HotelResponse}
// @Failure  409 {object} response.Response
// @Router   /hotels [post]
func (hc *HotelController) CreateHotel(c *gin.Context) {
	var req dto.CreateHotelRequest
	if !bindJSON(c, &req) {
		return
	}
	hotel, err := hc.hotels.CreateHotel(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, hotel)
}

// ListHotels godoc
// @Summary  List hotels, or hotels of a state with ?state=
// @Tags     hotels
// @Param    state query string false "state name, fuzzy matched"
// @Success  200 {object} response.Response{data=[]dto.HotelResponse}
// @Router   /hotels [get]
func (hc *HotelController) ListHotels(c *gin.Context) {
	var (
		hotels []dto.HotelResponse
		err    error
	)
	if state := c.Query("state"); state != "" {
		hotels, err = hc.hotels.HotelsByState(c.Request.Context(), state)
	} else {
		hotels, err = hc.hotels.ListHotels(c.Request.Context())
	}
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithTotal(c, hotels, len(hotels))
}

// GetHotel godoc
// @Summary  Get a hotel with its rooms
// @Tags     hotels
// @Param    id path int true "hotel id"
// @Success  200 {object} response.Response{data=dto.HotelResponse}
// @Failure  404 {object} response.Response
// @Router   /hotels/{id} [get]
func (hc *HotelController) GetHotel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	hotel, err := hc.hotels.GetHotel(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, hotel)
}

func (hc *HotelController) EditHotel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateHotelRequest
	if !bindJSON(c, &req) {
		return
	}
	hotel, err := hc.hotels.EditHotel(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, hotel)
}

func (hc *HotelController) DeleteHotel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := hc.hotels.DeleteHotel(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.IDResponse{ID: id})
}

func (hc *HotelController) CountInState(c *gin.Context) {
	count, err := hc.hotels.CountHotelsInState(c.Request.Context(), c.Param("state"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, count)
}

func (hc *HotelController) MostBooked(c *gin.Context) {
	ranked, err := hc.hotels.MostBookedHotelsByState(c.Request.Context(), c.Param("state"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, ranked)
}

// UploadPictures nhận multipart field "pictures"
func (hc *HotelController) UploadPictures(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	files, closeAll, err := pictureFiles(c, "pictures")
	if err != nil {
		response.FromError(c, err)
		return
	}
	defer closeAll()

	pictures, err := hc.hotels.UploadHotelPictures(c.Request.Context(), id, files)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, pictures)
}
