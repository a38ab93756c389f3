package controllers

import (
	"bimber/dto"
	"bimber/response"
	"bimber/services"
	"bimber/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{bookings: bookings}
}

// BookRoom godoc
// @Summary  Book a room, paying from the account balance
// @Tags     bookings
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    body body dto.BookingRequest true "stay"
// @Success  201 {object} response.Response{data=dto.BookingResponse}
// @Failure  402 {object} response.Response "insufficient balance"
// @Failure  409 {object} response.Response "room unavailable or active booking"
// @Router   /bookings [post]
func (bc *BookingController) BookRoom(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var req dto.BookingRequest
	if !bindJSON(c, &req) {
		return
	}
	booking, err := bc.bookings.BookRoom(c.Request.Context(), caller.ID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, booking)
}

// CancelBooking godoc
// @Summary  Cancel a booking and refund it
// @Tags     bookings
// @Security BearerAuth
// @Param    id path int true "booking id"
// @Success  200 {object} response.Response{data=dto.BookingResponse}
// @Router   /bookings/{id}/cancel [post]
func (bc *BookingController) CancelBooking(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	booking, err := bc.bookings.CancelBooking(c.Request.Context(), caller, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, booking)
}

func (bc *BookingController) UpdateBooking(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	booking, err := bc.bookings.UpdateBooking(c.Request.Context(), caller, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, booking)
}

func (bc *BookingController) GetBooking(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	booking, err := bc.bookings.GetBooking(c.Request.Context(), caller, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, booking)
}

// ListAll chỉ dành cho admin
func (bc *BookingController) ListAll(c *gin.Context) {
	page, limit := utils.ParsePagination(c.Query("page"), c.Query("limit"))
	bookings, total, err := bc.bookings.ListAllBookings(c.Request.Context(), page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithPagination(c, bookings, page, limit, int(total))
}

func (bc *BookingController) ListByUser(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	bookings, err := bc.bookings.ListUserBookings(c.Request.Context(), caller, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, bookings)
}
