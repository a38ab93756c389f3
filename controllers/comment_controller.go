package controllers

import (
	"bimber/dto"
	"bimber/response"
	"bimber/services"

	"github.com/gin-gonic/gin"
)

type CommentController struct {
	comments *services.CommentService
}

func NewCommentController(comments *services.CommentService) *CommentController {
	return &CommentController{comments: comments}
}

// AddComment godoc
// @Summary  Comment on a hotel after a stay
// @Tags     comments
// @Security BearerAuth
// @Param    id   path int                true "hotel id"
// @Param    body body dto.CommentRequest true "comment"
// @Success  201 {object} response.Response{data=dto.CommentResponse}
// @Router   /hotels/{id}/comments [post]
func (cc *CommentController) AddComment(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	hotelID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CommentRequest
	if !bindJSON(c, &req) {
		return
	}
	comment, err := cc.comments.AddComment(c.Request.Context(), caller.ID, hotelID, req.Content)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, comment)
}

func (cc *CommentController) ByHotel(c *gin.Context) {
	hotelID, ok := parseID(c, "id")
	if !ok {
		return
	}
	comments, err := cc.comments.CommentsByHotel(c.Request.Context(), hotelID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, comments)
}

func (cc *CommentController) ByUser(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}
	comments, err := cc.comments.CommentsByUser(c.Request.Context(), caller, userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, comments)
}

func (cc *CommentController) DeleteComment(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	hotelID, ok := parseID(c, "id")
	if !ok {
		return
	}
	commentID, ok := parseID(c, "commentId")
	if !ok {
		return
	}
	if err := cc.comments.DeleteComment(c.Request.Context(), caller, hotelID, commentID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.IDResponse{ID: commentID})
}
