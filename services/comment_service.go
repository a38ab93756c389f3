package services

import (
	"context"
	"strings"
	"time"

	"bimber/constants"
	"bimber/dto"
	apperrors "bimber/errors"
	"bimber/models"
	"bimber/services/logger"
	"bimber/utils"
	"bimber/validator"

	"gorm.io/gorm"
)

type CommentServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
	Now    func() time.Time
}

type CommentService struct {
	db     *gorm.DB
	logger logger.Logger
	now    func() time.Time
}

func NewCommentService(opts CommentServiceOptions) *CommentService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &CommentService{db: opts.DB, logger: opts.Logger, now: opts.Now}
}

// AddComment chỉ cho phép khách đã trả phòng trong vòng 30 ngày, mỗi khách một bình luận
func (s *CommentService) AddComment(ctx context.Context, userID, hotelID uint, content string) (*dto.CommentResponse, error) {
	if err := validator.ValidateComment(content); err != nil {
		return nil, err
	}

	comment := &models.Comment{UserID: userID, HotelID: hotelID, Content: strings.TrimSpace(content)}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return notFoundOr(err, apperrors.ErrUserNotFound, "failed to load user")
		}
		var hotelCount int64
		if err := tx.Model(&models.Hotel{}).Where("id = ?", hotelID).Count(&hotelCount).Error; err != nil {
			return apperrors.DB("failed to load hotel", err)
		}
		if hotelCount == 0 {
			return apperrors.ErrHotelNotFound
		}

		today := utils.Today(s.now())
		windowStart := today.AddDate(0, 0, -constants.CommentWindowDays)
		var stays int64
		if err := tx.Model(&models.Booking{}).
			Where("user_id = ? AND hotel_id = ? AND status <> ?", userID, hotelID, constants.BookingStatusCancelled).
			Where("end_date <= ? AND end_date >= ?", today, windowStart).
			Count(&stays).Error; err != nil {
			return apperrors.DB("failed to check bookings", err)
		}
		if stays == 0 {
			return apperrors.Forbidden("You can only comment on a hotel within 30 days after your stay")
		}

		var existing int64
		if err := tx.Model(&models.Comment{}).Where("user_id = ? AND hotel_id = ?", userID, hotelID).Count(&existing).Error; err != nil {
			return apperrors.DB("failed to check comments", err)
		}
		if existing > 0 {
			return apperrors.Conflict("You have already commented on this hotel")
		}

		if err := tx.Create(comment).Error; err != nil {
			if isUniqueViolation(err) {
				return apperrors.Conflict("You have already commented on this hotel")
			}
			return apperrors.DB("failed to create comment", err)
		}
		comment.User = &user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("comment %d added user=%d hotel=%d", comment.ID, userID, hotelID)
	resp := dto.NewCommentResponse(comment)
	return &resp, nil
}

func (s *CommentService) CommentsByHotel(ctx context.Context, hotelID uint) ([]dto.CommentResponse, error) {
	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.Hotel{}).Where("id = ?", hotelID).Count(&count).Error; err != nil {
		return nil, apperrors.DB("failed to load hotel", err)
	}
	if count == 0 {
		return nil, apperrors.ErrHotelNotFound
	}
	var comments []models.Comment
	if err := db.Preload("User").Where("hotel_id = ?", hotelID).Order("created_at DESC, id DESC").Find(&comments).Error; err != nil {
		return nil, apperrors.DB("failed to list comments", err)
	}
	return dto.NewCommentResponses(comments), nil
}

func (s *CommentService) CommentsByUser(ctx context.Context, caller Caller, userID uint) ([]dto.CommentResponse, error) {
	if !caller.CanAccess(userID) {
		return nil, apperrors.Forbidden("You can only view your own comments")
	}
	var comments []models.Comment
	if err := s.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&comments).Error; err != nil {
		return nil, apperrors.DB("failed to list comments", err)
	}
	return dto.NewCommentResponses(comments), nil
}

// DeleteComment: bình luận phải thuộc khách sạn và thuộc người gọi, admin được xóa mọi bình luận
func (s *CommentService) DeleteComment(ctx context.Context, caller Caller, hotelID, commentID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, commentID).Error; err != nil {
			return notFoundOr(err, apperrors.ErrCommentNotFound, "failed to load comment")
		}
		if comment.HotelID != hotelID {
			return apperrors.ErrCommentNotFound
		}
		if !caller.CanAccess(comment.UserID) {
			return apperrors.Forbidden("You can only delete your own comments")
		}
		if err := tx.Delete(&comment).Error; err != nil {
			return apperrors.DB("failed to delete comment", err)
		}
		return nil
	})
}
