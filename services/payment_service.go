package services

import (
	"context"

	"bimber/dto"
	apperrors "bimber/errors"
	"bimber/models"
	"bimber/services/logger"

	"gorm.io/gorm"
)

type PaymentService struct {
	db     *gorm.DB
	logger logger.Logger
}

func NewPaymentService(db *gorm.DB, log logger.Logger) *PaymentService {
	return &PaymentService{db: db, logger: log}
}

// PaymentsByUser trả về sổ giao dịch, mới nhất trước
func (s *PaymentService) PaymentsByUser(ctx context.Context, caller Caller, userID uint, kind string) ([]dto.PaymentResponse, error) {
	if !caller.CanAccess(userID) {
		return nil, apperrors.Forbidden("You can only view your own payments")
	}
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	var payments []models.Payment
	if err := q.Order("created_at DESC, id DESC").Find(&payments).Error; err != nil {
		return nil, apperrors.DB("failed to list payments", err)
	}
	return dto.NewPaymentResponses(payments), nil
}
