package services

import (
	"errors"
	"strings"

	"bimber/constants"
	apperrors "bimber/errors"

	"gorm.io/gorm"
)

// Caller là người gọi đã xác thực, lấy từ JWT
type Caller struct {
	ID   uint
	Role string
}

func (c Caller) IsAdmin() bool {
	return c.Role == constants.RoleAdmin
}

// CanAccess: chính chủ hoặc admin
func (c Caller) CanAccess(ownerID uint) bool {
	return c.IsAdmin() || c.ID == ownerID
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isUniqueViolation nhận diện lỗi unique của postgres và sqlite
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

// notFoundOr trả về notFound nếu là ErrRecordNotFound, ngược lại bọc lỗi DB
func notFoundOr(err error, notFound *apperrors.AppError, msg string) error {
	if isNotFound(err) {
		return notFound
	}
	return apperrors.DB(msg, err)
}
