package errors

import (
	"errors"
	"fmt"
)

// ErrorCode định danh loại lỗi nghiệp vụ
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden       ErrorCode = "FORBIDDEN"
	ErrCodeInvalidToken    ErrorCode = "INVALID_TOKEN"
	ErrCodeExpiredToken    ErrorCode = "EXPIRED_TOKEN"
	ErrCodeInvalidPassword ErrorCode = "INVALID_PASSWORD"
	ErrCodeUserNotFound    ErrorCode = "USER_NOT_FOUND"
	ErrCodeUserExists      ErrorCode = "USER_EXISTS"
	ErrCodeNotActivated    ErrorCode = "ACCOUNT_NOT_ACTIVATED"

	// Database errors
	ErrCodeDBError  ErrorCode = "DB_ERROR"
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	ErrCodeConflict ErrorCode = "CONFLICT"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	ErrCodeInvalidAmount ErrorCode = "INVALID_AMOUNT"

	// Business errors
	ErrCodeInsufficientFund ErrorCode = "INSUFFICIENT_FUND"
	ErrCodeInvalidOperation ErrorCode = "INVALID_OPERATION"
	ErrCodeRoomUnavailable  ErrorCode = "ROOM_UNAVAILABLE"

	// Infrastructure
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
	ErrCodeUpstream    ErrorCode = "UPSTREAM_ERROR"
)

// AppError là lỗi trả về từ tầng service
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NotFound(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return NewAppError(ErrCodeConflict, message, nil)
}

func Validation(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, nil)
}

func Forbidden(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, nil)
}

func InvalidOperation(message string) *AppError {
	return NewAppError(ErrCodeInvalidOperation, message, nil)
}

// DB bọc lỗi của gorm
func DB(message string, err error) *AppError {
	return NewAppError(ErrCodeDBError, message, err)
}

// IsAppError kiểm tra xem error có phải là AppError không
func IsAppError(err error) bool {
	return GetAppError(err) != nil
}

// GetAppError lấy AppError từ chuỗi lỗi
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode kiểm tra mã lỗi
func HasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

var (
	ErrUserNotFound      = NewAppError(ErrCodeUserNotFound, "user not found", nil)
	ErrInvalidCredential = NewAppError(ErrCodeInvalidPassword, "invalid username or password", nil)
	ErrNotActivated      = NewAppError(ErrCodeNotActivated, "Your account is not activated. Please activate your account.", nil)
	ErrUnauthorized      = NewAppError(ErrCodeUnauthorized, "unauthorized", nil)

	ErrBookingNotFound = NewAppError(ErrCodeNotFound, "Booking not found", nil)
	ErrActiveBooking   = NewAppError(ErrCodeConflict, "Active booking exists. Complete or cancel it first.", nil)

	ErrHotelNotFound    = NewAppError(ErrCodeNotFound, "Hotel not found", nil)
	ErrRoomNotFound     = NewAppError(ErrCodeNotFound, "Room not found", nil)
	ErrRoomNotAvailable = NewAppError(ErrCodeRoomUnavailable, "Room is not available", nil)
	ErrRoomNotInHotel   = NewAppError(ErrCodeValidation, "Room does not belong to the specified hotel", nil)

	ErrInsufficientFund = NewAppError(ErrCodeInsufficientFund, "Insufficient balance to book the room", nil)
	ErrInvalidAmount    = NewAppError(ErrCodeInvalidAmount, "Amount must be greater than zero.", nil)
	ErrAmountTooLarge   = NewAppError(ErrCodeInvalidAmount, "Amount exceeds the maximum of 999999999999.99", nil)

	ErrCommentNotFound = NewAppError(ErrCodeNotFound, "Comment not found", nil)
)
