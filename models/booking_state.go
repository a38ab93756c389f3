package models

import (
	"bimber/constants"
	apperrors "bimber/errors"
)

// BookingState định nghĩa interface cho các trạng thái booking
type BookingState interface {
	Confirm(booking *Booking) error
	Cancel(booking *Booking) error
	Complete(booking *Booking) error
}

// PendingState: đã trừ tiền, chờ xác nhận
type PendingState struct{}

func (s *PendingState) Confirm(booking *Booking) error {
	booking.Status = constants.BookingStatusConfirmed
	return nil
}

func (s *PendingState) Cancel(booking *Booking) error {
	booking.Status = constants.BookingStatusCancelled
	return nil
}

func (s *PendingState) Complete(booking *Booking) error {
	return apperrors.InvalidOperation("cannot complete a pending booking")
}

// ConfirmedState trạng thái đã xác nhận
type ConfirmedState struct{}

func (s *ConfirmedState) Confirm(booking *Booking) error {
	return apperrors.InvalidOperation("booking already confirmed")
}

func (s *ConfirmedState) Cancel(booking *Booking) error {
	booking.Status = constants.BookingStatusCancelled
	return nil
}

func (s *ConfirmedState) Complete(booking *Booking) error {
	booking.Status = constants.BookingStatusCompleted
	return nil
}

// CompletedState trạng thái hoàn thành
type CompletedState struct{}

func (s *CompletedState) Confirm(booking *Booking) error {
	return apperrors.InvalidOperation("booking already completed")
}

func (s *CompletedState) Cancel(booking *Booking) error {
	return apperrors.InvalidOperation("cannot cancel a completed booking")
}

func (s *CompletedState) Complete(booking *Booking) error {
	return apperrors.InvalidOperation("booking already completed")
}

// CancelledState trạng thái đã hủy
type CancelledState struct{}

func (s *CancelledState) Confirm(booking *Booking) error {
	return apperrors.InvalidOperation("cannot confirm a cancelled booking")
}

func (s *CancelledState) Cancel(booking *Booking) error {
	return apperrors.InvalidOperation("booking already cancelled")
}

func (s *CancelledState) Complete(booking *Booking) error {
	return apperrors.InvalidOperation("cannot complete a cancelled booking")
}

// GetBookingState trả về state tương ứng, trạng thái lạ bị coi là đã hủy
func GetBookingState(status string) BookingState {
	switch status {
	case constants.BookingStatusPending:
		return &PendingState{}
	case constants.BookingStatusConfirmed:
		return &ConfirmedState{}
	case constants.BookingStatusCompleted:
		return &CompletedState{}
	default:
		return &CancelledState{}
	}
}

// IsActive: booking còn giữ phòng
func (b *Booking) IsActive() bool {
	return b.Status == constants.BookingStatusPending || b.Status == constants.BookingStatusConfirmed
}

func (b *Booking) Confirm() error  { return GetBookingState(b.Status).Confirm(b) }
func (b *Booking) Cancel() error   { return GetBookingState(b.Status).Cancel(b) }
func (b *Booking) Complete() error { return GetBookingState(b.Status).Complete(b) }
