package commands

import (
	"bimber/constants"
	apperrors "bimber/errors"
	"bimber/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Command là một bước ghi dữ liệu chạy bên trong transaction
type Command interface {
	Execute(tx *gorm.DB) error
}

// Run chạy lần lượt các command, dừng ở lỗi đầu tiên
func Run(tx *gorm.DB, cmds ...Command) error {
	for _, cmd := range cmds {
		if err := cmd.Execute(tx); err != nil {
			return err
		}
	}
	return nil
}

// DebitBalanceCommand trừ tiền, chỉ thành công khi số dư đủ
type DebitBalanceCommand struct {
	UserID uint
	Amount float64
}

func (c *DebitBalanceCommand) Execute(tx *gorm.DB) error {
	if c.Amount <= 0 {
		return nil
	}
	res := tx.Model(&models.User{}).
		Where("id = ? AND balance >= ?", c.UserID, c.Amount).
		Update("balance", gorm.Expr("balance - ?", c.Amount))
	if res.Error != nil {
		return apperrors.DB("failed to debit balance", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrInsufficientFund
	}
	return nil
}

// CreditBalanceCommand cộng tiền vào tài khoản
type CreditBalanceCommand struct {
	UserID uint
	Amount float64
}

func (c *CreditBalanceCommand) Execute(tx *gorm.DB) error {
	if c.Amount <= 0 {
		return nil
	}
	res := tx.Model(&models.User{}).
		Where("id = ?", c.UserID).
		Update("balance", gorm.Expr("balance + ?", c.Amount))
	if res.Error != nil {
		return apperrors.DB("failed to credit balance", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// CreateBookingCommand command để tạo booking mới
type CreateBookingCommand struct {
	Booking *models.Booking
}

func (c *CreateBookingCommand) Execute(tx *gorm.DB) error {
	if err := tx.Create(c.Booking).Error; err != nil {
		return apperrors.DB("failed to create booking", err)
	}
	return nil
}

// SaveBookingCommand lưu lại trạng thái, phòng và ngày của booking
type SaveBookingCommand struct {
	Booking *models.Booking
}

func (c *SaveBookingCommand) Execute(tx *gorm.DB) error {
	err := tx.Model(c.Booking).Select("status", "room_id", "start_date", "end_date", "amount", "paid").
		Updates(c.Booking).Error
	if err != nil {
		return apperrors.DB("failed to update booking", err)
	}
	return nil
}

// ReserveRoomCommand chuyển phòng sang không trống, lỗi nếu phòng đã bị giữ
type ReserveRoomCommand struct {
	RoomID uint
}

func (c *ReserveRoomCommand) Execute(tx *gorm.DB) error {
	res := tx.Model(&models.Room{}).
		Where("id = ? AND available = ?", c.RoomID, true).
		Update("available", false)
	if res.Error != nil {
		return apperrors.DB("failed to reserve room", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrRoomNotAvailable
	}
	return nil
}

// ReleaseRoomCommand trả phòng về trạng thái trống
type ReleaseRoomCommand struct {
	RoomID uint
}

func (c *ReleaseRoomCommand) Execute(tx *gorm.DB) error {
	err := tx.Model(&models.Room{}).Where("id = ?", c.RoomID).Update("available", true).Error
	if err != nil {
		return apperrors.DB("failed to release room", err)
	}
	return nil
}

// RecordPaymentCommand ghi một dòng vào sổ giao dịch.
// Khi Booking khác nil thì user và booking id được đọc lúc Execute,
// sau khi booking đã được tạo ở bước trước.
type RecordPaymentCommand struct {
	UserID  uint
	Booking *models.Booking
	Amount  float64
	Kind    string
	Payment *models.Payment
}

func (c *RecordPaymentCommand) Execute(tx *gorm.DB) error {
	p := &models.Payment{
		UserID:    c.UserID,
		Amount:    c.Amount,
		Kind:      c.Kind,
		Success:   true,
		Reference: uuid.NewString(),
	}
	if c.Booking != nil {
		id := c.Booking.ID
		p.UserID = c.Booking.UserID
		p.BookingID = &id
	}
	if err := tx.Create(p).Error; err != nil {
		return apperrors.DB("failed to record payment", err)
	}
	c.Payment = p
	return nil
}

func NewChargeCommand(booking *models.Booking, amount float64) *RecordPaymentCommand {
	return &RecordPaymentCommand{Booking: booking, Amount: amount, Kind: constants.PaymentKindCharge}
}

func NewRefundCommand(booking *models.Booking, amount float64) *RecordPaymentCommand {
	return &RecordPaymentCommand{Booking: booking, Amount: amount, Kind: constants.PaymentKindRefund}
}

// Func bọc một closure thành Command, dùng cho các bước phụ thuộc kết quả trước
type Func func(tx *gorm.DB) error

func (f Func) Execute(tx *gorm.DB) error {
	return f(tx)
}
