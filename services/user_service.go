package services

import (
	"context"
	"strings"

	"bimber/commands"
	"bimber/constants"
	"bimber/dto"
	apperrors "bimber/errors"
	"bimber/models"
	"bimber/services/logger"
	"bimber/services/notification"
	"bimber/utils"
	"bimber/validator"

	"gorm.io/gorm"
)

type UserService struct {
	db       *gorm.DB
	logger   logger.Logger
	notifier notification.Service
	async    *AsyncRunner
}

type UserServiceOptions struct {
	DB       *gorm.DB
	Logger   logger.Logger
	Notifier notification.Service
	Async    *AsyncRunner
}

func NewUserService(opts UserServiceOptions) *UserService {
	if opts.Notifier == nil {
		opts.Notifier = notification.NopService{}
	}
	return &UserService{
		db:       opts.DB,
		logger:   opts.Logger,
		notifier: opts.Notifier,
		async:    opts.Async,
	}
}

// loadAccount lấy tài khoản theo id và role; role rỗng thì không lọc
func (s *UserService) loadAccount(tx *gorm.DB, id uint, role string) (*models.User, error) {
	var user models.User
	q := tx.Where("id = ?", id)
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if err := q.First(&user).Error; err != nil {
		return nil, notFoundOrNil(err)
	}
	return &user, nil
}

// GetAccount trả về tài khoản đã kích hoạt; caller phải là chủ hoặc admin
func (s *UserService) GetAccount(ctx context.Context, caller Caller, id uint, role string) (*models.User, error) {
	if !caller.CanAccess(id) {
		return nil, apperrors.Forbidden("You can only access your own account")
	}
	user, err := s.loadAccount(s.db.WithContext(ctx), id, role)
	if err != nil {
		return nil, err
	}
	if !user.Enabled {
		return nil, apperrors.ErrNotActivated
	}
	return user, nil
}

// EditAccount đổi username/email, từ chối khi trùng với tài khoản khác
func (s *UserService) EditAccount(ctx context.Context, caller Caller, id uint, role string, req dto.UpdateUserRequest) (*models.User, error) {
	if !caller.CanAccess(id) {
		return nil, apperrors.Forbidden("You can only edit your own account")
	}

	updates := map[string]interface{}{}
	var username, email string
	if req.Username != nil {
		username = strings.TrimSpace(*req.Username)
		if len(username) < constants.MinUsernameLength {
			return nil, apperrors.Validation("Username must be at least 6 characters")
		}
		updates["username"] = username
	}
	if req.Email != nil {
		email = strings.ToLower(strings.TrimSpace(*req.Email))
		if err := validator.ValidateEmail(email); err != nil {
			return nil, err
		}
		updates["email"] = email
	}

	var user *models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = s.loadAccount(tx, id, role)
		if err != nil {
			return err
		}
		if !user.Enabled {
			return apperrors.ErrNotActivated
		}
		if len(updates) == 0 {
			return nil
		}
		if err := ensureUnique(tx, id, username, email); err != nil {
			return err
		}
		if err := tx.Model(user).Updates(updates).Error; err != nil {
			if isUniqueViolation(err) {
				return apperrors.NewAppError(apperrors.ErrCodeUserExists, "Username or email already in use", err)
			}
			return apperrors.DB("failed to update account", err)
		}
		user, err = s.loadAccount(tx, id, role)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount xóa tài khoản cùng booking, bình luận và sổ giao dịch.
// Phòng đang bị giữ bởi booking còn hiệu lực được trả lại.
func (s *UserService) DeleteAccount(ctx context.Context, caller Caller, id uint, role string) error {
	if !caller.CanAccess(id) {
		return apperrors.Forbidden("You can only delete your own account")
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.loadAccount(tx, id, role); err != nil {
			return err
		}

		var active []models.Booking
		if err := tx.Where("user_id = ? AND status IN ?", id, activeStatuses).Find(&active).Error; err != nil {
			return apperrors.DB("failed to load bookings", err)
		}
		for _, b := range active {
			if err := commands.Run(tx, &commands.ReleaseRoomCommand{RoomID: b.RoomID}); err != nil {
				return err
			}
		}

		for _, m := range []interface{}{&models.Comment{}, &models.Payment{}, &models.Booking{}, &models.VerificationToken{}} {
			if err := tx.Where("user_id = ?", id).Delete(m).Error; err != nil {
				return apperrors.DB("failed to delete account data", err)
			}
		}
		if err := tx.Delete(&models.User{}, id).Error; err != nil {
			return apperrors.DB("failed to delete account", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("account %d deleted by %d", id, caller.ID)
	return nil
}

// FundAccount cộng tiền vào số dư và ghi payment FUNDING
func (s *UserService) FundAccount(ctx context.Context, caller Caller, userID uint, amount float64) (float64, error) {
	if !caller.CanAccess(userID) {
		return 0, apperrors.Forbidden("You can only fund your own account")
	}
	amount = utils.RoundMoney(amount)
	if err := validator.ValidateAmount(amount); err != nil {
		return 0, err
	}

	var balance float64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.loadAccount(tx, userID, "")
		if err != nil {
			return err
		}
		if !user.Enabled {
			return apperrors.ErrNotActivated
		}
		if err := validator.ValidateTotal(utils.RoundMoney(user.Balance + amount)); err != nil {
			return err
		}
		if err := commands.Run(tx,
			&commands.CreditBalanceCommand{UserID: userID, Amount: amount},
			&commands.RecordPaymentCommand{UserID: userID, Amount: amount, Kind: constants.PaymentKindFunding},
		); err != nil {
			return err
		}
		var fresh models.User
		if err := tx.Select("balance").First(&fresh, userID).Error; err != nil {
			return apperrors.DB("failed to read balance", err)
		}
		balance = fresh.Balance
		return nil
	})
	if err != nil {
		return 0, err
	}
	balance = utils.RoundMoney(balance)

	s.logger.Info("account %d funded with %.2f, balance %.2f", userID, amount, balance)
	msg := notification.NewMessageBuilder("account.funded").WithAmount(amount).Build()
	s.async.Go("funding-notification", func(context.Context) error {
		return s.notifier.SendToUser(userID, msg)
	})
	return balance, nil
}

// ListUsers phân trang danh sách tài khoản, role rỗng thì lấy tất cả
func (s *UserService) ListUsers(ctx context.Context, role string, page, limit int) ([]models.User, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.User{})
	if role != "" {
		q = q.Where("role = ?", strings.ToUpper(role))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperrors.DB("failed to count users", err)
	}
	var users []models.User
	if err := q.Order("id ASC").Offset(utils.Offset(page, limit)).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, apperrors.DB("failed to list users", err)
	}
	return users, total, nil
}
