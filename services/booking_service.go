package services

import (
	"context"
	"fmt"
	"time"

	"bimber/builders"
	"bimber/commands"
	"bimber/constants"
	"bimber/dto"
	apperrors "bimber/errors"
	"bimber/models"
	"bimber/services/logger"
	"bimber/services/mail"
	"bimber/services/notification"
	"bimber/utils"
	"bimber/validator"

	"gorm.io/gorm"
)

// activeStatuses là các trạng thái còn giữ phòng
var activeStatuses = []string{constants.BookingStatusPending, constants.BookingStatusConfirmed}

type BookingServiceOptions struct {
	DB       *gorm.DB
	Logger   logger.Logger
	Cache    Cache
	CacheTTL time.Duration
	Mailer   mail.Sender
	Events   notification.Publisher
	Notifier notification.Service
	Async    *AsyncRunner
	Now      func() time.Time
}

type BookingService struct {
	db       *gorm.DB
	logger   logger.Logger
	cache    Cache
	cacheTTL time.Duration
	mailer   mail.Sender
	events   notification.Publisher
	notifier notification.Service
	async    *AsyncRunner
	now      func() time.Time
}

func NewBookingService(opts BookingServiceOptions) *BookingService {
	if opts.Cache == nil {
		opts.Cache = NopCache{}
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 10 * time.Minute
	}
	if opts.Events == nil {
		opts.Events = notification.NopPublisher{}
	}
	if opts.Notifier == nil {
		opts.Notifier = notification.NopService{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &BookingService{
		db:       opts.DB,
		logger:   opts.Logger,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		mailer:   opts.Mailer,
		events:   opts.Events,
		notifier: opts.Notifier,
		async:    opts.Async,
		now:      opts.Now,
	}
}

func userBookingsKey(userID uint) string {
	return fmt.Sprintf("%s%d", CacheKeyBookingsUser, userID)
}

// parseStay đọc và kiểm tra khoảng ngày ở
func (s *BookingService) parseStay(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := utils.ParseDate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, err.Error(), nil)
	}
	end, err := utils.ParseDate(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, err.Error(), nil)
	}
	if err := validator.ValidateStay(start, end, utils.Today(s.now())); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// roomInHotel tải phòng và kiểm tra nó thuộc khách sạn
func roomInHotel(tx *gorm.DB, hotelID, roomID uint) (*models.Room, error) {
	var hotelCount int64
	if err := tx.Model(&models.Hotel{}).Where("id = ?", hotelID).Count(&hotelCount).Error; err != nil {
		return nil, apperrors.DB("failed to load hotel", err)
	}
	if hotelCount == 0 {
		return nil, apperrors.ErrHotelNotFound
	}
	var room models.Room
	if err := tx.First(&room, roomID).Error; err != nil {
		return nil, notFoundOr(err, apperrors.ErrRoomNotFound, "failed to load room")
	}
	if room.HotelID != hotelID {
		return nil, apperrors.ErrRoomNotInHotel
	}
	return &room, nil
}

// hasOverlap kiểm tra booking chưa hủy khác của phòng giao với [start, end)
func hasOverlap(tx *gorm.DB, roomID uint, start, end time.Time, excludeID uint) (bool, error) {
	var count int64
	err := tx.Model(&models.Booking{}).
		Where("room_id = ? AND id <> ? AND status <> ?", roomID, excludeID, constants.BookingStatusCancelled).
		Where("start_date < ? AND end_date > ?", end, start).
		Count(&count).Error
	if err != nil {
		return false, apperrors.DB("failed to check overlapping bookings", err)
	}
	return count > 0, nil
}

// BookRoom trừ tiền, tạo booking và giữ phòng trong cùng một transaction
func (s *BookingService) BookRoom(ctx context.Context, userID uint, req dto.BookingRequest) (*dto.BookingResponse, error) {
	start, end, err := s.parseStay(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	var (
		booking *models.Booking
		user    models.User
		room    *models.Room
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			return notFoundOr(err, apperrors.ErrUserNotFound, "failed to load user")
		}
		if !user.Enabled {
			return apperrors.ErrNotActivated
		}

		var confirmed int64
		if err := tx.Model(&models.Booking{}).
			Where("user_id = ? AND status = ?", userID, constants.BookingStatusConfirmed).
			Count(&confirmed).Error; err != nil {
			return apperrors.DB("failed to check bookings", err)
		}
		if confirmed > 0 {
			return apperrors.ErrActiveBooking
		}

		var err error
		room, err = roomInHotel(tx, req.HotelID, req.RoomID)
		if err != nil {
			return err
		}
		if !room.Available {
			return apperrors.ErrRoomNotAvailable
		}
		overlap, err := hasOverlap(tx, room.ID, start, end, 0)
		if err != nil {
			return err
		}
		if overlap {
			return apperrors.ErrRoomNotAvailable
		}

		price := utils.RoundMoney(room.Price * float64(utils.Nights(start, end)))
		if err := validator.ValidateTotal(price); err != nil {
			return err
		}
		if user.Balance < price {
			return apperrors.ErrInsufficientFund
		}

		booking = builders.NewBookingBuilder().
			WithUser(userID).
			WithRoom(room.HotelID, room.ID).
			WithDates(start, end).
			WithAmount(price).
			Build()

		return commands.Run(tx,
			&commands.DebitBalanceCommand{UserID: userID, Amount: price},
			&commands.CreateBookingCommand{Booking: booking},
			commands.NewChargeCommand(booking, price),
			&commands.ReserveRoomCommand{RoomID: room.ID},
			commands.Func(func(tx *gorm.DB) error {
				if err := booking.Confirm(); err != nil {
					return err
				}
				return (&commands.SaveBookingCommand{Booking: booking}).Execute(tx)
			}),
		)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking %d confirmed user=%d room=%d amount=%.2f", booking.ID, userID, booking.RoomID, booking.Amount)
	s.afterCommit(notification.SubjectBookingConfirmed, booking, &user, room, booking.Amount)

	resp := dto.NewBookingResponse(booking)
	return &resp, nil
}

func (s *BookingService) loadBooking(tx *gorm.DB, id uint, caller Caller) (*models.Booking, error) {
	var booking models.Booking
	if err := tx.First(&booking, id).Error; err != nil {
		return nil, notFoundOr(err, apperrors.ErrBookingNotFound, "failed to load booking")
	}
	if !caller.CanAccess(booking.UserID) {
		return nil, apperrors.Forbidden("You can only manage your own bookings")
	}
	return &booking, nil
}

// CancelBooking hủy booking, trả phòng và hoàn tiền
func (s *BookingService) CancelBooking(ctx context.Context, caller Caller, bookingID uint) (*dto.BookingResponse, error) {
	var (
		booking *models.Booking
		user    models.User
		room    models.Room
		refund  float64
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		booking, err = s.loadBooking(tx, bookingID, caller)
		if err != nil {
			return err
		}
		if err := booking.Cancel(); err != nil {
			return err
		}
		if booking.Paid {
			refund = booking.Amount
		}
		booking.Paid = false

		if err := commands.Run(tx,
			&commands.SaveBookingCommand{Booking: booking},
			&commands.ReleaseRoomCommand{RoomID: booking.RoomID},
			&commands.CreditBalanceCommand{UserID: booking.UserID, Amount: refund},
		); err != nil {
			return err
		}
		if refund > 0 {
			if err := commands.Run(tx, commands.NewRefundCommand(booking, refund)); err != nil {
				return err
			}
		}
		if err := tx.First(&user, booking.UserID).Error; err != nil {
			return apperrors.DB("failed to load user", err)
		}
		if err := tx.First(&room, booking.RoomID).Error; err != nil {
			return apperrors.DB("failed to load room", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking %d cancelled by %d refund=%.2f", booking.ID, caller.ID, refund)
	s.afterCommit(notification.SubjectBookingCancelled, booking, &user, &room, refund)

	resp := dto.NewBookingResponse(booking)
	return &resp, nil
}

// UpdateBooking đổi phòng hoặc ngày, phần chênh lệch giá được trừ thêm hoặc hoàn lại
func (s *BookingService) UpdateBooking(ctx context.Context, caller Caller, bookingID uint, req dto.UpdateBookingRequest) (*dto.BookingResponse, error) {
	start, end, err := s.parseStay(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	var (
		booking *models.Booking
		user    models.User
		room    *models.Room
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		booking, err = s.loadBooking(tx, bookingID, caller)
		if err != nil {
			return err
		}
		if !booking.IsActive() {
			return apperrors.InvalidOperation("Only pending or confirmed bookings can be updated")
		}

		room, err = roomInHotel(tx, booking.HotelID, req.RoomID)
		if err != nil {
			return err
		}
		roomChanged := room.ID != booking.RoomID
		if roomChanged && !room.Available {
			return apperrors.ErrRoomNotAvailable
		}
		overlap, err := hasOverlap(tx, room.ID, start, end, booking.ID)
		if err != nil {
			return err
		}
		if overlap {
			return apperrors.ErrRoomNotAvailable
		}

		price := utils.RoundMoney(room.Price * float64(utils.Nights(start, end)))
		if err := validator.ValidateTotal(price); err != nil {
			return err
		}
		diff := utils.RoundMoney(price - booking.Amount)

		var cmds []commands.Command
		switch {
		case diff > 0:
			cmds = append(cmds,
				&commands.DebitBalanceCommand{UserID: booking.UserID, Amount: diff},
				commands.NewChargeCommand(booking, diff),
			)
		case diff < 0:
			cmds = append(cmds,
				&commands.CreditBalanceCommand{UserID: booking.UserID, Amount: -diff},
				commands.NewRefundCommand(booking, -diff),
			)
		}
		if roomChanged {
			cmds = append(cmds,
				&commands.ReleaseRoomCommand{RoomID: booking.RoomID},
				&commands.ReserveRoomCommand{RoomID: room.ID},
			)
		}

		booking.RoomID = room.ID
		booking.StartDate = start
		booking.EndDate = end
		booking.Amount = price
		booking.Paid = price > 0
		cmds = append(cmds, &commands.SaveBookingCommand{Booking: booking})

		if err := commands.Run(tx, cmds...); err != nil {
			return err
		}
		if err := tx.First(&user, booking.UserID).Error; err != nil {
			return apperrors.DB("failed to load user", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking %d updated room=%d amount=%.2f", booking.ID, booking.RoomID, booking.Amount)
	s.afterCommit(notification.SubjectBookingUpdated, booking, &user, room, booking.Amount)

	resp := dto.NewBookingResponse(booking)
	return &resp, nil
}

func (s *BookingService) ListAllBookings(ctx context.Context, page, limit int) ([]dto.BookingResponse, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Booking{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperrors.DB("failed to count bookings", err)
	}
	var bookings []models.Booking
	if err := q.Order("id DESC").Offset(utils.Offset(page, limit)).Limit(limit).Find(&bookings).Error; err != nil {
		return nil, 0, apperrors.DB("failed to list bookings", err)
	}
	return dto.NewBookingResponses(bookings), total, nil
}

// ListUserBookings đọc qua cache bookings:user:<id>
func (s *BookingService) ListUserBookings(ctx context.Context, caller Caller, userID uint) ([]dto.BookingResponse, error) {
	if !caller.CanAccess(userID) {
		return nil, apperrors.Forbidden("You can only view your own bookings")
	}

	key := userBookingsKey(userID)
	var cached []dto.BookingResponse
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.Error("cache get %s: %v", key, err)
	}
	if found {
		return cached, nil
	}

	var bookings []models.Booking
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id DESC").Find(&bookings).Error; err != nil {
		return nil, apperrors.DB("failed to list bookings", err)
	}
	resp := dto.NewBookingResponses(bookings)
	if err := s.cache.Set(ctx, key, resp, s.cacheTTL); err != nil {
		s.logger.Error("cache set %s: %v", key, err)
	}
	return resp, nil
}

func (s *BookingService) GetBooking(ctx context.Context, caller Caller, bookingID uint) (*dto.BookingResponse, error) {
	booking, err := s.loadBooking(s.db.WithContext(ctx), bookingID, caller)
	if err != nil {
		return nil, err
	}
	resp := dto.NewBookingResponse(booking)
	return &resp, nil
}

// CompleteEndedBookings chuyển booking CONFIRMED đã qua ngày trả phòng sang COMPLETED
// và trả phòng khi không còn booking hiệu lực nào khác giữ nó.
func (s *BookingService) CompleteEndedBookings(ctx context.Context) (int, error) {
	now := s.now().UTC()

	var ended []models.Booking
	err := s.db.WithContext(ctx).
		Where("status = ? AND end_date <= ?", constants.BookingStatusConfirmed, now).
		Order("id ASC").
		Find(&ended).Error
	if err != nil {
		return 0, apperrors.DB("failed to load ended bookings", err)
	}

	completed := 0
	for i := range ended {
		booking := &ended[i]
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := booking.Complete(); err != nil {
				return err
			}
			res := tx.Model(&models.Booking{}).
				Where("id = ? AND status = ?", booking.ID, constants.BookingStatusConfirmed).
				Update("status", booking.Status)
			if res.Error != nil {
				return apperrors.DB("failed to complete booking", res.Error)
			}
			if res.RowsAffected == 0 {
				return nil
			}

			var holding int64
			if err := tx.Model(&models.Booking{}).
				Where("room_id = ? AND id <> ? AND status IN ? AND end_date > ?", booking.RoomID, booking.ID, activeStatuses, now).
				Count(&holding).Error; err != nil {
				return apperrors.DB("failed to check room bookings", err)
			}
			if holding == 0 {
				return commands.Run(tx, &commands.ReleaseRoomCommand{RoomID: booking.RoomID})
			}
			return nil
		})
		if err != nil {
			s.logger.Error("failed to complete booking %d: %v", booking.ID, err)
			continue
		}
		completed++
		s.publish(notification.SubjectBookingCompleted, booking, booking.Amount)
		s.evictUser(ctx, booking.UserID)
	}
	if completed > 0 {
		s.evictHotels(ctx)
	}
	return completed, nil
}

// afterCommit gửi mail, event, websocket và xóa cache; lỗi chỉ được ghi log
func (s *BookingService) afterCommit(subject string, booking *models.Booking, user *models.User, room *models.Room, amount float64) {
	s.evictUser(context.Background(), booking.UserID)
	s.evictHotels(context.Background())
	s.publish(subject, booking, amount)

	msg := notification.NewMessageBuilder(subject).WithBooking(booking.ID, booking.Status).WithAmount(amount).Build()
	userID := booking.UserID
	s.async.Go("booking-notification", func(context.Context) error {
		return s.notifier.SendToUser(userID, msg)
	})

	if s.mailer == nil || user == nil || user.Email == "" {
		return
	}
	email := user.Email
	details := mail.BookingDetails{
		BookingID: booking.ID,
		Username:  user.Username,
		StartDate: booking.StartDate,
		EndDate:   booking.EndDate,
		Amount:    amount,
	}
	var hotelID uint
	if room != nil {
		details.RoomType = room.RoomType
		hotelID = room.HotelID
	}
	s.async.Go("booking-mail", func(ctx context.Context) error {
		// tên khách sạn tra trong task nền, không chặn request
		if hotelID != 0 {
			var hotel models.Hotel
			if err := s.db.WithContext(ctx).Select("name").First(&hotel, hotelID).Error; err == nil {
				details.HotelName = hotel.Name
			}
		}
		var m mail.Message
		switch subject {
		case notification.SubjectBookingCancelled:
			m = mail.BookingCancelledMessage(email, details)
		case notification.SubjectBookingUpdated:
			m = mail.BookingUpdatedMessage(email, details)
		default:
			m = mail.BookingConfirmedMessage(email, details)
		}
		return s.mailer.Send(ctx, m)
	})
}

func (s *BookingService) publish(subject string, booking *models.Booking, amount float64) {
	evt := notification.Event{
		Type:       subject,
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		HotelID:    booking.HotelID,
		RoomID:     booking.RoomID,
		Status:     booking.Status,
		Amount:     amount,
		OccurredAt: s.now().UTC(),
	}
	s.async.Go("booking-event", func(ctx context.Context) error {
		return s.events.Publish(ctx, subject, evt)
	})
}

func (s *BookingService) evictUser(ctx context.Context, userID uint) {
	if err := s.cache.Delete(ctx, userBookingsKey(userID)); err != nil {
		s.logger.Error("cache evict bookings of %d: %v", userID, err)
	}
}

// evictHotels: trạng thái phòng nằm trong cache chi tiết khách sạn
func (s *BookingService) evictHotels(ctx context.Context) {
	if err := s.cache.DeletePrefix(ctx, CacheKeyHotelPrefix); err != nil {
		s.logger.Error("cache evict %s*: %v", CacheKeyHotelPrefix, err)
	}
}
