package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"bimber/constants"
	"bimber/dto"
	apperrors "bimber/errors"
	"bimber/models"
	"bimber/services/logger"
	"bimber/services/mail"
	"bimber/services/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var bookingNow = time.Date(2030, 1, 10, 12, 0, 0, 0, time.UTC)

type bookingFixture struct {
	db       *gorm.DB
	svc      *BookingService
	async    *AsyncRunner
	mailer   *mail.Recorder
	events   *notification.EventRecorder
	notifier *notification.Recorder
	user     *models.User
	hotel    *models.Hotel
	room     *models.Room
	clock    time.Time
}

func newBookingFixture(t *testing.T, balance float64) *bookingFixture {
	t.Helper()
	db := newTestDB(t)
	f := &bookingFixture{
		db:       db,
		async:    newTestAsync(),
		mailer:   &mail.Recorder{},
		events:   &notification.EventRecorder{},
		notifier: notification.NewRecorder(),
		clock:    bookingNow,
	}
	f.svc = NewBookingService(BookingServiceOptions{
		DB:       db,
		Logger:   logger.NewNop(),
		Mailer:   f.mailer,
		Events:   f.events,
		Notifier: f.notifier,
		Async:    f.async,
		Now:      func() time.Time { return f.clock },
	})
	f.user = seedUser(t, db, "guest01", balance)
	f.hotel = seedHotel(t, db, "Eko Hotel", models.StateLagos)
	f.room = seedRoom(t, db, f.hotel.ID, constants.RoomTypeDouble, 100)
	return f
}

func (f *bookingFixture) book(startDate, endDate string) (*dto.BookingResponse, error) {
	return f.svc.BookRoom(context.Background(), f.user.ID, dto.BookingRequest{
		HotelID:   f.hotel.ID,
		RoomID:    f.room.ID,
		StartDate: startDate,
		EndDate:   endDate,
	})
}

func (f *bookingFixture) balance(t *testing.T) float64 {
	t.Helper()
	var u models.User
	require.NoError(t, f.db.First(&u, f.user.ID).Error)
	return u.Balance
}

func (f *bookingFixture) roomAvailable(t *testing.T, id uint) bool {
	t.Helper()
	var r models.Room
	require.NoError(t, f.db.First(&r, id).Error)
	return r.Available
}

func (f *bookingFixture) payments(t *testing.T) []models.Payment {
	t.Helper()
	var ps []models.Payment
	require.NoError(t, f.db.Where("user_id = ?", f.user.ID).Order("id ASC").Find(&ps).Error)
	return ps
}

func TestBookRoom(t *testing.T) {
	f := newBookingFixture(t, 1000)

	resp, err := f.book("2030-01-12", "2030-01-15")
	require.NoError(t, err)
	waitAsync(t, f.async)

	assert.Equal(t, constants.BookingStatusConfirmed, resp.Status)
	assert.True(t, resp.Paid)
	assert.Equal(t, 300.0, resp.Amount)
	assert.Equal(t, "2030-01-12", resp.StartDate)
	assert.Equal(t, "2030-01-15", resp.EndDate)

	assert.Equal(t, 700.0, f.balance(t))
	assert.False(t, f.roomAvailable(t, f.room.ID))

	payments := f.payments(t)
	require.Len(t, payments, 1)
	assert.Equal(t, constants.PaymentKindCharge, payments[0].Kind)
	assert.Equal(t, 300.0, payments[0].Amount)
	require.NotNil(t, payments[0].BookingID)
	assert.Equal(t, resp.ID, *payments[0].BookingID)

	sent := f.mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "guest01@example.com", sent[0].To)
	assert.Contains(t, sent[0].Body, "Eko Hotel")

	events := f.events.Events()
	require.Len(t, events, 1)
	assert.Equal(t, notification.SubjectBookingConfirmed, events[0].Type)
	assert.Equal(t, resp.ID, events[0].BookingID)

	assert.Len(t, f.notifier.Messages(f.user.ID), 1)
}

func TestBookRoomMailFailureIsNotSurfaced(t *testing.T) {
	f := newBookingFixture(t, 1000)
	f.mailer.Err = errors.New("smtp down")

	_, err := f.book("2030-01-12", "2030-01-13")
	require.NoError(t, err)
	waitAsync(t, f.async)
	assert.Empty(t, f.mailer.Sent())
}

func TestBookRoomRejections(t *testing.T) {
	tests := []struct {
		name    string
		balance float64
		setup   func(t *testing.T, f *bookingFixture) dto.BookingRequest
		code    apperrors.ErrorCode
		wantErr error
	}{
		{
			name:    "insufficient balance",
			balance: 50,
			wantErr: apperrors.ErrInsufficientFund,
		},
		{
			name:    "start in the past",
			balance: 1000,
			setup: func(t *testing.T, f *bookingFixture) dto.BookingRequest {
				return dto.BookingRequest{HotelID: f.hotel.ID, RoomID: f.room.ID, StartDate: "2030-01-09", EndDate: "2030-01-12"}
			},
			code: apperrors.ErrCodeValidation,
		},
		{
			name:    "end before start",
			balance: 1000,
			setup: func(t *testing.T, f *bookingFixture) dto.BookingRequest {
				return dto.BookingRequest{HotelID: f.hotel.ID, RoomID: f.room.ID, StartDate: "2030-01-15", EndDate: "2030-01-15"}
			},
			code: apperrors.ErrCodeValidation,
		},
		{
			name:    "bad date format",
			balance: 1000,
			setup: func(t *testing.T, f *bookingFixture) dto.BookingRequest {
				return dto.BookingRequest{HotelID: f.hotel.ID, RoomID: f.room.ID, StartDate: "12/01/2030", EndDate: "2030-01-15"}
			},
			code: apperrors.ErrCodeInvalidFormat,
		},
		{
			name:    "room of another hotel",
			balance: 1000,
			setup: func(t *testing.T, f *bookingFixture) dto.BookingRequest {
				other := seedHotel(t, f.db, "Transcorp Hilton", models.StateFCT)
				return dto.BookingRequest{HotelID: other.ID, RoomID: f.room.ID, StartDate: "2030-01-12", EndDate: "2030-01-13"}
			},
			wantErr: apperrors.ErrRoomNotInHotel,
		},
		{
			name:    "unknown room",
			balance: 1000,
			setup: func(t *testing.T, f *bookingFixture) dto.BookingRequest {
				return dto.BookingRequest{HotelID: f.hotel.ID, RoomID: 999, StartDate: "2030-01-12", EndDate: "2030-01-13"}
			},
			wantErr: apperrors.ErrRoomNotFound,
		},
		{
			name:    "room flagged unavailable",
			balance: 1000,
			setup: func(t *testing.T, f *bookingFixture) dto.BookingRequest {
				require.NoError(t, f.db.Model(f.room).Update("available", false).Error)
				return dto.BookingRequest{HotelID: f.hotel.ID, RoomID: f.room.ID, StartDate: "2030-01-12", EndDate: "2030-01-13"}
			},
			wantErr: apperrors.ErrRoomNotAvailable,
		},
		{
			name:    "overlapping booking of another guest",
			balance: 1000,
			setup: func(t *testing.T, f *bookingFixture) dto.BookingRequest {
				other := seedUser(t, f.db, "guest02", 0)
				seedBooking(t, f.db, other.ID, f.hotel.ID, f.room.ID, day("2030-01-14"), day("2030-01-16"), constants.BookingStatusPending)
				return dto.BookingRequest{HotelID: f.hotel.ID, RoomID: f.room.ID, StartDate: "2030-01-12", EndDate: "2030-01-15"}
			},
			wantErr: apperrors.ErrRoomNotAvailable,
		},
		{
			name:    "already holds a confirmed booking",
			balance: 1000,
			setup: func(t *testing.T, f *bookingFixture) dto.BookingRequest {
				room2 := seedRoom(t, f.db, f.hotel.ID, constants.RoomTypeSingle, 50)
				seedBooking(t, f.db, f.user.ID, f.hotel.ID, room2.ID, day("2030-02-01"), day("2030-02-03"), constants.BookingStatusConfirmed)
				return dto.BookingRequest{HotelID: f.hotel.ID, RoomID: f.room.ID, StartDate: "2030-01-12", EndDate: "2030-01-13"}
			},
			wantErr: apperrors.ErrActiveBooking,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t, tt.balance)
			req := dto.BookingRequest{HotelID: f.hotel.ID, RoomID: f.room.ID, StartDate: "2030-01-12", EndDate: "2030-01-15"}
			if tt.setup != nil {
				req = tt.setup(t, f)
			}

			_, err := f.svc.BookRoom(context.Background(), f.user.ID, req)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.True(t, apperrors.HasCode(err, tt.code), "got %v", err)
			}

			assert.Equal(t, tt.balance, f.balance(t))
			assert.Empty(t, f.payments(t))
		})
	}
}

func TestBookRoomAdjacentStayIsAllowed(t *testing.T) {
	f := newBookingFixture(t, 1000)
	other := seedUser(t, f.db, "guest02", 0)
	seedBooking(t, f.db, other.ID, f.hotel.ID, f.room.ID, day("2030-01-10"), day("2030-01-12"), constants.BookingStatusCancelled)
	seedBooking(t, f.db, other.ID, f.hotel.ID, f.room.ID, day("2030-01-15"), day("2030-01-17"), constants.BookingStatusPending)

	resp, err := f.book("2030-01-12", "2030-01-15")
	require.NoError(t, err)
	assert.Equal(t, 300.0, resp.Amount)
	waitAsync(t, f.async)
}

func TestCancelBooking(t *testing.T) {
	f := newBookingFixture(t, 1000)
	resp, err := f.book("2030-01-12", "2030-01-15")
	require.NoError(t, err)
	waitAsync(t, f.async)

	stranger := Caller{ID: f.user.ID + 100, Role: constants.RoleUser}
	_, err = f.svc.CancelBooking(context.Background(), stranger, resp.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeForbidden))

	owner := Caller{ID: f.user.ID, Role: constants.RoleUser}
	cancelled, err := f.svc.CancelBooking(context.Background(), owner, resp.ID)
	require.NoError(t, err)
	waitAsync(t, f.async)

	assert.Equal(t, constants.BookingStatusCancelled, cancelled.Status)
	assert.False(t, cancelled.Paid)
	assert.Equal(t, 1000.0, f.balance(t))
	assert.True(t, f.roomAvailable(t, f.room.ID))

	payments := f.payments(t)
	require.Len(t, payments, 2)
	assert.Equal(t, constants.PaymentKindRefund, payments[1].Kind)
	assert.Equal(t, 300.0, payments[1].Amount)

	events := f.events.Events()
	require.Len(t, events, 2)
	assert.Equal(t, notification.SubjectBookingCancelled, events[1].Type)

	sent := f.mailer.Sent()
	require.Len(t, sent, 2)
	assert.Contains(t, sent[1].Body, "Eko Hotel")

	_, err = f.svc.CancelBooking(context.Background(), owner, resp.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidOperation))

	_, err = f.svc.CancelBooking(context.Background(), owner, 9999)
	assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)
}

func TestUpdateBooking(t *testing.T) {
	f := newBookingFixture(t, 1000)
	resp, err := f.book("2030-01-12", "2030-01-15")
	require.NoError(t, err)
	owner := Caller{ID: f.user.ID, Role: constants.RoleUser}

	// kéo dài thêm hai đêm, trừ thêm 200
	updated, err := f.svc.UpdateBooking(context.Background(), owner, resp.ID, dto.UpdateBookingRequest{
		RoomID: f.room.ID, StartDate: "2030-01-12", EndDate: "2030-01-17",
	})
	require.NoError(t, err)
	assert.Equal(t, 500.0, updated.Amount)
	assert.Equal(t, 500.0, f.balance(t))
	assert.False(t, f.roomAvailable(t, f.room.ID))

	// đổi sang phòng rẻ hơn, hoàn lại phần chênh
	single := seedRoom(t, f.db, f.hotel.ID, constants.RoomTypeSingle, 60)
	updated, err = f.svc.UpdateBooking(context.Background(), owner, resp.ID, dto.UpdateBookingRequest{
		RoomID: single.ID, StartDate: "2030-01-12", EndDate: "2030-01-14",
	})
	require.NoError(t, err)
	waitAsync(t, f.async)

	assert.Equal(t, single.ID, updated.RoomID)
	assert.Equal(t, 120.0, updated.Amount)
	assert.Equal(t, 880.0, f.balance(t))
	assert.True(t, f.roomAvailable(t, f.room.ID))
	assert.False(t, f.roomAvailable(t, single.ID))

	kinds := []string{}
	for _, p := range f.payments(t) {
		kinds = append(kinds, p.Kind)
	}
	assert.Equal(t, []string{constants.PaymentKindCharge, constants.PaymentKindCharge, constants.PaymentKindRefund}, kinds)
}

func TestBookRoomRejectsTotalAboveColumnLimit(t *testing.T) {
	f := newBookingFixture(t, 1000)
	require.NoError(t, f.db.Model(f.room).Update("price", 600000000000.0).Error)

	_, err := f.book("2030-01-12", "2030-01-14")
	assert.ErrorIs(t, err, apperrors.ErrAmountTooLarge)

	assert.Equal(t, 1000.0, f.balance(t))
	assert.True(t, f.roomAvailable(t, f.room.ID))
	assert.Empty(t, f.payments(t))
}

func TestUpdateBookingRejectsUnaffordableChange(t *testing.T) {
	f := newBookingFixture(t, 300)
	resp, err := f.book("2030-01-12", "2030-01-15")
	require.NoError(t, err)

	_, err = f.svc.UpdateBooking(context.Background(), Caller{ID: f.user.ID, Role: constants.RoleUser}, resp.ID, dto.UpdateBookingRequest{
		RoomID: f.room.ID, StartDate: "2030-01-12", EndDate: "2030-01-20",
	})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFund)

	var b models.Booking
	require.NoError(t, f.db.First(&b, resp.ID).Error)
	assert.Equal(t, 300.0, b.Amount)
	assert.Equal(t, 0.0, f.balance(t))
	waitAsync(t, f.async)
}

func TestUpdateCancelledBooking(t *testing.T) {
	f := newBookingFixture(t, 1000)
	b := seedBooking(t, f.db, f.user.ID, f.hotel.ID, f.room.ID, day("2030-01-12"), day("2030-01-14"), constants.BookingStatusCancelled)

	_, err := f.svc.UpdateBooking(context.Background(), Caller{ID: f.user.ID, Role: constants.RoleUser}, b.ID, dto.UpdateBookingRequest{
		RoomID: f.room.ID, StartDate: "2030-01-12", EndDate: "2030-01-13",
	})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidOperation))
}

func TestCompleteEndedBookings(t *testing.T) {
	f := newBookingFixture(t, 0)
	other := seedUser(t, f.db, "guest02", 0)
	room2 := seedRoom(t, f.db, f.hotel.ID, constants.RoomTypeSuite, 300)

	ended := seedBooking(t, f.db, f.user.ID, f.hotel.ID, f.room.ID, day("2030-01-05"), day("2030-01-08"), constants.BookingStatusConfirmed)
	// phòng 2 vẫn bị giữ bởi booking sau
	ended2 := seedBooking(t, f.db, other.ID, f.hotel.ID, room2.ID, day("2030-01-06"), day("2030-01-09"), constants.BookingStatusConfirmed)
	upcoming := seedBooking(t, f.db, f.user.ID, f.hotel.ID, room2.ID, day("2030-01-11"), day("2030-01-12"), constants.BookingStatusPending)
	running := seedBooking(t, f.db, other.ID, f.hotel.ID, f.room.ID, day("2030-01-09"), day("2030-01-11"), constants.BookingStatusCancelled)
	require.NoError(t, f.db.Model(&models.Room{}).Where("id IN ?", []uint{f.room.ID, room2.ID}).Update("available", false).Error)

	n, err := f.svc.CompleteEndedBookings(context.Background())
	require.NoError(t, err)
	waitAsync(t, f.async)
	assert.Equal(t, 2, n)

	status := func(id uint) string {
		var b models.Booking
		require.NoError(t, f.db.First(&b, id).Error)
		return b.Status
	}
	assert.Equal(t, constants.BookingStatusCompleted, status(ended.ID))
	assert.Equal(t, constants.BookingStatusCompleted, status(ended2.ID))
	assert.Equal(t, constants.BookingStatusPending, status(upcoming.ID))
	assert.Equal(t, constants.BookingStatusCancelled, status(running.ID))

	assert.True(t, f.roomAvailable(t, f.room.ID))
	assert.False(t, f.roomAvailable(t, room2.ID))

	completedEvents := 0
	for _, e := range f.events.Events() {
		if e.Type == notification.SubjectBookingCompleted {
			completedEvents++
		}
	}
	assert.Equal(t, 2, completedEvents)

	n, err = f.svc.CompleteEndedBookings(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBookingQueries(t *testing.T) {
	f := newBookingFixture(t, 1000)
	resp, err := f.book("2030-01-12", "2030-01-13")
	require.NoError(t, err)
	waitAsync(t, f.async)

	owner := Caller{ID: f.user.ID, Role: constants.RoleUser}
	admin := Caller{ID: 999, Role: constants.RoleAdmin}
	stranger := Caller{ID: f.user.ID + 1, Role: constants.RoleUser}

	got, err := f.svc.GetBooking(context.Background(), owner, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, got.ID)

	_, err = f.svc.GetBooking(context.Background(), stranger, resp.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeForbidden))

	mine, err := f.svc.ListUserBookings(context.Background(), owner, f.user.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = f.svc.ListUserBookings(context.Background(), stranger, f.user.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeForbidden))

	all, total, err := f.svc.ListAllBookings(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, all, 1)

	_, err = f.svc.GetBooking(context.Background(), admin, resp.ID)
	assert.NoError(t, err)
}
