package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"bimber/constants"
	"bimber/models"
	"bimber/services/logger"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB mở sqlite in-memory với một kết nối duy nhất để mọi truy vấn thấy cùng dữ liệu
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func newTestAsync() *AsyncRunner {
	return NewAsyncRunner(logger.NewNop(), 5*time.Second)
}

func waitAsync(t *testing.T, r *AsyncRunner) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, r.Wait(ctx))
}

func seedUser(t *testing.T, db *gorm.DB, username string, balance float64) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		Role:     constants.RoleUser,
		Balance:  balance,
		Enabled:  true,
		Provider: "local",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedHotel(t *testing.T, db *gorm.DB, name string, state models.State) *models.Hotel {
	t.Helper()
	hotel := &models.Hotel{Name: name, State: state, Location: "Somewhere"}
	require.NoError(t, db.Create(hotel).Error)
	return hotel
}

func seedRoom(t *testing.T, db *gorm.DB, hotelID uint, roomType string, price float64) *models.Room {
	t.Helper()
	room := &models.Room{HotelID: hotelID, RoomType: roomType, Price: price, Available: true}
	require.NoError(t, db.Create(room).Error)
	return room
}

func seedBooking(t *testing.T, db *gorm.DB, userID, hotelID, roomID uint, start, end time.Time, status string) *models.Booking {
	t.Helper()
	booking := &models.Booking{
		UserID:    userID,
		HotelID:   hotelID,
		RoomID:    roomID,
		StartDate: start,
		EndDate:   end,
		Status:    status,
		Paid:      true,
		Amount:    100,
	}
	require.NoError(t, db.Create(booking).Error)
	return booking
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// memPictureStore giữ ảnh trong bộ nhớ
type memPictureStore struct {
	mu      sync.Mutex
	seq     int
	stored  map[string]string
	deleted []string
	failAt  int
}

func newMemPictureStore() *memPictureStore {
	return &memPictureStore{stored: map[string]string{}}
}

func (s *memPictureStore) Upload(_ context.Context, folder, fileName string, src io.Reader) (UploadedPicture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	if s.failAt > 0 && s.seq == s.failAt {
		return UploadedPicture{}, fmt.Errorf("upload %s failed", fileName)
	}
	if _, err := io.ReadAll(src); err != nil {
		return UploadedPicture{}, err
	}
	id := fmt.Sprintf("%s/%d-%s", folder, s.seq, fileName)
	s.stored[id] = fileName
	return UploadedPicture{URL: "https://img.test/" + id, PublicID: id}, nil
}

func (s *memPictureStore) Delete(_ context.Context, publicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.stored, publicID)
	s.deleted = append(s.deleted, publicID)
	return nil
}
