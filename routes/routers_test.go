package routes

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"bimber/constants"
	"bimber/models"
	"bimber/services"
	"bimber/services/logger"
	"bimber/services/mail"
	"bimber/validator"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type envelope struct {
	Code int             `json:"code"`
	Mess string          `json:"mess"`
	Data json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
	async  *services.AsyncRunner
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validator.RegisterBindingRules())

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	log := logger.NewNop()
	async := services.NewAsyncRunner(log, 5*time.Second)
	tokens := services.NewTokenService("routes-test-secret-0123456789abcdef", time.Hour)
	states := services.NewStateMatcher()
	mailer := &mail.Recorder{}

	router := gin.New()
	SetupRoutes(router, Dependencies{
		Tokens: tokens,
		Auth: services.NewAuthService(services.AuthServiceOptions{
			DB: db, Logger: log, Tokens: tokens, Mailer: mailer, Async: async,
			BaseURL: "http://localhost", AdminKey: "admin-key",
		}),
		Users:    services.NewUserService(services.UserServiceOptions{DB: db, Logger: log, Async: async}),
		Payments: services.NewPaymentService(db, log),
		Hotels:   services.NewHotelService(services.HotelServiceOptions{DB: db, Logger: log, States: states}),
		Rooms:    services.NewRoomService(services.RoomServiceOptions{DB: db, Logger: log, States: states}),
		Bookings: services.NewBookingService(services.BookingServiceOptions{DB: db, Logger: log, Mailer: mailer, Async: async}),
		Comments: services.NewCommentService(services.CommentServiceOptions{DB: db, Logger: log}),
		Logger:   log,
	})

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = async.Wait(ctx)
	})
	return &testServer{t: t, db: db, router: router, async: async}
}

// seedAccount tạo tài khoản đã kích hoạt với mật khẩu "secret123"
func (s *testServer) seedAccount(username, role string, balance float64) *models.User {
	s.t.Helper()
	hash, err := services.HashPassword("secret123")
	require.NoError(s.t, err)
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: hash,
		Role:     role,
		Balance:  balance,
		Enabled:  true,
		Provider: "local",
	}
	require.NoError(s.t, s.db.Create(user).Error)
	return user
}

func (s *testServer) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func (s *testServer) login(identifier string) string {
	s.t.Helper()
	w, env := s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"identifier": identifier, "password": "secret123"})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &resp))
	require.NotEmpty(s.t, resp.Token)
	return resp.Token
}

func TestPing(t *testing.T) {
	s := newTestServer(t)
	w, _ := s.do(http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	s := newTestServer(t)
	s.seedAccount("guest01", constants.RoleUser, 0)

	w, env := s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"identifier": "guest01", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, env.Code)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	s := newTestServer(t)
	s.seedAccount("guest01", constants.RoleUser, 0)
	userToken := s.login("guest01")

	body := gin.H{"name": "Eko Hotel", "state": "Lagos", "location": "Victoria Island"}
	w, _ := s.do(http.MethodPost, "/api/v1/hotels", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodPost, "/api/v1/hotels", userToken, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(http.MethodGet, "/api/v1/bookings", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBindingRulesRejectBadRoomType(t *testing.T) {
	s := newTestServer(t)
	s.seedAccount("admin01", constants.RoleAdmin, 0)
	adminToken := s.login("admin01")

	w, env := s.do(http.MethodPost, "/api/v1/hotels", adminToken, gin.H{
		"name":     "Eko Hotel",
		"state":    "Lagos",
		"location": "Victoria Island",
		"rooms":    []gin.H{{"roomType": "PENTHOUSE", "price": 100}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, env.Code)
}

func TestBookingFlowOverHTTP(t *testing.T) {
	s := newTestServer(t)
	s.seedAccount("admin01", constants.RoleAdmin, 0)
	guest := s.seedAccount("guest01", constants.RoleUser, 500)
	adminToken := s.login("admin01")
	guestToken := s.login("guest01")

	w, env := s.do(http.MethodPost, "/api/v1/hotels", adminToken, gin.H{
		"name":      "Eko Hotel",
		"state":     "lagos",
		"location":  "Victoria Island",
		"amenities": []string{"wifi", "pool"},
		"rooms":     []gin.H{{"roomType": "double", "price": 100}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var hotel struct {
		ID    uint   `json:"id"`
		State string `json:"state"`
		Rooms []struct {
			ID uint `json:"id"`
		} `json:"rooms"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &hotel))
	assert.Equal(t, "LAGOS", hotel.State)
	require.Len(t, hotel.Rooms, 1)
	roomID := hotel.Rooms[0].ID

	w, env = s.do(http.MethodPost, "/api/v1/bookings", guestToken, gin.H{
		"hotelId":   hotel.ID,
		"roomId":    roomID,
		"startDate": "2031-03-01",
		"endDate":   "2031-03-04",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var booking struct {
		ID     uint    `json:"id"`
		Status string  `json:"status"`
		Amount float64 `json:"amount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &booking))
	assert.Equal(t, constants.BookingStatusConfirmed, booking.Status)
	assert.InDelta(t, 300, booking.Amount, 0.001)

	w, env = s.do(http.MethodGet, "/api/v1/rooms/"+itoa(roomID)+"/availability", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var avail struct {
		Available bool `json:"available"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &avail))
	assert.False(t, avail.Available)

	// a second guest cannot take the reserved room
	s.seedAccount("guest02", constants.RoleUser, 500)
	w, _ = s.do(http.MethodPost, "/api/v1/bookings", s.login("guest02"), gin.H{
		"hotelId":   hotel.ID,
		"roomId":    roomID,
		"startDate": "2031-03-02",
		"endDate":   "2031-03-03",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = s.do(http.MethodPost, "/api/v1/bookings/"+itoa(booking.ID)+"/cancel", guestToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reloaded models.User
	require.NoError(t, s.db.First(&reloaded, guest.ID).Error)
	assert.InDelta(t, 500, reloaded.Balance, 0.001)

	w, env = s.do(http.MethodGet, "/api/v1/users/"+itoa(guest.ID)+"/payments", guestToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var payments []struct {
		Kind string `json:"kind"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payments))
	assert.Len(t, payments, 2)

	w, env = s.do(http.MethodGet, "/api/v1/states/Lagos/hotels/count", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var count struct {
		Count int64 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &count))
	assert.EqualValues(t, 1, count.Count)
}

func TestAmountsAboveColumnLimitAreRejected(t *testing.T) {
	s := newTestServer(t)
	s.seedAccount("admin01", constants.RoleAdmin, 0)
	guest := s.seedAccount("guest01", constants.RoleUser, 0)

	w, env := s.do(http.MethodPost, "/api/v1/users/"+itoa(guest.ID)+"/fund", s.login("guest01"), gin.H{"amount": 1e12})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Equal(t, 0, env.Code)

	w, _ = s.do(http.MethodPost, "/api/v1/hotels", s.login("admin01"), gin.H{
		"name":     "Eko Hotel",
		"state":    "Lagos",
		"location": "Victoria Island",
		"rooms":    []gin.H{{"roomType": "SUITE", "price": 1e13}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	var reloaded models.User
	require.NoError(t, s.db.First(&reloaded, guest.ID).Error)
	assert.Zero(t, reloaded.Balance)
}

func TestUsersCannotReadOtherAccounts(t *testing.T) {
	s := newTestServer(t)
	s.seedAccount("guest01", constants.RoleUser, 0)
	other := s.seedAccount("guest02", constants.RoleUser, 0)

	w, _ := s.do(http.MethodGet, "/api/v1/users/"+itoa(other.ID), s.login("guest01"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
