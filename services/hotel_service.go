package services

import (
	"context"
	"io"
	"sort"
	"strings"
	"time"

	"bimber/builders"
	"bimber/dto"
	apperrors "bimber/errors"
	"bimber/models"
	"bimber/services/logger"
	"bimber/validator"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// PictureFile là file ảnh đã mở, controller chịu trách nhiệm đóng
type PictureFile struct {
	FileName    string
	ContentType string
	Reader      io.Reader
}

type HotelServiceOptions struct {
	DB       *gorm.DB
	Logger   logger.Logger
	Cache    Cache
	CacheTTL time.Duration
	States   *StateMatcher
	Pictures PictureStore
}

type HotelService struct {
	db       *gorm.DB
	logger   logger.Logger
	cache    Cache
	cacheTTL time.Duration
	states   *StateMatcher
	pictures PictureStore
}

func NewHotelService(opts HotelServiceOptions) *HotelService {
	if opts.Cache == nil {
		opts.Cache = NopCache{}
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 10 * time.Minute
	}
	return &HotelService{
		db:       opts.DB,
		logger:   opts.Logger,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		states:   opts.States,
		pictures: opts.Pictures,
	}
}

func cleanAmenities(in []string) pq.StringArray {
	out := pq.StringArray{}
	seen := map[string]bool{}
	for _, a := range in {
		a = strings.TrimSpace(a)
		if a == "" || seen[strings.ToLower(a)] {
			continue
		}
		seen[strings.ToLower(a)] = true
		out = append(out, a)
	}
	return out
}

func (s *HotelService) nameTaken(tx *gorm.DB, name string, excludeID uint) error {
	var count int64
	if err := tx.Model(&models.Hotel{}).Where("LOWER(name) = LOWER(?) AND id <> ?", name, excludeID).Count(&count).Error; err != nil {
		return apperrors.DB("failed to check hotel name", err)
	}
	if count > 0 {
		return apperrors.Conflict("A hotel with this name already exists")
	}
	return nil
}

// CreateHotel tạo khách sạn, các phòng đi kèm được tạo ở trạng thái trống
func (s *HotelService) CreateHotel(ctx context.Context, req dto.CreateHotelRequest) (*dto.HotelResponse, error) {
	state, err := s.states.Resolve(req.State)
	if err != nil {
		return nil, err
	}

	hotel := &models.Hotel{
		Name:        strings.TrimSpace(req.Name),
		State:       state,
		Location:    strings.TrimSpace(req.Location),
		Amenities:   cleanAmenities(req.Amenities),
		Description: strings.TrimSpace(req.Description),
	}
	for _, r := range req.Rooms {
		room := builders.NewRoomBuilder(0).WithType(r.NormalizedType()).WithPrice(r.Price).Build()
		if err := room.ValidateType(); err != nil {
			return nil, apperrors.Validation(err.Error())
		}
		if err := validator.ValidateRoomPrice(room.Price); err != nil {
			return nil, err
		}
		hotel.Rooms = append(hotel.Rooms, *room)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.nameTaken(tx, hotel.Name, 0); err != nil {
			return err
		}
		if err := tx.Create(hotel).Error; err != nil {
			if isUniqueViolation(err) {
				return apperrors.Conflict("A hotel with this name already exists")
			}
			return apperrors.DB("failed to create hotel", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info("hotel %d created name=%q state=%s rooms=%d", hotel.ID, hotel.Name, hotel.State, len(hotel.Rooms))
	resp := dto.NewHotelResponse(hotel)
	return &resp, nil
}

func (s *HotelService) ListHotels(ctx context.Context) ([]dto.HotelResponse, error) {
	var cached []dto.HotelResponse
	if s.readCache(ctx, CacheKeyHotelsAll, &cached) {
		return cached, nil
	}

	var hotels []models.Hotel
	if err := s.db.WithContext(ctx).Preload("Pictures").Order("id ASC").Find(&hotels).Error; err != nil {
		return nil, apperrors.DB("failed to list hotels", err)
	}
	resp := dto.NewHotelResponses(hotels)
	s.writeCache(ctx, CacheKeyHotelsAll, resp)
	return resp, nil
}

func (s *HotelService) loadHotel(tx *gorm.DB, id uint) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := tx.First(&hotel, id).Error; err != nil {
		return nil, notFoundOr(err, apperrors.ErrHotelNotFound, "failed to load hotel")
	}
	return &hotel, nil
}

// GetHotel trả về khách sạn kèm phòng và ảnh
func (s *HotelService) GetHotel(ctx context.Context, id uint) (*dto.HotelResponse, error) {
	key := hotelCacheKey(id)
	var cached dto.HotelResponse
	if s.readCache(ctx, key, &cached) {
		return &cached, nil
	}

	var hotel models.Hotel
	err := s.db.WithContext(ctx).
		Preload("Rooms", func(db *gorm.DB) *gorm.DB { return db.Order("rooms.id ASC") }).
		Preload("Rooms.Pictures").
		Preload("Pictures").
		First(&hotel, id).Error
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrHotelNotFound, "failed to load hotel")
	}
	resp := dto.NewHotelResponse(&hotel)
	s.writeCache(ctx, key, resp)
	return &resp, nil
}

// EditHotel cập nhật các trường được gửi lên
func (s *HotelService) EditHotel(ctx context.Context, id uint, req dto.UpdateHotelRequest) (*dto.HotelResponse, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.State != nil {
		state, err := s.states.Resolve(*req.State)
		if err != nil {
			return nil, err
		}
		updates["state"] = state
	}
	if req.Location != nil {
		updates["location"] = strings.TrimSpace(*req.Location)
	}
	if req.Amenities != nil {
		updates["amenities"] = cleanAmenities(*req.Amenities)
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		hotel, err := s.loadHotel(tx, id)
		if err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if name, ok := updates["name"].(string); ok {
			if err := s.nameTaken(tx, name, id); err != nil {
				return err
			}
		}
		if err := tx.Model(hotel).Updates(updates).Error; err != nil {
			return apperrors.DB("failed to update hotel", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return s.GetHotel(ctx, id)
}

// DeleteHotel xóa khách sạn cùng phòng, ảnh, bình luận và lịch sử booking.
// Khách sạn còn booking hiệu lực thì không xóa được.
func (s *HotelService) DeleteHotel(ctx context.Context, id uint) error {
	var publicIDs []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.loadHotel(tx, id); err != nil {
			return err
		}

		var active int64
		if err := tx.Model(&models.Booking{}).Where("hotel_id = ? AND status IN ?", id, activeStatuses).Count(&active).Error; err != nil {
			return apperrors.DB("failed to check bookings", err)
		}
		if active > 0 {
			return apperrors.InvalidOperation("Hotel has active bookings")
		}

		var roomIDs []uint
		if err := tx.Model(&models.Room{}).Where("hotel_id = ?", id).Pluck("id", &roomIDs).Error; err != nil {
			return apperrors.DB("failed to load rooms", err)
		}
		if err := tx.Model(&models.Picture{}).Where("hotel_id = ?", id).Pluck("public_id", &publicIDs).Error; err != nil {
			return apperrors.DB("failed to load pictures", err)
		}
		if len(roomIDs) > 0 {
			var roomPics []string
			if err := tx.Model(&models.RoomPicture{}).Where("room_id IN ?", roomIDs).Pluck("public_id", &roomPics).Error; err != nil {
				return apperrors.DB("failed to load pictures", err)
			}
			publicIDs = append(publicIDs, roomPics...)
			if err := tx.Where("room_id IN ?", roomIDs).Delete(&models.RoomPicture{}).Error; err != nil {
				return apperrors.DB("failed to delete room pictures", err)
			}
		}

		if err := purgeBookings(tx, "hotel_id = ?", id); err != nil {
			return err
		}
		for _, m := range []interface{}{&models.Comment{}, &models.Picture{}, &models.Room{}} {
			if err := tx.Where("hotel_id = ?", id).Delete(m).Error; err != nil {
				return apperrors.DB("failed to delete hotel data", err)
			}
		}
		if err := tx.Delete(&models.Hotel{}, id).Error; err != nil {
			return apperrors.DB("failed to delete hotel", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx)
	s.deletePictures(ctx, publicIDs)
	s.logger.Info("hotel %d deleted", id)
	return nil
}

// purgeBookings xóa booking đã kết thúc, payment liên quan được giữ lại nhưng bỏ liên kết
func purgeBookings(tx *gorm.DB, where string, args ...interface{}) error {
	var ids []uint
	if err := tx.Model(&models.Booking{}).Where(where, args...).Pluck("id", &ids).Error; err != nil {
		return apperrors.DB("failed to load bookings", err)
	}
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Model(&models.Payment{}).Where("booking_id IN ?", ids).Update("booking_id", nil).Error; err != nil {
		return apperrors.DB("failed to detach payments", err)
	}
	if err := tx.Where("id IN ?", ids).Delete(&models.Booking{}).Error; err != nil {
		return apperrors.DB("failed to delete bookings", err)
	}
	return nil
}

func (s *HotelService) HotelsByState(ctx context.Context, stateInput string) ([]dto.HotelResponse, error) {
	state, err := s.states.Resolve(stateInput)
	if err != nil {
		return nil, err
	}
	key := CacheKeyHotelsState + string(state)
	var cached []dto.HotelResponse
	if s.readCache(ctx, key, &cached) {
		return cached, nil
	}

	var hotels []models.Hotel
	if err := s.db.WithContext(ctx).Preload("Pictures").Where("state = ?", state).Order("id ASC").Find(&hotels).Error; err != nil {
		return nil, apperrors.DB("failed to list hotels", err)
	}
	resp := dto.NewHotelResponses(hotels)
	s.writeCache(ctx, key, resp)
	return resp, nil
}

func (s *HotelService) CountHotelsInState(ctx context.Context, stateInput string) (*dto.StateCountResponse, error) {
	state, err := s.states.Resolve(stateInput)
	if err != nil {
		return nil, err
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Hotel{}).Where("state = ?", state).Count(&count).Error; err != nil {
		return nil, apperrors.DB("failed to count hotels", err)
	}
	return &dto.StateCountResponse{State: state, Count: count}, nil
}

// MostBookedHotelsByState xếp hạng khách sạn có booking theo số booking giảm dần
func (s *HotelService) MostBookedHotelsByState(ctx context.Context, stateInput string) ([]dto.HotelRankResponse, error) {
	state, err := s.states.Resolve(stateInput)
	if err != nil {
		return nil, err
	}

	var counts []struct {
		HotelID  uint
		Bookings int64
	}
	err = s.db.WithContext(ctx).Model(&models.Booking{}).
		Select("bookings.hotel_id AS hotel_id, COUNT(bookings.id) AS bookings").
		Joins("JOIN hotels ON hotels.id = bookings.hotel_id").
		Where("hotels.state = ?", state).
		Group("bookings.hotel_id").
		Scan(&counts).Error
	if err != nil {
		return nil, apperrors.DB("failed to rank hotels", err)
	}
	if len(counts) == 0 {
		return []dto.HotelRankResponse{}, nil
	}

	ids := make([]uint, 0, len(counts))
	for _, c := range counts {
		ids = append(ids, c.HotelID)
	}
	var hotels []models.Hotel
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&hotels).Error; err != nil {
		return nil, apperrors.DB("failed to load hotels", err)
	}
	byID := make(map[uint]*models.Hotel, len(hotels))
	for i := range hotels {
		byID[hotels[i].ID] = &hotels[i]
	}

	out := make([]dto.HotelRankResponse, 0, len(counts))
	for _, c := range counts {
		if h, ok := byID[c.HotelID]; ok {
			out = append(out, dto.HotelRankResponse{Hotel: dto.NewHotelResponse(h), Bookings: c.Bookings})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Bookings != out[j].Bookings {
			return out[i].Bookings > out[j].Bookings
		}
		return out[i].Hotel.ID < out[j].Hotel.ID
	})
	return out, nil
}

// UploadHotelPictures đẩy file lên kho ảnh rồi lưu metadata
func (s *HotelService) UploadHotelPictures(ctx context.Context, hotelID uint, files []PictureFile) ([]dto.PictureResponse, error) {
	if len(files) == 0 {
		return nil, apperrors.Validation("At least one picture is required")
	}
	if _, err := s.loadHotel(s.db.WithContext(ctx), hotelID); err != nil {
		return nil, err
	}

	pictures := make([]models.Picture, 0, len(files))
	for _, f := range files {
		up, err := s.pictures.Upload(ctx, FolderHotelPictures, f.FileName, f.Reader)
		if err != nil {
			s.deletePictures(ctx, picturePublicIDs(pictures))
			return nil, err
		}
		pictures = append(pictures, models.Picture{
			HotelID:  hotelID,
			FileName: f.FileName,
			FileType: f.ContentType,
			URL:      up.URL,
			PublicID: up.PublicID,
		})
	}

	if err := s.db.WithContext(ctx).Create(&pictures).Error; err != nil {
		s.deletePictures(ctx, picturePublicIDs(pictures))
		return nil, apperrors.DB("failed to save pictures", err)
	}
	s.invalidate(ctx)

	out := make([]dto.PictureResponse, 0, len(pictures))
	for _, p := range pictures {
		out = append(out, dto.PictureResponse{ID: p.ID, URL: p.URL, FileName: p.FileName, FileType: p.FileType})
	}
	return out, nil
}

func picturePublicIDs(pictures []models.Picture) []string {
	ids := make([]string, 0, len(pictures))
	for _, p := range pictures {
		ids = append(ids, p.PublicID)
	}
	return ids
}

func (s *HotelService) deletePictures(ctx context.Context, publicIDs []string) {
	for _, id := range publicIDs {
		if err := s.pictures.Delete(ctx, id); err != nil {
			s.logger.Error("failed to delete picture %s: %v", id, err)
		}
	}
}

func (s *HotelService) readCache(ctx context.Context, key string, target interface{}) bool {
	found, err := s.cache.Get(ctx, key, target)
	if err != nil {
		s.logger.Error("cache get %s: %v", key, err)
		return false
	}
	return found
}

func (s *HotelService) writeCache(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Error("cache set %s: %v", key, err)
	}
}

// invalidate xóa toàn bộ key hotels:*
func (s *HotelService) invalidate(ctx context.Context) {
	if err := s.cache.DeletePrefix(ctx, CacheKeyHotelPrefix); err != nil {
		s.logger.Error("cache evict %s*: %v", CacheKeyHotelPrefix, err)
	}
}
