package services

import (
	"context"
	"strings"

	"bimber/builders"
	"bimber/dto"
	apperrors "bimber/errors"
	"bimber/models"
	"bimber/services/logger"
	"bimber/validator"

	"gorm.io/gorm"
)

type RoomServiceOptions struct {
	DB       *gorm.DB
	Logger   logger.Logger
	Cache    Cache
	States   *StateMatcher
	Pictures PictureStore
}

type RoomService struct {
	db       *gorm.DB
	logger   logger.Logger
	cache    Cache
	states   *StateMatcher
	pictures PictureStore
}

func NewRoomService(opts RoomServiceOptions) *RoomService {
	if opts.Cache == nil {
		opts.Cache = NopCache{}
	}
	return &RoomService{
		db:       opts.DB,
		logger:   opts.Logger,
		cache:    opts.Cache,
		states:   opts.States,
		pictures: opts.Pictures,
	}
}

func (s *RoomService) hotelExists(tx *gorm.DB, hotelID uint) error {
	var count int64
	if err := tx.Model(&models.Hotel{}).Where("id = ?", hotelID).Count(&count).Error; err != nil {
		return apperrors.DB("failed to load hotel", err)
	}
	if count == 0 {
		return apperrors.ErrHotelNotFound
	}
	return nil
}

func (s *RoomService) loadRoom(tx *gorm.DB, roomID uint) (*models.Room, error) {
	var room models.Room
	if err := tx.Preload("Pictures").First(&room, roomID).Error; err != nil {
		return nil, notFoundOr(err, apperrors.ErrRoomNotFound, "failed to load room")
	}
	return &room, nil
}

// CreateRoom thêm phòng vào khách sạn, ảnh đi kèm là tùy chọn
func (s *RoomService) CreateRoom(ctx context.Context, hotelID uint, req dto.CreateRoomRequest, files []PictureFile) (*dto.RoomResponse, error) {
	room := builders.NewRoomBuilder(hotelID).WithType(req.NormalizedType()).WithPrice(req.Price).Build()
	if err := room.ValidateType(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if err := validator.ValidateRoomPrice(room.Price); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.hotelExists(tx, hotelID); err != nil {
			return err
		}
		if err := tx.Create(room).Error; err != nil {
			return apperrors.DB("failed to create room", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(files) > 0 {
		pics, err := s.storeRoomPictures(ctx, room.ID, files)
		if err != nil {
			// phòng đã tạo, chỉ báo lỗi ảnh
			s.logger.Error("room %d created but pictures failed: %v", room.ID, err)
		}
		room.Pictures = pics
	}

	s.invalidate(ctx)
	s.logger.Info("room %d created hotel=%d type=%s", room.ID, hotelID, room.RoomType)
	resp := dto.NewRoomResponse(room)
	return &resp, nil
}

func (s *RoomService) EditRoom(ctx context.Context, roomID uint, req dto.UpdateRoomRequest) (*dto.RoomResponse, error) {
	updates := map[string]interface{}{}
	if req.RoomType != nil {
		t := strings.ToUpper(strings.TrimSpace(*req.RoomType))
		if !models.IsValidRoomType(t) {
			return nil, apperrors.Validation("invalid room type: " + t)
		}
		updates["room_type"] = t
	}
	if req.Price != nil {
		if err := validator.ValidateRoomPrice(*req.Price); err != nil {
			return nil, err
		}
		updates["price"] = *req.Price
	}

	var room *models.Room
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if room, err = s.loadRoom(tx, roomID); err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(room).Updates(updates).Error; err != nil {
			return apperrors.DB("failed to update room", err)
		}
		room, err = s.loadRoom(tx, roomID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	resp := dto.NewRoomResponse(room)
	return &resp, nil
}

// DeleteRoom từ chối khi phòng còn booking hiệu lực
func (s *RoomService) DeleteRoom(ctx context.Context, roomID uint) error {
	var publicIDs []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room, err := s.loadRoom(tx, roomID)
		if err != nil {
			return err
		}
		var active int64
		if err := tx.Model(&models.Booking{}).Where("room_id = ? AND status IN ?", roomID, activeStatuses).Count(&active).Error; err != nil {
			return apperrors.DB("failed to check bookings", err)
		}
		if active > 0 {
			return apperrors.InvalidOperation("Room has active bookings")
		}
		for _, p := range room.Pictures {
			publicIDs = append(publicIDs, p.PublicID)
		}
		if err := tx.Where("room_id = ?", roomID).Delete(&models.RoomPicture{}).Error; err != nil {
			return apperrors.DB("failed to delete room pictures", err)
		}
		if err := purgeBookings(tx, "room_id = ?", roomID); err != nil {
			return err
		}
		if err := tx.Delete(&models.Room{}, roomID).Error; err != nil {
			return apperrors.DB("failed to delete room", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, id := range publicIDs {
		if err := s.pictures.Delete(ctx, id); err != nil {
			s.logger.Error("failed to delete picture %s: %v", id, err)
		}
	}
	s.invalidate(ctx)
	s.logger.Info("room %d deleted", roomID)
	return nil
}

func (s *RoomService) listRooms(ctx context.Context, hotelID uint, scope func(*gorm.DB) *gorm.DB) ([]dto.RoomResponse, error) {
	db := s.db.WithContext(ctx)
	if err := s.hotelExists(db, hotelID); err != nil {
		return nil, err
	}
	q := db.Preload("Pictures").Where("hotel_id = ?", hotelID)
	if scope != nil {
		q = scope(q)
	}
	var rooms []models.Room
	if err := q.Order("id ASC").Find(&rooms).Error; err != nil {
		return nil, apperrors.DB("failed to list rooms", err)
	}
	return dto.NewRoomResponses(rooms), nil
}

func (s *RoomService) RoomsByHotel(ctx context.Context, hotelID uint) ([]dto.RoomResponse, error) {
	return s.listRooms(ctx, hotelID, nil)
}

func (s *RoomService) AvailableRoomsByHotel(ctx context.Context, hotelID uint) ([]dto.RoomResponse, error) {
	return s.listRooms(ctx, hotelID, func(q *gorm.DB) *gorm.DB {
		return q.Where("available = ?", true)
	})
}

func (s *RoomService) FilterRoomsByType(ctx context.Context, hotelID uint, roomType string) ([]dto.RoomResponse, error) {
	t := strings.ToUpper(strings.TrimSpace(roomType))
	if !models.IsValidRoomType(t) {
		return nil, apperrors.Validation("invalid room type: " + roomType)
	}
	return s.listRooms(ctx, hotelID, func(q *gorm.DB) *gorm.DB {
		return q.Where("room_type = ?", t)
	})
}

// FilterRoomsByPriceAndState lọc phòng theo khoảng giá trong các khách sạn của một bang
func (s *RoomService) FilterRoomsByPriceAndState(ctx context.Context, min, max float64, stateInput string) ([]dto.RoomResponse, error) {
	if err := validator.ValidatePriceRange(min, max); err != nil {
		return nil, err
	}
	state, err := s.states.Resolve(stateInput)
	if err != nil {
		return nil, err
	}

	var rooms []models.Room
	err = s.db.WithContext(ctx).
		Preload("Pictures").
		Joins("JOIN hotels ON hotels.id = rooms.hotel_id").
		Where("hotels.state = ? AND rooms.price >= ? AND rooms.price <= ?", state, min, max).
		Order("rooms.price ASC, rooms.id ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, apperrors.DB("failed to filter rooms", err)
	}
	return dto.NewRoomResponses(rooms), nil
}

func (s *RoomService) IsRoomAvailable(ctx context.Context, roomID uint) (*dto.RoomAvailabilityResponse, error) {
	var room models.Room
	if err := s.db.WithContext(ctx).Select("id", "available").First(&room, roomID).Error; err != nil {
		return nil, notFoundOr(err, apperrors.ErrRoomNotFound, "failed to load room")
	}
	return &dto.RoomAvailabilityResponse{RoomID: room.ID, Available: room.Available}, nil
}

func (s *RoomService) ActivateRoom(ctx context.Context, hotelID, roomID uint) (*dto.RoomResponse, error) {
	return s.setAvailability(ctx, hotelID, roomID, true)
}

func (s *RoomService) DeactivateRoom(ctx context.Context, hotelID, roomID uint) (*dto.RoomResponse, error) {
	return s.setAvailability(ctx, hotelID, roomID, false)
}

func (s *RoomService) setAvailability(ctx context.Context, hotelID, roomID uint, available bool) (*dto.RoomResponse, error) {
	var room *models.Room
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.hotelExists(tx, hotelID); err != nil {
			return err
		}
		var err error
		if room, err = s.loadRoom(tx, roomID); err != nil {
			return err
		}
		if room.HotelID != hotelID {
			return apperrors.ErrRoomNotInHotel
		}
		if err := tx.Model(room).Update("available", available).Error; err != nil {
			return apperrors.DB("failed to update room", err)
		}
		room.Available = available
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.logger.Info("room %d available=%t", roomID, available)
	resp := dto.NewRoomResponse(room)
	return &resp, nil
}

func (s *RoomService) UploadRoomPictures(ctx context.Context, roomID uint, files []PictureFile) ([]dto.PictureResponse, error) {
	if len(files) == 0 {
		return nil, apperrors.Validation("At least one picture is required")
	}
	if _, err := s.loadRoom(s.db.WithContext(ctx), roomID); err != nil {
		return nil, err
	}
	pics, err := s.storeRoomPictures(ctx, roomID, files)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	out := make([]dto.PictureResponse, 0, len(pics))
	for _, p := range pics {
		out = append(out, dto.PictureResponse{ID: p.ID, URL: p.URL, FileName: p.FileName, FileType: p.FileType})
	}
	return out, nil
}

func (s *RoomService) storeRoomPictures(ctx context.Context, roomID uint, files []PictureFile) ([]models.RoomPicture, error) {
	pics := make([]models.RoomPicture, 0, len(files))
	rollback := func() {
		for _, p := range pics {
			if err := s.pictures.Delete(ctx, p.PublicID); err != nil {
				s.logger.Error("failed to delete picture %s: %v", p.PublicID, err)
			}
		}
	}
	for _, f := range files {
		up, err := s.pictures.Upload(ctx, FolderRoomPictures, f.FileName, f.Reader)
		if err != nil {
			rollback()
			return nil, err
		}
		pics = append(pics, models.RoomPicture{
			RoomID:   roomID,
			FileName: f.FileName,
			FileType: f.ContentType,
			URL:      up.URL,
			PublicID: up.PublicID,
		})
	}
	if err := s.db.WithContext(ctx).Create(&pics).Error; err != nil {
		rollback()
		return nil, apperrors.DB("failed to save pictures", err)
	}
	return pics, nil
}

func (s *RoomService) invalidate(ctx context.Context) {
	if err := s.cache.DeletePrefix(ctx, CacheKeyHotelPrefix); err != nil {
		s.logger.Error("cache evict %s*: %v", CacheKeyHotelPrefix, err)
	}
}
