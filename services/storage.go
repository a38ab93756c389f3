package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	apperrors "bimber/errors"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Thư mục ảnh trên Cloudinary
const (
	FolderHotelPictures = "bimber/hotels"
	FolderRoomPictures  = "bimber/rooms"
)

type UploadedPicture struct {
	URL      string
	PublicID string
}

// PictureStore lưu file ảnh và trả về URL công khai
type PictureStore interface {
	Upload(ctx context.Context, folder, fileName string, src io.Reader) (UploadedPicture, error)
	Delete(ctx context.Context, publicID string) error
}

type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

// NewPictureStore trả về store báo lỗi khi chưa cấu hình Cloudinary
func NewPictureStore(cld *cloudinary.Cloudinary) PictureStore {
	if cld == nil {
		return disabledStore{}
	}
	return &CloudinaryStore{cld: cld}
}

func (s *CloudinaryStore) Upload(ctx context.Context, folder, fileName string, src io.Reader) (UploadedPicture, error) {
	base := strings.TrimSuffix(path.Base(fileName), path.Ext(fileName))
	resp, err := s.cld.Upload.Upload(ctx, src, uploader.UploadParams{
		Folder:         folder,
		PublicID:       base,
		UniqueFilename: boolPtr(true),
		ResourceType:   "image",
	})
	if err != nil {
		return UploadedPicture{}, apperrors.NewAppError(apperrors.ErrCodeUpstream, "Picture upload failed", err)
	}
	if resp.Error.Message != "" {
		return UploadedPicture{}, apperrors.NewAppError(apperrors.ErrCodeUpstream, "Picture upload failed", fmt.Errorf("%s", resp.Error.Message))
	}
	return UploadedPicture{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeUpstream, "Picture delete failed", err)
	}
	return nil
}

type disabledStore struct{}

func (disabledStore) Upload(context.Context, string, string, io.Reader) (UploadedPicture, error) {
	return UploadedPicture{}, apperrors.NewAppError(apperrors.ErrCodeUpstream, "Picture storage is not configured", nil)
}

func (disabledStore) Delete(context.Context, string) error { return nil }

func boolPtr(b bool) *bool { return &b }
