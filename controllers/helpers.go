package controllers

import (
	"mime/multipart"
	"strconv"

	apperrors "bimber/errors"
	"bimber/middleware"
	"bimber/response"
	"bimber/services"
	"bimber/validator"

	"github.com/gin-gonic/gin"
)

// maxPictureSize giới hạn mỗi file ảnh 5MB
const maxPictureSize = 5 << 20

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func currentCaller(c *gin.Context) (services.Caller, bool) {
	id, role, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c)
		return services.Caller{}, false
	}
	return services.Caller{ID: id, Role: role}, true
}

// bindJSON trả lời 400 với thông báo từng trường khi body không hợp lệ
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.FromError(c, validator.BindingError(err))
		return false
	}
	return true
}

// pictureFiles mở các file ảnh trong form; gọi closeAll sau khi dùng xong
func pictureFiles(c *gin.Context, field string) ([]services.PictureFile, func(), error) {
	closeAll := func() {}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, closeAll, nil
	}
	headers := form.File[field]
	files := make([]services.PictureFile, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	closeAll = func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}
	for _, h := range headers {
		if h.Size > maxPictureSize {
			closeAll()
			return nil, func() {}, apperrors.Validation("Picture " + h.Filename + " exceeds 5MB")
		}
		f, err := h.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "Cannot read picture "+h.Filename, err)
		}
		opened = append(opened, f)
		files = append(files, services.PictureFile{
			FileName:    h.Filename,
			ContentType: h.Header.Get("Content-Type"),
			Reader:      f,
		})
	}
	return files, closeAll, nil
}
