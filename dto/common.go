package dto

// IDResponse trả về id vừa tạo hoặc xóa
type IDResponse struct {
	ID uint `json:"id"`
}
