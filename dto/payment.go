package dto

import (
	"time"

	"bimber/models"
)

type PaymentResponse struct {
	ID        uint      `json:"id"`
	BookingID *uint     `json:"bookingId,omitempty"`
	Amount    float64   `json:"amount"`
	Kind      string    `json:"kind"`
	Success   bool      `json:"success"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewPaymentResponses(payments []models.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, PaymentResponse{
			ID:        p.ID,
			BookingID: p.BookingID,
			Amount:    p.Amount,
			Kind:      p.Kind,
			Success:   p.Success,
			Reference: p.Reference,
			CreatedAt: p.CreatedAt,
		})
	}
	return out
}
