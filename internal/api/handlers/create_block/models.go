package create_block

import (
	"time"

	"github.com/m04kA/BMP-BookingService/internal/service/blocks/models"
)

// CreateBlockRequest HTTP request model
type CreateBlockRequest struct {
	StartsAt time.Time `json:"startsAt"` // RFC 3339
	EndsAt   time.Time `json:"endsAt"`   // RFC 3339
	Reason   string    `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateBlockRequest) ToServiceRequest(businessID, userID int64) *models.CreateBlockRequest {
	return &models.CreateBlockRequest{
		UserID:     userID,
		BusinessID: businessID,
		StartsAt:   r.StartsAt,
		EndsAt:     r.EndsAt,
		Reason:     r.Reason,
	}
}
