package update_business_settings

import (
	"github.com/m04kA/BMP-BookingService/internal/service/settings/models"
)

// UpdateSettingsRequest HTTP request model
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	SlotGranularityMinutes  *int `json:"slotGranularityMinutes,omitempty"`
	AdvanceBookingDays      *int `json:"advanceBookingDays,omitempty"`
	MinBookingNoticeMinutes *int `json:"minBookingNoticeMinutes,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateSettingsRequest) ToServiceRequest(businessID, userID int64) *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		UserID:                  userID,
		BusinessID:              businessID,
		SlotGranularityMinutes:  r.SlotGranularityMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
	}
}
