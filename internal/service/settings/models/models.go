package models

import (
	"time"

	"github.com/m04kA/BMP-BookingService/internal/domain"
	"github.com/m04kA/BMP-BookingService/pkg/ptr"
)

// Request модели

// GetSettingsRequest запрос на получение настроек бронирования бизнеса
type GetSettingsRequest struct {
	UserID     int64
	BusinessID int64
}

// UpdateSettingsRequest запрос на обновление настроек бронирования
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	UserID                  int64
	BusinessID              int64
	SlotGranularityMinutes  *int `json:"slotGranularityMinutes,omitempty"`
	AdvanceBookingDays      *int `json:"advanceBookingDays,omitempty"`
	MinBookingNoticeMinutes *int `json:"minBookingNoticeMinutes,omitempty"`
}

// ApplyToSettings применяет обновления к существующим настройкам
// Не переданные (nil) поля сохраняют текущие значения
func (r *UpdateSettingsRequest) ApplyToSettings(s *domain.BusinessBookingSettings) {
	s.SlotGranularityMinutes = ptr.Deref(r.SlotGranularityMinutes, s.SlotGranularityMinutes)
	s.AdvanceBookingDays = ptr.Deref(r.AdvanceBookingDays, s.AdvanceBookingDays)
	s.MinBookingNoticeMinutes = ptr.Deref(r.MinBookingNoticeMinutes, s.MinBookingNoticeMinutes)
}

// Response модели

// SettingsResponse ответ с настройками бронирования бизнеса
// IsDefault = true, когда бизнес не сохранял собственных настроек и
// действуют значения по умолчанию
type SettingsResponse struct {
	BusinessID              int64      `json:"businessId"`
	SlotGranularityMinutes  int        `json:"slotGranularityMinutes"`
	AdvanceBookingDays      int        `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int        `json:"minBookingNoticeMinutes"`
	IsDefault               bool       `json:"isDefault"`
	UpdatedAt               *time.Time `json:"updatedAt,omitempty"`
}

// Методы конвертации

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.BusinessBookingSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		BusinessID:              s.BusinessID,
		SlotGranularityMinutes:  s.SlotGranularityMinutes,
		AdvanceBookingDays:      s.AdvanceBookingDays,
		MinBookingNoticeMinutes: s.MinBookingNoticeMinutes,
	}

	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}
