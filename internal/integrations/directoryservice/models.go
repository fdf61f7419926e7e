package directoryservice

import (
	"time"

	"github.com/m04kA/BMP-BookingService/internal/domain"
	"github.com/m04kA/BMP-BookingService/pkg/types"
)

// Business модель бизнеса из DirectoryService
type Business struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	City       string  `json:"city"`
	IsActive   bool    `json:"is_active"`
	ManagerIDs []int64 `json:"manager_ids"`
}

// Service модель услуги из DirectoryService
type Service struct {
	ID              int64    `json:"id"`
	BusinessID      int64    `json:"business_id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           *float64 `json:"price,omitempty"`
}

// OperatingHours модель рабочих часов бизнеса на один день недели
// day_of_week нумеруется как time.Weekday: 0 = воскресенье
type OperatingHours struct {
	BusinessID int64  `json:"business_id"`
	DayOfWeek  int    `json:"day_of_week"`
	IsClosed   bool   `json:"is_closed"`
	OpenTime   string `json:"open_time,omitempty"`  // "HH:MM"
	CloseTime  string `json:"close_time,omitempty"` // "HH:MM"
}

// ToDomain конвертирует ответ DirectoryService в доменную модель
func (h *OperatingHours) ToDomain() *domain.OperatingHours {
	return &domain.OperatingHours{
		BusinessID: h.BusinessID,
		DayOfWeek:  time.Weekday(h.DayOfWeek),
		IsClosed:   h.IsClosed,
		OpenTime:   types.TimeString(h.OpenTime),
		CloseTime:  types.TimeString(h.CloseTime),
	}
}

// ErrorResponse модель ошибки от DirectoryService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
